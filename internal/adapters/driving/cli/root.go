// Package cli provides the cobra-based command line interface for
// beacon.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	configfile "github.com/beacon-labs/beacon-cli/internal/adapters/driven/config/file"
	embeddingollama "github.com/beacon-labs/beacon-cli/internal/adapters/driven/embedding/ollama"
	graphneo4j "github.com/beacon-labs/beacon-cli/internal/adapters/driven/graph/neo4j"
	graphrelay "github.com/beacon-labs/beacon-cli/internal/adapters/driven/graph/relay"
	llmollama "github.com/beacon-labs/beacon-cli/internal/adapters/driven/llm/ollama"
	llmopenai "github.com/beacon-labs/beacon-cli/internal/adapters/driven/llm/openai"
	"github.com/beacon-labs/beacon-cli/internal/adapters/driven/storage/sqlite"
	vectorrelay "github.com/beacon-labs/beacon-cli/internal/adapters/driven/vector/relay"
	"github.com/beacon-labs/beacon-cli/internal/core/domain"
	"github.com/beacon-labs/beacon-cli/internal/core/ports/driven"
	"github.com/beacon-labs/beacon-cli/internal/core/ports/driving"
	"github.com/beacon-labs/beacon-cli/internal/core/services"
	"github.com/beacon-labs/beacon-cli/internal/logger"
)

// version is the CLI version, overridable at build time via ldflags.
var version = "0.1.0"

// Shared services, wired by initServices before any command runs.
// Tests inject mocks directly and skip the wiring.
var (
	retrievalService driving.RetrievalService
	closers          []io.Closer
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "beacon",
	Short: "Hybrid retrieval for code and documentation context",
	Long: `Beacon retrieves ranked, token-budgeted context from a codebase
knowledge store by combining semantic vector search with knowledge
graph traversal.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.beacon/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command and releases backend handles on exit.
func Execute() error {
	defer closeAll()
	return rootCmd.Execute()
}

func closeAll() {
	for _, c := range closers {
		c.Close() //nolint:errcheck
	}
	closers = nil
}

// initServices wires the retrieval pipeline from configuration. Already
// injected services (tests) are left untouched.
func initServices(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if retrievalService != nil {
		return nil
	}

	cfg, err := configfile.Load(configPath)
	if err != nil {
		return err
	}

	weights, err := domain.WeightsForProfile(cfg.Profile)
	if err != nil {
		return err
	}

	vector, graph, err := buildBackends(cfg)
	if err != nil {
		return err
	}

	rankerOpts := []services.RankerOption{}
	if cfg.Search.MaxResults > 0 {
		rankerOpts = append(rankerOpts, services.WithMaxResults(cfg.Search.MaxResults))
	}

	// The freshness store is an enhancement: without it every candidate
	// scores the neutral recency constant.
	if store, err := sqlite.NewFreshnessStore(cfg.DataDir); err != nil {
		logger.Warn("Freshness store unavailable: %v", err)
	} else {
		closers = append(closers, store)
		rankerOpts = append(rankerOpts, services.WithFreshnessStore(store))
	}

	engineOpts := []services.EngineOption{
		services.WithVectorThreshold(cfg.Vector.Threshold),
		services.WithSearchFilters(cfg.Search.Filters),
	}
	if d := cfg.SearchTimeout(); d > 0 {
		engineOpts = append(engineOpts, services.WithSearchTimeout(d))
	}

	retrievalService = services.NewRetrievalEngine(
		vector,
		graph,
		services.NewQueryExpander(buildLLM(cfg)),
		services.NewRanker(weights, rankerOpts...),
		services.NewAssembler(),
		engineOpts...,
	)
	return nil
}

// buildBackends constructs the retrieval backends for the configured
// profile: separate relay services (federated) or one Neo4j store
// exposing both ports (unified).
func buildBackends(cfg *configfile.Config) (driven.VectorSearchBackend, driven.GraphSearchBackend, error) {
	if cfg.Profile == domain.ProfileUnified {
		embedder := embeddingollama.NewEmbeddingService(embeddingollama.Config{
			BaseURL:    cfg.Embedding.BaseURL,
			Model:      cfg.Embedding.Model,
			Dimensions: cfg.Embedding.Dimensions,
		})

		backend, err := graphneo4j.NewBackend(graphneo4j.Config{
			URI:         cfg.Neo4j.URI,
			Username:    cfg.Neo4j.Username,
			Password:    cfg.Neo4j.Password,
			Database:    cfg.Neo4j.Database,
			VectorIndex: cfg.Neo4j.VectorIndex,
		}, embedder)
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to neo4j: %w", err)
		}
		closers = append(closers, backend)

		return backend.Vector(), backend.Graph(), nil
	}

	vector := vectorrelay.NewClient(vectorrelay.Config{
		BaseURL: cfg.Vector.BaseURL,
		Timeout: cfg.VectorTimeout(),
	})
	graph := graphrelay.NewClient(graphrelay.Config{
		BaseURL: cfg.Graph.BaseURL,
		Timeout: cfg.GraphTimeout(),
	})
	return vector, graph, nil
}

// buildLLM constructs the expansion model, or nil when expansion is
// disabled. An OpenAI misconfiguration degrades to no expansion rather
// than blocking retrieval.
func buildLLM(cfg *configfile.Config) driven.LLMService {
	switch cfg.LLM.Provider {
	case "ollama":
		return llmollama.NewLLMService(llmollama.LLMConfig{
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		})
	case "openai":
		llm, err := llmopenai.NewLLMService(llmopenai.LLMConfig{
			APIKey:  cfg.LLM.APIKey,
			BaseURL: cfg.LLM.BaseURL,
			Model:   cfg.LLM.Model,
		})
		if err != nil {
			logger.Warn("Query expansion disabled: %v", err)
			return nil
		}
		return llm
	default:
		return nil
	}
}
