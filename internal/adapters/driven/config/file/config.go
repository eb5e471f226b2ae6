// Package file provides TOML-based configuration loading for the
// beacon CLI.
package file

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
)

// DefaultConfigDir is the directory under $HOME holding beacon state.
const DefaultConfigDir = ".beacon"

// Config is the full beacon configuration, loaded from config.toml.
// Every field has a usable default so a missing file means a working
// local setup.
type Config struct {
	// Profile selects the ranking profile: "federated" (separate vector
	// and graph services) or "unified" (single Neo4j store).
	Profile string `toml:"profile"`

	// DataDir overrides where local state (freshness database) lives.
	DataDir string `toml:"data_dir"`

	Vector    VectorConfig    `toml:"vector"`
	Graph     GraphConfig     `toml:"graph"`
	Neo4j     Neo4jConfig     `toml:"neo4j"`
	LLM       LLMConfig       `toml:"llm"`
	Embedding EmbeddingConfig `toml:"embedding"`
	Search    SearchConfig    `toml:"search"`
}

// VectorConfig configures the relay vector search backend.
type VectorConfig struct {
	BaseURL        string  `toml:"base_url"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
	Threshold      float64 `toml:"threshold"`
}

// GraphConfig configures the relay graph search backend.
type GraphConfig struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Neo4jConfig configures the unified Neo4j backend. Only consulted
// when Profile is "unified".
type Neo4jConfig struct {
	URI         string `toml:"uri"`
	Username    string `toml:"username"`
	Password    string `toml:"password"`
	Database    string `toml:"database"`
	VectorIndex string `toml:"vector_index"`
}

// LLMConfig configures the query expansion model.
type LLMConfig struct {
	// Provider is "ollama" or "openai". Empty disables expansion.
	Provider string `toml:"provider"`
	BaseURL  string `toml:"base_url"`
	Model    string `toml:"model"`
	APIKey   string `toml:"api_key"`
}

// EmbeddingConfig configures query-time embeddings for the unified
// profile.
type EmbeddingConfig struct {
	BaseURL    string `toml:"base_url"`
	Model      string `toml:"model"`
	Dimensions int    `toml:"dimensions"`
}

// SearchConfig holds pipeline tunables.
type SearchConfig struct {
	TimeoutSeconds int               `toml:"timeout_seconds"`
	MaxResults     int               `toml:"max_results"`
	Filters        map[string]string `toml:"filters"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Profile: domain.ProfileFederated,
		LLM: LLMConfig{
			Provider: "ollama",
		},
	}
}

// Load reads the configuration from the given path. An empty path
// resolves to ~/.beacon/config.toml. A missing file yields defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		path = filepath.Join(home, DefaultConfigDir, "config.toml")
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings that would misconfigure the pipeline.
func (c *Config) Validate() error {
	if _, err := domain.WeightsForProfile(c.Profile); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	switch c.LLM.Provider {
	case "", "ollama", "openai":
	default:
		return fmt.Errorf("config: unknown llm provider %q", c.LLM.Provider)
	}

	if c.Search.TimeoutSeconds < 0 {
		return fmt.Errorf("config: search timeout must be non-negative")
	}
	return nil
}

// SearchTimeout returns the configured pipeline timeout, or zero when
// unset so callers fall back to their own default.
func (c *Config) SearchTimeout() time.Duration {
	return time.Duration(c.Search.TimeoutSeconds) * time.Second
}

// VectorTimeout returns the vector backend request timeout.
func (c *Config) VectorTimeout() time.Duration {
	return time.Duration(c.Vector.TimeoutSeconds) * time.Second
}

// GraphTimeout returns the graph backend request timeout.
func (c *Config) GraphTimeout() time.Duration {
	return time.Duration(c.Graph.TimeoutSeconds) * time.Second
}
