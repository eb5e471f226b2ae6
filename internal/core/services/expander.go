package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
	"github.com/beacon-labs/beacon-cli/internal/core/ports/driven"
	"github.com/beacon-labs/beacon-cli/internal/logger"
)

// Default expansion parameters.
const (
	// DefaultExpansionTimeout bounds the expansion model call. It is
	// deliberately shorter than the search timeout so a slow model
	// never stalls vector/graph search.
	DefaultExpansionTimeout = 10 * time.Second

	// DefaultExpansionRate throttles expansion calls per second across
	// concurrent queries.
	DefaultExpansionRate = 2.0

	expansionMaxTokens   = 256
	expansionTemperature = 0.2
)

// expansionPrompt asks the model for a strict JSON payload. Malformed
// output degrades to the identity expansion.
const expansionPrompt = `You are a search assistant. Given a user query, expand it with:
1. Semantically similar terms
2. Related technical concepts
3. Potential file/function/entity names

Query: %q

Respond with ONLY a JSON object in this exact format:
{
  "semantic_terms": ["term1", "term2"],
  "technical_concepts": ["concept1", "concept2"],
  "potential_names": ["name1", "name2"]
}`

// expansionPayload is the shape expected inside the model output.
// Missing fields decode to empty slices rather than errors.
type expansionPayload struct {
	SemanticTerms     []string `json:"semantic_terms"`
	TechnicalConcepts []string `json:"technical_concepts"`
	PotentialNames    []string `json:"potential_names"`
}

// QueryExpander enriches queries via a generative model call.
// It never fails the caller: every failure mode collapses to the
// identity expansion.
type QueryExpander struct {
	llm     driven.LLMService
	limiter *rate.Limiter
	timeout time.Duration
}

// ExpanderOption configures a QueryExpander.
type ExpanderOption func(*QueryExpander)

// WithExpansionTimeout overrides the per-call timeout.
func WithExpansionTimeout(d time.Duration) ExpanderOption {
	return func(e *QueryExpander) {
		if d > 0 {
			e.timeout = d
		}
	}
}

// WithExpansionRate overrides the expansion throttle (calls per second).
func WithExpansionRate(perSecond float64) ExpanderOption {
	return func(e *QueryExpander) {
		if perSecond > 0 {
			e.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
		}
	}
}

// NewQueryExpander creates a query expander. The llm parameter is
// optional (can be nil); a nil service yields identity expansions.
func NewQueryExpander(llm driven.LLMService, opts ...ExpanderOption) *QueryExpander {
	e := &QueryExpander{
		llm:     llm,
		limiter: rate.NewLimiter(rate.Limit(DefaultExpansionRate), 1),
		timeout: DefaultExpansionTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand enriches the query with related terms. On any backend error or
// malformed model output it returns the identity expansion - expansion
// is a quality enhancement, not a correctness dependency.
func (e *QueryExpander) Expand(ctx context.Context, query string) domain.ExpandedQuery {
	if e.llm == nil {
		logger.Debug("Expansion: no model configured, using original query")
		return domain.IdentityExpansion(query)
	}

	// Skip rather than queue when throttled: waiting would eat into
	// the overall request budget.
	if !e.limiter.Allow() {
		logger.Warn("Expansion: throttled, using original query")
		return domain.IdentityExpansion(query)
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	prompt := fmt.Sprintf(expansionPrompt, query)
	raw, err := e.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   expansionMaxTokens,
		Temperature: expansionTemperature,
	})
	if err != nil {
		logger.Warn("Expansion failed: %v (using original query)", err)
		return domain.IdentityExpansion(query)
	}

	payload, ok := parseExpansion(raw)
	if !ok {
		logger.Warn("Expansion: unparseable model output, using original query")
		return domain.IdentityExpansion(query)
	}

	expanded := domain.ExpandedQuery{
		Original:          query,
		SemanticTerms:     payload.SemanticTerms,
		TechnicalConcepts: payload.TechnicalConcepts,
		PotentialNames:    payload.PotentialNames,
	}
	expanded.Combined = expanded.Combine()

	logger.Info("Expansion: %d semantic terms, %d concepts, %d names",
		len(expanded.SemanticTerms), len(expanded.TechnicalConcepts), len(expanded.PotentialNames))

	return expanded
}

// parseExpansion extracts the JSON object from model output. Models
// frequently wrap the payload in prose or code fences, so the parser
// takes the outermost brace pair.
func parseExpansion(raw string) (expansionPayload, bool) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return expansionPayload{}, false
	}

	var payload expansionPayload
	if err := json.Unmarshal([]byte(raw[start:end+1]), &payload); err != nil {
		return expansionPayload{}, false
	}
	return payload, true
}
