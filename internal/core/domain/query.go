package domain

// Retrieval defaults and server-side clamps. Callers may omit any
// option; transports fill these defaults before invoking the engine.
const (
	// DefaultLimit is the number of results returned when unspecified.
	DefaultLimit = 10

	// MaxLimit caps the caller-supplied limit.
	MaxLimit = 50

	// DefaultContextWindow is the token budget when unspecified.
	DefaultContextWindow = 8000

	// DefaultMaxDepth is the graph traversal depth when unspecified.
	DefaultMaxDepth = 2

	// MaxDepthCeiling bounds traversal depth regardless of caller input.
	MaxDepthCeiling = 3
)

// QueryOptions configures one retrieval invocation.
type QueryOptions struct {
	// Limit is the maximum number of ranked results to return.
	Limit int

	// ContextWindow is the token budget for context assembly.
	ContextWindow int

	// ExpandQuery enables model-based query expansion.
	ExpandQuery bool

	// IncludeRelated enables one-hop expansion of top candidates
	// through the relationship graph.
	IncludeRelated bool

	// MaxDepth bounds graph traversal depth for the standalone
	// related-entities operation. Clamped to MaxDepthCeiling.
	MaxDepth int
}

// DefaultQueryOptions returns the documented defaults. Transports start
// from these and override only the fields the caller supplied.
func DefaultQueryOptions() QueryOptions {
	return QueryOptions{
		Limit:          DefaultLimit,
		ContextWindow:  DefaultContextWindow,
		ExpandQuery:    true,
		IncludeRelated: true,
		MaxDepth:       DefaultMaxDepth,
	}
}

// ClampDepth applies the server-side depth ceiling. Out-of-range
// requests are clamped, never rejected.
func ClampDepth(depth int) int {
	if depth <= 0 {
		return DefaultMaxDepth
	}
	if depth > MaxDepthCeiling {
		return MaxDepthCeiling
	}
	return depth
}

// RetrievalResponse is the engine's answer to one query.
type RetrievalResponse struct {
	// Query is the original query string.
	Query string

	// TotalResults counts all ranked candidates, including related
	// expansions, before truncation to Limit.
	TotalResults int

	// VectorMatches counts raw vector-backend hits. Zero when the
	// vector modality was unavailable; useful for diagnosing degraded
	// relevance.
	VectorMatches int

	// GraphMatches counts raw graph-backend hits.
	GraphMatches int

	// Results are the ranked candidates truncated to Limit.
	Results []Candidate

	// Bundle is the token-budgeted context assembled from the full
	// ranked set. It may contain fewer items than Results.
	Bundle ContextBundle
}
