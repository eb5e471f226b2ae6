package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
	"github.com/beacon-labs/beacon-cli/internal/core/ports/driven"
	"github.com/beacon-labs/beacon-cli/internal/core/ports/driving"
	"github.com/beacon-labs/beacon-cli/internal/logger"
)

// Ensure RetrievalEngine implements the interface.
var _ driving.RetrievalService = (*RetrievalEngine)(nil)

// DefaultSearchTimeout bounds each backend search call independently.
const DefaultSearchTimeout = 30 * time.Second

// relatedExpansionDepth is the hop count for the automatic
// related-entity stage: top candidates are expanded one hop further.
const relatedExpansionDepth = 1

// RetrievalEngine orchestrates the query-to-bundle pipeline: optional
// expansion, parallel vector + graph search, score fusion,
// related-entity expansion and context assembly.
//
// The engine is stateless across calls; backend handles are long-lived
// and shared read-only, so no locking is needed between queries.
type RetrievalEngine struct {
	vector    driven.VectorSearchBackend
	graph     driven.GraphSearchBackend
	expander  *QueryExpander
	ranker    *Ranker
	related   *RelatedExpander
	assembler *Assembler

	searchTimeout   time.Duration
	vectorThreshold float64
	filters         map[string]string
}

// EngineOption configures a RetrievalEngine.
type EngineOption func(*RetrievalEngine)

// WithSearchTimeout overrides the per-backend-call timeout.
func WithSearchTimeout(d time.Duration) EngineOption {
	return func(e *RetrievalEngine) {
		if d > 0 {
			e.searchTimeout = d
		}
	}
}

// WithVectorThreshold sets the minimum similarity forwarded to the
// vector backend.
func WithVectorThreshold(t float64) EngineOption {
	return func(e *RetrievalEngine) {
		e.vectorThreshold = t
	}
}

// WithSearchFilters applies conjunctive equality filters (workspace or
// tenant scoping) to every vector search.
func WithSearchFilters(filters map[string]string) EngineOption {
	return func(e *RetrievalEngine) {
		e.filters = filters
	}
}

// NewRetrievalEngine creates the hybrid retrieval engine. The vector
// and graph backends are each optional (can be nil): retrieval
// tolerates one modality being unavailable and returns a
// successful-but-empty result when both are missing.
func NewRetrievalEngine(
	vector driven.VectorSearchBackend,
	graph driven.GraphSearchBackend,
	expander *QueryExpander,
	ranker *Ranker,
	assembler *Assembler,
	opts ...EngineOption,
) *RetrievalEngine {
	e := &RetrievalEngine{
		vector:        vector,
		graph:         graph,
		expander:      expander,
		ranker:        ranker,
		related:       NewRelatedExpander(graph),
		assembler:     assembler,
		searchTimeout: DefaultSearchTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Retrieve runs the full pipeline for one query.
func (e *RetrievalEngine) Retrieve(
	ctx context.Context, query string, opts domain.QueryOptions,
) (*domain.RetrievalResponse, error) {
	logger.Section("Hybrid Retrieval")
	started := time.Now()
	qid := uuid.NewString()[:8]

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrEmptyQuery)
	}
	if opts.Limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", domain.ErrInvalidInput)
	}
	if opts.ContextWindow < 0 {
		return nil, fmt.Errorf("%w: context window must be non-negative", domain.ErrInvalidInput)
	}

	limit := opts.Limit
	if limit > domain.MaxLimit {
		limit = domain.MaxLimit
	}
	contextWindow := opts.ContextWindow
	if contextWindow == 0 {
		contextWindow = domain.DefaultContextWindow
	}

	logger.Debug("[%s] Query: %q limit=%d window=%d expand=%t related=%t",
		qid, query, limit, contextWindow, opts.ExpandQuery, opts.IncludeRelated)

	// 1. Optionally expand the query. Expansion carries its own, shorter
	// timeout and fails open to the original query.
	searchQuery := query
	if opts.ExpandQuery && e.expander != nil {
		expanded := e.expander.Expand(ctx, query)
		if expanded.Combined != "" {
			searchQuery = expanded.Combined
		}
		if searchQuery != query {
			logger.Info("[%s] Expanded query: %q", qid, searchQuery)
		}
	}

	// 2. Fan out to both backends in parallel and join. Both results are
	// needed; neither short-circuits the other. Over-fetch so fusion has
	// room to merge and filter.
	internalLimit := limit * 2

	var vectorResults, graphResults []domain.Candidate

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		vectorResults = e.vectorSearch(ctx, qid, searchQuery, internalLimit)
	}()

	go func() {
		defer wg.Done()
		graphResults = e.graphSearch(ctx, qid, searchQuery, internalLimit)
	}()

	wg.Wait()

	logger.Debug("[%s] Backend hits: vector=%d graph=%d",
		qid, len(vectorResults), len(graphResults))

	// 3. Merge by ID and rank under the weight model.
	ranked := e.ranker.Rank(ctx, e.ranker.Merge(vectorResults, graphResults))

	// 4. Optionally fold in one hop of graph neighbours at a suppressed
	// score tier.
	if opts.IncludeRelated {
		ranked = append(ranked, e.related.Expand(ctx, ranked, relatedExpansionDepth)...)
	}

	// 5. Pack the bundle under the token budget using the original,
	// pre-expansion query.
	bundle := e.assembler.Assemble(ranked, query, contextWindow)

	results := ranked
	if len(results) > limit {
		results = results[:limit]
	}

	logger.Info("[%s] Retrieval done: %d results, %d bundled, %s",
		qid, len(ranked), len(bundle.Items), time.Since(started).Round(time.Millisecond))

	return &domain.RetrievalResponse{
		Query:         query,
		TotalResults:  len(ranked),
		VectorMatches: len(vectorResults),
		GraphMatches:  len(graphResults),
		Results:       results,
		Bundle:        bundle,
	}, nil
}

// Expand enriches a query with related terms.
func (e *RetrievalEngine) Expand(ctx context.Context, query string) (domain.ExpandedQuery, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.ExpandedQuery{}, fmt.Errorf("%w: %w", domain.ErrInvalidInput, domain.ErrEmptyQuery)
	}
	if e.expander == nil {
		return domain.IdentityExpansion(query), nil
	}
	return e.expander.Expand(ctx, query), nil
}

// Related returns entities reachable from the seed entity. Depth is
// clamped server-side; traversal failures propagate since this is a
// direct operation, not a pipeline enhancement.
func (e *RetrievalEngine) Related(ctx context.Context, entityID string, depth int) ([]domain.Candidate, error) {
	if strings.TrimSpace(entityID) == "" {
		return nil, fmt.Errorf("%w: entity ID is required", domain.ErrInvalidInput)
	}
	if e.graph == nil {
		return nil, domain.ErrGraphBackendUnavailable
	}

	depth = domain.ClampDepth(depth)

	ctx, cancel := context.WithTimeout(ctx, e.searchTimeout)
	defer cancel()

	related, err := e.graph.Traverse(ctx, entityID, depth)
	if err != nil {
		return nil, fmt.Errorf("traverse from %s: %w", entityID, err)
	}
	return related, nil
}

// Status pings every configured backend. Retrieval itself fails open,
// so this is the one place an operator can see which modality a
// degraded result set is missing.
func (e *RetrievalEngine) Status(ctx context.Context) []domain.ComponentStatus {
	statuses := make([]domain.ComponentStatus, 0, 3)

	vectorErr := domain.ErrVectorBackendUnavailable
	if e.vector != nil {
		vectorErr = nil
		if err := e.vector.Ping(ctx); err != nil {
			vectorErr = fmt.Errorf("%w: %v", domain.ErrVectorBackendUnavailable, err)
		}
	}
	statuses = append(statuses, domain.ComponentStatus{Component: domain.ComponentVector, Err: vectorErr})

	graphErr := domain.ErrGraphBackendUnavailable
	if e.graph != nil {
		graphErr = nil
		if err := e.graph.Ping(ctx); err != nil {
			graphErr = fmt.Errorf("%w: %v", domain.ErrGraphBackendUnavailable, err)
		}
	}
	statuses = append(statuses, domain.ComponentStatus{Component: domain.ComponentGraph, Err: graphErr})

	expansionErr := domain.ErrExpansionUnavailable
	if e.expander != nil && e.expander.llm != nil {
		expansionErr = nil
		if err := e.expander.llm.Ping(ctx); err != nil {
			expansionErr = fmt.Errorf("%w: %v", domain.ErrExpansionUnavailable, err)
		}
	}
	statuses = append(statuses, domain.ComponentStatus{Component: domain.ComponentExpansion, Err: expansionErr})

	return statuses
}

// vectorSearch wraps the vector backend with the fail-open contract:
// any failure degrades to an empty result so one flaky dependency costs
// relevance, not availability.
func (e *RetrievalEngine) vectorSearch(ctx context.Context, qid, query string, limit int) []domain.Candidate {
	if e.vector == nil {
		logger.Debug("[%s] Vector backend not configured", qid)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.searchTimeout)
	defer cancel()

	results, err := e.vector.Search(ctx, driven.VectorQuery{
		Text:      query,
		Limit:     limit,
		Threshold: e.vectorThreshold,
		Filters:   e.filters,
	})
	if err != nil {
		logger.Warn("[%s] Vector search failed: %v (continuing without)", qid, err)
		return nil
	}
	return results
}

// graphSearch wraps the graph backend with the same fail-open contract.
func (e *RetrievalEngine) graphSearch(ctx context.Context, qid, query string, limit int) []domain.Candidate {
	if e.graph == nil {
		logger.Debug("[%s] Graph backend not configured", qid)
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, e.searchTimeout)
	defer cancel()

	results, err := e.graph.Search(ctx, query, limit)
	if err != nil {
		logger.Warn("[%s] Graph search failed: %v (continuing without)", qid, err)
		return nil
	}
	return results
}
