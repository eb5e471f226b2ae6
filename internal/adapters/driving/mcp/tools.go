package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
)

// ContextSearchInput is the input schema for the context_search tool.
// The boolean toggles are pointers so that an omitted field keeps its
// documented default of true.
type ContextSearchInput struct {
	Query          string `json:"query" jsonschema:"the question or topic to retrieve context for"`
	Limit          int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10, max 50)"`
	ContextWindow  int    `json:"context_window,omitempty" jsonschema:"token budget for the assembled context bundle (default 8000)"`
	ExpandQuery    *bool  `json:"expand_query,omitempty" jsonschema:"enrich the query with related terms before searching (default true)"`
	IncludeRelated *bool  `json:"include_related,omitempty" jsonschema:"fold in graph neighbours of the top results (default true)"`
}

// ContextSearchOutput is the output schema for the context_search tool.
type ContextSearchOutput struct {
	Query         string               `json:"query"`
	TotalResults  int                  `json:"total_results"`
	VectorMatches int                  `json:"vector_matches"`
	GraphMatches  int                  `json:"graph_matches"`
	Results       []ResultOutput       `json:"results"`
	Bundle        domain.ContextBundle `json:"bundle"`
}

// ResultOutput represents a single ranked result. The per-signal scores
// are carried alongside the fused score so callers can see why a result
// ranked where it did.
type ResultOutput struct {
	ID            string  `json:"id"`
	EntityID      string  `json:"entity_id,omitempty"`
	Title         string  `json:"title"`
	Path          string  `json:"path,omitempty"`
	ContentType   string  `json:"content_type"`
	Source        string  `json:"source"`
	Score         float64 `json:"score"`
	SemanticScore float64 `json:"semantic_score"`
	GraphScore    float64 `json:"graph_score"`
	Depth         int     `json:"depth,omitempty"`
}

// ExpandInput is the input schema for the context_expand tool.
type ExpandInput struct {
	Query string `json:"query" jsonschema:"the query to enrich with related terms"`
}

// ExpandOutput is the output schema for the context_expand tool.
type ExpandOutput struct {
	Original          string   `json:"original"`
	SemanticTerms     []string `json:"semantic_terms"`
	TechnicalConcepts []string `json:"technical_concepts"`
	PotentialNames    []string `json:"potential_names"`
	Combined          string   `json:"combined"`
}

// RelatedInput is the input schema for the context_related tool.
type RelatedInput struct {
	EntityID string `json:"entity_id" jsonschema:"the graph entity to expand from"`
	MaxDepth int    `json:"max_depth,omitempty" jsonschema:"traversal depth in hops (default 2, max 3)"`
}

// RelatedOutput is the output schema for the context_related tool.
type RelatedOutput struct {
	EntityID string         `json:"entity_id"`
	Count    int            `json:"count"`
	Related  []ResultOutput `json:"related"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "context_search",
		Description: "Retrieve ranked, token-budgeted context for a question using hybrid vector and graph search",
	}, s.handleContextSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "context_expand",
		Description: "Enrich a query with related terms, technical concepts and likely identifier names",
	}, s.handleExpand)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "context_related",
		Description: "List entities connected to a given entity in the relationship graph",
	}, s.handleRelated)
}

// handleContextSearch handles the context_search tool invocation.
func (s *Server) handleContextSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ContextSearchInput,
) (*mcp.CallToolResult, ContextSearchOutput, error) {
	opts := domain.DefaultQueryOptions()
	if input.Limit > 0 {
		opts.Limit = input.Limit
	}
	if input.ContextWindow > 0 {
		opts.ContextWindow = input.ContextWindow
	}
	if input.ExpandQuery != nil {
		opts.ExpandQuery = *input.ExpandQuery
	}
	if input.IncludeRelated != nil {
		opts.IncludeRelated = *input.IncludeRelated
	}

	resp, err := s.ports.Retrieval.Retrieve(ctx, input.Query, opts)
	if err != nil {
		return nil, ContextSearchOutput{}, err
	}

	output := ContextSearchOutput{
		Query:         resp.Query,
		TotalResults:  resp.TotalResults,
		VectorMatches: resp.VectorMatches,
		GraphMatches:  resp.GraphMatches,
		Results:       toResultOutputs(resp.Results),
		Bundle:        resp.Bundle,
	}

	return nil, output, nil
}

// handleExpand handles the context_expand tool invocation.
func (s *Server) handleExpand(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExpandInput,
) (*mcp.CallToolResult, ExpandOutput, error) {
	expanded, err := s.ports.Retrieval.Expand(ctx, input.Query)
	if err != nil {
		return nil, ExpandOutput{}, err
	}

	return nil, ExpandOutput{
		Original:          expanded.Original,
		SemanticTerms:     expanded.SemanticTerms,
		TechnicalConcepts: expanded.TechnicalConcepts,
		PotentialNames:    expanded.PotentialNames,
		Combined:          expanded.Combined,
	}, nil
}

// handleRelated handles the context_related tool invocation.
func (s *Server) handleRelated(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RelatedInput,
) (*mcp.CallToolResult, RelatedOutput, error) {
	related, err := s.ports.Retrieval.Related(ctx, input.EntityID, input.MaxDepth)
	if err != nil {
		return nil, RelatedOutput{}, err
	}

	return nil, RelatedOutput{
		EntityID: input.EntityID,
		Count:    len(related),
		Related:  toResultOutputs(related),
	}, nil
}

// toResultOutputs maps ranked candidates onto the wire shape.
func toResultOutputs(candidates []domain.Candidate) []ResultOutput {
	out := make([]ResultOutput, len(candidates))
	for i := range candidates {
		out[i] = ResultOutput{
			ID:            candidates[i].ID,
			EntityID:      candidates[i].EntityID,
			Title:         candidates[i].Title,
			Path:          candidates[i].Path,
			ContentType:   candidates[i].ContentType,
			Source:        candidates[i].Source,
			Score:         candidates[i].FinalScore,
			SemanticScore: candidates[i].SemanticScore,
			GraphScore:    candidates[i].GraphScore,
			Depth:         candidates[i].RelationshipDepth,
		}
	}
	return out
}
