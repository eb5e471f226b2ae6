// Package driving provides interfaces for primary/inbound ports.
// Transports (CLI, MCP) drive the application through these.
package driving

import (
	"context"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
)

// RetrievalService exposes hybrid retrieval to external actors.
type RetrievalService interface {
	// Retrieve runs the full query pipeline: optional expansion,
	// parallel vector + graph search, score fusion, related-entity
	// expansion and context assembly.
	Retrieve(ctx context.Context, query string, opts domain.QueryOptions) (*domain.RetrievalResponse, error)

	// Expand enriches a query with related terms. It fails open: on
	// any model failure the identity expansion is returned.
	Expand(ctx context.Context, query string) (domain.ExpandedQuery, error)

	// Related returns entities reachable from the seed entity within
	// depth hops. Depth is clamped server-side.
	Related(ctx context.Context, entityID string, depth int) ([]domain.Candidate, error)

	// Status pings each configured backend and reports per-component
	// reachability. Unconfigured components report as unavailable.
	Status(ctx context.Context) []domain.ComponentStatus
}
