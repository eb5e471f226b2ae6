package driven

import (
	"context"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
)

// MaxTraversalResults caps the number of neighbours returned by one
// traversal, bounding blow-up on densely connected graphs.
const MaxTraversalResults = 50

// GraphSearchBackend queries an external relationship graph.
//
// Backend handles are long-lived and shared read-only across queries.
type GraphSearchBackend interface {
	// Search returns entity/content matches for the query using the
	// backend's own matching logic.
	Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error)

	// Traverse walks relationships from the seed entity up to depth
	// hops, returning neighbours annotated with the hop distance at
	// which they were found and an edge-derived score. Implementations
	// cap the result count at MaxTraversalResults.
	Traverse(ctx context.Context, entityID string, depth int) ([]domain.Candidate, error)

	// Ping validates the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
