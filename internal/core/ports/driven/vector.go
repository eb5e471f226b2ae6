package driven

import (
	"context"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
)

// VectorQuery describes one vector-similarity search. Either Text or
// Vector is set; when only Text is given, embedding is deferred to the
// backend.
type VectorQuery struct {
	// Text is the query text. The backend embeds it when Vector is nil.
	Text string

	// Vector is a pre-computed query embedding.
	Vector []float32

	// Limit bounds the result count.
	Limit int

	// Threshold drops results whose similarity falls below it.
	Threshold float64

	// Filters is a conjunctive set of equality constraints
	// (e.g. workspace or tenant scoping) translated to the backend's
	// native filter expression.
	Filters map[string]string
}

// VectorSearchBackend performs similarity search against an external
// vector index. Results are ordered by descending similarity and only
// contain hits at or above the threshold.
//
// Backend handles are long-lived and shared read-only across queries.
type VectorSearchBackend interface {
	// Search returns scored candidate chunks for the query.
	Search(ctx context.Context, q VectorQuery) ([]domain.Candidate, error)

	// Ping validates the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
