package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors: backend outages are
// absorbed inside the engine and never surface as top-level errors.
var (
	// ErrInvalidInput indicates malformed or invalid caller input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptyQuery indicates a missing or blank query string.
	ErrEmptyQuery = errors.New("empty query")

	// ErrVectorBackendUnavailable indicates the vector backend is not
	// configured or not reachable. Retrieval degrades to graph-only
	// results; status checks report it.
	ErrVectorBackendUnavailable = errors.New("vector backend unavailable")

	// ErrGraphBackendUnavailable indicates the graph backend is not
	// configured or not reachable. Retrieval degrades to vector-only
	// results; direct traversal requests fail with it.
	ErrGraphBackendUnavailable = errors.New("graph backend unavailable")

	// ErrExpansionUnavailable indicates the expansion model is not
	// configured or not reachable. Queries are searched verbatim.
	ErrExpansionUnavailable = errors.New("query expansion unavailable")
)
