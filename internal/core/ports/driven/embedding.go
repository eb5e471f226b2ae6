package driven

import "context"

// EmbeddingService generates vector embeddings from text.
// Required only by backend topologies that cannot embed server-side
// (the unified Neo4j store); the federated vector service embeds
// queries itself.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the embedding vector size (e.g., 384, 768).
	Dimensions() int

	// ModelName returns the name of the embedding model being used.
	ModelName() string

	// Ping validates the service is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
