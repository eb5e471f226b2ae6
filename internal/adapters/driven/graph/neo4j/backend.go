// Package neo4j provides a unified retrieval backend on a single Neo4j
// store: content nodes carry embeddings in a vector index and sit
// inside the entity relationship graph, so both retrieval modalities
// run against the same database.
package neo4j

import (
	"context"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
	"github.com/beacon-labs/beacon-cli/internal/core/ports/driven"
)

// Default configuration values.
const (
	DefaultURI      = "neo4j://localhost:7687"
	DefaultDatabase = "neo4j"
	DefaultIndex    = "content_embeddings"
	DefaultTimeout  = 30 * time.Second
)

// Config holds configuration for the Neo4j backend.
type Config struct {
	// URI is the Neo4j connection URI (default: neo4j://localhost:7687).
	URI string

	// Username and Password authenticate against the database.
	Username string
	Password string

	// Database is the target database name (default: neo4j).
	Database string

	// VectorIndex is the name of the vector index over content
	// embeddings (default: content_embeddings).
	VectorIndex string
}

// Backend runs both similarity and graph queries against one Neo4j
// database. The embedder turns query text into a vector at search time;
// index population happens out of band.
type Backend struct {
	driver   neo4j.DriverWithContext
	database string
	index    string
	embedder driven.EmbeddingService
}

// NewBackend connects to Neo4j and wraps it as a retrieval backend.
func NewBackend(cfg Config, embedder driven.EmbeddingService) (*Backend, error) {
	if cfg.URI == "" {
		cfg.URI = DefaultURI
	}
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.VectorIndex == "" {
		cfg.VectorIndex = DefaultIndex
	}

	driver, err := neo4j.NewDriverWithContext(cfg.URI, neo4j.BasicAuth(cfg.Username, cfg.Password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}

	return &Backend{
		driver:   driver,
		database: cfg.Database,
		index:    cfg.VectorIndex,
		embedder: embedder,
	}, nil
}

// run executes one Cypher query and buffers the full result.
func (b *Backend) run(ctx context.Context, query string, params map[string]any) (*neo4j.EagerResult, error) {
	result, err := neo4j.ExecuteQuery(
		ctx,
		b.driver,
		query,
		params,
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(b.database),
	)
	if err != nil {
		return nil, fmt.Errorf("execute neo4j query: %w", err)
	}
	return result, nil
}

const similarityQuery = `
CALL db.index.vector.queryNodes($index, $k, $embedding)
YIELD node, score
RETURN node.id AS id,
       node.entity_id AS entity_id,
       node.title AS title,
       node.content AS content,
       node.path AS path,
       node.content_type AS content_type,
       score
ORDER BY score DESC`

// SimilaritySearch embeds the query text and runs it through the vector
// index. The threshold is applied after the index call since
// queryNodes has no score cutoff parameter.
func (b *Backend) SimilaritySearch(ctx context.Context, q driven.VectorQuery) ([]domain.Candidate, error) {
	embedding := q.Vector
	if embedding == nil {
		if b.embedder == nil {
			return nil, fmt.Errorf("neo4j: no query vector and no embedder configured")
		}
		var err error
		embedding, err = b.embedder.Embed(ctx, q.Text)
		if err != nil {
			return nil, fmt.Errorf("embed query: %w", err)
		}
	}

	result, err := b.run(ctx, similarityQuery, map[string]any{
		"index":     b.index,
		"k":         q.Limit,
		"embedding": embedding,
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(result.Records))
	for _, record := range result.Records {
		score := floatValue(record, "score")
		if score < q.Threshold {
			continue
		}

		candidates = append(candidates, domain.Candidate{
			ID:            stringValue(record, "id"),
			EntityID:      stringValue(record, "entity_id"),
			Title:         stringValue(record, "title"),
			Content:       stringValue(record, "content"),
			Path:          stringValue(record, "path"),
			ContentType:   stringValue(record, "content_type"),
			Source:        domain.SourceVector,
			SemanticScore: score,
		})
	}
	return candidates, nil
}

const entitySearchQuery = `
MATCH (n:Entity)
WHERE toLower(n.title) CONTAINS toLower($term)
   OR toLower(n.content) CONTAINS toLower($term)
RETURN n.id AS id,
       n.entity_id AS entity_id,
       n.title AS title,
       n.content AS content,
       n.path AS path,
       n.content_type AS content_type,
       coalesce(n.centrality, 0.5) AS centrality
ORDER BY centrality DESC
LIMIT $limit`

// EntitySearch matches entities by name or content and scores them by
// stored centrality.
func (b *Backend) EntitySearch(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	result, err := b.run(ctx, entitySearchQuery, map[string]any{
		"term":  query,
		"limit": limit,
	})
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(result.Records))
	for _, record := range result.Records {
		candidates = append(candidates, domain.Candidate{
			ID:                stringValue(record, "id"),
			EntityID:          stringValue(record, "entity_id"),
			Title:             stringValue(record, "title"),
			Content:           stringValue(record, "content"),
			Path:              stringValue(record, "path"),
			ContentType:       stringValue(record, "content_type"),
			Source:            domain.SourceGraph,
			GraphScore:        floatValue(record, "centrality"),
			RelationshipDepth: 1,
		})
	}
	return candidates, nil
}

// Traverse walks outward from the seed entity up to depth hops. The
// hop bound is interpolated because Cypher does not allow parameters
// in variable-length patterns; depth is clamped upstream so the value
// is always a small positive integer.
func (b *Backend) Traverse(ctx context.Context, entityID string, depth int) ([]domain.Candidate, error) {
	depth = domain.ClampDepth(depth)

	traversalQuery := fmt.Sprintf(`
MATCH path = (seed:Entity {entity_id: $id})-[*1..%d]-(n:Entity)
WHERE n.entity_id <> $id
WITH n, min(length(path)) AS depth,
     max(coalesce(relationships(path)[0].weight, 0.3)) AS weight
RETURN n.id AS id,
       n.entity_id AS entity_id,
       n.title AS title,
       n.content AS content,
       n.path AS path,
       n.content_type AS content_type,
       depth, weight
ORDER BY depth ASC, weight DESC
LIMIT %d`, depth, driven.MaxTraversalResults)

	result, err := b.run(ctx, traversalQuery, map[string]any{"id": entityID})
	if err != nil {
		return nil, err
	}

	candidates := make([]domain.Candidate, 0, len(result.Records))
	for _, record := range result.Records {
		candidates = append(candidates, domain.Candidate{
			ID:                stringValue(record, "id"),
			EntityID:          stringValue(record, "entity_id"),
			Title:             stringValue(record, "title"),
			Content:           stringValue(record, "content"),
			Path:              stringValue(record, "path"),
			ContentType:       stringValue(record, "content_type"),
			Source:            domain.SourceGraph,
			GraphScore:        floatValue(record, "weight"),
			RelationshipDepth: intValue(record, "depth"),
		})
	}
	return candidates, nil
}

// Ping verifies connectivity to the database.
func (b *Backend) Ping(ctx context.Context) error {
	return b.driver.VerifyConnectivity(ctx)
}

// Close shuts down the underlying driver.
func (b *Backend) Close() error {
	return b.driver.Close(context.Background())
}

// Vector exposes the backend through the vector search port.
func (b *Backend) Vector() driven.VectorSearchBackend {
	return vectorView{b}
}

// Graph exposes the backend through the graph search port.
func (b *Backend) Graph() driven.GraphSearchBackend {
	return graphView{b}
}

// vectorView adapts the backend to the vector port; both ports declare
// a Search method with different signatures, so the backend cannot
// implement them on one receiver.
type vectorView struct {
	b *Backend
}

func (v vectorView) Search(ctx context.Context, q driven.VectorQuery) ([]domain.Candidate, error) {
	return v.b.SimilaritySearch(ctx, q)
}

func (v vectorView) Ping(ctx context.Context) error { return v.b.Ping(ctx) }

// Close is a no-op on the view: the Backend owns the driver and both
// views share it.
func (v vectorView) Close() error { return nil }

// graphView adapts the backend to the graph port.
type graphView struct {
	b *Backend
}

func (g graphView) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	return g.b.EntitySearch(ctx, query, limit)
}

func (g graphView) Traverse(ctx context.Context, entityID string, depth int) ([]domain.Candidate, error) {
	return g.b.Traverse(ctx, entityID, depth)
}

func (g graphView) Ping(ctx context.Context) error { return g.b.Ping(ctx) }

func (g graphView) Close() error { return nil }

// Interface conformance checks.
var (
	_ driven.VectorSearchBackend = (vectorView{})
	_ driven.GraphSearchBackend  = (graphView{})
)

// stringValue reads a string column from a record, tolerating nulls.
func stringValue(record *neo4j.Record, key string) string {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// floatValue reads a numeric column from a record, tolerating nulls
// and integer-typed values.
func floatValue(record *neo4j.Record, key string) float64 {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

// intValue reads an integer column from a record.
func intValue(record *neo4j.Record, key string) int {
	v, ok := record.Get(key)
	if !ok || v == nil {
		return 0
	}
	n, _ := v.(int64)
	return int(n)
}
