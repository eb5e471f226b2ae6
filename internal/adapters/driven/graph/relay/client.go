// Package relay provides a graph search backend backed by the beacon
// relay's knowledge graph HTTP API.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
	"github.com/beacon-labs/beacon-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.GraphSearchBackend = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8040"
	DefaultTimeout = 30 * time.Second

	// neutralCentrality stands in when the relay reports no centrality
	// for an entity, so unscored nodes rank mid-field instead of last.
	neutralCentrality = 0.5

	// defaultEdgeWeight stands in for untyped relationships.
	defaultEdgeWeight = 0.3
)

// Config holds configuration for the relay graph backend.
type Config struct {
	// BaseURL is the relay API base URL (default: http://localhost:8040).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Client queries the relay's entity graph over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
}

// entitySearchRequest is the relay /api/search request format.
type entitySearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit"`
}

// entitySearchResponse is the relay /api/search response format.
type entitySearchResponse struct {
	Entities []graphEntity `json:"entities"`
}

// graphEntity is one graph node in a relay response. Centrality is a
// pointer: the relay omits it for entities outside the scored core.
type graphEntity struct {
	ID          string   `json:"id"`
	EntityID    string   `json:"entity_id"`
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Path        string   `json:"path"`
	ContentType string   `json:"content_type"`
	Centrality  *float64 `json:"centrality"`
	Depth       int      `json:"depth"`
	RelatedIDs  []string `json:"related_ids"`
}

// neighboursResponse is the relay neighbours endpoint response format.
type neighboursResponse struct {
	Neighbours []graphNeighbour `json:"neighbors"`
}

// graphNeighbour is one traversal hit. Weight is the relationship
// strength of the connecting edge.
type graphNeighbour struct {
	graphEntity
	Weight *float64 `json:"weight"`
}

// NewClient creates a relay graph search backend.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	return &Client{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
	}
}

// Search finds entities whose names or descriptions match the query
// terms. The graph score is the entity's centrality in the graph.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	reqBody := entitySearchRequest{
		Query: query,
		Limit: limit,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/search",
		bytes.NewReader(jsonBody),
	)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("relay error (status %d): failed to read response", resp.StatusCode)
		}
		return nil, fmt.Errorf("relay error (status %d): %s", resp.StatusCode, string(body))
	}

	var searchResp entitySearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(searchResp.Entities))
	for _, e := range searchResp.Entities {
		candidates = append(candidates, entityToCandidate(e, centralityOr(e.Centrality, neutralCentrality)))
	}
	return candidates, nil
}

// Traverse returns entities reachable from the seed within the given
// number of hops. The graph score of a neighbour is its connecting edge
// weight. Result count is capped so a hub node cannot flood the caller.
func (c *Client) Traverse(ctx context.Context, entityID string, depth int) ([]domain.Candidate, error) {
	endpoint := fmt.Sprintf("%s/api/graph/entities/%s/neighbors?depth=%s",
		c.baseURL, url.PathEscape(entityID), strconv.Itoa(depth))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("relay error (status %d): failed to read response", resp.StatusCode)
		}
		return nil, fmt.Errorf("relay error (status %d): %s", resp.StatusCode, string(body))
	}

	var neighResp neighboursResponse
	if err := json.NewDecoder(resp.Body).Decode(&neighResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	neighbours := neighResp.Neighbours
	if len(neighbours) > driven.MaxTraversalResults {
		neighbours = neighbours[:driven.MaxTraversalResults]
	}

	candidates := make([]domain.Candidate, 0, len(neighbours))
	for _, n := range neighbours {
		candidates = append(candidates, entityToCandidate(n.graphEntity, centralityOr(n.Weight, defaultEdgeWeight)))
	}
	return candidates, nil
}

// entityToCandidate maps a relay graph node onto the shared candidate
// shape.
func entityToCandidate(e graphEntity, graphScore float64) domain.Candidate {
	depth := e.Depth
	if depth <= 0 {
		depth = 1
	}

	entityID := e.EntityID
	if entityID == "" {
		entityID = e.ID
	}

	return domain.Candidate{
		ID:                e.ID,
		EntityID:          entityID,
		Title:             e.Title,
		Content:           e.Content,
		Path:              e.Path,
		ContentType:       e.ContentType,
		Source:            domain.SourceGraph,
		GraphScore:        graphScore,
		RelationshipDepth: depth,
		RelatedIDs:        e.RelatedIDs,
	}
}

// centralityOr unwraps an optional score, falling back when absent.
func centralityOr(v *float64, fallback float64) float64 {
	if v == nil {
		return fallback
	}
	return *v
}

// Ping validates the relay is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/health", http.NoBody)
	if err != nil {
		return fmt.Errorf("relay: failed to create ping request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("relay: ping failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("relay: API returned status %d", resp.StatusCode)
	}
	return nil
}

// Close releases resources.
func (c *Client) Close() error {
	// HTTP client doesn't need explicit cleanup
	return nil
}
