// Package relay provides a vector search backend backed by the beacon
// relay's semantic search HTTP API.
package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
	"github.com/beacon-labs/beacon-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.VectorSearchBackend = (*Client)(nil)

// Default configuration values.
const (
	DefaultBaseURL = "http://localhost:8030"
	DefaultTimeout = 30 * time.Second

	// defaultContentType is assumed when the relay omits the field, so
	// diversity scoring always has a bucket to count.
	defaultContentType = "code"
)

// Config holds configuration for the relay vector backend.
type Config struct {
	// BaseURL is the relay API base URL (default: http://localhost:8030).
	BaseURL string

	// Timeout is the request timeout (default: 30s).
	Timeout time.Duration
}

// Client queries the relay's embedding-backed collection over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
}

// searchRequest is the relay /api/v1/search request format.
type searchRequest struct {
	Query string          `json:"query"`
	Limit int             `json:"limit"`
	Where json.RawMessage `json:"where,omitempty"`
}

// searchResponse is the relay /api/v1/search response format.
type searchResponse struct {
	Results []searchHit `json:"results"`
}

// searchHit is one semantic match in the relay response.
type searchHit struct {
	ID          string  `json:"id"`
	EntityID    string  `json:"entity_id"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Path        string  `json:"path"`
	ContentType string  `json:"content_type"`
	Score       float64 `json:"score"`
}

// NewClient creates a relay vector search backend.
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

// Search runs a semantic similarity query against the relay collection.
// The similarity threshold is applied client-side: the relay always
// returns its top hits and the caller decides what is relevant enough.
func (c *Client) Search(ctx context.Context, q driven.VectorQuery) ([]domain.Candidate, error) {
	where, err := renderFilters(q.Filters)
	if err != nil {
		return nil, fmt.Errorf("render filters: %w", err)
	}

	reqBody := searchRequest{
		Query: q.Text,
		Limit: q.Limit,
		Where: where,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/api/v1/search",
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

	var searchResp searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	candidates := make([]domain.Candidate, 0, len(searchResp.Results))
	for _, hit := range searchResp.Results {
		if hit.Score < q.Threshold {
			continue
		}

		contentType := hit.ContentType
		if contentType == "" {
			contentType = defaultContentType
		}

		candidates = append(candidates, domain.Candidate{
			ID:            hit.ID,
			EntityID:      hit.EntityID,
			Title:         hit.Title,
			Content:       hit.Content,
			Path:          hit.Path,
			ContentType:   contentType,
			Source:        domain.SourceVector,
			SemanticScore: hit.Score,
		})
	}

	return candidates, nil
}

// renderFilters converts equality filters into the relay's where-clause
// format: {"$and": [{"key": {"$eq": "value"}}, ...]}. Keys are sorted
// so identical filter sets serialise identically.
func renderFilters(filters map[string]string) (json.RawMessage, error) {
	if len(filters) == 0 {
		return nil, nil
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	clauses := make([]map[string]map[string]string, 0, len(keys))
	for _, k := range keys {
		clauses = append(clauses, map[string]map[string]string{
			k: {"$eq": filters[k]},
		})
	}

	// A single condition doesn't need the $and wrapper.
	var where any = map[string]any{"$and": clauses}
	if len(clauses) == 1 {
		where = clauses[0]
	}

	raw, err := json.Marshal(where)
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// Ping validates the relay is reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/heartbeat", http.NoBody)
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
