package cli

import (
	"context"
	"errors"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	response *domain.RetrievalResponse
	expanded domain.ExpandedQuery
	related  []domain.Candidate
	statuses []domain.ComponentStatus
	err      error

	lastQuery string
	lastOpts  domain.QueryOptions
	lastDepth int
}

func (m *mockRetrievalService) Retrieve(
	_ context.Context,
	query string,
	opts domain.QueryOptions,
) (*domain.RetrievalResponse, error) {
	m.lastQuery = query
	m.lastOpts = opts
	if m.err != nil {
		return nil, m.err
	}
	if m.response != nil {
		return m.response, nil
	}
	return &domain.RetrievalResponse{Query: query}, nil
}

func (m *mockRetrievalService) Expand(_ context.Context, query string) (domain.ExpandedQuery, error) {
	m.lastQuery = query
	if m.err != nil {
		return domain.ExpandedQuery{}, m.err
	}
	if m.expanded.Original == "" {
		return domain.IdentityExpansion(query), nil
	}
	return m.expanded, nil
}

func (m *mockRetrievalService) Related(_ context.Context, entityID string, depth int) ([]domain.Candidate, error) {
	m.lastQuery = entityID
	m.lastDepth = depth
	return m.related, m.err
}

func (m *mockRetrievalService) Status(_ context.Context) []domain.ComponentStatus {
	return m.statuses
}

// setupTestServices installs a default mock service and returns a
// cleanup func restoring the previous state.
func setupTestServices() func() {
	return setupMockService(&mockRetrievalService{
		response: &domain.RetrievalResponse{
			Query:         "test query",
			TotalResults:  1,
			VectorMatches: 1,
			Results: []domain.Candidate{
				{ID: "doc-1", Title: "Test Document", ContentType: "doc",
					Source: domain.SourceVector, FinalScore: 0.95},
			},
			Bundle: domain.ContextBundle{
				Query:         "test query",
				Items:         []domain.ContextItem{{ID: "doc-1", Content: "content"}},
				TotalTokens:   2,
				ContextWindow: 8000,
			},
		},
	})
}

func setupMockService(mock *mockRetrievalService) func() {
	old := retrievalService
	retrievalService = mock
	return func() {
		retrievalService = old
	}
}

var errBackendDown = errors.New("backend down")
