package mcp

import (
	"context"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
	"github.com/beacon-labs/beacon-cli/internal/core/ports/driving"
)

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	response *domain.RetrievalResponse
	expanded domain.ExpandedQuery
	related  []domain.Candidate
	err      error

	lastQuery    string
	lastOpts     domain.QueryOptions
	lastEntityID string
	lastDepth    int
}

var _ driving.RetrievalService = (*mockRetrievalService)(nil)

func (m *mockRetrievalService) Retrieve(
	_ context.Context,
	query string,
	opts domain.QueryOptions,
) (*domain.RetrievalResponse, error) {
	m.lastQuery = query
	m.lastOpts = opts
	return m.response, m.err
}

func (m *mockRetrievalService) Expand(_ context.Context, query string) (domain.ExpandedQuery, error) {
	m.lastQuery = query
	return m.expanded, m.err
}

func (m *mockRetrievalService) Related(_ context.Context, entityID string, depth int) ([]domain.Candidate, error) {
	m.lastEntityID = entityID
	m.lastDepth = depth
	return m.related, m.err
}

func (m *mockRetrievalService) Status(_ context.Context) []domain.ComponentStatus {
	return nil
}
