package services

import (
	"context"
	"time"

	"github.com/beacon-labs/beacon-cli/internal/core/domain"
	"github.com/beacon-labs/beacon-cli/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockVectorBackend implements driven.VectorSearchBackend for testing.
type mockVectorBackend struct {
	results   []domain.Candidate
	searchErr error
	pingErr   error
	lastQuery driven.VectorQuery
	calls     int
}

func (m *mockVectorBackend) Search(_ context.Context, q driven.VectorQuery) ([]domain.Candidate, error) {
	m.calls++
	m.lastQuery = q
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if q.Limit < len(m.results) {
		return m.results[:q.Limit], nil
	}
	return m.results, nil
}

func (m *mockVectorBackend) Ping(_ context.Context) error { return m.pingErr }
func (m *mockVectorBackend) Close() error                 { return nil }

// mockGraphBackend implements driven.GraphSearchBackend for testing.
type mockGraphBackend struct {
	results     []domain.Candidate
	neighbours  map[string][]domain.Candidate
	searchErr   error
	pingErr     error
	traverseErr map[string]error
	searchCalls int
	traversals  []string
}

func (m *mockGraphBackend) Search(_ context.Context, _ string, limit int) ([]domain.Candidate, error) {
	m.searchCalls++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	if limit < len(m.results) {
		return m.results[:limit], nil
	}
	return m.results, nil
}

func (m *mockGraphBackend) Traverse(_ context.Context, entityID string, _ int) ([]domain.Candidate, error) {
	m.traversals = append(m.traversals, entityID)
	if err := m.traverseErr[entityID]; err != nil {
		return nil, err
	}
	return m.neighbours[entityID], nil
}

func (m *mockGraphBackend) Ping(_ context.Context) error { return m.pingErr }
func (m *mockGraphBackend) Close() error                 { return nil }

// mockLLM implements driven.LLMService for testing.
type mockLLM struct {
	response    string
	generateErr error
	pingErr     error
	lastPrompt  string
	calls       int
}

func (m *mockLLM) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.calls++
	m.lastPrompt = prompt
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.response, nil
}

func (m *mockLLM) ModelName() string            { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return m.pingErr }
func (m *mockLLM) Close() error                 { return nil }

// mockFreshness implements driven.FreshnessStore for testing.
type mockFreshness struct {
	timestamps map[string]time.Time
	lookupErr  error
}

func (m *mockFreshness) Touch(_ context.Context, id string, modifiedAt time.Time) error {
	if m.timestamps == nil {
		m.timestamps = make(map[string]time.Time)
	}
	m.timestamps[id] = modifiedAt
	return nil
}

func (m *mockFreshness) ModifiedAt(_ context.Context, id string) (time.Time, bool, error) {
	if m.lookupErr != nil {
		return time.Time{}, false, m.lookupErr
	}
	ts, ok := m.timestamps[id]
	return ts, ok, nil
}

func (m *mockFreshness) Close() error { return nil }

// Interface conformance checks.
var (
	_ driven.VectorSearchBackend = (*mockVectorBackend)(nil)
	_ driven.GraphSearchBackend  = (*mockGraphBackend)(nil)
	_ driven.LLMService          = (*mockLLM)(nil)
	_ driven.FreshnessStore      = (*mockFreshness)(nil)
)
