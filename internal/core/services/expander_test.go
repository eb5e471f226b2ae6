package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpander_Success(t *testing.T) {
	llm := &mockLLM{
		response: `{
			"semantic_terms": ["token", "bearer"],
			"technical_concepts": ["oauth2"],
			"potential_names": ["jwt_validator"]
		}`,
	}
	e := NewQueryExpander(llm)

	expanded := e.Expand(context.Background(), "jwt auth")

	assert.Equal(t, "jwt auth", expanded.Original)
	assert.Equal(t, []string{"token", "bearer"}, expanded.SemanticTerms)
	assert.Equal(t, []string{"oauth2"}, expanded.TechnicalConcepts)
	assert.Equal(t, []string{"jwt_validator"}, expanded.PotentialNames)
	// Potential names stay out of the combined query.
	assert.Equal(t, "jwt auth token bearer oauth2", expanded.Combined)
}

func TestExpander_JSONWrappedInProse(t *testing.T) {
	llm := &mockLLM{
		response: "Sure! Here is the expansion:\n```json\n" +
			`{"semantic_terms": ["session"], "technical_concepts": [], "potential_names": []}` +
			"\n```\nLet me know if you need more.",
	}
	e := NewQueryExpander(llm)

	expanded := e.Expand(context.Background(), "login")

	assert.Equal(t, []string{"session"}, expanded.SemanticTerms)
	assert.Equal(t, "login session", expanded.Combined)
}

func TestExpander_ModelError_FailsOpen(t *testing.T) {
	llm := &mockLLM{generateErr: errors.New("connection refused")}
	e := NewQueryExpander(llm)

	expanded := e.Expand(context.Background(), "jwt auth")

	assert.Equal(t, "jwt auth", expanded.Combined)
	assert.Empty(t, expanded.SemanticTerms)
}

func TestExpander_MalformedOutput_FailsOpen(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{name: "no json at all", response: "I cannot help with that."},
		{name: "truncated object", response: `{"semantic_terms": ["a"`},
		{name: "wrong types", response: `{"semantic_terms": "not-a-list"}`},
		{name: "empty response", response: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewQueryExpander(&mockLLM{response: tt.response})

			expanded := e.Expand(context.Background(), "jwt auth")

			assert.Equal(t, "jwt auth", expanded.Original)
			assert.Equal(t, "jwt auth", expanded.Combined)
			assert.Empty(t, expanded.SemanticTerms)
			assert.Empty(t, expanded.TechnicalConcepts)
		})
	}
}

func TestExpander_NilService_Identity(t *testing.T) {
	e := NewQueryExpander(nil)

	expanded := e.Expand(context.Background(), "jwt auth")

	assert.Equal(t, "jwt auth", expanded.Combined)
}

func TestExpander_Throttled_Identity(t *testing.T) {
	llm := &mockLLM{response: `{"semantic_terms": ["a"]}`}
	// Burst of one: the second call inside the same instant is throttled.
	e := NewQueryExpander(llm, WithExpansionRate(0.001))

	first := e.Expand(context.Background(), "query one")
	second := e.Expand(context.Background(), "query two")

	require.Equal(t, 1, llm.calls)
	assert.Equal(t, "query one a", first.Combined)
	assert.Equal(t, "query two", second.Combined)
}

func TestExpander_PromptContainsQuery(t *testing.T) {
	llm := &mockLLM{response: `{}`}
	e := NewQueryExpander(llm)

	e.Expand(context.Background(), "how does caching work")

	assert.Contains(t, llm.lastPrompt, `"how does caching work"`)
}

func TestParseExpansion_MissingFields(t *testing.T) {
	payload, ok := parseExpansion(`{"semantic_terms": ["x"]}`)

	require.True(t, ok)
	assert.Equal(t, []string{"x"}, payload.SemanticTerms)
	assert.Empty(t, payload.TechnicalConcepts)
	assert.Empty(t, payload.PotentialNames)
}
