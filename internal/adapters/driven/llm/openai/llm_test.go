package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beacon-labs/beacon-cli/internal/core/ports/driven"
)

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key is required")
}

func TestGenerate_SingleTurnConversation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req chatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "gpt-4o-mini", req.Model)
		require.Len(t, req.Messages, 1)
		assert.Equal(t, "user", req.Messages[0].Role)
		assert.Equal(t, "expand: jwt auth", req.Messages[0].Content)
		assert.Equal(t, 256, req.MaxTokens)

		w.Write([]byte(`{"choices": [{"message": {"content": "{\"semantic_terms\": []}"}, "finish_reason": "stop"}]}`))
	}))
	defer server.Close()

	s, err := NewLLMService(LLMConfig{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	out, err := s.Generate(context.Background(), "expand: jwt auth", driven.GenerateOptions{MaxTokens: 256})

	require.NoError(t, err)
	assert.Equal(t, `{"semantic_terms": []}`, out)
}

func TestGenerate_APIErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices": [], "error": {"message": "rate limit exceeded", "type": "rate_limit_error"}}`))
	}))
	defer server.Close()

	s, err := NewLLMService(LLMConfig{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = s.Generate(context.Background(), "p", driven.GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit exceeded")
	assert.Contains(t, err.Error(), "rate_limit_error")
}

func TestGenerate_NoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	}))
	defer server.Close()

	s, err := NewLLMService(LLMConfig{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = s.Generate(context.Background(), "p", driven.GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")
}

func TestGenerate_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error": {"message": "invalid api key"}}`))
	}))
	defer server.Close()

	s, err := NewLLMService(LLMConfig{APIKey: "sk-bad", BaseURL: server.URL})
	require.NoError(t, err)

	_, err = s.Generate(context.Background(), "p", driven.GenerateOptions{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "openai error (status 401)")
}

func TestPing_SendsAuthHeader(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/models", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		w.Write([]byte(`{"data": []}`))
	}))
	defer server.Close()

	s, err := NewLLMService(LLMConfig{APIKey: "sk-test", BaseURL: server.URL})
	require.NoError(t, err)

	assert.NoError(t, s.Ping(context.Background()))
}

func TestNewLLMService_Defaults(t *testing.T) {
	s, err := NewLLMService(LLMConfig{APIKey: "sk-test"})

	require.NoError(t, err)
	assert.Equal(t, DefaultLLMModel, s.ModelName())
	assert.Equal(t, DefaultBaseURL, s.baseURL)
	assert.NoError(t, s.Close())
}
