package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/ratelimit"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(LLMConfig{})
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
}

func TestLLMService_Generate(t *testing.T) {
	var got chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"TITLE: Plants"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	s, err := NewLLMService(LLMConfig{APIKey: "sk-test", BaseURL: srv.URL, RateLimit: &ratelimit.Config{}})
	require.NoError(t, err)

	out, err := s.Generate(context.Background(), "user prompt", driven.GenerateOptions{
		System:    "system prompt",
		MaxTokens: 500,
		TopP:      0.8,
	}.WithTemperature(0.2))
	require.NoError(t, err)

	assert.Equal(t, "TITLE: Plants", out)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, chatCompletionMsg{Role: "system", Content: "system prompt"}, got.Messages[0])
	assert.Equal(t, chatCompletionMsg{Role: "user", Content: "user prompt"}, got.Messages[1])
	assert.Equal(t, 500, got.MaxTokens)
	require.NotNil(t, got.Temperature)
	assert.InDelta(t, 0.2, *got.Temperature, 1e-9)
	assert.InDelta(t, 0.8, got.TopP, 1e-9)
}

func TestLLMService_Generate_NoSystem(t *testing.T) {
	var got chatCompletionRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"x"}}]}`))
	}))
	defer srv.Close()

	s, err := NewLLMService(LLMConfig{APIKey: "k", BaseURL: srv.URL, RateLimit: &ratelimit.Config{}})
	require.NoError(t, err)

	_, err = s.Generate(context.Background(), "only user", driven.GenerateOptions{})
	require.NoError(t, err)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
}

func TestLLMService_Generate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "api error", status: http.StatusBadRequest, body: `{"error":{"message":"bad model"}}`, wantErr: "openai error: bad model"},
		{name: "no choices", status: http.StatusOK, body: `{"choices":[]}`, wantErr: "no response choices"},
		{name: "gateway", status: http.StatusBadGateway, body: `upstream`, wantErr: "status 502"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			s, err := NewLLMService(LLMConfig{APIKey: "k", BaseURL: srv.URL, RateLimit: &ratelimit.Config{}})
			require.NoError(t, err)
			_, err = s.Generate(context.Background(), "p", driven.GenerateOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLLMService_Generate_CancelledWhileRateLimited(t *testing.T) {
	s, err := NewLLMService(LLMConfig{APIKey: "k", BaseURL: "http://127.0.0.1:0"})
	require.NoError(t, err)
	s.limiter.Backoff(0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = s.Generate(ctx, "p", driven.GenerateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
}
