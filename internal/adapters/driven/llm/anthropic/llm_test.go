package anthropic

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

func newService(t *testing.T, url string) *LLMService {
	t.Helper()
	s, err := NewLLMService(Config{APIKey: "ak-test", BaseURL: url, RateLimit: &ratelimit.Config{}})
	require.NoError(t, err)
	return s
}

func TestNewLLMService_RequiresAPIKey(t *testing.T) {
	_, err := NewLLMService(Config{})
	assert.ErrorIs(t, err, ErrAPIKeyRequired)
}

func TestLLMService_Generate(t *testing.T) {
	var got messagesRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "ak-test", r.Header.Get("x-api-key"))
		assert.Equal(t, anthropicVersion, r.Header.Get("anthropic-version"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"TITLE: "},{"type":"tool_use"},{"type":"text","text":"Water Cycle"}]}`))
	}))
	defer srv.Close()

	out, err := newService(t, srv.URL).Generate(context.Background(), "prompt", driven.GenerateOptions{
		System: "sys",
	}.WithTemperature(0.7))
	require.NoError(t, err)

	assert.Equal(t, "TITLE: Water Cycle", out)
	assert.Equal(t, "sys", got.System)
	assert.Equal(t, DefaultMaxTokens, got.MaxTokens)
	require.NotNil(t, got.Temperature)
	assert.InDelta(t, 0.7, *got.Temperature, 1e-9)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "prompt", got.Messages[0].Content)
}

func TestLLMService_Generate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "api error", status: http.StatusUnauthorized, body: `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`, wantErr: "invalid x-api-key"},
		{name: "empty content", status: http.StatusOK, body: `{"content":[]}`, wantErr: "no response content"},
		{name: "overloaded", status: 529, body: `overloaded`, wantErr: "status 529"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := newService(t, srv.URL).Generate(context.Background(), "p", driven.GenerateOptions{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLLMService_Ping(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/models", r.URL.Path)
		_, _ = w.Write([]byte(`{"data":[]}`))
	}))
	defer srv.Close()

	s := newService(t, srv.URL)
	assert.NoError(t, s.Ping(context.Background()))
	assert.Equal(t, DefaultModel, s.ModelName())
}
