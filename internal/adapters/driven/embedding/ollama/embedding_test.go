package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeEmbedding derives a deterministic 3-dimensional vector from text.
func fakeEmbedding(text string) []float64 {
	return []float64{float64(len(text)), float64(strings.Count(text, "a")), 1}
}

func newTestServer(t *testing.T, requests *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/embed":
			atomic.AddInt32(requests, 1)
			var req embedRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "all-minilm", req.Model)

			resp := embedResponse{}
			for _, in := range req.Input {
				resp.Embeddings = append(resp.Embeddings, fakeEmbedding(in))
			}
			_ = json.NewEncoder(w).Encode(resp)
		case "/api/tags":
			_, _ = w.Write([]byte(`{"models":[]}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestNewEmbeddingService_Defaults(t *testing.T) {
	s := NewEmbeddingService(Config{})

	assert.Equal(t, DefaultBaseURL, s.baseURL)
	assert.Equal(t, DefaultModel, s.ModelName())
	assert.Equal(t, DefaultDimensions, s.Dimensions())
	assert.Equal(t, DefaultBatchSize, s.batchSize)
	assert.Equal(t, DefaultTimeout, s.client.Timeout)
}

func TestEmbeddingService_Embed(t *testing.T) {
	var requests int32
	srv := newTestServer(t, &requests)
	defer srv.Close()

	s := NewEmbeddingService(Config{BaseURL: srv.URL, Dimensions: 3})

	vec, err := s.Embed(context.Background(), "banana")
	require.NoError(t, err)
	assert.Equal(t, []float32{6, 3, 1}, vec)
}

func TestEmbeddingService_EmbedBatch_PreservesOrder(t *testing.T) {
	var requests int32
	srv := newTestServer(t, &requests)
	defer srv.Close()

	s := NewEmbeddingService(Config{BaseURL: srv.URL, Dimensions: 3, BatchSize: 2})
	texts := []string{"a", "bb", "aaa", "dddd", "aaaaa"}

	batch, err := s.EmbedBatch(context.Background(), texts)
	require.NoError(t, err)
	require.Len(t, batch, len(texts))
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests), "5 texts in batches of 2")

	for i, text := range texts {
		one, err := s.Embed(context.Background(), text)
		require.NoError(t, err)
		assert.Equal(t, one, batch[i], "batch[%d] should equal Embed(%q)", i, text)
	}
}

func TestEmbeddingService_EmbedBatch_Empty(t *testing.T) {
	s := NewEmbeddingService(Config{BaseURL: "http://127.0.0.1:0"})

	batch, err := s.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, batch)
}

func TestEmbeddingService_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr string
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, "model not loaded", http.StatusInternalServerError)
			},
			wantErr: "ollama error (status 500)",
		},
		{
			name: "bad json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte("{"))
			},
			wantErr: "decode response",
		},
		{
			name: "error field",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"error":"out of memory"}`))
			},
			wantErr: "out of memory",
		},
		{
			name: "count mismatch",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"embeddings":[]}`))
			},
			wantErr: "returned 0 embeddings for 1 texts",
		},
		{
			name: "dimension mismatch",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"embeddings":[[1,2]]}`))
			},
			wantErr: "has 2 dimensions, expected 3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()

			s := NewEmbeddingService(Config{BaseURL: srv.URL, Dimensions: 3})
			_, err := s.Embed(context.Background(), "x")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEmbeddingService_Ping(t *testing.T) {
	var requests int32
	srv := newTestServer(t, &requests)
	defer srv.Close()

	s := NewEmbeddingService(Config{BaseURL: srv.URL})
	require.NoError(t, s.Ping(context.Background()))
	require.NoError(t, s.Close())
}

func TestEmbeddingService_Ping_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := NewEmbeddingService(Config{BaseURL: url})
	err := s.Ping(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ollama: ping failed")
}
