package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

var errBoom = errors.New("boom")

// mockExtractor returns fixed text or an error.
type mockExtractor struct {
	text  string
	err   error
	calls int
}

func (m *mockExtractor) Extract(_ context.Context, _ []byte) (string, error) {
	m.calls++
	return m.text, m.err
}

func (m *mockExtractor) Name() string { return "mock" }

// embedVocabulary maps each known keyword to one vector dimension.
var embedVocabulary = []string{"fractions", "group", "phonics", "reading", "games", "classroom", "routines", "signals"}

// mockEmbedder counts vocabulary words, one dimension per word.
type mockEmbedder struct {
	dims       int
	embedErr   error
	batchErr   error
	pingErr    error
	shortBatch bool
	batches    [][]string
}

func newMockEmbedder() *mockEmbedder {
	return &mockEmbedder{dims: len(embedVocabulary)}
}

func (m *mockEmbedder) vector(text string) []float32 {
	v := make([]float32, m.dims)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		for i, kw := range embedVocabulary {
			if strings.Trim(word, ".,;:!?") == kw {
				v[i]++
			}
		}
	}
	return v
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	return m.vector(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.batches = append(m.batches, texts)
	if m.batchErr != nil {
		return nil, m.batchErr
	}
	out := make([][]float32, 0, len(texts))
	for _, t := range texts {
		out = append(out, m.vector(t))
	}
	if m.shortBatch && len(out) > 0 {
		out = out[:len(out)-1]
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int { return m.dims }
func (m *mockEmbedder) ModelName() string { return "mock-embed" }
func (m *mockEmbedder) Ping(_ context.Context) error { return m.pingErr }
func (m *mockEmbedder) Close() error { return nil }

// mockLLM returns a canned response and records the last call.
type mockLLM struct {
	response string
	err      error
	pingErr  error
	prompt   string
	opts     driven.GenerateOptions
	calls    int
}

func (m *mockLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.calls++
	m.prompt = prompt
	m.opts = opts
	return m.response, m.err
}

func (m *mockLLM) ModelName() string { return "mock-llm" }
func (m *mockLLM) Ping(_ context.Context) error { return m.pingErr }
func (m *mockLLM) Close() error { return nil }

// mockTranslator prefixes text with the target language.
type mockTranslator struct {
	mu      sync.Mutex
	err     error
	pingErr error
	calls   []string
}

func (m *mockTranslator) Translate(_ context.Context, text, _, tgtLang string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, text)
	if m.err != nil {
		return "", m.err
	}
	return "[" + tgtLang + "] " + text, nil
}

func (m *mockTranslator) Ping(_ context.Context) error { return m.pingErr }
func (m *mockTranslator) Close() error { return nil }

// failingIndex wraps an index and fails selected operations.
type failingIndex struct {
	driven.VectorIndex
	upsertErr error
	searchErr error
	statsErr  error
}

func (f *failingIndex) Upsert(ctx context.Context, chunks []domain.DocumentChunk) error {
	if f.upsertErr != nil {
		return f.upsertErr
	}
	return f.VectorIndex.Upsert(ctx, chunks)
}

func (f *failingIndex) Search(ctx context.Context, q []float32, k int) ([]domain.RetrievalResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.VectorIndex.Search(ctx, q, k)
}

func (f *failingIndex) Stats(ctx context.Context) (domain.IndexStats, error) {
	if f.statsErr != nil {
		return domain.IndexStats{}, f.statsErr
	}
	return f.VectorIndex.Stats(ctx)
}
