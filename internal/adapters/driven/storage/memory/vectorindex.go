package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/vector/rank"
	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

// Ensure VectorIndex implements the interface.
var _ driven.VectorIndex = (*VectorIndex)(nil)

// VectorIndex is an in-memory implementation of driven.VectorIndex.
// Search is a brute-force cosine scan.
type VectorIndex struct {
	mu         sync.RWMutex
	collection string
	dimensions int
	chunks     map[string]domain.DocumentChunk
}

// NewVectorIndex creates an empty in-memory index. A dimensions value of 0
// accepts embeddings of any size.
func NewVectorIndex(collection string, dimensions int) *VectorIndex {
	return &VectorIndex{
		collection: collection,
		dimensions: dimensions,
		chunks:     make(map[string]domain.DocumentChunk),
	}
}

// Upsert stores chunks. Nothing is written if any chunk is invalid.
func (v *VectorIndex) Upsert(_ context.Context, chunks []domain.DocumentChunk) error {
	for i := range chunks {
		if err := chunks[i].Validate(v.dimensions); err != nil {
			return err
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	for _, chunk := range chunks {
		embedding := make([]float32, len(chunk.Embedding))
		copy(embedding, chunk.Embedding)
		chunk.Embedding = embedding
		v.chunks[chunk.Key()] = chunk
	}
	return nil
}

// Search returns the k chunks most similar to query, best first.
func (v *VectorIndex) Search(_ context.Context, query []float32, k int) ([]domain.RetrievalResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidInput, k)
	}
	if err := domain.ValidateQuery(query, v.dimensions); err != nil {
		return nil, err
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	top := rank.NewTopK[domain.RetrievalResult](k)
	for key, chunk := range v.chunks {
		if err := domain.CheckStoredVector(key, chunk.Embedding, query); err != nil {
			return nil, err
		}
		score := rank.Cosine(query, chunk.Embedding)
		top.Push(key, score, domain.RetrievalResult{Text: chunk.Text, Score: score, Metadata: chunk.Metadata})
	}

	hits := top.Results()
	results := make([]domain.RetrievalResult, len(hits))
	for i, h := range hits {
		results[i] = h.Item
	}
	return results, nil
}

// Stats reports the collection size.
func (v *VectorIndex) Stats(_ context.Context) (domain.IndexStats, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return domain.IndexStats{
		CollectionName:  v.collection,
		DocumentCount:   len(v.chunks),
		PersistLocation: ":memory:",
	}, nil
}

// Drop removes every stored vector.
func (v *VectorIndex) Drop(_ context.Context) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.chunks = make(map[string]domain.DocumentChunk)
	return nil
}

// Close is a no-op.
func (v *VectorIndex) Close() error {
	return nil
}
