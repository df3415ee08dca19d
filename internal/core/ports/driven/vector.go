package driven

import (
	"context"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

// VectorIndex persists chunk vectors with their text and metadata and
// searches them by cosine similarity. Implementations must be durable.
type VectorIndex interface {
	// Upsert stores chunks under their "{document_id}_{chunk_id}" keys.
	// Every chunk must carry an embedding. Existing keys are overwritten and
	// duplicate keys within one call are last-write-wins. Implementations
	// write the whole batch atomically.
	Upsert(ctx context.Context, chunks []domain.DocumentChunk) error

	// Search returns up to k results ordered by descending score, where
	// score = 1 - cosine distance. Fewer than k stored items returns all of them.
	Search(ctx context.Context, query []float32, k int) ([]domain.RetrievalResult, error)

	// Stats describes the collection.
	Stats(ctx context.Context) (domain.IndexStats, error)

	// Drop irreversibly removes every stored vector.
	Drop(ctx context.Context) error

	// Close releases resources.
	Close() error
}
