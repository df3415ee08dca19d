// Package bolt implements the vector index on a bbolt key/value file.
// Each collection is a bucket keyed by "{document_id}_{chunk_id}" holding a
// JSON record; search is a brute-force cosine scan.
package bolt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/vector/rank"
	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// FileName is the default file name inside the data directory.
const FileName = "vectors.bolt"

// openTimeout bounds waiting for another process holding the file lock.
const openTimeout = 5 * time.Second

// record is the stored value for one chunk.
type record struct {
	Text      string               `json:"text"`
	Metadata  domain.ChunkMetadata `json:"metadata"`
	Embedding []float32            `json:"embedding"`
}

// Index is a bbolt-backed vector index over one collection.
type Index struct {
	db         *bbolt.DB
	path       string
	bucket     []byte
	dimensions int
}

// Open opens (creating if needed) the bolt file at path.
func Open(path, collection string, dimensions int) (*Index, error) {
	if collection == "" {
		return nil, fmt.Errorf("%w: collection name is required", domain.ErrInvalidInput)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("create index directory: %w", err)
	}

	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: openTimeout})
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrVectorIndexUnavailable, path, err)
	}

	idx := &Index{db: db, path: path, bucket: []byte(collection), dimensions: dimensions}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(idx.bucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create bucket: %w", err)
	}

	return idx, nil
}

// Upsert writes all chunks in one transaction. Existing keys are overwritten.
func (i *Index) Upsert(ctx context.Context, chunks []domain.DocumentChunk) error {
	for n := range chunks {
		if err := chunks[n].Validate(i.dimensions); err != nil {
			return err
		}
	}

	return i.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(i.bucket)
		for _, c := range chunks {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := json.Marshal(record{Text: c.Text, Metadata: c.Metadata, Embedding: c.Embedding})
			if err != nil {
				return fmt.Errorf("marshal chunk %s: %w", c.Key(), err)
			}
			if err := b.Put([]byte(c.Key()), data); err != nil {
				return fmt.Errorf("put chunk %s: %w", c.Key(), err)
			}
		}
		return nil
	})
}

// Search returns the k chunks most similar to query, best first.
func (i *Index) Search(ctx context.Context, query []float32, k int) ([]domain.RetrievalResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidInput, k)
	}
	if err := domain.ValidateQuery(query, i.dimensions); err != nil {
		return nil, err
	}

	top := rank.NewTopK[domain.RetrievalResult](k)
	err := i.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket(i.bucket).ForEach(func(key, value []byte) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			var rec record
			if err := json.Unmarshal(value, &rec); err != nil {
				return fmt.Errorf("decode %s: %w", key, err)
			}
			if err := domain.CheckStoredVector(string(key), rec.Embedding, query); err != nil {
				return err
			}
			score := rank.Cosine(query, rec.Embedding)
			top.Push(string(key), score, domain.RetrievalResult{
				Text: rec.Text, Score: score, Metadata: rec.Metadata,
			})
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	hits := top.Results()
	results := make([]domain.RetrievalResult, len(hits))
	for n, h := range hits {
		results[n] = h.Item
	}
	return results, nil
}

// Stats reports the collection size and file location.
func (i *Index) Stats(_ context.Context) (domain.IndexStats, error) {
	stats := domain.IndexStats{CollectionName: string(i.bucket), PersistLocation: i.path}
	err := i.db.View(func(tx *bbolt.Tx) error {
		stats.DocumentCount = tx.Bucket(i.bucket).Stats().KeyN
		return nil
	})
	return stats, err
}

// Drop removes every vector in the collection.
func (i *Index) Drop(_ context.Context) error {
	return i.db.Update(func(tx *bbolt.Tx) error {
		if err := tx.DeleteBucket(i.bucket); err != nil && !errors.Is(err, bbolt.ErrBucketNotFound) {
			return fmt.Errorf("delete bucket: %w", err)
		}
		_, err := tx.CreateBucket(i.bucket)
		return err
	})
}

// Close releases the file lock.
func (i *Index) Close() error {
	return i.db.Close()
}
