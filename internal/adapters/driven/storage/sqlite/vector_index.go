package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/vector/rank"
	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

// vectorIndex implements driven.VectorIndex over the vector_chunks table.
// Search is a brute-force cosine scan of the collection.
type vectorIndex struct {
	store      *Store
	collection string
	dimensions int
}

var _ driven.VectorIndex = (*vectorIndex)(nil)

// Upsert writes all chunks in one transaction. Existing keys are overwritten.
func (v *vectorIndex) Upsert(ctx context.Context, chunks []domain.DocumentChunk) error {
	for i := range chunks {
		if err := chunks[i].Validate(v.dimensions); err != nil {
			return err
		}
	}

	return v.store.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO vector_chunks (collection, id, document_id, chunk_id, text, metadata, embedding)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(collection, id) DO UPDATE SET
				document_id = excluded.document_id,
				chunk_id = excluded.chunk_id,
				text = excluded.text,
				metadata = excluded.metadata,
				embedding = excluded.embedding
		`)
		if err != nil {
			return fmt.Errorf("preparing upsert: %w", err)
		}
		defer stmt.Close()

		for _, chunk := range chunks {
			metadataJSON, err := json.Marshal(chunk.Metadata)
			if err != nil {
				return fmt.Errorf("marshalling metadata: %w", err)
			}
			if _, err := stmt.ExecContext(ctx, v.collection, chunk.Key(),
				chunk.Metadata.DocumentID, chunk.Metadata.ChunkID, chunk.Text,
				string(metadataJSON), float32SliceToBytes(chunk.Embedding)); err != nil {
				return fmt.Errorf("upserting chunk %s: %w", chunk.Key(), err)
			}
		}
		return nil
	})
}

// Search returns the k chunks most similar to query, best first.
func (v *vectorIndex) Search(ctx context.Context, query []float32, k int) ([]domain.RetrievalResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidInput, k)
	}
	if err := domain.ValidateQuery(query, v.dimensions); err != nil {
		return nil, err
	}

	rows, err := v.store.db.QueryContext(ctx,
		"SELECT id, text, metadata, embedding FROM vector_chunks WHERE collection = ?",
		v.collection)
	if err != nil {
		return nil, fmt.Errorf("querying vectors: %w", err)
	}
	defer rows.Close()

	top := rank.NewTopK[domain.RetrievalResult](k)
	for rows.Next() {
		var id, text, metadataJSON string
		var blob []byte
		if err := rows.Scan(&id, &text, &metadataJSON, &blob); err != nil {
			return nil, fmt.Errorf("scanning vector: %w", err)
		}
		var metadata domain.ChunkMetadata
		if err := json.Unmarshal([]byte(metadataJSON), &metadata); err != nil {
			return nil, fmt.Errorf("unmarshaling metadata for %s: %w", id, err)
		}
		embedding := bytesToFloat32Slice(blob)
		if err := domain.CheckStoredVector(id, embedding, query); err != nil {
			return nil, err
		}
		score := rank.Cosine(query, embedding)
		top.Push(id, score, domain.RetrievalResult{Text: text, Score: score, Metadata: metadata})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vectors: %w", err)
	}

	hits := top.Results()
	results := make([]domain.RetrievalResult, len(hits))
	for i, h := range hits {
		results[i] = h.Item
	}
	return results, nil
}

// Stats reports the collection size and database location.
func (v *vectorIndex) Stats(ctx context.Context) (domain.IndexStats, error) {
	stats := domain.IndexStats{CollectionName: v.collection, PersistLocation: v.store.path}
	err := v.store.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM vector_chunks WHERE collection = ?", v.collection,
	).Scan(&stats.DocumentCount)
	if err != nil {
		return stats, fmt.Errorf("counting vectors: %w", err)
	}
	return stats, nil
}

// Drop removes every vector in the collection.
func (v *vectorIndex) Drop(ctx context.Context) error {
	if _, err := v.store.db.ExecContext(ctx,
		"DELETE FROM vector_chunks WHERE collection = ?", v.collection); err != nil {
		return fmt.Errorf("dropping collection: %w", err)
	}
	return nil
}

// Close is a no-op; the owning Store closes the database.
func (v *vectorIndex) Close() error {
	return nil
}
