// Package pgvector implements the vector index on PostgreSQL with the
// pgvector extension. Ranking uses the cosine distance operator (<=>) and
// scores are reported as 1 - distance.
package pgvector

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// Connection pool limits.
const (
	maxConns        = 10
	maxConnLifetime = time.Hour
	maxConnIdleTime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Index is a pgvector-backed vector index. Each collection is its own table.
type Index struct {
	pool       *pgxpool.Pool
	table      string
	collection string
	location   string
	dimensions int
}

// Open connects to dsn and creates the extension and collection table if needed.
func Open(ctx context.Context, dsn, collection string, dimensions int) (*Index, error) {
	if collection == "" {
		return nil, fmt.Errorf("%w: collection name is required", domain.ErrInvalidInput)
	}
	if dimensions <= 0 {
		return nil, fmt.Errorf("%w: pgvector needs a positive dimension, got %d", domain.ErrInvalidInput, dimensions)
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: parse connection string: %w", domain.ErrVectorIndexUnavailable, err)
	}
	config.MaxConns = maxConns
	config.MaxConnLifetime = maxConnLifetime
	config.MaxConnIdleTime = maxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("%w: create connection pool: %w", domain.ErrVectorIndexUnavailable, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%w: ping database: %w", domain.ErrVectorIndexUnavailable, err)
	}

	idx := &Index{
		pool:       pool,
		table:      TableName(collection),
		collection: collection,
		location:   Location(config.ConnConfig.Host, config.ConnConfig.Port, config.ConnConfig.Database),
		dimensions: dimensions,
	}
	if err := idx.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return idx, nil
}

func (i *Index) ensureSchema(ctx context.Context) error {
	if _, err := i.pool.Exec(ctx, "CREATE EXTENSION IF NOT EXISTS vector"); err != nil {
		return fmt.Errorf("create extension: %w", err)
	}
	_, err := i.pool.Exec(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id          TEXT PRIMARY KEY,
			document_id TEXT NOT NULL,
			chunk_id    INTEGER NOT NULL,
			text        TEXT NOT NULL,
			metadata    JSONB NOT NULL,
			embedding   vector(%d) NOT NULL
		)`, i.table, i.dimensions))
	if err != nil {
		return fmt.Errorf("create table %s: %w", i.table, err)
	}
	return nil
}

// Upsert writes all chunks in one transaction. Existing keys are overwritten.
func (i *Index) Upsert(ctx context.Context, chunks []domain.DocumentChunk) error {
	for n := range chunks {
		if err := chunks[n].Validate(i.dimensions); err != nil {
			return err
		}
	}

	return pgx.BeginFunc(ctx, i.pool, func(tx pgx.Tx) error {
		// Queued in order so a repeated key in one batch keeps the last value.
		batch := &pgx.Batch{}
		for _, c := range chunks {
			metadata, err := json.Marshal(c.Metadata)
			if err != nil {
				return fmt.Errorf("marshal metadata: %w", err)
			}
			batch.Queue(fmt.Sprintf(`
				INSERT INTO %s (id, document_id, chunk_id, text, metadata, embedding)
				VALUES ($1, $2, $3, $4, $5, $6)
				ON CONFLICT (id) DO UPDATE SET
					document_id = EXCLUDED.document_id,
					chunk_id = EXCLUDED.chunk_id,
					text = EXCLUDED.text,
					metadata = EXCLUDED.metadata,
					embedding = EXCLUDED.embedding`, i.table),
				c.Key(), c.Metadata.DocumentID, c.Metadata.ChunkID, c.Text,
				metadata, pgvector.NewVector(c.Embedding))
		}

		br := tx.SendBatch(ctx, batch)
		for n := range chunks {
			if _, err := br.Exec(); err != nil {
				br.Close()
				return fmt.Errorf("upsert chunk %s: %w", chunks[n].Key(), err)
			}
		}
		return br.Close()
	})
}

// Search returns the k chunks nearest to query by cosine distance.
func (i *Index) Search(ctx context.Context, query []float32, k int) ([]domain.RetrievalResult, error) {
	if k <= 0 {
		return nil, fmt.Errorf("%w: k must be positive, got %d", domain.ErrInvalidInput, k)
	}
	if err := domain.ValidateQuery(query, i.dimensions); err != nil {
		return nil, err
	}

	rows, err := i.pool.Query(ctx, fmt.Sprintf(`
		SELECT text, metadata, embedding <=> $1 AS distance
		FROM %s
		ORDER BY distance, id
		LIMIT $2`, i.table),
		pgvector.NewVector(query), k)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	defer rows.Close()

	var results []domain.RetrievalResult
	for rows.Next() {
		var r domain.RetrievalResult
		var metadata []byte
		var distance float64
		if err := rows.Scan(&r.Text, &metadata, &distance); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if err := json.Unmarshal(metadata, &r.Metadata); err != nil {
			return nil, fmt.Errorf("decode metadata: %w", err)
		}
		r.Score = ScoreFromDistance(distance)
		results = append(results, r)
	}
	return results, rows.Err()
}

// Stats reports the collection size and a password-free server location.
func (i *Index) Stats(ctx context.Context) (domain.IndexStats, error) {
	stats := domain.IndexStats{CollectionName: i.collection, PersistLocation: i.location}
	err := i.pool.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", i.table)).Scan(&stats.DocumentCount)
	if err != nil {
		return stats, fmt.Errorf("count vectors: %w", err)
	}
	return stats, nil
}

// Drop removes every vector in the collection.
func (i *Index) Drop(ctx context.Context) error {
	if _, err := i.pool.Exec(ctx, fmt.Sprintf("TRUNCATE %s", i.table)); err != nil {
		return fmt.Errorf("truncate %s: %w", i.table, err)
	}
	return nil
}

// Close closes the connection pool.
func (i *Index) Close() error {
	i.pool.Close()
	return nil
}

// TableName maps a collection name to a quoted table identifier.
func TableName(collection string) string {
	return pgx.Identifier{"pragati_" + collection}.Sanitize()
}

// Location formats a server address without credentials.
func Location(host string, port uint16, database string) string {
	return "postgres://" + net.JoinHostPort(host, strconv.Itoa(int(port))) + "/" + database
}

// ScoreFromDistance converts cosine distance in [0, 2] to a score in [-1, 1].
func ScoreFromDistance(distance float64) float64 {
	return 1 - distance
}
