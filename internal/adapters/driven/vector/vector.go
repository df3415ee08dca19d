// Package vector opens the configured vector index backend.
package vector

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/vector/bolt"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/vector/pgvector"
	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pragati-cli/internal/logger"
)

// EmbeddedProvider hands out vector indexes living in an existing database,
// such as the application SQLite store.
type EmbeddedProvider interface {
	VectorIndex(collection string, dimensions int) driven.VectorIndex
}

// Open returns the vector index selected by settings.
// embedded serves the sqlite backend; dataDir is the default location
// for the bolt file when settings.Path is empty.
func Open(ctx context.Context, settings domain.IndexSettings, embedded EmbeddedProvider, dataDir string) (driven.VectorIndex, error) {
	if settings.Collection == "" {
		return nil, fmt.Errorf("%w: collection name is required", domain.ErrInvalidInput)
	}

	switch settings.Backend {
	case domain.IndexBackendSQLite, "":
		if embedded == nil {
			return nil, fmt.Errorf("%w: sqlite backend needs an open store", domain.ErrVectorIndexUnavailable)
		}
		logger.Debug("vector index: sqlite collection %q", settings.Collection)
		return embedded.VectorIndex(settings.Collection, settings.Dimensions), nil

	case domain.IndexBackendBolt:
		path := settings.Path
		if path == "" {
			path = filepath.Join(dataDir, bolt.FileName)
		}
		logger.Debug("vector index: bolt file %s", path)
		idx, err := bolt.Open(path, settings.Collection, settings.Dimensions)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrVectorIndexUnavailable, err)
		}
		return idx, nil

	case domain.IndexBackendPgvector:
		if settings.DSN == "" {
			return nil, fmt.Errorf("%w: pgvector backend needs a DSN", domain.ErrVectorIndexUnavailable)
		}
		logger.Debug("vector index: pgvector collection %q", settings.Collection)
		idx, err := pgvector.Open(ctx, settings.DSN, settings.Collection, settings.Dimensions)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrVectorIndexUnavailable, err)
		}
		return idx, nil

	default:
		return nil, fmt.Errorf("%w: unknown index backend %q", domain.ErrInvalidInput, settings.Backend)
	}
}
