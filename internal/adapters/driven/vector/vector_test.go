package vector

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/vector/bolt"
	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

type memoryProvider struct {
	gotCollection string
	gotDimensions int
}

func (p *memoryProvider) VectorIndex(collection string, dimensions int) driven.VectorIndex {
	p.gotCollection = collection
	p.gotDimensions = dimensions
	return memory.NewVectorIndex(collection, dimensions)
}

func TestOpen_SQLiteUsesEmbeddedProvider(t *testing.T) {
	provider := &memoryProvider{}
	idx, err := Open(context.Background(), domain.IndexSettings{
		Backend:    domain.IndexBackendSQLite,
		Collection: "manuals",
		Dimensions: 384,
	}, provider, t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, idx)
	assert.Equal(t, "manuals", provider.gotCollection)
	assert.Equal(t, 384, provider.gotDimensions)
}

func TestOpen_EmptyBackendDefaultsToSQLite(t *testing.T) {
	provider := &memoryProvider{}
	_, err := Open(context.Background(), domain.IndexSettings{Collection: "manuals"}, provider, "")
	require.NoError(t, err)
	assert.Equal(t, "manuals", provider.gotCollection)
}

func TestOpen_BoltDefaultsToDataDir(t *testing.T) {
	dir := t.TempDir()
	idx, err := Open(context.Background(), domain.IndexSettings{
		Backend:    domain.IndexBackendBolt,
		Collection: "manuals",
		Dimensions: 2,
	}, nil, dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })

	stats, err := idx.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, bolt.FileName), stats.PersistLocation)
}

func TestOpen_Errors(t *testing.T) {
	tests := []struct {
		name     string
		settings domain.IndexSettings
		wantErr  error
	}{
		{
			name:     "missing collection",
			settings: domain.IndexSettings{Backend: domain.IndexBackendSQLite},
			wantErr:  domain.ErrInvalidInput,
		},
		{
			name:     "sqlite without store",
			settings: domain.IndexSettings{Backend: domain.IndexBackendSQLite, Collection: "c"},
			wantErr:  domain.ErrVectorIndexUnavailable,
		},
		{
			name:     "pgvector without dsn",
			settings: domain.IndexSettings{Backend: domain.IndexBackendPgvector, Collection: "c"},
			wantErr:  domain.ErrVectorIndexUnavailable,
		},
		{
			name:     "unknown backend",
			settings: domain.IndexSettings{Backend: "faiss", Collection: "c"},
			wantErr:  domain.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Open(context.Background(), tt.settings, nil, t.TempDir())
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
