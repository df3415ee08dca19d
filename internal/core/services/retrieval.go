package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pragati-cli/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// RetrievalConfig holds ingest and query limits.
type RetrievalConfig struct {
	// MaxUploadBytes rejects larger documents. Zero means no limit.
	MaxUploadBytes int64

	// DefaultTopK is used when Retrieve is called with topK <= 0.
	DefaultTopK int
}

// RetrievalService composes extraction, chunking, embedding and the vector
// index into ingest and query operations.
type RetrievalService struct {
	extractor driven.TextExtractor
	chunker   driven.Chunker
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	cfg       RetrievalConfig
	now       func() time.Time

	// writeMu serialises writers to the collection.
	writeMu sync.Mutex
}

// NewRetrievalService creates a new retrieval service.
// The embedder and index may be nil; operations needing them then fail
// with the matching unavailable error.
func NewRetrievalService(
	extractor driven.TextExtractor,
	chunker driven.Chunker,
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	cfg RetrievalConfig,
) *RetrievalService {
	if cfg.DefaultTopK <= 0 {
		cfg.DefaultTopK = domain.DefaultAppSettings().Module.TopK
	}
	return &RetrievalService{
		extractor: extractor,
		chunker:   chunker,
		embedder:  embedder,
		index:     index,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Ingest extracts, chunks, embeds and stores a document. Every chunk is
// embedded before anything is written, and the index write is a single
// batch, so a failure at any stage leaves the index untouched.
func (s *RetrievalService) Ingest(ctx context.Context, req driving.IngestRequest) (*domain.IngestResult, error) {
	logger.Section("Ingest")
	defer logger.Timed("ingest")()

	if !strings.EqualFold(filepath.Ext(req.Filename), ".pdf") {
		return nil, fmt.Errorf("%w: %q (only .pdf files are accepted)", domain.ErrUnsupportedFormat, req.Filename)
	}
	if s.cfg.MaxUploadBytes > 0 && int64(len(req.Data)) > s.cfg.MaxUploadBytes {
		return nil, fmt.Errorf("%w: %d bytes exceeds the %d byte limit",
			domain.ErrDocumentTooLarge, len(req.Data), s.cfg.MaxUploadBytes)
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.index == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}

	documentID := domain.DocumentID(req.Data)
	title := req.Title
	if title == "" {
		title = req.Filename
	}
	result := &domain.IngestResult{DocumentID: documentID, Filename: req.Filename}
	logger.Debug("Document %s (%s), %d bytes", documentID, req.Filename, len(req.Data))

	text, err := s.extractor.Extract(ctx, req.Data)
	if err != nil {
		return nil, wrapStage(domain.ErrExtraction, err)
	}
	logger.Debug("Extracted %d characters with %s", len(text), s.extractor.Name())

	chunks := s.chunker.Chunk(text, domain.ChunkMetadata{
		DocumentID: documentID,
		Filename:   req.Filename,
		Title:      title,
		IngestedAt: s.now().UTC(),
	})
	if len(chunks) == 0 {
		logger.Info("No chunks produced for %s", req.Filename)
		return result, nil
	}
	logger.Debug("Chunked into %d windows", len(chunks))

	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Text
	}
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, wrapStage(domain.ErrEmbedding, err)
	}
	if len(embeddings) != len(chunks) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d chunks", domain.ErrEmbedding, len(embeddings), len(chunks))
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	s.writeMu.Lock()
	err = s.index.Upsert(ctx, chunks)
	s.writeMu.Unlock()
	if err != nil {
		return nil, wrapStage(domain.ErrIndex, err)
	}

	result.ChunksCreated = len(chunks)
	logger.Info("Ingested %s: %d chunks", req.Filename, result.ChunksCreated)
	return result, nil
}

// Retrieve embeds query and returns the topK most similar chunks.
func (s *RetrievalService) Retrieve(ctx context.Context, query string, topK int) ([]domain.RetrievalResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = s.cfg.DefaultTopK
	}
	if s.embedder == nil {
		return nil, domain.ErrEmbeddingUnavailable
	}
	if s.index == nil {
		return nil, domain.ErrVectorIndexUnavailable
	}

	vector, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, wrapStage(domain.ErrEmbedding, err)
	}

	results, err := s.index.Search(ctx, vector, topK)
	if err != nil {
		return nil, wrapStage(domain.ErrIndex, err)
	}

	for i, r := range results {
		logger.Debug("  [%d] %.4f %s #%d", i+1, r.Score, r.Metadata.Filename, r.Metadata.ChunkID)
	}
	return results, nil
}

// Stats describes the vector index collection.
func (s *RetrievalService) Stats(ctx context.Context) (domain.IndexStats, error) {
	if s.index == nil {
		return domain.IndexStats{}, domain.ErrVectorIndexUnavailable
	}
	stats, err := s.index.Stats(ctx)
	if err != nil {
		return stats, wrapStage(domain.ErrIndex, err)
	}
	return stats, nil
}

// Drop irreversibly clears the vector index.
func (s *RetrievalService) Drop(ctx context.Context) error {
	if s.index == nil {
		return domain.ErrVectorIndexUnavailable
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if err := s.index.Drop(ctx); err != nil {
		return wrapStage(domain.ErrIndex, err)
	}
	logger.Info("Vector index dropped")
	return nil
}

// wrapStage tags err with a pipeline stage sentinel unless it already carries it.
func wrapStage(stage, err error) error {
	if errors.Is(err, stage) {
		return err
	}
	return fmt.Errorf("%w: %w", stage, err)
}
