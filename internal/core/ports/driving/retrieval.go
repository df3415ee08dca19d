package driving

import (
	"context"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

// IngestRequest describes a document to ingest.
type IngestRequest struct {
	// Data is the raw document bytes.
	Data []byte

	// Filename is the uploaded file name. Only .pdf is accepted.
	Filename string

	// Title is optional; it defaults to Filename.
	Title string
}

// RetrievalService ingests manuals and retrieves relevant passages.
type RetrievalService interface {
	// Ingest extracts, chunks, embeds and stores a document.
	// Any stage failure aborts the ingest without writing chunks.
	Ingest(ctx context.Context, req IngestRequest) (*domain.IngestResult, error)

	// Retrieve embeds query and returns the topK most similar chunks.
	Retrieve(ctx context.Context, query string, topK int) ([]domain.RetrievalResult, error)

	// Stats describes the vector index collection.
	Stats(ctx context.Context) (domain.IndexStats, error)

	// Drop irreversibly clears the vector index.
	Drop(ctx context.Context) error
}
