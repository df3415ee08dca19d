package driven

import "github.com/custodia-labs/pragati-cli/internal/core/domain"

// Chunker splits extracted document text into overlapping windows.
type Chunker interface {
	// Name returns the chunker name for logging.
	Name() string

	// Chunk returns the windows of text in order. Every chunk carries a copy
	// of base with its ChunkID, StartChar and EndChar set. Empty text yields
	// no chunks.
	Chunk(text string, base domain.ChunkMetadata) []domain.DocumentChunk
}
