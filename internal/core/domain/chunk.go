package domain

import (
	"crypto/md5" //nolint:gosec // content fingerprint, not a security boundary
	"encoding/hex"
	"fmt"
	"time"
)

// ChunkMetadata is the positional and provenance metadata attached to every chunk.
type ChunkMetadata struct {
	// DocumentID is the content hash of the source document.
	DocumentID string `json:"document_id"`

	// Filename is the uploaded file name.
	Filename string `json:"filename"`

	// Title is the human-readable document title.
	Title string `json:"title"`

	// IngestedAt is when the document was ingested.
	IngestedAt time.Time `json:"ingested_at"`

	// ChunkID is the sequence index of the chunk within its document, from 0.
	ChunkID int `json:"chunk_id"`

	// StartChar is the character offset where the window starts.
	StartChar int `json:"start_char"`

	// EndChar is StartChar plus the configured chunk size.
	EndChar int `json:"end_char"`

	// Extra holds caller-supplied metadata without a dedicated field.
	Extra map[string]string `json:"extra,omitempty"`
}

// DocumentChunk is a bounded window of document text, the unit stored
// and searched in the vector index.
type DocumentChunk struct {
	// Text is the trimmed window text.
	Text string `json:"text"`

	// Metadata carries document and position information.
	Metadata ChunkMetadata `json:"metadata"`

	// Embedding is set by the embedder before the chunk is persisted.
	Embedding []float32 `json:"-"`
}

// Key returns the stable external key "{document_id}_{chunk_id}".
func (c DocumentChunk) Key() string {
	return VectorKey(c.Metadata.DocumentID, c.Metadata.ChunkID)
}

// Validate checks a chunk is ready to be stored: it has an embedding of
// the expected size (when dimensions > 0) and a document id.
func (c DocumentChunk) Validate(dimensions int) error {
	if c.Metadata.DocumentID == "" {
		return fmt.Errorf("%w: chunk %d has no document id", ErrInvalidInput, c.Metadata.ChunkID)
	}
	if len(c.Embedding) == 0 {
		return fmt.Errorf("%w: chunk %s has no embedding", ErrInvalidInput, c.Key())
	}
	if dimensions > 0 && len(c.Embedding) != dimensions {
		return fmt.Errorf("%w: chunk %s has %d dimensions, index expects %d",
			ErrInvalidInput, c.Key(), len(c.Embedding), dimensions)
	}
	return nil
}

// ValidateQuery checks a search vector against the index dimensions.
// A dimensions value of 0 skips the size check.
func ValidateQuery(query []float32, dimensions int) error {
	if len(query) == 0 {
		return fmt.Errorf("%w: empty query vector", ErrInvalidInput)
	}
	if dimensions > 0 && len(query) != dimensions {
		return fmt.Errorf("%w: query has %d dimensions, index expects %d",
			ErrInvalidInput, len(query), dimensions)
	}
	return nil
}

// CheckStoredVector reports a stored embedding whose size differs from the
// query, which happens when the embedding model changed without re-ingesting.
func CheckStoredVector(key string, stored, query []float32) error {
	if len(stored) != len(query) {
		return fmt.Errorf("%w: chunk %s has %d dimensions, query has %d; re-ingest after changing the embedding model",
			ErrInvalidInput, key, len(stored), len(query))
	}
	return nil
}

// VectorKey builds the external vector index key for a chunk.
func VectorKey(documentID string, chunkID int) string {
	return fmt.Sprintf("%s_%d", documentID, chunkID)
}

// DocumentID returns the content hash used as a document's identity.
// Byte-identical content always yields the same id.
func DocumentID(raw []byte) string {
	sum := md5.Sum(raw) //nolint:gosec // see import
	return hex.EncodeToString(sum[:])
}
