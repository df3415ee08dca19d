package domain

// RetrievalResult is a single similarity search hit.
type RetrievalResult struct {
	// Text is the chunk text.
	Text string `json:"text"`

	// Score is 1 - cosine distance, in [-1, 1].
	Score float64 `json:"score"`

	// Metadata is the stored chunk metadata.
	Metadata ChunkMetadata `json:"metadata"`
}

// IngestResult summarises an ingest operation.
type IngestResult struct {
	// DocumentID is the content hash of the ingested bytes.
	DocumentID string `json:"document_id"`

	// Filename is the ingested file name.
	Filename string `json:"filename"`

	// ChunksCreated is the number of chunks written to the index.
	ChunksCreated int `json:"chunks_created"`
}

// IndexStats describes the vector index collection.
type IndexStats struct {
	// CollectionName is the configured collection.
	CollectionName string `json:"collection_name"`

	// DocumentCount is the number of stored chunk entries.
	DocumentCount int `json:"document_count"`

	// PersistLocation is the on-disk path or DSN of the index.
	PersistLocation string `json:"persist_location"`
}
