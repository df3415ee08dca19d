package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedFormat indicates an upload that is not a PDF.
	ErrUnsupportedFormat = errors.New("unsupported document format")

	// ErrDocumentTooLarge indicates an upload above the configured size limit.
	ErrDocumentTooLarge = errors.New("document too large")

	// ErrUnsupportedLanguage indicates a language code outside the supported set.
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// Pipeline Errors.

	// ErrExtraction indicates the document text could not be extracted.
	// No chunks are written when extraction fails.
	ErrExtraction = errors.New("extraction failed")

	// ErrEmbedding indicates the embedding model call failed.
	ErrEmbedding = errors.New("embedding failed")

	// ErrIndex indicates a vector index storage or search failure.
	ErrIndex = errors.New("vector index failure")

	// ErrGeneration indicates the generation backend failed or timed out.
	// The module is not produced.
	ErrGeneration = errors.New("generation failed")

	// ErrTranslation indicates the translation backend failed.
	ErrTranslation = errors.New("translation failed")

	// Availability Errors.

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Module generation is disabled.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	// Ingest and retrieval are disabled without embeddings.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrVectorIndexUnavailable indicates the vector index is not configured.
	ErrVectorIndexUnavailable = errors.New("vector index unavailable")

	// ErrTranslationUnavailable indicates no translation backend is configured.
	ErrTranslationUnavailable = errors.New("translation service unavailable")
)
