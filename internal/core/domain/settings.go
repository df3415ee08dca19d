package domain

import "time"

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// IndexBackend selects the vector index implementation.
type IndexBackend string

// Available index backends.
const (
	// IndexBackendSQLite stores vectors in the application SQLite database.
	IndexBackendSQLite IndexBackend = "sqlite"

	// IndexBackendBolt stores vectors in a bbolt key/value file.
	IndexBackendBolt IndexBackend = "bolt"

	// IndexBackendPgvector stores vectors in PostgreSQL with the pgvector extension.
	IndexBackendPgvector IndexBackend = "pgvector"
)

// IsValid returns true if the backend is recognised.
func (b IndexBackend) IsValid() bool {
	switch b {
	case IndexBackendSQLite, IndexBackendBolt, IndexBackendPgvector:
		return true
	default:
		return false
	}
}

// Description returns a human-readable description of the backend.
func (b IndexBackend) Description() string {
	switch b {
	case IndexBackendSQLite:
		return "SQLite (embedded, default)"
	case IndexBackendBolt:
		return "bbolt (embedded key/value)"
	case IndexBackendPgvector:
		return "PostgreSQL + pgvector (server)"
	default:
		return unknownDescription
	}
}

// ExtractorBackend selects the PDF text extraction implementation.
type ExtractorBackend string

// Available extractor backends.
const (
	// ExtractorPure uses the pure Go PDF reader.
	ExtractorPure ExtractorBackend = "pure"

	// ExtractorMuPDF uses MuPDF bindings.
	ExtractorMuPDF ExtractorBackend = "mupdf"
)

// IsValid returns true if the backend is recognised.
func (b ExtractorBackend) IsValid() bool {
	return b == ExtractorPure || b == ExtractorMuPDF
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() || e.Provider == AIProviderAnthropic {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider and generation configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string

	// Temperature controls sampling randomness.
	Temperature float64

	// MaxTokens caps the generated length.
	MaxTokens int

	// TopP is the nucleus sampling threshold.
	TopP float64

	// RepeatPenalty discourages repetition (Ollama only).
	RepeatPenalty float64

	// Timeout bounds a single generation call.
	Timeout time.Duration
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// ChunkingSettings holds chunker configuration.
type ChunkingSettings struct {
	// ChunkSize is the window size in characters.
	ChunkSize int

	// Overlap is the number of characters shared by consecutive windows.
	Overlap int
}

// IndexSettings holds vector index configuration.
type IndexSettings struct {
	// Backend selects the index implementation.
	Backend IndexBackend

	// Path is the on-disk location for embedded backends.
	// Empty means the default data directory.
	Path string

	// Collection is the collection (table/bucket) name.
	Collection string

	// DSN is the PostgreSQL connection string for the pgvector backend.
	DSN string

	// Dimensions is the embedding vector size.
	Dimensions int
}

// ModuleSettings holds module generation defaults.
type ModuleSettings struct {
	// TargetDuration is the default module length in minutes.
	TargetDuration int

	// MaxSections caps the number of sections kept from generated output.
	MaxSections int

	// Difficulty is the default difficulty level.
	Difficulty DifficultyLevel

	// TopK is the number of chunks retrieved as context.
	TopK int
}

// IngestSettings holds ingest configuration.
type IngestSettings struct {
	// MaxUploadBytes is the largest accepted document.
	MaxUploadBytes int64

	// Extractor selects the PDF extraction backend.
	Extractor ExtractorBackend
}

// TranslationSettings holds translation backend configuration.
type TranslationSettings struct {
	// BaseURL is the translation inference endpoint. Empty disables translation.
	BaseURL string

	// RequestsPerSecond limits calls to the backend.
	RequestsPerSecond float64
}

// IsConfigured returns true if a translation backend is set.
func (t TranslationSettings) IsConfigured() bool {
	return t.BaseURL != ""
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Chunking holds chunker settings.
	Chunking ChunkingSettings

	// Index holds vector index settings.
	Index IndexSettings

	// Module holds module generation defaults.
	Module ModuleSettings

	// Ingest holds ingest settings.
	Ingest IngestSettings

	// Translation holds translation backend settings.
	Translation TranslationSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// Both AI providers default to a local Ollama so the tool works offline.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    "all-minilm",
			BaseURL:  "http://localhost:11434",
		},
		LLM: LLMSettings{
			Provider:      AIProviderOllama,
			Model:         "ministral:3b",
			BaseURL:       "http://localhost:11434",
			Temperature:   0.7,
			MaxTokens:     4096,
			TopP:          0.9,
			RepeatPenalty: 1.1,
			Timeout:       120 * time.Second,
		},
		Chunking: ChunkingSettings{
			ChunkSize: 800,
			Overlap:   200,
		},
		Index: IndexSettings{
			Backend:    IndexBackendSQLite,
			Collection: "scert_manuals",
			Dimensions: 384, // all-minilm
		},
		Module: ModuleSettings{
			TargetDuration: 15,
			MaxSections:    5,
			Difficulty:     DifficultyIntermediate,
			TopK:           5,
		},
		Ingest: IngestSettings{
			MaxUploadBytes: 10 * 1024 * 1024,
			Extractor:      ExtractorPure,
		},
		Translation: TranslationSettings{
			RequestsPerSecond: 2,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// AllIndexBackends returns all vector index backends.
func AllIndexBackends() []IndexBackend {
	return []IndexBackend{
		IndexBackendSQLite,
		IndexBackendBolt,
		IndexBackendPgvector,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "all-minilm",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "ministral:3b",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-haiku-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"all-minilm":        384,
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
