package services

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider     = "embedding.provider"
	keyEmbedModel        = "embedding.model"
	keyEmbedBaseURL      = "embedding.base_url"
	keyEmbedAPIKey       = "embedding.api_key"
	keyLLMProvider       = "llm.provider"
	keyLLMModel          = "llm.model"
	keyLLMBaseURL        = "llm.base_url"
	keyLLMAPIKey         = "llm.api_key"
	keyLLMTemperature    = "llm.temperature"
	keyLLMMaxTokens      = "llm.max_tokens"
	keyLLMTopP           = "llm.top_p"
	keyLLMRepeatPenalty  = "llm.repeat_penalty"
	keyLLMTimeout        = "llm.timeout_seconds"
	keyChunkSize         = "chunking.chunk_size"
	keyChunkOverlap      = "chunking.overlap"
	keyIndexBackend      = "index.backend"
	keyIndexPath         = "index.path"
	keyIndexCollection   = "index.collection"
	keyIndexDSN          = "index.dsn"
	keyIndexDims         = "index.dimensions"
	keyModuleDuration    = "module.target_duration"
	keyModuleMaxSections = "module.max_sections"
	keyModuleDifficulty  = "module.difficulty"
	keyModuleTopK        = "module.top_k"
	keyIngestMaxBytes    = "ingest.max_upload_bytes"
	keyIngestExtractor   = "ingest.extractor"
	keyTranslationURL    = "translation.base_url"
	keyTranslationRate   = "translation.requests_per_second"
)

// Environment variables consulted when the matching key is not configured.
//
//nolint:gosec // G101: These are variable names, not credentials.
const (
	EnvOpenAIAPIKey    = "OPENAI_API_KEY"
	EnvAnthropicAPIKey = "ANTHROPIC_API_KEY"
	EnvTranslationURL  = "PRAGATI_TRANSLATION_URL"
)

type valueKind int

const (
	kindString valueKind = iota
	kindInt
	kindFloat
)

// settableKeys lists the keys accepted by SetValue and how their values parse.
var settableKeys = map[string]valueKind{
	keyEmbedProvider:     kindString,
	keyEmbedModel:        kindString,
	keyEmbedBaseURL:      kindString,
	keyLLMProvider:       kindString,
	keyLLMModel:          kindString,
	keyLLMBaseURL:        kindString,
	keyLLMTemperature:    kindFloat,
	keyLLMMaxTokens:      kindInt,
	keyLLMTopP:           kindFloat,
	keyLLMRepeatPenalty:  kindFloat,
	keyLLMTimeout:        kindInt,
	keyChunkSize:         kindInt,
	keyChunkOverlap:      kindInt,
	keyIndexBackend:      kindString,
	keyIndexPath:         kindString,
	keyIndexCollection:   kindString,
	keyIndexDSN:          kindString,
	keyIndexDims:         kindInt,
	keyModuleDuration:    kindInt,
	keyModuleMaxSections: kindInt,
	keyModuleDifficulty:  kindString,
	keyModuleTopK:        kindInt,
	keyIngestMaxBytes:    kindInt,
	keyIngestExtractor:   kindString,
	keyTranslationURL:    kindString,
	keyTranslationRate:   kindFloat,
}

// SettableKeys returns the keys accepted by SetValue, sorted.
func SettableKeys() []string {
	keys := make([]string, 0, len(settableKeys))
	for k := range settableKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
	getenv      func(string) string
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
		getenv:      func(string) string { return "" },
	}
}

// SetEnv sets the environment lookup used for API keys and the translation
// URL when they are missing from config. Typically os.Getenv.
func (s *SettingsService) SetEnv(getenv func(string) string) {
	if getenv == nil {
		getenv = func(string) string { return "" }
	}
	s.getenv = getenv
}

// SettableKeys returns the keys accepted by SetValue, sorted.
func (s *SettingsService) SettableKeys() []string {
	return SettableKeys()
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL),
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		LLM: domain.LLMSettings{
			Provider:      s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:         s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:       s.configStore.GetString(keyLLMBaseURL),
			APIKey:        s.configStore.GetString(keyLLMAPIKey),
			Temperature:   s.getFloat(keyLLMTemperature, defaults.LLM.Temperature),
			MaxTokens:     s.getInt(keyLLMMaxTokens, defaults.LLM.MaxTokens),
			TopP:          s.getFloat(keyLLMTopP, defaults.LLM.TopP),
			RepeatPenalty: s.getFloat(keyLLMRepeatPenalty, defaults.LLM.RepeatPenalty),
			Timeout:       time.Duration(s.getInt(keyLLMTimeout, int(defaults.LLM.Timeout/time.Second))) * time.Second,
		},
		Chunking: domain.ChunkingSettings{
			ChunkSize: s.getInt(keyChunkSize, defaults.Chunking.ChunkSize),
			Overlap:   s.getInt(keyChunkOverlap, defaults.Chunking.Overlap),
		},
		Index: domain.IndexSettings{
			Backend:    domain.IndexBackend(s.getString(keyIndexBackend, string(defaults.Index.Backend))),
			Path:       s.configStore.GetString(keyIndexPath),
			Collection: s.getString(keyIndexCollection, defaults.Index.Collection),
			DSN:        s.configStore.GetString(keyIndexDSN),
			Dimensions: s.getInt(keyIndexDims, defaults.Index.Dimensions),
		},
		Module: domain.ModuleSettings{
			TargetDuration: s.getInt(keyModuleDuration, defaults.Module.TargetDuration),
			MaxSections:    s.getInt(keyModuleMaxSections, defaults.Module.MaxSections),
			Difficulty:     domain.DifficultyLevel(s.getString(keyModuleDifficulty, string(defaults.Module.Difficulty))),
			TopK:           s.getInt(keyModuleTopK, defaults.Module.TopK),
		},
		Ingest: domain.IngestSettings{
			MaxUploadBytes: int64(s.getInt(keyIngestMaxBytes, int(defaults.Ingest.MaxUploadBytes))),
			Extractor:      domain.ExtractorBackend(s.getString(keyIngestExtractor, string(defaults.Ingest.Extractor))),
		},
		Translation: domain.TranslationSettings{
			BaseURL:           s.getString(keyTranslationURL, s.getenv(EnvTranslationURL)),
			RequestsPerSecond: s.getFloat(keyTranslationRate, defaults.Translation.RequestsPerSecond),
		},
	}

	// Cloud providers use their public endpoint when no base URL is set
	if settings.Embedding.BaseURL == "" && settings.Embedding.Provider.IsLocal() {
		settings.Embedding.BaseURL = defaults.Embedding.BaseURL
	}
	if settings.LLM.BaseURL == "" && settings.LLM.Provider.IsLocal() {
		settings.LLM.BaseURL = defaults.LLM.BaseURL
	}
	if settings.Embedding.APIKey == "" {
		settings.Embedding.APIKey = s.envAPIKey(settings.Embedding.Provider)
	}
	if settings.LLM.APIKey == "" {
		settings.LLM.APIKey = s.envAPIKey(settings.LLM.Provider)
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	values := []struct {
		key   string
		value any
	}{
		{keyEmbedProvider, settings.Embedding.Provider.String()},
		{keyEmbedModel, settings.Embedding.Model},
		{keyEmbedBaseURL, settings.Embedding.BaseURL},
		{keyLLMProvider, settings.LLM.Provider.String()},
		{keyLLMModel, settings.LLM.Model},
		{keyLLMBaseURL, settings.LLM.BaseURL},
		{keyLLMTemperature, settings.LLM.Temperature},
		{keyLLMMaxTokens, settings.LLM.MaxTokens},
		{keyLLMTopP, settings.LLM.TopP},
		{keyLLMRepeatPenalty, settings.LLM.RepeatPenalty},
		{keyLLMTimeout, int(settings.LLM.Timeout / time.Second)},
		{keyChunkSize, settings.Chunking.ChunkSize},
		{keyChunkOverlap, settings.Chunking.Overlap},
		{keyIndexBackend, string(settings.Index.Backend)},
		{keyIndexPath, settings.Index.Path},
		{keyIndexCollection, settings.Index.Collection},
		{keyIndexDSN, settings.Index.DSN},
		{keyIndexDims, settings.Index.Dimensions},
		{keyModuleDuration, settings.Module.TargetDuration},
		{keyModuleMaxSections, settings.Module.MaxSections},
		{keyModuleDifficulty, settings.Module.Difficulty.String()},
		{keyModuleTopK, settings.Module.TopK},
		{keyIngestMaxBytes, int(settings.Ingest.MaxUploadBytes)},
		{keyIngestExtractor, string(settings.Ingest.Extractor)},
		{keyTranslationURL, settings.Translation.BaseURL},
		{keyTranslationRate, settings.Translation.RequestsPerSecond},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// Env-provided API keys are not written back.
	if settings.Embedding.APIKey != "" && settings.Embedding.APIKey != s.envAPIKey(settings.Embedding.Provider) {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}
	if settings.LLM.APIKey != "" && settings.LLM.APIKey != s.envAPIKey(settings.LLM.Provider) {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	return nil
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid embedding provider: %s", domain.ErrInvalidInput, provider)
	}

	// Validate provider supports embeddings
	valid := false
	for _, p := range domain.AllEmbeddingProviders() {
		if p == provider {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%w: provider %s does not support embeddings", domain.ErrInvalidInput, provider)
	}

	if apiKey == "" {
		apiKey = s.envAPIKey(provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Embedding.Model = model
	} else if defaultModel, ok := domain.DefaultEmbeddingModels()[provider]; ok {
		settings.Embedding.Model = defaultModel
	}

	if provider.IsLocal() {
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = domain.DefaultAppSettings().Embedding.BaseURL
		}
	} else {
		settings.Embedding.BaseURL = ""
	}

	settings.Embedding.APIKey = apiKey

	// The index must match the new model's vector size
	if d, ok := domain.EmbeddingDimensions()[settings.Embedding.Model]; ok {
		settings.Index.Dimensions = d
	}

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("%w: invalid LLM provider: %s", domain.ErrInvalidInput, provider)
	}

	if apiKey == "" {
		apiKey = s.envAPIKey(provider)
	}
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("%w: API key required for %s", domain.ErrInvalidInput, provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	if model != "" {
		settings.LLM.Model = model
	} else if defaultModel, ok := domain.DefaultLLMModels()[provider]; ok {
		settings.LLM.Model = defaultModel
	}

	if provider.IsLocal() {
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = domain.DefaultAppSettings().LLM.BaseURL
		}
	} else {
		settings.LLM.BaseURL = ""
	}

	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetValue parses and stores a single dotted key. Enumerated values
// (providers, backends, difficulty) are checked before anything is written.
func (s *SettingsService) SetValue(key, value string) error {
	kind, ok := settableKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}
	value = strings.TrimSpace(value)

	var parsed any
	switch kind {
	case kindInt:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be an integer: %q", domain.ErrInvalidInput, key, value)
		}
		if n < 0 {
			return fmt.Errorf("%w: %s must not be negative", domain.ErrInvalidInput, key)
		}
		parsed = n
	case kindFloat:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%w: %s must be a number: %q", domain.ErrInvalidInput, key, value)
		}
		parsed = f
	default:
		if err := validateEnum(key, value); err != nil {
			return err
		}
		parsed = value
	}

	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

func validateEnum(key, value string) error {
	var ok bool
	switch key {
	case keyEmbedProvider, keyLLMProvider:
		ok = domain.AIProvider(value).IsValid()
	case keyIndexBackend:
		ok = domain.IndexBackend(value).IsValid()
	case keyModuleDifficulty:
		ok = domain.DifficultyLevel(value).IsValid()
	case keyIngestExtractor:
		ok = domain.ExtractorBackend(value).IsValid()
	default:
		return nil
	}
	if !ok {
		return fmt.Errorf("%w: invalid value %q for %s", domain.ErrInvalidInput, value, key)
	}
	return nil
}

// Validate checks that current settings are internally consistent.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	var problems []string
	addf := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if !settings.Embedding.IsConfigured() {
		addf("embedding provider %q is not configured", settings.Embedding.Provider)
	}
	if !settings.LLM.IsConfigured() {
		addf("LLM provider %q is not configured", settings.LLM.Provider)
	}
	if settings.Chunking.ChunkSize <= 0 {
		addf("chunking.chunk_size must be positive")
	}
	if settings.Chunking.Overlap < 0 || settings.Chunking.Overlap >= settings.Chunking.ChunkSize {
		addf("chunking.overlap must be in [0, chunk_size)")
	}
	if !settings.Index.Backend.IsValid() {
		addf("unknown index backend %q", settings.Index.Backend)
	}
	if settings.Index.Backend == domain.IndexBackendPgvector && settings.Index.DSN == "" {
		addf("index.dsn is required for the pgvector backend")
	}
	if settings.Index.Dimensions <= 0 {
		addf("index.dimensions must be positive")
	}
	if d, ok := domain.EmbeddingDimensions()[settings.Embedding.Model]; ok && d != settings.Index.Dimensions {
		addf("index.dimensions is %d but %s produces %d", settings.Index.Dimensions, settings.Embedding.Model, d)
	}
	if !settings.Module.Difficulty.IsValid() {
		addf("unknown difficulty %q", settings.Module.Difficulty)
	}
	if settings.Module.TargetDuration <= 0 || settings.Module.MaxSections <= 0 || settings.Module.TopK <= 0 {
		addf("module target_duration, max_sections and top_k must be positive")
	}
	if settings.Ingest.MaxUploadBytes <= 0 {
		addf("ingest.max_upload_bytes must be positive")
	}
	if !settings.Ingest.Extractor.IsValid() {
		addf("unknown extractor %q", settings.Ingest.Extractor)
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.Join(problems, "; "))
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) envAPIKey(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderOpenAI:
		return s.getenv(EnvOpenAIAPIKey)
	case domain.AIProviderAnthropic:
		return s.getenv(EnvAnthropicAPIKey)
	default:
		return ""
	}
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getInt treats an explicit 0 as a value, unlike a missing key.
func (s *SettingsService) getInt(key string, defaultVal int) int {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetInt(key)
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
