package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pragati-cli/internal/generation"
	"github.com/custodia-labs/pragati-cli/internal/logger"
)

// Ensure ModuleService implements the interfaces.
var (
	_ driving.ModuleService   = (*ModuleService)(nil)
	_ driven.PromptStoreAware = (*ModuleService)(nil)
)

// AssistantModuleMessage is the content of the assistant message that
// carries a generated module in a conversation.
const AssistantModuleMessage = "Module generated"

// ModuleConfig holds module generation defaults.
type ModuleConfig struct {
	// Module holds target duration, section cap, difficulty and top-k.
	Module domain.ModuleSettings

	// Generate holds sampling options. System is replaced per request.
	Generate driven.GenerateOptions
}

// ModuleService turns a classroom challenge into a micro-learning module:
// retrieve context, build prompts, generate, parse, translate, record.
type ModuleService struct {
	retrieval     driving.RetrievalService
	llm           driven.LLMService
	conversations driving.ConversationService
	translation   driving.TranslationService
	prompts       *generation.PromptBuilder
	parser        *generation.Parser
	cfg           ModuleConfig
}

// NewModuleService creates a module service.
// llm may be nil (generation then fails with ErrLLMUnavailable) and
// translation may be nil (modules stay in English).
func NewModuleService(
	retrieval driving.RetrievalService,
	llm driven.LLMService,
	conversations driving.ConversationService,
	translation driving.TranslationService,
	cfg ModuleConfig,
) *ModuleService {
	defaults := domain.DefaultAppSettings().Module
	if cfg.Module.TargetDuration <= 0 {
		cfg.Module.TargetDuration = defaults.TargetDuration
	}
	if cfg.Module.TopK <= 0 {
		cfg.Module.TopK = defaults.TopK
	}
	if !cfg.Module.Difficulty.IsValid() {
		cfg.Module.Difficulty = defaults.Difficulty
	}

	return &ModuleService{
		retrieval:     retrieval,
		llm:           llm,
		conversations: conversations,
		translation:   translation,
		prompts:       generation.NewPromptBuilder(),
		parser:        generation.NewParser(),
		cfg:           cfg,
	}
}

// SetPromptStore sets the prompt store for loading customisable templates.
func (s *ModuleService) SetPromptStore(store driven.PromptStore) {
	s.prompts.SetPromptStore(store)
}

// Generate produces a module for req.Challenge. The challenge and the
// module are appended to the conversation only after generation succeeds;
// a new conversation is created when req.ConversationID is empty.
func (s *ModuleService) Generate(ctx context.Context, req driving.GenerateModuleRequest) (*driving.GenerateModuleResult, error) {
	logger.Section("Module Generation")
	defer logger.Timed("module generation")()

	req, err := s.normalise(req)
	if err != nil {
		return nil, err
	}
	if s.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}
	logger.Debug("Challenge: %q (%d min, %s, %s)", req.Challenge, req.TargetDuration, req.DifficultyLevel, req.Language)

	var history []domain.HistoryEntry
	if req.ConversationID != "" {
		if s.conversations == nil {
			return nil, fmt.Errorf("%w: conversations are not stored, cannot continue %s",
				domain.ErrInvalidInput, req.ConversationID)
		}
		history, err = s.conversations.History(ctx, req.ConversationID)
		if err != nil {
			return nil, fmt.Errorf("load conversation %s: %w", req.ConversationID, err)
		}
		logger.Debug("Loaded %d history turns", len(history))
	}

	sources, err := s.retrieval.Retrieve(ctx, req.Challenge, s.cfg.Module.TopK)
	if err != nil {
		return nil, err
	}
	contexts := make([]string, len(sources))
	for i, r := range sources {
		contexts[i] = r.Text
	}
	logger.Debug("Retrieved %d context chunks", len(contexts))

	prompts := s.prompts.Build(generation.PromptInput{
		Challenge:       req.Challenge,
		TargetDuration:  req.TargetDuration,
		DifficultyLevel: req.DifficultyLevel,
		History:         history,
	})

	opts := s.cfg.Generate
	opts.System = prompts.System
	raw, err := s.llm.Generate(ctx, generation.WithContext(prompts.User, contexts), opts)
	if err != nil {
		return nil, wrapStage(domain.ErrGeneration, err)
	}
	logger.Debug("Generated %d characters with %s", len(raw), s.llm.ModelName())

	module := s.parser.Parse(generation.ParseInput{
		Raw:             raw,
		Challenge:       req.Challenge,
		TargetDuration:  req.TargetDuration,
		DifficultyLevel: req.DifficultyLevel,
	})
	if limit := s.cfg.Module.MaxSections; limit > 0 && len(module.Sections) > limit {
		logger.Debug("Keeping %d of %d sections", limit, len(module.Sections))
		module.Sections = module.Sections[:limit]
		module.TotalDuration = module.SumDurations()
	}
	module.Language = domain.DefaultLanguage
	module = s.translate(ctx, module, req.Language)

	conversationID, err := s.record(ctx, req, module)
	if err != nil {
		return nil, err
	}

	logger.Info("Generated module %q: %d sections, %d min", module.Title, len(module.Sections), module.TotalDuration)
	return &driving.GenerateModuleResult{
		Module:         module,
		ConversationID: conversationID,
		Sources:        sources,
	}, nil
}

// normalise validates req and fills in configured defaults.
func (s *ModuleService) normalise(req driving.GenerateModuleRequest) (driving.GenerateModuleRequest, error) {
	req.Challenge = strings.TrimSpace(req.Challenge)
	if req.Challenge == "" {
		return req, fmt.Errorf("%w: challenge is required", domain.ErrInvalidInput)
	}
	if req.TargetDuration < 0 {
		return req, fmt.Errorf("%w: target duration must be positive", domain.ErrInvalidInput)
	}
	if req.TargetDuration == 0 {
		req.TargetDuration = s.cfg.Module.TargetDuration
	}
	if req.DifficultyLevel == "" {
		req.DifficultyLevel = s.cfg.Module.Difficulty
	}
	if !req.DifficultyLevel.IsValid() {
		return req, fmt.Errorf("%w: unknown difficulty %q", domain.ErrInvalidInput, req.DifficultyLevel)
	}
	if req.Language == "" {
		req.Language = domain.DefaultLanguage
	}
	if !domain.IsSupportedLanguage(req.Language) {
		return req, fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, req.Language)
	}
	return req, nil
}

// translate returns module in language. Without a translation backend, or
// when translation fails, the English module is returned.
func (s *ModuleService) translate(ctx context.Context, module *domain.Module, language string) *domain.Module {
	if language == domain.DefaultLanguage {
		return module
	}
	if s.translation == nil || !s.translation.Available() {
		logger.Warn("No translation backend configured, module left in English")
		return module
	}
	translated, err := s.translation.TranslateModule(ctx, module, language)
	if err != nil {
		logger.Warn("Translating module to %s failed, module left in English: %v", language, err)
		return module
	}
	return translated
}

// record appends the challenge and the module to the conversation and
// returns its id.
func (s *ModuleService) record(ctx context.Context, req driving.GenerateModuleRequest, module *domain.Module) (string, error) {
	if s.conversations == nil {
		return req.ConversationID, nil
	}

	id := req.ConversationID
	if id == "" {
		conv, err := s.conversations.Start(ctx, req.Challenge)
		if err != nil {
			return "", err
		}
		id = conv.ID
	}

	if _, err := s.conversations.Append(ctx, id, domain.RoleUser, req.Challenge, nil); err != nil {
		return "", fmt.Errorf("save challenge: %w", err)
	}
	if _, err := s.conversations.Append(ctx, id, domain.RoleAssistant, AssistantModuleMessage, module); err != nil {
		return "", fmt.Errorf("save module: %w", err)
	}
	return id, nil
}
