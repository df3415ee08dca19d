package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driving"
	"github.com/custodia-labs/pragati-cli/internal/logger"
)

// Ensure TranslationService implements the interface.
var _ driving.TranslationService = (*TranslationService)(nil)

// TranslationService translates text and modules between supported languages.
type TranslationService struct {
	translator driven.Translator
}

// NewTranslationService creates a translation service.
// translator may be nil, in which case only no-op translations succeed.
func NewTranslationService(translator driven.Translator) *TranslationService {
	return &TranslationService{translator: translator}
}

// Available reports whether a translation backend is configured.
func (s *TranslationService) Available() bool {
	return s.translator != nil
}

// Languages returns the supported languages.
func (s *TranslationService) Languages() []domain.Language {
	return domain.SupportedLanguages()
}

// Translate translates text from srcLang to tgtLang. Both codes are checked
// first; blank text and identical languages then return text unchanged
// without calling the backend.
func (s *TranslationService) Translate(ctx context.Context, text, srcLang, tgtLang string) (string, error) {
	if srcLang == "" {
		srcLang = domain.DefaultLanguage
	}
	if err := checkLanguages(srcLang, tgtLang); err != nil {
		return "", err
	}
	if srcLang == tgtLang || strings.TrimSpace(text) == "" {
		return text, nil
	}
	if s.translator == nil {
		return "", domain.ErrTranslationUnavailable
	}

	out, err := s.translator.Translate(ctx, text, srcLang, tgtLang)
	if err != nil {
		return "", wrapStage(domain.ErrTranslation, err)
	}
	return out, nil
}

// TranslateBatch translates texts in order. The first failure aborts the batch.
func (s *TranslationService) TranslateBatch(ctx context.Context, texts []string, srcLang, tgtLang string) ([]string, error) {
	if srcLang == "" {
		srcLang = domain.DefaultLanguage
	}
	if err := checkLanguages(srcLang, tgtLang); err != nil {
		return nil, err
	}

	out := make([]string, len(texts))
	for i, text := range texts {
		translated, err := s.Translate(ctx, text, srcLang, tgtLang)
		if err != nil {
			return nil, fmt.Errorf("text %d: %w", i, err)
		}
		out[i] = translated
	}
	return out, nil
}

// TranslateModule returns a copy of module with its title and section text
// translated into tgtLang. The input module is not modified.
func (s *TranslationService) TranslateModule(ctx context.Context, module *domain.Module, tgtLang string) (*domain.Module, error) {
	srcLang := module.Language
	if srcLang == "" {
		srcLang = domain.DefaultLanguage
	}

	texts := []string{module.Title}
	for _, sec := range module.Sections {
		texts = append(texts, sec.Title, sec.Content, sec.Activity)
	}

	logger.Debug("Translating module %s: %s -> %s (%d fields)", module.ID, srcLang, tgtLang, len(texts))
	translated, err := s.TranslateBatch(ctx, texts, srcLang, tgtLang)
	if err != nil {
		return nil, err
	}

	out := *module
	out.Title = translated[0]
	out.Sections = make([]domain.ModuleSection, len(module.Sections))
	for i, sec := range module.Sections {
		base := 1 + i*3
		sec.Title = translated[base]
		sec.Content = translated[base+1]
		sec.Activity = translated[base+2]
		out.Sections[i] = sec
	}
	out.Language = tgtLang
	return &out, nil
}

func checkLanguages(codes ...string) error {
	for _, code := range codes {
		if !domain.IsSupportedLanguage(code) {
			return fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, code)
		}
	}
	return nil
}
