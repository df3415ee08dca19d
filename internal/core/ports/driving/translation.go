package driving

import (
	"context"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
)

// TranslationService translates generated content into regional languages.
type TranslationService interface {
	// Translate translates text. Same source and target returns text unchanged.
	Translate(ctx context.Context, text, srcLang, tgtLang string) (string, error)

	// TranslateBatch translates texts, preserving order.
	TranslateBatch(ctx context.Context, texts []string, srcLang, tgtLang string) ([]string, error)

	// TranslateModule returns a copy of module with its text fields translated.
	TranslateModule(ctx context.Context, module *domain.Module, tgtLang string) (*domain.Module, error)

	// Languages returns the supported languages.
	Languages() []domain.Language

	// Available reports whether a translation backend is configured.
	Available() bool
}
