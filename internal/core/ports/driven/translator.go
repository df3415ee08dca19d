package driven

import "context"

// Translator translates text between supported language codes.
// This is an optional service - when nil, modules are returned untranslated.
type Translator interface {
	// Translate translates text from srcLang to tgtLang.
	Translate(ctx context.Context, text, srcLang, tgtLang string) (string, error)

	// Ping validates the backend is reachable.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
