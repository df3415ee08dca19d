package driven

import "context"

// TextExtractor extracts plain text from document bytes.
type TextExtractor interface {
	// Extract returns the text of every non-empty page joined by blank lines.
	// Image-only documents yield an empty string and no error.
	Extract(ctx context.Context, data []byte) (string, error)

	// Name identifies the extractor backend.
	Name() string
}
