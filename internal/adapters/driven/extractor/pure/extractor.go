// Package pure extracts PDF text with a pure Go reader.
package pure

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Name is the backend identifier.
const Name = "pure"

// Extractor reads PDF text using github.com/ledongthuc/pdf. No cgo required.
type Extractor struct{}

// New creates a pure Go extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name returns the backend identifier.
func (e *Extractor) Name() string {
	return Name
}

// Extract returns the text of every non-empty page joined by blank lines.
func (e *Extractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	// The reader panics on some malformed xref tables.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("%w: malformed pdf: %v", domain.ErrExtraction, r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %w", domain.ErrExtraction, err)
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %w", domain.ErrExtraction, i, err)
		}
		if strings.TrimSpace(pageText) != "" {
			pages = append(pages, pageText)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}
