// Package mupdf extracts PDF text through MuPDF bindings.
package mupdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

// Ensure Extractor implements the interface.
var _ driven.TextExtractor = (*Extractor)(nil)

// Name is the backend identifier.
const Name = "mupdf"

// Extractor reads PDF text using github.com/gen2brain/go-fitz.
// It copes with more damaged files than the pure reader but needs cgo.
type Extractor struct{}

// New creates a MuPDF extractor.
func New() *Extractor {
	return &Extractor{}
}

// Name returns the backend identifier.
func (e *Extractor) Name() string {
	return Name
}

// Extract returns the text of every non-empty page joined by blank lines.
func (e *Extractor) Extract(ctx context.Context, data []byte) (string, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %w", domain.ErrExtraction, err)
	}
	defer doc.Close()

	var pages []string
	for i := 0; i < doc.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		text, err := doc.Text(i)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %w", domain.ErrExtraction, i+1, err)
		}
		if strings.TrimSpace(text) != "" {
			pages = append(pages, text)
		}
	}

	return strings.Join(pages, "\n\n"), nil
}
