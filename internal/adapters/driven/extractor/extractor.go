// Package extractor selects a PDF text extraction backend.
package extractor

import (
	"fmt"

	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/extractor/mupdf"
	"github.com/custodia-labs/pragati-cli/internal/adapters/driven/extractor/pure"
	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

// New returns the extractor for backend. An empty backend selects the pure Go reader.
func New(backend domain.ExtractorBackend) (driven.TextExtractor, error) {
	switch backend {
	case "", domain.ExtractorPure:
		return pure.New(), nil
	case domain.ExtractorMuPDF:
		return mupdf.New(), nil
	default:
		return nil, fmt.Errorf("%w: unknown extractor %q", domain.ErrInvalidInput, backend)
	}
}
