package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestErrors_Existence tests that all error variables exist and are not nil
func TestErrors_Existence(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"ErrNotFound", ErrNotFound},
		{"ErrInvalidInput", ErrInvalidInput},
		{"ErrUnsupportedFormat", ErrUnsupportedFormat},
		{"ErrDocumentTooLarge", ErrDocumentTooLarge},
		{"ErrUnsupportedLanguage", ErrUnsupportedLanguage},
		{"ErrExtraction", ErrExtraction},
		{"ErrEmbedding", ErrEmbedding},
		{"ErrIndex", ErrIndex},
		{"ErrGeneration", ErrGeneration},
		{"ErrTranslation", ErrTranslation},
		{"ErrLLMUnavailable", ErrLLMUnavailable},
		{"ErrEmbeddingUnavailable", ErrEmbeddingUnavailable},
		{"ErrVectorIndexUnavailable", ErrVectorIndexUnavailable},
		{"ErrTranslationUnavailable", ErrTranslationUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, tt.err)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

// TestErrors_Distinct ensures pipeline errors are not interchangeable
func TestErrors_Distinct(t *testing.T) {
	pipeline := []error{ErrExtraction, ErrEmbedding, ErrIndex, ErrGeneration}
	for i, a := range pipeline {
		for j, b := range pipeline {
			if i == j {
				continue
			}
			assert.False(t, errors.Is(a, b), "%v should not match %v", a, b)
		}
	}
}

// TestErrors_Wrapping tests that wrapped stage errors remain detectable
func TestErrors_Wrapping(t *testing.T) {
	cause := errors.New("connection refused")
	wrapped := fmt.Errorf("%w: %w", ErrEmbedding, cause)

	assert.True(t, errors.Is(wrapped, ErrEmbedding))
	assert.True(t, errors.Is(wrapped, cause))
	assert.False(t, errors.Is(wrapped, ErrIndex))
	assert.Equal(t, "embedding failed: connection refused", wrapped.Error())
}
