// Package chunker splits extracted document text into overlapping,
// fixed-size character windows.
package chunker

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/pragati-cli/internal/core/domain"
	"github.com/custodia-labs/pragati-cli/internal/core/ports/driven"
)

// Ensure Processor implements the Chunker interface.
var _ driven.Chunker = (*Processor)(nil)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 800

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// DefaultMinChunkLength is the shortest trimmed window that is kept.
// A shorter window ends chunking, even if text remains after it.
const DefaultMinChunkLength = 50

// Processor splits text into sliding windows.
type Processor struct {
	chunkSize int
	overlap   int
	minLength int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// WithMinChunkLength sets the minimum trimmed window length.
func WithMinChunkLength(n int) Option {
	return func(p *Processor) {
		if n >= 0 {
			p.minLength = n
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
		minLength: DefaultMinChunkLength,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// FromSettings creates a processor from chunking settings.
// Zero or invalid values fall back to the defaults.
func FromSettings(s domain.ChunkingSettings) *Processor {
	return New(WithChunkSize(s.ChunkSize), WithOverlap(s.Overlap))
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// ChunkSize returns the configured window size.
func (p *Processor) ChunkSize() int {
	return p.chunkSize
}

// Overlap returns the configured overlap.
func (p *Processor) Overlap() int {
	return p.overlap
}

// Chunk splits text into windows [start, start+size) advancing by size-overlap.
// Offsets count characters (runes), not bytes. Each window is trimmed; the
// first window shorter than the minimum length stops chunking. Every chunk
// gets a copy of base with ChunkID, StartChar and EndChar filled in.
// EndChar is always StartChar+size, even for a window clipped at the end of text.
func (p *Processor) Chunk(text string, base domain.ChunkMetadata) []domain.DocumentChunk {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	textLen := len(runes)
	step := p.chunkSize - p.overlap

	// Estimate number of chunks
	chunks := make([]domain.DocumentChunk, 0, textLen/step+1)

	for start := 0; start < textLen; start += step {
		end := start + p.chunkSize
		if end > textLen {
			end = textLen
		}

		window := strings.TrimSpace(string(runes[start:end]))
		if utf8.RuneCountInString(window) < p.minLength {
			break
		}

		meta := base
		meta.ChunkID = len(chunks)
		meta.StartChar = start
		meta.EndChar = start + p.chunkSize
		meta.Extra = copyExtra(base.Extra)

		chunks = append(chunks, domain.DocumentChunk{
			Text:     window,
			Metadata: meta,
		})
	}

	return chunks
}

func copyExtra(extra map[string]string) map[string]string {
	if extra == nil {
		return nil
	}
	out := make(map[string]string, len(extra))
	for k, v := range extra {
		out[k] = v
	}
	return out
}
