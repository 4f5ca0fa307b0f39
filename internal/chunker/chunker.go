// Package chunker provides fixed-size overlapping text chunking.
package chunker

import (
	"fmt"

	"github.com/meridian-labs/newsarch/internal/core/domain"
)

// DefaultChunkSize is the default number of runes per chunk.
const DefaultChunkSize = 600

// DefaultOverlap is the default number of overlapping runes.
const DefaultOverlap = 100

// Splitter splits document text into fixed-size overlapping chunks.
// Sizes are measured in runes so multi-byte text never splits
// mid-character.
type Splitter struct {
	chunkSize int
	overlap   int
}

// Option configures the splitter.
type Option func(*Splitter)

// WithChunkSize sets the chunk size in runes.
func WithChunkSize(size int) Option {
	return func(s *Splitter) {
		s.chunkSize = size
	}
}

// WithOverlap sets the overlap between consecutive chunks in runes.
func WithOverlap(overlap int) Option {
	return func(s *Splitter) {
		s.overlap = overlap
	}
}

// New creates a splitter with the given options.
// It fails with domain.ErrInvalidChunkConfig when the size is not
// positive, the overlap is negative, or the overlap is not smaller
// than the chunk size.
func New(opts ...Option) (*Splitter, error) {
	s := &Splitter{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.chunkSize <= 0 {
		return nil, fmt.Errorf("%w: chunk size %d must be positive",
			domain.ErrInvalidChunkConfig, s.chunkSize)
	}
	if s.overlap < 0 {
		return nil, fmt.Errorf("%w: overlap %d must not be negative",
			domain.ErrInvalidChunkConfig, s.overlap)
	}
	if s.overlap >= s.chunkSize {
		return nil, fmt.Errorf("%w: overlap %d must be smaller than chunk size %d",
			domain.ErrInvalidChunkConfig, s.overlap, s.chunkSize)
	}

	return s, nil
}

// ChunkSize returns the configured chunk size in runes.
func (s *Splitter) ChunkSize() int {
	return s.chunkSize
}

// Overlap returns the configured overlap in runes.
func (s *Splitter) Overlap() int {
	return s.overlap
}

// Split returns the ordered chunks of text.
// Text shorter than the chunk size yields exactly one chunk equal to
// the whole text; empty text yields no chunks. Consecutive chunks
// overlap by exactly the configured amount, so concatenating each
// chunk's non-overlapping remainder reconstructs the source.
func (s *Splitter) Split(text string) []string {
	if text == "" {
		return nil
	}

	runes := []rune(text)
	total := len(runes)

	if total <= s.chunkSize {
		return []string{text}
	}

	step := s.chunkSize - s.overlap
	chunks := make([]string, 0, total/step+1)

	for start := 0; start < total; start += step {
		end := start + s.chunkSize
		if end > total {
			end = total
		}

		chunks = append(chunks, string(runes[start:end]))

		if end == total {
			break
		}
	}

	return chunks
}
