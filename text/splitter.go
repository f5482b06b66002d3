package text

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
)

const (
	DefaultChunkSize    = 200
	DefaultChunkOverlap = 0
)

var ErrInvalidChunkSize = errors.New("chunk size must be positive and larger than the overlap")

// SplitterChunker produces passage-sized candidates with the langchaingo
// recursive character splitter.
type SplitterChunker struct {
	chunkSize    int
	chunkOverlap int
	separators   []string
	splitter     textsplitter.TextSplitter
}

// SplitterOption configures a SplitterChunker.
type SplitterOption func(*SplitterChunker) error

// WithChunkSize sets the maximum chunk length in characters.
func WithChunkSize(n int) SplitterOption {
	return func(c *SplitterChunker) error {
		c.chunkSize = n
		return nil
	}
}

// WithChunkOverlap sets how many characters consecutive chunks share.
func WithChunkOverlap(n int) SplitterOption {
	return func(c *SplitterChunker) error {
		c.chunkOverlap = n
		return nil
	}
}

// WithSeparators overrides the separators tried, in order.
func WithSeparators(separators ...string) SplitterOption {
	return func(c *SplitterChunker) error {
		c.separators = separators
		return nil
	}
}

func NewSplitterChunker(opts ...SplitterOption) (*SplitterChunker, error) {
	c := &SplitterChunker{
		chunkSize:    DefaultChunkSize,
		chunkOverlap: DefaultChunkOverlap,
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if c.chunkSize < 1 || c.chunkOverlap < 0 || c.chunkOverlap >= c.chunkSize {
		return nil, ErrInvalidChunkSize
	}

	splitterOpts := []textsplitter.Option{
		textsplitter.WithChunkSize(c.chunkSize),
		textsplitter.WithChunkOverlap(c.chunkOverlap),
	}
	if len(c.separators) > 0 {
		splitterOpts = append(splitterOpts, textsplitter.WithSeparators(c.separators))
	}
	c.splitter = textsplitter.NewRecursiveCharacter(splitterOpts...)
	return c, nil
}

// Chunk splits text into passages. Blank passages are dropped.
func (c *SplitterChunker) Chunk(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}

	parts, err := c.splitter.SplitText(text)
	if err != nil {
		return nil, err
	}

	chunks := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			chunks = append(chunks, p)
		}
	}
	return chunks, nil
}
