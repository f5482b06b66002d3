package text

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxWords is the longest n-gram PhraseChunker emits by default.
const DefaultMaxWords = 3

var ErrInvalidMaxWords = errors.New("max words must be at least 1")

// PhraseChunker splits text into word n-grams bounded by clause punctuation.
// It is deterministic and safe for concurrent use.
type PhraseChunker struct {
	maxWords int
}

// PhraseOption configures a PhraseChunker.
type PhraseOption func(*PhraseChunker) error

// WithMaxWords sets the longest n-gram emitted.
func WithMaxWords(n int) PhraseOption {
	return func(c *PhraseChunker) error {
		if n < 1 {
			return ErrInvalidMaxWords
		}
		c.maxWords = n
		return nil
	}
}

// NewPhraseChunker creates a PhraseChunker.
func NewPhraseChunker(opts ...PhraseOption) (*PhraseChunker, error) {
	c := &PhraseChunker{maxWords: DefaultMaxWords}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

type word struct {
	start, end int
}

// Chunk returns every n-gram of 1..maxWords consecutive words that does not
// cross a clause boundary, in text order. Word boundaries are found on the
// NFKC form of text, but each phrase is the matching substring of text
// itself. Phrases whose NFKC forms are equal are emitted once, at the first
// occurrence.
func (c *PhraseChunker) Chunk(ctx context.Context, text string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	normalized, offsets := normalizeWithOffsets(text)
	if strings.TrimSpace(normalized) == "" {
		return []string{}, nil
	}

	seen := make(map[string]struct{})
	phrases := make([]string, 0)
	for _, words := range splitClauses(normalized) {
		for i := range words {
			for n := 1; n <= c.maxWords && i+n <= len(words); n++ {
				start, end := words[i].start, words[i+n-1].end
				key := normalized[start:end]
				if _, ok := seen[key]; ok {
					continue
				}
				seen[key] = struct{}{}
				phrases = append(phrases, text[offsets[start].start:offsets[end-1].end])
			}
		}
	}
	return phrases, nil
}

// normalizeWithOffsets returns the NFKC form of s together with, for every
// byte of that form, the byte range of s it was produced from. Ranges cover
// whole normalization segments, so they always fall on rune boundaries of s.
func normalizeWithOffsets(s string) (string, []word) {
	var it norm.Iter
	it.InitString(norm.NFKC, s)

	var b strings.Builder
	offsets := make([]word, 0, len(s))
	for !it.Done() {
		start := it.Pos()
		segment := it.Next()
		end := it.Pos()
		b.Write(segment)
		for range segment {
			offsets = append(offsets, word{start: start, end: end})
		}
	}
	return b.String(), offsets
}

// splitClauses returns the byte ranges of words in s grouped by clause.
// Leading and trailing punctuation is stripped from each word, except for
// currency and percent signs.
func splitClauses(s string) [][]word {
	var clauses [][]word
	var current []word

	flush := func() {
		if len(current) > 0 {
			clauses = append(clauses, current)
			current = nil
		}
	}

	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) || isClauseBreak(r) {
			if start >= 0 {
				w, ok, ends := trimWord(s, start, i)
				if ok {
					current = append(current, w)
				}
				if ends {
					flush()
				}
				start = -1
			}
			if isClauseBreak(r) {
				flush()
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		if w, ok, _ := trimWord(s, start, len(s)); ok {
			current = append(current, w)
		}
	}
	flush()
	return clauses
}

// isClauseBreak reports whether r ends a clause wherever it appears. Periods
// and commas only end a clause at the end of a word, so that "3.5" and
// "1,500" survive as single words.
func isClauseBreak(r rune) bool {
	switch r {
	case ';', ':', '!', '?', '(', ')', '[', ']', '{', '}', '"', '\n', '—', '–':
		return true
	}
	return false
}

// trimWord strips punctuation around s[start:end]. ends reports whether the
// stripped suffix closes a clause.
func trimWord(s string, start, end int) (w word, ok bool, ends bool) {
	raw := s[start:end]
	left := strings.TrimLeftFunc(raw, isTrimmable)
	start += len(raw) - len(left)
	right := strings.TrimRightFunc(left, isTrimmable)
	ends = strings.ContainsAny(left[len(right):], ".,")
	end = start + len(right)
	return word{start: start, end: end}, end > start, ends
}

func isTrimmable(r rune) bool {
	if r == '$' || r == '%' || r == '€' || r == '£' || r == '₹' || r == '¥' {
		return false
	}
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}
