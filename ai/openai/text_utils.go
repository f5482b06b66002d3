package openai

import (
	"strings"

	"github.com/poiesic/keywordx/core"
)

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}

// locate finds entity text in the input, preferring occurrences at or after
// from so repeated mentions map to successive spans. Falls back to a
// case-insensitive search.
func locate(text, needle string, from int) (core.Span, bool) {
	if needle == "" {
		return core.Span{}, false
	}
	if from < len(text) {
		if idx := strings.Index(text[from:], needle); idx >= 0 {
			start := from + idx
			return core.Span{Start: start, End: start + len(needle)}, true
		}
	}
	if idx := strings.Index(text, needle); idx >= 0 {
		return core.Span{Start: idx, End: idx + len(needle)}, true
	}
	lower := strings.ToLower(text)
	if idx := strings.Index(lower, strings.ToLower(needle)); idx >= 0 && len(lower) == len(text) {
		return core.Span{Start: idx, End: idx + len(needle)}, true
	}
	return core.Span{}, false
}
