package extraction

import (
	"math"

	"github.com/poiesic/keywordx/core"
)

// Deduplicate keeps one match per keyword: the highest scoring, or the first
// seen on an exact tie. Keywords keep the order of their first appearance,
// though callers should not rely on it.
func Deduplicate(matches []core.Match) []core.Match {
	out := make([]core.Match, 0, len(matches))
	index := make(map[string]int, len(matches))

	for _, m := range matches {
		i, ok := index[m.Keyword]
		if !ok {
			index[m.Keyword] = len(out)
			out = append(out, m)
			continue
		}
		current := out[i].Score
		if m.Score > current || (math.IsNaN(current) && !math.IsNaN(m.Score)) {
			out[i] = m
		}
	}
	return out
}
