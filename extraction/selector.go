package extraction

import (
	"math"

	"github.com/poiesic/keywordx/core"
)

// DefaultMinScore is the minimum similarity a candidate needs to be reported.
const DefaultMinScore = 0.3

// SelectBest picks the highest-scoring phrase for keyword. Ties go to the
// earliest candidate and NaN scores never win. It reports false when there
// are no candidates or the best score is below minScore.
func SelectBest(keyword string, phrases []string, scores []float64, minScore float64) (core.Match, bool) {
	idx := bestIndex(scores)
	if idx < 0 || idx >= len(phrases) || scores[idx] < minScore {
		return core.Match{}, false
	}
	return core.Match{
		Keyword: keyword,
		Match:   phrases[idx],
		Score:   scores[idx],
		Source:  core.SourceSemantic,
	}, true
}

// bestIndex returns the index of the first maximum, or -1 when scores holds
// no comparable value.
func bestIndex(scores []float64) int {
	best := -1
	for i, s := range scores {
		if math.IsNaN(s) {
			continue
		}
		if best < 0 || s > scores[best] {
			best = i
		}
	}
	return best
}
