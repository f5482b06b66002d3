package vector

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/poiesic/keywordx/ai"
)

// DefaultBaselinePenalty is how much of a candidate's similarity to the
// baseline phrase is subtracted from its keyword similarity.
const DefaultBaselinePenalty = 0.5

// CosineScorer scores candidates by cosine similarity to the keyword minus a
// penalty for similarity to the baseline:
//
//	cos(k, c) - penalty * max(0, cos(b, c))
//
// When a Weighting is supplied, positive scores are scaled by
// 0.5 + 0.5*ratio, where ratio is the mean IDF of the phrase's known terms
// relative to the highest mean IDF among the candidates. Phrases with no known
// terms are left unscaled.
type CosineScorer struct {
	penalty float64
}

type CosineOption func(*CosineScorer) error

// WithBaselinePenalty sets the baseline penalty in [0, 1]. Zero disables the
// baseline discount.
func WithBaselinePenalty(p float64) CosineOption {
	return func(s *CosineScorer) error {
		if math.IsNaN(p) || p < 0 || p > 1 {
			return ErrInvalidPenalty
		}
		s.penalty = p
		return nil
	}
}

func NewCosineScorer(opts ...CosineOption) (*CosineScorer, error) {
	s := &CosineScorer{penalty: DefaultBaselinePenalty}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Score implements ai.Scorer. A nil or empty baseline disables the penalty.
func (s *CosineScorer) Score(ctx context.Context, keyword []float32, candidates [][]float32, phrases []string,
	weighting *ai.Weighting, baseline []float32) ([]float64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(candidates) != len(phrases) {
		return nil, ErrPhraseMismatch
	}

	scores := make([]float64, len(candidates))
	for i, c := range candidates {
		sim, err := Cosine(keyword, c)
		if err != nil {
			return nil, err
		}
		if s.penalty > 0 && len(baseline) > 0 {
			generic, err := Cosine(baseline, c)
			if err != nil {
				return nil, err
			}
			sim -= s.penalty * math.Max(0, generic)
		}
		scores[i] = sim
	}

	if weighting != nil {
		applyIDF(scores, phrases, weighting)
	}
	return scores, nil
}

func applyIDF(scores []float64, phrases []string, weighting *ai.Weighting) {
	means := make([]float64, len(phrases))
	known := make([]bool, len(phrases))
	var best float64
	for i, phrase := range phrases {
		means[i], known[i] = meanIDF(phrase, weighting)
		if known[i] && means[i] > best {
			best = means[i]
		}
	}
	if best <= 0 {
		return
	}

	for i := range scores {
		if !known[i] || scores[i] <= 0 {
			continue
		}
		ratio := math.Max(0, means[i]) / best
		scores[i] *= 0.5 + 0.5*ratio
	}
}

func meanIDF(phrase string, weighting *ai.Weighting) (float64, bool) {
	terms := strings.FieldsFunc(strings.ToLower(phrase), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	var sum float64
	var n int
	for _, term := range terms {
		if idf, ok := weighting.Lookup(term); ok && !math.IsNaN(idf) && !math.IsInf(idf, 0) {
			sum += idf
			n++
		}
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
