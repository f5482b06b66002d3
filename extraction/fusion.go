package extraction

import (
	"math"

	"github.com/poiesic/keywordx/core"
)

// MaxBoost caps the score of an entity-derived match.
const MaxBoost = 2.0

// domainKeywords maps entity types to the keyword they stand in for. GPE and
// LOC share "place". It is never modified.
var domainKeywords = map[core.EntityType]string{
	core.EntityTypeDate:     "date",
	core.EntityTypeTime:     "time",
	core.EntityTypeMoney:    "money",
	core.EntityTypeCardinal: "number",
	core.EntityTypeGPE:      "place",
	core.EntityTypeLocation: "place",
}

// DomainKeywordFor returns the keyword entities of type t stand in for.
func DomainKeywordFor(t core.EntityType) (string, bool) {
	keyword, ok := domainKeywords[t]
	return keyword, ok
}

// Boost returns the fused score for an entity type: its weight, or
// core.DefaultEntityWeight when unset, capped at MaxBoost.
func Boost(weights core.EntityWeights, t core.EntityType) float64 {
	return math.Min(weights.Weight(t), MaxBoost)
}

// Fuse overlays entity-derived matches on matches. For every entity, in
// order, whose domain keyword was requested, the keyword's match is replaced
// by the entity text scored with Boost, whatever the previous score. Later
// entities overwrite earlier ones. Keywords with no previous match are
// appended. The input slice is not modified.
func Fuse(matches []core.Match, entities []core.Entity, keywords []string, weights core.EntityWeights) []core.Match {
	return fuse(matches, entities, keywords, weights, nil)
}

func fuse(matches []core.Match, entities []core.Entity, keywords []string, weights core.EntityWeights,
	onFused func(core.Entity, core.Match)) []core.Match {
	requested := make(map[string]struct{}, len(keywords))
	for _, k := range keywords {
		requested[k] = struct{}{}
	}

	out := make([]core.Match, len(matches), len(matches)+len(entities))
	copy(out, matches)
	index := make(map[string]int, len(out))
	for i, m := range out {
		index[m.Keyword] = i
	}

	for _, e := range entities {
		keyword, ok := DomainKeywordFor(e.Type)
		if !ok {
			continue
		}
		if _, ok := requested[keyword]; !ok {
			continue
		}

		m := core.Match{
			Keyword: keyword,
			Match:   e.Text,
			Score:   Boost(weights, e.Type),
			Source:  core.SourceEntity,
		}
		if i, ok := index[keyword]; ok {
			out[i] = m
		} else {
			index[keyword] = len(out)
			out = append(out, m)
		}
		if onFused != nil {
			onFused(e, m)
		}
	}
	return out
}
