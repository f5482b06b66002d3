package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"slices"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for persisted documents.
// It is generated from content using BLAKE2b hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// EntityType is the label an entity recognizer assigns to a detected entity.
type EntityType string

const (
	EntityTypeDate     EntityType = "DATE"
	EntityTypeTime     EntityType = "TIME"
	EntityTypeMoney    EntityType = "MONEY"
	EntityTypeCardinal EntityType = "CARDINAL"
	EntityTypeLocation EntityType = "LOC"
	// EntityTypeGPE is a geopolitical entity: a city, state or country.
	EntityTypeGPE EntityType = "GPE"
)

// validEntityTypes is never modified; ValidEntityTypes hands out copies.
var validEntityTypes = []EntityType{
	EntityTypeDate,
	EntityTypeTime,
	EntityTypeMoney,
	EntityTypeCardinal,
	EntityTypeLocation,
	EntityTypeGPE,
}

// ValidEntityTypes returns the entity types that can carry a boost weight.
// Recognizers may emit other labels; those are reported but never fused.
// The returned slice is a copy.
func ValidEntityTypes() []EntityType {
	return slices.Clone(validEntityTypes)
}

// IsValidEntityType reports whether t belongs to ValidEntityTypes.
func IsValidEntityType(t EntityType) bool {
	return slices.Contains(validEntityTypes, t)
}

// Span is a half-open [Start, End) byte range into the input text.
type Span struct {
	Start int
	End   int
}

// Entity is a structured detection returned by an entity recognizer.
type Entity struct {
	Type EntityType
	Text string
	Span Span
	// Value holds an ISO-8601 rendering of a resolved temporal expression.
	// Empty when the recognizer did not resolve one.
	Value string
}

// MatchSource records which stream produced a Match.
type MatchSource int

const (
	// SourceSemantic marks a match selected by embedding similarity.
	SourceSemantic MatchSource = iota + 1
	// SourceEntity marks a match produced by entity fusion.
	SourceEntity
)

func (s MatchSource) String() string {
	switch s {
	case SourceSemantic:
		return "semantic"
	case SourceEntity:
		return "entity"
	default:
		return "unknown"
	}
}

// Match is the result for a single keyword.
//
// For semantic matches Score is in the scorer's native range. For entity
// matches Score is the boost multiplier, never above MaxBoost. The two scales
// are not comparable; use Source to tell them apart.
type Match struct {
	Keyword string
	Match   string
	Score   float64
	Source  MatchSource
}

// Result is the output of a single extraction.
type Result struct {
	SemanticMatches []Match
	Entities        []Entity
}

// MatchFor returns the match for keyword, if any.
func (r *Result) MatchFor(keyword string) (Match, bool) {
	if r == nil {
		return Match{}, false
	}
	for _, m := range r.SemanticMatches {
		if m.Keyword == keyword {
			return m, true
		}
	}
	return Match{}, false
}

// Document is a persisted extraction: the input, its parameters and its result.
type Document struct {
	Id          ID
	Text        string
	Keywords    []string
	MinScore    float64
	Result      Result
	ExtractedAt time.Time
}
