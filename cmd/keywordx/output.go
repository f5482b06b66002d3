package main

import (
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/poiesic/keywordx/core"
)

type matchJSON struct {
	Keyword string  `json:"keyword"`
	Match   string  `json:"match"`
	Score   float64 `json:"score"`
	Source  string  `json:"source"`
}

type entityJSON struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Value string `json:"value,omitempty"`
}

type documentJSON struct {
	// ID is a string because 64-bit IDs overflow JSON numbers in most readers.
	ID              string       `json:"id,omitempty"`
	Text            string       `json:"text"`
	Keywords        []string     `json:"keywords"`
	MinScore        float64      `json:"min_score"`
	SemanticMatches []matchJSON  `json:"semantic_matches"`
	Entities        []entityJSON `json:"entities"`
	ExtractedAt     *time.Time   `json:"extracted_at,omitempty"`
	Error           string       `json:"error,omitempty"`
}

func toDocumentJSON(doc *core.Document) documentJSON {
	out := documentJSON{
		ID:              strconv.FormatUint(uint64(doc.Id), 10),
		Text:            doc.Text,
		Keywords:        doc.Keywords,
		MinScore:        doc.MinScore,
		SemanticMatches: make([]matchJSON, len(doc.Result.SemanticMatches)),
		Entities:        make([]entityJSON, len(doc.Result.Entities)),
	}
	if out.Keywords == nil {
		out.Keywords = []string{}
	}
	if !doc.ExtractedAt.IsZero() {
		at := doc.ExtractedAt
		out.ExtractedAt = &at
	}
	for i, m := range doc.Result.SemanticMatches {
		out.SemanticMatches[i] = matchJSON{
			Keyword: m.Keyword,
			Match:   m.Match,
			Score:   m.Score,
			Source:  m.Source.String(),
		}
	}
	for i, e := range doc.Result.Entities {
		out.Entities[i] = entityJSON{
			Type:  string(e.Type),
			Text:  e.Text,
			Start: e.Span.Start,
			End:   e.Span.End,
			Value: e.Value,
		}
	}
	return out
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
