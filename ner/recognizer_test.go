package ner

import (
	"context"
	"testing"
	"time"

	"github.com/poiesic/keywordx/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var reference = time.Date(2025, 6, 6, 9, 0, 0, 0, time.UTC)

func newTestRecognizer(t *testing.T, opts ...Option) *RuleRecognizer {
	t.Helper()
	r, err := NewRuleRecognizer(append([]Option{WithReferenceTime(reference)}, opts...)...)
	require.NoError(t, err)
	return r
}

func types(entities []core.Entity) []core.EntityType {
	out := make([]core.EntityType, len(entities))
	for i, e := range entities {
		out[i] = e.Type
	}
	return out
}

func TestRuleRecognizer_MeetingSentence(t *testing.T) {
	r := newTestRecognizer(t)
	text := "Tomorrow I have a work meeting at 5pm in Bangalore."

	entities, err := r.Recognize(context.Background(), text)
	require.NoError(t, err)
	require.Len(t, entities, 3)

	assert.Equal(t, core.Entity{
		Type:  core.EntityTypeDate,
		Text:  "Tomorrow",
		Span:  core.Span{Start: 0, End: 8},
		Value: "2025-06-07",
	}, entities[0])
	assert.Equal(t, core.Entity{
		Type:  core.EntityTypeTime,
		Text:  "5pm",
		Span:  core.Span{Start: 34, End: 37},
		Value: "T17:00:00",
	}, entities[1])
	assert.Equal(t, core.Entity{
		Type: core.EntityTypeGPE,
		Text: "Bangalore",
		Span: core.Span{Start: 41, End: 50},
	}, entities[2])

	for _, e := range entities {
		assert.Equal(t, e.Text, text[e.Span.Start:e.Span.End])
	}
}

func TestRuleRecognizer_TravelSentence(t *testing.T) {
	r := newTestRecognizer(t)

	entities, err := r.Recognize(context.Background(), "I want to visit Paris next Friday with a budget of $1500.")
	require.NoError(t, err)
	require.Len(t, entities, 3)

	assert.Equal(t, []core.EntityType{core.EntityTypeGPE, core.EntityTypeDate, core.EntityTypeMoney}, types(entities))
	assert.Equal(t, "Paris", entities[0].Text)
	assert.Equal(t, "next Friday", entities[1].Text)
	assert.Equal(t, "$1500", entities[2].Text)
	assert.Empty(t, entities[2].Value)

	resolved, err := time.Parse(dateLayout, entities[1].Value)
	require.NoError(t, err)
	assert.True(t, resolved.After(reference))
}

func TestRuleRecognizer_Patterns(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  core.EntityType
		match string
		value string
	}{
		{"iso date", "Due 2025-12-24 please", core.EntityTypeDate, "2025-12-24", "2025-12-24"},
		{"relative date", "see you today", core.EntityTypeDate, "today", "2025-06-06"},
		{"month day", "The launch is on March 15th", core.EntityTypeDate, "March 15th", ""},
		{"24h clock", "standup at 09:30", core.EntityTypeTime, "09:30", "T09:30:00"},
		{"am clock", "call at 7:15 am", core.EntityTypeTime, "7:15 am", "T07:15:00"},
		{"noon", "lunch at noon", core.EntityTypeTime, "noon", "T12:00:00"},
		{"midnight", "ends at midnight", core.EntityTypeTime, "midnight", "T00:00:00"},
		{"currency symbol", "costs €2,500.50 total", core.EntityTypeMoney, "€2,500.50", ""},
		{"currency word", "about 300 dollars", core.EntityTypeMoney, "300 dollars", ""},
		{"number", "we need 12 chairs", core.EntityTypeCardinal, "12", ""},
		{"number word", "bring two bottles", core.EntityTypeCardinal, "two", ""},
		{"grouped number", "over 1,500, maybe more", core.EntityTypeCardinal, "1,500", ""},
		{"multi-word place", "flying to New York", core.EntityTypeGPE, "New York", ""},
		{"location", "hiking in the Alps", core.EntityTypeLocation, "Alps", ""},
	}

	r := newTestRecognizer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entities, err := r.Recognize(context.Background(), tt.text)
			require.NoError(t, err)
			require.Len(t, entities, 1, "entities: %+v", entities)

			assert.Equal(t, tt.want, entities[0].Type)
			assert.Equal(t, tt.match, entities[0].Text)
			if tt.value != "" {
				assert.Equal(t, tt.value, entities[0].Value)
			}
		})
	}
}

func TestRuleRecognizer_NoOverlaps(t *testing.T) {
	r := newTestRecognizer(t)

	entities, err := r.Recognize(context.Background(), "Pay $20 on 2025-07-01 at 10:00 for 3 people in London and Europe")
	require.NoError(t, err)

	assert.Equal(t, []core.EntityType{
		core.EntityTypeMoney,
		core.EntityTypeDate,
		core.EntityTypeTime,
		core.EntityTypeCardinal,
		core.EntityTypeGPE,
		core.EntityTypeLocation,
	}, types(entities))

	for i := 1; i < len(entities); i++ {
		assert.LessOrEqual(t, entities[i-1].Span.End, entities[i].Span.Start)
	}
}

func TestRuleRecognizer_CaseSensitivePlaces(t *testing.T) {
	r := newTestRecognizer(t)

	entities, err := r.Recognize(context.Background(), "paris is lowercase here")
	require.NoError(t, err)
	assert.Empty(t, entities)
}

func TestRuleRecognizer_WithPlaces(t *testing.T) {
	r := newTestRecognizer(t,
		WithPlaces(core.EntityTypeGPE, "Gotham"),
		WithPlaces(core.EntityTypeLocation, "Misty Mountains"),
	)

	entities, err := r.Recognize(context.Background(), "From Gotham to the Misty Mountains")
	require.NoError(t, err)
	assert.Equal(t, []core.EntityType{core.EntityTypeGPE, core.EntityTypeLocation}, types(entities))

	_, err = NewRuleRecognizer(WithPlaces(core.EntityTypeMoney, "Gold"))
	assert.ErrorIs(t, err, ErrUnsupportedGazetteerType)
}

func TestRuleRecognizer_EmptyAndCancelled(t *testing.T) {
	r := newTestRecognizer(t)

	entities, err := r.Recognize(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, entities)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Recognize(ctx, "Tomorrow in Paris")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRuleRecognizer_DefaultsToNow(t *testing.T) {
	r, err := NewRuleRecognizer()
	require.NoError(t, err)
	fixed := time.Date(2030, 1, 1, 8, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return fixed }

	entities, err := r.Recognize(context.Background(), "today")
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, "2030-01-01", entities[0].Value)
}

func TestRuleRecognizer_ModalMay(t *testing.T) {
	r := newTestRecognizer(t)
	ctx := context.Background()

	entities, err := r.Recognize(ctx, "You may 3 times ask.")
	require.NoError(t, err)
	assert.Equal(t, []core.EntityType{core.EntityTypeCardinal}, types(entities))
	assert.Equal(t, "3", entities[0].Text)

	entities, err = r.Recognize(ctx, "The launch was on May 3.")
	require.NoError(t, err)
	require.Len(t, entities, 1)
	assert.Equal(t, core.EntityTypeDate, entities[0].Type)
	assert.Equal(t, "May 3", entities[0].Text)
	assert.Equal(t, "2025-05-03", entities[0].Value)

	entities, err = r.Recognize(ctx, "Deadline is 3rd may")
	require.NoError(t, err)
	assert.NotContains(t, types(entities), core.EntityTypeDate)
}

func TestDefaultPlaces_ReturnCopies(t *testing.T) {
	gpe := DefaultGPE()
	require.NotEmpty(t, gpe)
	first := gpe[0]
	gpe[0] = "Nowhere"
	assert.Equal(t, first, DefaultGPE()[0])

	loc := DefaultLOC()
	require.NotEmpty(t, loc)
	firstLoc := loc[0]
	loc[0] = "Nowhere"
	assert.Equal(t, firstLoc, DefaultLOC()[0])
}
