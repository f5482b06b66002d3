package ner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/poiesic/keywordx/core"
)

var ErrUnsupportedGazetteerType = errors.New("gazetteer entries must be GPE or LOC")

const (
	dateLayout = "2006-01-02"
	timeLayout = "T15:04:05"
)

// RuleRecognizer implements ai.EntityRecognizer with patterns and a place
// gazetteer. It is safe for concurrent use.
type RuleRecognizer struct {
	gpe       []string
	loc       []string
	rules     []rule
	parser    *when.Parser
	reference time.Time
	now       func() time.Time
	logger    *slog.Logger
}

// Option configures a RuleRecognizer.
type Option func(*RuleRecognizer) error

// WithReferenceTime fixes the time relative expressions are resolved
// against. By default the current time at each call is used.
func WithReferenceTime(t time.Time) Option {
	return func(r *RuleRecognizer) error {
		r.reference = t
		return nil
	}
}

// WithPlaces adds names to the GPE or LOC gazetteer.
func WithPlaces(entityType core.EntityType, names ...string) Option {
	return func(r *RuleRecognizer) error {
		switch entityType {
		case core.EntityTypeGPE:
			r.gpe = append(r.gpe, names...)
		case core.EntityTypeLocation:
			r.loc = append(r.loc, names...)
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedGazetteerType, entityType)
		}
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *RuleRecognizer) error {
		r.logger = logger
		return nil
	}
}

func NewRuleRecognizer(opts ...Option) (*RuleRecognizer, error) {
	parser := when.New(nil)
	parser.Add(en.All...)
	parser.Add(common.All...)

	r := &RuleRecognizer{
		gpe:    DefaultGPE(),
		loc:    DefaultLOC(),
		parser: parser,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	r.rules = buildRules(r.gpe, r.loc)
	r.logger = r.logger.With("component", "rule-recognizer")
	return r, nil
}

// Recognize returns non-overlapping entities ordered by position. DATE and
// TIME entities carry a resolved value when the expression can be resolved.
func (r *RuleRecognizer) Recognize(ctx context.Context, text string) ([]core.Entity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entities := make([]core.Entity, 0)
	for _, rl := range r.rules {
		for _, loc := range rl.pattern.FindAllStringIndex(text, -1) {
			span := core.Span{Start: loc[0], End: loc[1]}
			if overlapsAny(entities, span) {
				continue
			}
			entities = append(entities, core.Entity{
				Type: rl.entityType,
				Text: text[span.Start:span.End],
				Span: span,
			})
		}
	}

	slices.SortFunc(entities, func(a, b core.Entity) int {
		return a.Span.Start - b.Span.Start
	})

	reference := r.reference
	if reference.IsZero() {
		reference = r.now()
	}
	for i := range entities {
		switch entities[i].Type {
		case core.EntityTypeDate:
			entities[i].Value = r.resolveDate(entities[i].Text, reference)
		case core.EntityTypeTime:
			entities[i].Value = r.resolveTime(entities[i].Text, reference)
		}
	}

	r.logger.Debug("recognized entities", "count", len(entities))
	return entities, nil
}

func overlapsAny(entities []core.Entity, span core.Span) bool {
	for _, e := range entities {
		if span.Start < e.Span.End && e.Span.Start < span.End {
			return true
		}
	}
	return false
}

func (r *RuleRecognizer) resolveDate(expr string, reference time.Time) string {
	if t, err := time.ParseInLocation(dateLayout, expr, reference.Location()); err == nil {
		return t.Format(dateLayout)
	}
	if t, ok := r.parse(expr, reference); ok {
		return t.Format(dateLayout)
	}
	return ""
}

var clockPattern = regexp.MustCompile(`(?i)^(\d{1,2})(?::(\d{2}))?\s*(a\.m\.|p\.m\.|am|pm)?$`)

func (r *RuleRecognizer) resolveTime(expr string, reference time.Time) string {
	lower := strings.ToLower(strings.TrimSpace(expr))
	switch lower {
	case "noon", "midday":
		return "T12:00:00"
	case "midnight":
		return "T00:00:00"
	}

	if m := clockPattern.FindStringSubmatch(lower); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute := 0
		if m[2] != "" {
			minute, _ = strconv.Atoi(m[2])
		}
		switch strings.ReplaceAll(m[3], ".", "") {
		case "pm":
			if hour < 12 {
				hour += 12
			}
		case "am":
			if hour == 12 {
				hour = 0
			}
		}
		if hour < 24 && minute < 60 {
			return fmt.Sprintf("T%02d:%02d:00", hour, minute)
		}
	}

	if t, ok := r.parse(expr, reference); ok {
		return t.Format(timeLayout)
	}
	return ""
}

func (r *RuleRecognizer) parse(expr string, reference time.Time) (time.Time, bool) {
	result, err := r.parser.Parse(expr, reference)
	if err != nil {
		r.logger.Debug("could not resolve temporal expression", "text", expr, "err", err)
		return time.Time{}, false
	}
	if result == nil {
		return time.Time{}, false
	}
	return result.Time, true
}
