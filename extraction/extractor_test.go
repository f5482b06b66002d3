package extraction

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/keywordx/ai"
	"github.com/poiesic/keywordx/ai/mock"
	"github.com/poiesic/keywordx/core"
	"github.com/poiesic/keywordx/ner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const meetingText = "Tomorrow I have a work meeting at 5pm in Bangalore."

type chunkerFunc func(ctx context.Context, text string) ([]string, error)

func (f chunkerFunc) Chunk(ctx context.Context, text string) ([]string, error) {
	return f(ctx, text)
}

func fixedChunks(phrases ...string) ai.Chunker {
	return chunkerFunc(func(context.Context, string) ([]string, error) {
		return phrases, nil
	})
}

// identityWhitener records what it was given and returns it.
type identityWhitener struct {
	calls int
	seen  [][]float32
}

func (w *identityWhitener) Whiten(vectors [][]float32) ([][]float32, error) {
	w.calls++
	w.seen = vectors
	return vectors, nil
}

// stubScorer returns canned scores, one slice per keyword in call order.
type stubScorer struct {
	scores    [][]float64
	err       error
	calls     int
	weighting *ai.Weighting
	baseline  []float32
	ctx       context.Context
}

func (s *stubScorer) Score(ctx context.Context, keyword []float32, candidates [][]float32, phrases []string,
	weighting *ai.Weighting, baseline []float32) ([]float64, error) {
	s.ctx = ctx
	s.weighting = weighting
	s.baseline = baseline
	if s.err != nil {
		return nil, s.err
	}
	out := s.scores[s.calls%len(s.scores)]
	s.calls++
	return out, nil
}

func ruleRecognizer(t *testing.T) *mock.MockRecognizer {
	t.Helper()
	r, err := ner.NewRuleRecognizer(ner.WithReferenceTime(time.Date(2025, 6, 6, 9, 0, 0, 0, time.UTC)))
	require.NoError(t, err)

	m := mock.NewMockRecognizer()
	m.RecognizeFunc = r.Recognize
	return m
}

func newExtractor(t *testing.T, recognizer *mock.MockRecognizer, opts ...Option) (*Extractor, *mock.MockEmbedder) {
	t.Helper()
	embedder := mock.NewMockEmbedder()
	e, err := NewExtractor(mock.NewMockProviderWithServices(embedder, recognizer), opts...)
	require.NoError(t, err)
	return e, embedder
}

func assertUniqueKeywords(t *testing.T, matches []core.Match) {
	t.Helper()
	seen := make(map[string]bool)
	for _, m := range matches {
		assert.False(t, seen[m.Keyword], "duplicate keyword %q", m.Keyword)
		seen[m.Keyword] = true
	}
}

func TestExtract_MeetingScenarioWithWeights(t *testing.T) {
	e, _ := newExtractor(t, ruleRecognizer(t), WithEntityWeights(map[core.EntityType]float64{
		core.EntityTypeDate: 1.5,
		core.EntityTypeGPE:  1.2,
		core.EntityTypeTime: 0.8,
	}))

	result, err := e.Extract(context.Background(), meetingText, []string{"meeting", "time", "place", "date"})
	require.NoError(t, err)

	require.Len(t, result.Entities, 3)
	assert.Equal(t, core.EntityTypeDate, result.Entities[0].Type)
	assert.Equal(t, core.EntityTypeTime, result.Entities[1].Type)
	assert.Contains(t, []core.EntityType{core.EntityTypeGPE, core.EntityTypeLocation}, result.Entities[2].Type)

	date, ok := result.MatchFor("date")
	require.True(t, ok)
	assert.Equal(t, 1.5, date.Score)
	assert.Equal(t, "Tomorrow", date.Match)
	assert.Equal(t, core.SourceEntity, date.Source)

	place, ok := result.MatchFor("place")
	require.True(t, ok)
	assert.Equal(t, 1.2, place.Score)
	assert.Equal(t, "Bangalore", place.Match)

	tm, ok := result.MatchFor("time")
	require.True(t, ok)
	assert.Equal(t, 0.8, tm.Score)
	assert.Equal(t, "5pm", tm.Match)

	assertUniqueKeywords(t, result.SemanticMatches)
}

func TestExtract_MeetingScenarioDefaultWeights(t *testing.T) {
	e, _ := newExtractor(t, ruleRecognizer(t))

	result, err := e.Extract(context.Background(), meetingText, []string{"meeting", "time", "place", "date"})
	require.NoError(t, err)

	for _, keyword := range []string{"date", "time", "place"} {
		m, ok := result.MatchFor(keyword)
		require.True(t, ok, keyword)
		assert.Equal(t, 1.0, m.Score, keyword)
	}
}

func TestExtract_BoostCapped(t *testing.T) {
	e, _ := newExtractor(t, ruleRecognizer(t), WithEntityWeights(map[core.EntityType]float64{
		core.EntityTypeDate: 9.0,
	}))

	result, err := e.Extract(context.Background(), meetingText, []string{"date"})
	require.NoError(t, err)

	m, ok := result.MatchFor("date")
	require.True(t, ok)
	assert.Equal(t, MaxBoost, m.Score)
	for _, m := range result.SemanticMatches {
		if m.Source == core.SourceEntity {
			assert.LessOrEqual(t, m.Score, MaxBoost)
		}
	}
}

func TestExtract_SemanticMatches(t *testing.T) {
	phrases := []string{"work meeting", "5pm", "Bangalore"}

	t.Run("non-domain keyword yields one semantic match", func(t *testing.T) {
		scorer := &stubScorer{scores: [][]float64{{0.81, 0.2, 0.1}}}
		e, _ := newExtractor(t, mock.NewMockRecognizer(),
			WithChunker(fixedChunks(phrases...)), WithScorer(scorer))

		result, err := e.Extract(context.Background(), meetingText, []string{"meeting"})
		require.NoError(t, err)

		assert.Equal(t, []core.Match{semantic("meeting", "work meeting", 0.81)}, result.SemanticMatches)
	})

	t.Run("below threshold and no entity yields nothing", func(t *testing.T) {
		scorer := &stubScorer{scores: [][]float64{{0.81, 0.2, 0.1}, {0.1, 0.2, 0.25}}}
		e, _ := newExtractor(t, mock.NewMockRecognizer(),
			WithChunker(fixedChunks(phrases...)), WithScorer(scorer))

		result, err := e.Extract(context.Background(), meetingText, []string{"meeting", "budget"})
		require.NoError(t, err)

		_, ok := result.MatchFor("budget")
		assert.False(t, ok)
		assert.Len(t, result.SemanticMatches, 1)
	})

	t.Run("min score option", func(t *testing.T) {
		scorer := &stubScorer{scores: [][]float64{{0.1, 0.2, 0.25}}}
		e, _ := newExtractor(t, mock.NewMockRecognizer(),
			WithChunker(fixedChunks(phrases...)), WithScorer(scorer))

		result, err := e.Extract(context.Background(), meetingText, []string{"budget"}, WithMinScore(0.2))
		require.NoError(t, err)
		assert.Equal(t, []core.Match{semantic("budget", "Bangalore", 0.25)}, result.SemanticMatches)
	})

	t.Run("candidates reused across keywords", func(t *testing.T) {
		scorer := &stubScorer{scores: [][]float64{{0.9, 0.1, 0.1}}}
		e, _ := newExtractor(t, mock.NewMockRecognizer(),
			WithChunker(fixedChunks(phrases...)), WithScorer(scorer))

		result, err := e.Extract(context.Background(), meetingText, []string{"meeting", "appointment"})
		require.NoError(t, err)
		assert.Equal(t, []core.Match{
			semantic("meeting", "work meeting", 0.9),
			semantic("appointment", "work meeting", 0.9),
		}, result.SemanticMatches)
	})

	t.Run("repeated keywords collapse", func(t *testing.T) {
		scorer := &stubScorer{scores: [][]float64{{0.4, 0.1, 0.1}, {0.1, 0.6, 0.1}}}
		e, _ := newExtractor(t, mock.NewMockRecognizer(),
			WithChunker(fixedChunks(phrases...)), WithScorer(scorer))

		result, err := e.Extract(context.Background(), meetingText, []string{"meeting", "meeting"})
		require.NoError(t, err)
		assert.Equal(t, []core.Match{semantic("meeting", "5pm", 0.6)}, result.SemanticMatches)
	})

	t.Run("entity overrides semantic match", func(t *testing.T) {
		scorer := &stubScorer{scores: [][]float64{{0.1, 0.1, 0.99}}}
		recognizer := mock.NewMockRecognizer(core.Entity{Type: core.EntityTypeGPE, Text: "Bangalore"})
		e, _ := newExtractor(t, recognizer,
			WithChunker(fixedChunks(phrases...)), WithScorer(scorer),
			WithEntityWeights(map[core.EntityType]float64{core.EntityTypeGPE: 0.5}))

		result, err := e.Extract(context.Background(), meetingText, []string{"place"})
		require.NoError(t, err)
		assert.Equal(t, []core.Match{fused("place", "Bangalore", 0.5)}, result.SemanticMatches)
	})
}

func TestExtract_PipelineWiring(t *testing.T) {
	phrases := []string{"work meeting", "5pm"}
	whitener := &identityWhitener{}
	scorer := &stubScorer{scores: [][]float64{{0.5, 0.4}}}

	var batches [][]string
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{float32(len(text)), 1}, nil
	}
	inner := embedder.EmbedTextFunc
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		batches = append(batches, append([]string(nil), texts...))
		out := make([][]float32, len(texts))
		for i, text := range texts {
			out[i], _ = inner(ctx, text)
		}
		return out, nil
	}

	provider := mock.NewMockProviderWithServices(embedder, mock.NewMockRecognizer())
	e, err := NewExtractor(provider,
		WithChunker(fixedChunks(phrases...)),
		WithWhitener(whitener),
		WithScorer(scorer),
		WithBaselineText("generic words"))
	require.NoError(t, err)

	type ctxKey struct{}
	ctx := context.WithValue(context.Background(), ctxKey{}, "request")
	weighting := &ai.Weighting{Map: map[string]float64{"meeting": 2.0}}

	_, err = e.Extract(ctx, meetingText, []string{"meeting", "time"}, WithWeighting(weighting))
	require.NoError(t, err)

	// Candidates first, then keywords and baseline in one batch
	require.Len(t, batches, 2)
	assert.Equal(t, phrases, batches[0])
	assert.Equal(t, []string{"meeting", "time", "generic words"}, batches[1])

	// Only candidates are whitened
	assert.Equal(t, 1, whitener.calls)
	assert.Len(t, whitener.seen, len(phrases))

	// Baseline vector, weighting and context reach the scorer
	assert.Equal(t, 2, scorer.calls)
	assert.Equal(t, []float32{float32(len("generic words")), 1}, scorer.baseline)
	assert.Same(t, weighting, scorer.weighting)
	assert.Equal(t, "request", scorer.ctx.Value(ctxKey{}))
}

func TestExtract_EmptyInputs(t *testing.T) {
	t.Run("no keywords still recognizes entities", func(t *testing.T) {
		recognizer := mock.NewMockRecognizer(core.Entity{Type: core.EntityTypeDate, Text: "Tomorrow"})
		e, embedder := newExtractor(t, recognizer)

		result, err := e.Extract(context.Background(), meetingText, nil)
		require.NoError(t, err)

		assert.Empty(t, result.SemanticMatches)
		assert.Len(t, result.Entities, 1)
		assert.Equal(t, 0, embedder.CallCount())
		assert.Equal(t, 1, recognizer.CallCount())
	})

	t.Run("no chunks yields no semantic matches", func(t *testing.T) {
		recognizer := mock.NewMockRecognizer()
		e, embedder := newExtractor(t, recognizer, WithChunker(fixedChunks()))

		result, err := e.Extract(context.Background(), "...", []string{"meeting"})
		require.NoError(t, err)

		assert.Empty(t, result.SemanticMatches)
		assert.Empty(t, result.Entities)
		assert.NotNil(t, result.Entities)
		assert.Equal(t, 0, embedder.CallCount())
	})

	t.Run("no chunks but entity fused", func(t *testing.T) {
		recognizer := mock.NewMockRecognizer(core.Entity{Type: core.EntityTypeMoney, Text: "$5"})
		e, _ := newExtractor(t, recognizer, WithChunker(fixedChunks()))

		result, err := e.Extract(context.Background(), "$5", []string{"money"})
		require.NoError(t, err)
		assert.Equal(t, []core.Match{fused("money", "$5", 1.0)}, result.SemanticMatches)
	})
}

func TestExtract_CollaboratorErrors(t *testing.T) {
	boom := errors.New("collaborator failed")
	phrases := []string{"work meeting"}

	t.Run("chunker", func(t *testing.T) {
		chunker := chunkerFunc(func(context.Context, string) ([]string, error) { return nil, boom })
		e, _ := newExtractor(t, mock.NewMockRecognizer(), WithChunker(chunker))

		result, err := e.Extract(context.Background(), meetingText, []string{"meeting"})
		assert.Same(t, boom, err)
		assert.Nil(t, result)
	})

	t.Run("embedder", func(t *testing.T) {
		recognizer := mock.NewMockRecognizer()
		e, embedder := newExtractor(t, recognizer, WithChunker(fixedChunks(phrases...)))
		embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) { return nil, boom }

		result, err := e.Extract(context.Background(), meetingText, []string{"meeting"})
		assert.Same(t, boom, err)
		assert.Nil(t, result)
		assert.Equal(t, 0, recognizer.CallCount())
	})

	t.Run("scorer", func(t *testing.T) {
		e, _ := newExtractor(t, mock.NewMockRecognizer(),
			WithChunker(fixedChunks(phrases...)), WithScorer(&stubScorer{err: boom}))

		_, err := e.Extract(context.Background(), meetingText, []string{"meeting"})
		assert.Same(t, boom, err)
	})

	t.Run("recognizer", func(t *testing.T) {
		recognizer := mock.NewMockRecognizer()
		recognizer.RecognizeFunc = func(context.Context, string) ([]core.Entity, error) { return nil, boom }
		e, _ := newExtractor(t, recognizer)

		result, err := e.Extract(context.Background(), meetingText, []string{"meeting"})
		assert.ErrorIs(t, err, boom)
		assert.Same(t, boom, err)
		assert.Nil(t, result)
	})
}

func TestExtract_ContractViolations(t *testing.T) {
	phrases := []string{"work meeting", "5pm"}

	t.Run("scorer cardinality", func(t *testing.T) {
		e, _ := newExtractor(t, mock.NewMockRecognizer(),
			WithChunker(fixedChunks(phrases...)), WithScorer(&stubScorer{scores: [][]float64{{0.9}}}))

		_, err := e.Extract(context.Background(), meetingText, []string{"meeting"})
		assert.ErrorIs(t, err, ErrCollaboratorContract)
	})

	t.Run("embedder cardinality", func(t *testing.T) {
		e, embedder := newExtractor(t, mock.NewMockRecognizer(), WithChunker(fixedChunks(phrases...)))
		embedder.EmbedTextsFunc = func(context.Context, []string) ([][]float32, error) {
			return [][]float32{{1, 0}}, nil
		}

		_, err := e.Extract(context.Background(), meetingText, []string{"meeting"})
		assert.ErrorIs(t, err, ErrCollaboratorContract)
	})
}

// recordingMonitor records the order hooks are called in.
type recordingMonitor struct {
	events []string
	below  []string
	fused  []string
}

func (m *recordingMonitor) Start(string, []string) {
	m.events = append(m.events, "start")
}

func (m *recordingMonitor) AfterChunking([]string) {
	m.events = append(m.events, "chunk")
}

func (m *recordingMonitor) AfterScoring(string, []string, []float64) {
	m.events = append(m.events, "score")
}

func (m *recordingMonitor) BelowThreshold(keyword string, _ string, _ float64) {
	m.below = append(m.below, keyword)
}

func (m *recordingMonitor) AfterDeduplication([]core.Match) {
	m.events = append(m.events, "dedup")
}

func (m *recordingMonitor) AfterEntityRecognition([]core.Entity) {
	m.events = append(m.events, "entities")
}

func (m *recordingMonitor) EntityFused(_ core.Entity, match core.Match) {
	m.fused = append(m.fused, match.Keyword)
}

func (m *recordingMonitor) Finish(*core.Result) {
	m.events = append(m.events, "finish")
}

func TestExtract_Monitor(t *testing.T) {
	scorer := &stubScorer{scores: [][]float64{{0.9, 0.1}, {0.1, 0.2}}}
	recognizer := mock.NewMockRecognizer(core.Entity{Type: core.EntityTypeTime, Text: "5pm"})
	e, _ := newExtractor(t, recognizer, WithChunker(fixedChunks("work meeting", "5pm")), WithScorer(scorer))

	monitor := &recordingMonitor{}
	_, err := e.Extract(context.Background(), meetingText, []string{"meeting", "time"}, WithMonitor(monitor))
	require.NoError(t, err)

	assert.Equal(t, []string{"start", "chunk", "score", "score", "dedup", "entities", "finish"}, monitor.events)
	assert.Equal(t, []string{"time"}, monitor.below)
	assert.Equal(t, []string{"time"}, monitor.fused)
}

func TestExtract_LogMonitor(t *testing.T) {
	e, _ := newExtractor(t, ruleRecognizer(t))
	monitor := NewLogMonitor(slog.New(slog.DiscardHandler))

	result, err := e.Extract(context.Background(), meetingText, []string{"place"}, WithMonitor(monitor))
	require.NoError(t, err)
	_, ok := result.MatchFor("place")
	assert.True(t, ok)
}

func TestExtract_Concurrent(t *testing.T) {
	e, _ := newExtractor(t, ruleRecognizer(t), WithEntityWeights(map[core.EntityType]float64{core.EntityTypeDate: 1.5}))

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := e.Extract(context.Background(), meetingText, []string{"date", "meeting"})
			if err != nil {
				errs <- err
				return
			}
			if m, ok := result.MatchFor("date"); !ok || m.Score != 1.5 {
				errs <- errors.New("unexpected date match")
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Error(err)
	}
}

func TestNewExtractor(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		e, err := NewExtractor(mock.NewMockProvider())
		require.NoError(t, err)
		assert.Equal(t, DefaultBaselineText, e.BaselineText())
		assert.Empty(t, e.Weights())
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewExtractor(nil)
		assert.ErrorIs(t, err, ErrAIProviderRequired)
	})

	t.Run("nil collaborators", func(t *testing.T) {
		_, err := NewExtractor(mock.NewMockProvider(), WithChunker(nil))
		assert.ErrorIs(t, err, ErrChunkerRequired)

		_, err = NewExtractor(mock.NewMockProvider(), WithWhitener(nil))
		assert.ErrorIs(t, err, ErrWhitenerRequired)

		_, err = NewExtractor(mock.NewMockProvider(), WithScorer(nil))
		assert.ErrorIs(t, err, ErrScorerRequired)
	})

	t.Run("invalid entity types listed", func(t *testing.T) {
		_, err := NewExtractor(mock.NewMockProvider(), WithEntityWeights(map[core.EntityType]float64{
			"PERSON":            1.0,
			"DATE":              1.5,
			"ORGANIZATION":      1.0,
			core.EntityTypeTime: 0.8,
		}))
		require.Error(t, err)
		assert.ErrorIs(t, err, core.ErrInvalidEntityTypes)
		assert.ErrorIs(t, err, core.ErrInvalidEntityWeights)
		assert.Contains(t, err.Error(), "PERSON")
		assert.Contains(t, err.Error(), "ORGANIZATION")
		assert.Contains(t, err.Error(), `["CARDINAL" "DATE" "GPE" "LOC" "MONEY" "TIME"]`)
	})

	t.Run("non-positive weight", func(t *testing.T) {
		_, err := NewExtractor(mock.NewMockProvider(), WithEntityWeights(map[core.EntityType]float64{
			core.EntityTypeDate: 0,
		}))
		assert.ErrorIs(t, err, core.ErrInvalidEntityWeight)
	})

	t.Run("raw weights", func(t *testing.T) {
		e, err := NewExtractor(mock.NewMockProvider(), WithRawEntityWeights(map[string]any{
			"DATE": 1.5,
			"GPE":  2,
		}))
		require.NoError(t, err)
		assert.Equal(t, core.EntityWeights{core.EntityTypeDate: 1.5, core.EntityTypeGPE: 2.0}, e.Weights())
	})

	t.Run("raw weights of wrong type", func(t *testing.T) {
		for _, raw := range []any{"DATE=1.5", []string{"DATE"}, 42} {
			_, err := NewExtractor(mock.NewMockProvider(), WithRawEntityWeights(raw))
			assert.ErrorIs(t, err, core.ErrEntityWeightsType, "%T", raw)
		}
	})

	t.Run("caller map not retained", func(t *testing.T) {
		weights := map[core.EntityType]float64{core.EntityTypeDate: 1.5}
		e, err := NewExtractor(mock.NewMockProvider(), WithEntityWeights(weights))
		require.NoError(t, err)

		weights[core.EntityTypeDate] = 0.1
		assert.Equal(t, 1.5, e.Weights()[core.EntityTypeDate])
	})
}

func TestResolveMinScore(t *testing.T) {
	assert.Equal(t, DefaultMinScore, ResolveMinScore())
	assert.Equal(t, 0.7, ResolveMinScore(WithMinScore(0.5), WithMinScore(0.7)))
	assert.Equal(t, DefaultMinScore, ResolveMinScore(WithWeighting(nil)))
}
