package extraction

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/poiesic/keywordx/ai"
	"github.com/poiesic/keywordx/core"
	"github.com/poiesic/keywordx/text"
	"github.com/poiesic/keywordx/vector"
)

// DefaultBaselineText is the generic phrase whose similarity the scorer
// discounts.
const DefaultBaselineText = "is the a"

// Extractor finds, for each requested keyword, the phrase of a text that best
// matches it, then lets recognized entities override matches for keywords
// that name an entity domain ("date", "time", "money", "number", "place").
//
// An Extractor is read-only after construction. Concurrent Extract calls are
// safe when its collaborators are.
type Extractor struct {
	embedder     ai.Embedder
	recognizer   ai.EntityRecognizer
	chunker      ai.Chunker
	whitener     ai.Whitener
	scorer       ai.Scorer
	baselineText string
	weights      core.EntityWeights
	logger       *slog.Logger
}

// Option configures an Extractor.
type Option func(*Extractor) error

// WithBaselineText sets the generic phrase used to discount filler
// candidates. Default is DefaultBaselineText.
func WithBaselineText(baseline string) Option {
	return func(e *Extractor) error {
		e.baselineText = baseline
		return nil
	}
}

// WithEntityWeights sets the boost applied to fused matches per entity type.
// Keys must be valid entity types and weights positive.
func WithEntityWeights(weights map[core.EntityType]float64) Option {
	return func(e *Extractor) error {
		validated, err := core.ValidateEntityWeights(weights)
		if err != nil {
			return err
		}
		e.weights = validated
		return nil
	}
}

// WithRawEntityWeights accepts weights from decoded configuration, such as a
// map[string]any read from YAML or JSON.
func WithRawEntityWeights(weights any) Option {
	return func(e *Extractor) error {
		parsed, err := core.ParseEntityWeights(weights)
		if err != nil {
			return err
		}
		e.weights = parsed
		return nil
	}
}

// WithChunker replaces the default text.PhraseChunker.
func WithChunker(chunker ai.Chunker) Option {
	return func(e *Extractor) error {
		if chunker == nil {
			return ErrChunkerRequired
		}
		e.chunker = chunker
		return nil
	}
}

// WithWhitener replaces the default vector.MeanCenterWhitener.
func WithWhitener(whitener ai.Whitener) Option {
	return func(e *Extractor) error {
		if whitener == nil {
			return ErrWhitenerRequired
		}
		e.whitener = whitener
		return nil
	}
}

// WithScorer replaces the default vector.CosineScorer.
func WithScorer(scorer ai.Scorer) Option {
	return func(e *Extractor) error {
		if scorer == nil {
			return ErrScorerRequired
		}
		e.scorer = scorer
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) error {
		if logger == nil {
			logger = slog.Default()
		}
		e.logger = logger
		return nil
	}
}

// NewExtractor creates an extractor that embeds and recognizes entities with
// provider. Invalid entity weights are reported here, never by Extract.
func NewExtractor(provider ai.AIProvider, opts ...Option) (*Extractor, error) {
	if provider == nil {
		return nil, ErrAIProviderRequired
	}
	if provider.Embedder() == nil {
		return nil, ErrEmbedderRequired
	}
	if provider.EntityRecognizer() == nil {
		return nil, ErrRecognizerRequired
	}

	chunker, err := text.NewPhraseChunker()
	if err != nil {
		return nil, err
	}
	scorer, err := vector.NewCosineScorer()
	if err != nil {
		return nil, err
	}

	e := &Extractor{
		embedder:     provider.Embedder(),
		recognizer:   provider.EntityRecognizer(),
		chunker:      chunker,
		whitener:     vector.NewMeanCenterWhitener(),
		scorer:       scorer,
		baselineText: DefaultBaselineText,
		weights:      core.EntityWeights{},
		logger:       slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	e.logger = e.logger.With("component", "extractor")

	return e, nil
}

// Weights returns a copy of the configured entity weights.
func (e *Extractor) Weights() core.EntityWeights {
	out := make(core.EntityWeights, len(e.weights))
	for k, v := range e.weights {
		out[k] = v
	}
	return out
}

// BaselineText returns the configured baseline phrase.
func (e *Extractor) BaselineText() string {
	return e.baselineText
}

type extractConfig struct {
	minScore  float64
	weighting *ai.Weighting
	monitor   ExtractionMonitor
}

// ExtractOption configures a single Extract call.
type ExtractOption func(*extractConfig)

// WithMinScore sets the minimum similarity for semantic matches.
// Default is DefaultMinScore.
func WithMinScore(minScore float64) ExtractOption {
	return func(c *extractConfig) {
		c.minScore = minScore
	}
}

// WithWeighting passes IDF weighting inputs to the scorer.
func WithWeighting(weighting *ai.Weighting) ExtractOption {
	return func(c *extractConfig) {
		c.weighting = weighting
	}
}

// WithMonitor observes the run. A nil monitor is ignored.
func WithMonitor(monitor ExtractionMonitor) ExtractOption {
	return func(c *extractConfig) {
		if monitor != nil {
			c.monitor = monitor
		}
	}
}

// ResolveMinScore returns the minimum score an Extract call with opts uses.
func ResolveMinScore(opts ...ExtractOption) float64 {
	cfg := extractConfig{minScore: DefaultMinScore}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg.minScore
}

// Extract matches keywords against text and fuses recognized entities into
// the result. Errors from collaborators are returned as is. There are no
// partial results.
func (e *Extractor) Extract(ctx context.Context, text string, keywords []string, opts ...ExtractOption) (*core.Result, error) {
	cfg := extractConfig{
		minScore: DefaultMinScore,
		monitor:  &noopMonitor{},
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	monitor := cfg.monitor

	monitor.Start(text, keywords)

	// 1. Chunk
	phrases, err := e.chunker.Chunk(ctx, text)
	if err != nil {
		e.logger.Error("error chunking text", "err", err)
		return nil, err
	}
	monitor.AfterChunking(phrases)

	// 2-3. Embed, whiten, score and select
	var matches []core.Match
	if len(phrases) > 0 && len(keywords) > 0 {
		matches, err = e.semanticMatches(ctx, phrases, keywords, &cfg)
		if err != nil {
			return nil, err
		}
	}

	// 4. Deduplicate
	matches = Deduplicate(matches)
	monitor.AfterDeduplication(matches)

	// 5. Recognize entities on the full text
	entities, err := e.recognizer.Recognize(ctx, text)
	if err != nil {
		e.logger.Error("error recognizing entities", "err", err)
		return nil, err
	}
	if entities == nil {
		entities = []core.Entity{}
	}
	monitor.AfterEntityRecognition(entities)

	// 6. Fuse
	fused := fuse(matches, entities, keywords, e.weights, monitor.EntityFused)

	result := &core.Result{
		SemanticMatches: fused,
		Entities:        entities,
	}
	monitor.Finish(result)

	e.logger.Debug("extraction complete",
		"keywords", len(keywords),
		"phrases", len(phrases),
		"matches", len(fused),
		"entities", len(entities))

	return result, nil
}

func (e *Extractor) semanticMatches(ctx context.Context, phrases, keywords []string, cfg *extractConfig) ([]core.Match, error) {
	candidates, err := e.embedder.EmbedTexts(ctx, phrases)
	if err != nil {
		e.logger.Error("error embedding candidate phrases", "err", err)
		return nil, err
	}
	if len(candidates) != len(phrases) {
		return nil, fmt.Errorf("%w: embedder returned %d vectors for %d phrases",
			ErrCollaboratorContract, len(candidates), len(phrases))
	}

	whitened, err := e.whitener.Whiten(candidates)
	if err != nil {
		e.logger.Error("error whitening candidate embeddings", "err", err)
		return nil, err
	}
	if len(whitened) != len(candidates) {
		return nil, fmt.Errorf("%w: whitener returned %d vectors for %d",
			ErrCollaboratorContract, len(whitened), len(candidates))
	}

	// Keywords and the baseline share one batch and are not whitened
	queries := make([]string, 0, len(keywords)+1)
	queries = append(queries, keywords...)
	queries = append(queries, e.baselineText)
	queryVectors, err := e.embedder.EmbedTexts(ctx, queries)
	if err != nil {
		e.logger.Error("error embedding keywords", "err", err)
		return nil, err
	}
	if len(queryVectors) != len(queries) {
		return nil, fmt.Errorf("%w: embedder returned %d vectors for %d keywords and baseline",
			ErrCollaboratorContract, len(queryVectors), len(queries))
	}
	baseline := queryVectors[len(keywords)]

	matches := make([]core.Match, 0, len(keywords))
	for i, keyword := range keywords {
		scores, err := e.scorer.Score(ctx, queryVectors[i], whitened, phrases, cfg.weighting, baseline)
		if err != nil {
			e.logger.Error("error scoring candidates", "keyword", keyword, "err", err)
			return nil, err
		}
		if len(scores) != len(phrases) {
			return nil, fmt.Errorf("%w: scorer returned %d scores for %d phrases",
				ErrCollaboratorContract, len(scores), len(phrases))
		}
		cfg.monitor.AfterScoring(keyword, phrases, scores)

		m, ok := SelectBest(keyword, phrases, scores, cfg.minScore)
		if !ok {
			if idx := bestIndex(scores); idx >= 0 {
				cfg.monitor.BelowThreshold(keyword, phrases[idx], scores[idx])
			}
			continue
		}
		matches = append(matches, m)
	}
	return matches, nil
}
