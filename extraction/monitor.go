package extraction

import (
	"log/slog"

	"github.com/poiesic/keywordx/core"
)

// ExtractionMonitor provides hooks to observe an extraction run.
// Implement this interface to trace intermediate results.
type ExtractionMonitor interface {
	Start(text string, keywords []string)
	AfterChunking(phrases []string)
	AfterScoring(keyword string, phrases []string, scores []float64)
	BelowThreshold(keyword string, phrase string, score float64)
	AfterDeduplication(matches []core.Match)
	AfterEntityRecognition(entities []core.Entity)
	EntityFused(entity core.Entity, match core.Match)
	Finish(result *core.Result)
}

// noopMonitor is a no-op implementation of ExtractionMonitor
type noopMonitor struct{}

var _ ExtractionMonitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_ string, _ []string)                     {}
func (n *noopMonitor) AfterChunking(_ []string)                       {}
func (n *noopMonitor) AfterScoring(_ string, _ []string, _ []float64) {}
func (n *noopMonitor) BelowThreshold(_ string, _ string, _ float64)   {}
func (n *noopMonitor) AfterDeduplication(_ []core.Match)              {}
func (n *noopMonitor) AfterEntityRecognition(_ []core.Entity)         {}
func (n *noopMonitor) EntityFused(_ core.Entity, _ core.Match)        {}
func (n *noopMonitor) Finish(_ *core.Result)                          {}

// LogMonitor writes every extraction step to a slog logger at debug level.
type LogMonitor struct {
	logger *slog.Logger
}

var _ ExtractionMonitor = (*LogMonitor)(nil)

// NewLogMonitor creates a LogMonitor. A nil logger uses slog.Default().
func NewLogMonitor(logger *slog.Logger) *LogMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogMonitor{logger: logger.With("component", "extraction-trace")}
}

func (l *LogMonitor) Start(text string, keywords []string) {
	l.logger.Debug("extraction started", "chars", len(text), "keywords", keywords)
}

func (l *LogMonitor) AfterChunking(phrases []string) {
	l.logger.Debug("chunked text", "phrases", len(phrases))
}

func (l *LogMonitor) AfterScoring(keyword string, phrases []string, scores []float64) {
	if idx := bestIndex(scores); idx >= 0 && idx < len(phrases) {
		l.logger.Debug("scored candidates", "keyword", keyword, "best", phrases[idx], "score", scores[idx])
		return
	}
	l.logger.Debug("scored candidates", "keyword", keyword, "best", nil)
}

func (l *LogMonitor) BelowThreshold(keyword string, phrase string, score float64) {
	l.logger.Debug("best candidate below threshold", "keyword", keyword, "phrase", phrase, "score", score)
}

func (l *LogMonitor) AfterDeduplication(matches []core.Match) {
	l.logger.Debug("deduplicated matches", "count", len(matches))
}

func (l *LogMonitor) AfterEntityRecognition(entities []core.Entity) {
	for _, e := range entities {
		l.logger.Debug("entity", "type", e.Type, "text", e.Text, "start", e.Span.Start, "end", e.Span.End, "value", e.Value)
	}
}

func (l *LogMonitor) EntityFused(entity core.Entity, match core.Match) {
	l.logger.Debug("entity fused", "keyword", match.Keyword, "type", entity.Type, "match", match.Match, "score", match.Score)
}

func (l *LogMonitor) Finish(result *core.Result) {
	l.logger.Debug("extraction finished", "matches", len(result.SemanticMatches), "entities", len(result.Entities))
}
