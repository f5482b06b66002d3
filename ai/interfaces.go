package ai

import (
	"context"

	"github.com/poiesic/keywordx/core"
)

// Embedder generates vector embeddings from text for semantic similarity scoring.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts,
	// all of the same dimension.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// EntityRecognizer detects structured entities such as dates, times, money
// amounts and places in text.
// Implementations must be thread-safe for concurrent use.
type EntityRecognizer interface {
	// Recognize returns the entities found in text. The order of the returned
	// slice is meaningful: entity fusion applies entities in this order and the
	// last one for a keyword wins.
	// Returns an empty slice if no entities are found.
	Recognize(ctx context.Context, text string) ([]core.Entity, error)
}

// Chunker splits text into candidate phrases.
// Implementations must be deterministic for identical input.
type Chunker interface {
	// Chunk returns candidate phrases taken from text. It may return an empty
	// slice for empty or degenerate input.
	Chunk(ctx context.Context, text string) ([]string, error)
}

// Whitener normalizes candidate embeddings before scoring.
type Whitener interface {
	// Whiten returns transformed vectors with the same cardinality and order
	// as the input. The input must not be modified.
	Whiten(vectors [][]float32) ([][]float32, error)
}

// Scorer scores candidate phrases against one keyword.
type Scorer interface {
	// Score returns one score per candidate, in candidate order. Higher is
	// better. weighting may be nil. baseline is the embedding of a generic
	// phrase the scorer may use to discount generic-language similarity.
	Score(ctx context.Context, keyword []float32, candidates [][]float32, phrases []string,
		weighting *Weighting, baseline []float32) ([]float64, error)
}

// IDFVectorizer exposes inverse document frequencies learned from a corpus.
type IDFVectorizer interface {
	// IDF returns the inverse document frequency of term and whether the
	// term is part of the vocabulary.
	IDF(term string) (float64, bool)
}

// Weighting carries optional frequency-weighting inputs for a Scorer.
// Either field may be nil. When both know a term, Map takes precedence.
type Weighting struct {
	Vectorizer IDFVectorizer
	Map        map[string]float64
}

// Lookup returns the IDF of term from Map, falling back to Vectorizer.
func (w *Weighting) Lookup(term string) (float64, bool) {
	if w == nil {
		return 0, false
	}
	if v, ok := w.Map[term]; ok {
		return v, true
	}
	if w.Vectorizer != nil {
		return w.Vectorizer.IDF(term)
	}
	return 0, false
}

// AIProvider aggregates the model-backed services for convenient
// initialization and lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// EntityRecognizer returns the entity recognition service.
	// The returned EntityRecognizer is safe for concurrent use.
	EntityRecognizer() EntityRecognizer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
