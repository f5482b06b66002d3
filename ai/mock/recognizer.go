package mock

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/poiesic/keywordx/core"
)

// MockRecognizer is a test double for ai.EntityRecognizer.
// It allows custom behavior injection via function fields.
type MockRecognizer struct {
	// RecognizeFunc is called by Recognize if set.
	// If nil, Entities is returned with spans located in the text.
	RecognizeFunc func(ctx context.Context, text string) ([]core.Entity, error)

	// Entities is the default response.
	Entities []core.Entity

	callCount atomic.Int64
}

// NewMockRecognizer creates a mock recognizer that returns the given entities.
// Note: Returns concrete type to allow test assertions via GetMockRecognizer().
func NewMockRecognizer(entities ...core.Entity) *MockRecognizer {
	return &MockRecognizer{Entities: entities}
}

// Recognize returns the configured entities.
// Entities without a span get one from the first occurrence of their text.
func (m *MockRecognizer) Recognize(ctx context.Context, text string) ([]core.Entity, error) {
	m.callCount.Add(1)

	if m.RecognizeFunc != nil {
		return m.RecognizeFunc(ctx, text)
	}

	out := make([]core.Entity, len(m.Entities))
	for i, e := range m.Entities {
		if e.Span == (core.Span{}) {
			if idx := strings.Index(text, e.Text); idx >= 0 {
				e.Span = core.Span{Start: idx, End: idx + len(e.Text)}
			}
		}
		out[i] = e
	}
	return out, nil
}

// CallCount returns the number of times Recognize was called.
func (m *MockRecognizer) CallCount() int {
	return int(m.callCount.Load())
}

// Reset clears the call count and custom functions.
func (m *MockRecognizer) Reset() {
	m.callCount.Store(0)
	m.RecognizeFunc = nil
}
