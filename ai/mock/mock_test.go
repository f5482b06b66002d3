package mock

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/poiesic/keywordx/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockEmbedder_Deterministic(t *testing.T) {
	ctx := context.Background()
	e := NewMockEmbedder()

	v1, err := e.EmbedText(ctx, "meeting")
	require.NoError(t, err)
	v2, err := e.EmbedText(ctx, "meeting")
	require.NoError(t, err)

	assert.Equal(t, v1, v2)
	assert.Len(t, v1, 384)

	var sum float64
	for _, x := range v1 {
		sum += float64(x) * float64(x)
	}
	assert.InDelta(t, 1.0, math.Sqrt(sum), 1e-4)
	assert.Equal(t, 2, e.CallCount())
}

func TestMockEmbedder_EmbedTextsUsesEmbedTextFunc(t *testing.T) {
	e := NewMockEmbedder()
	e.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{float32(len(text))}, nil
	}

	got, err := e.EmbedTexts(context.Background(), []string{"a", "abc"})
	require.NoError(t, err)
	assert.Equal(t, [][]float32{{1}, {3}}, got)

	e.Reset()
	assert.Equal(t, 0, e.CallCount())
	assert.Nil(t, e.EmbedTextFunc)
}

func TestMockRecognizer(t *testing.T) {
	ctx := context.Background()

	t.Run("fills spans", func(t *testing.T) {
		r := NewMockRecognizer(core.Entity{Type: core.EntityTypeGPE, Text: "Bangalore"})

		got, err := r.Recognize(ctx, "meeting in Bangalore")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, core.Span{Start: 11, End: 20}, got[0].Span)
		assert.Equal(t, 1, r.CallCount())
	})

	t.Run("custom func", func(t *testing.T) {
		boom := errors.New("recognizer down")
		r := NewMockRecognizer()
		r.RecognizeFunc = func(ctx context.Context, text string) ([]core.Entity, error) {
			return nil, boom
		}

		_, err := r.Recognize(ctx, "text")
		assert.Same(t, boom, err)
	})
}

func TestMockProvider(t *testing.T) {
	p := NewMockProvider().(*MockProvider)

	assert.NotNil(t, p.Embedder())
	assert.NotNil(t, p.EntityRecognizer())
	assert.Same(t, p.GetMockEmbedder(), p.Embedder())
	assert.Same(t, p.GetMockRecognizer(), p.EntityRecognizer())

	require.NoError(t, p.Close())
	assert.True(t, p.Closed())
}
