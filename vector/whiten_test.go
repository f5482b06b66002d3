package vector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeanCenterWhitener_Whiten(t *testing.T) {
	w := NewMeanCenterWhitener()

	t.Run("centers and normalizes", func(t *testing.T) {
		input := [][]float32{
			{1, 1},
			{3, 1},
		}

		out, err := w.Whiten(input)
		require.NoError(t, err)
		require.Len(t, out, 2)

		// Centroid is (2, 1): the shared component disappears
		assert.InDeltaSlice(t, []float32{-1, 0}, out[0], 1e-6)
		assert.InDeltaSlice(t, []float32{1, 0}, out[1], 1e-6)

		// Input untouched
		assert.Equal(t, []float32{1, 1}, input[0])
		assert.Equal(t, []float32{3, 1}, input[1])
	})

	t.Run("preserves cardinality and order", func(t *testing.T) {
		input := [][]float32{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1}}

		out, err := w.Whiten(input)
		require.NoError(t, err)
		require.Len(t, out, len(input))
		for _, v := range out[:3] {
			assert.InDelta(t, 1.0, Norm(v), 1e-6)
		}
		// The fourth vector lies on the centroid direction and survives centering
		assert.InDelta(t, 1.0, Norm(out[3]), 1e-6)
	})

	t.Run("single vector is only normalized", func(t *testing.T) {
		out, err := w.Whiten([][]float32{{0, 2}})
		require.NoError(t, err)
		require.Len(t, out, 1)
		assert.InDeltaSlice(t, []float32{0, 1}, out[0], 1e-6)
	})

	t.Run("identical vectors become zero", func(t *testing.T) {
		out, err := w.Whiten([][]float32{{1, 2}, {1, 2}})
		require.NoError(t, err)
		assert.Equal(t, []float32{0, 0}, out[0])
		assert.Equal(t, []float32{0, 0}, out[1])
	})

	t.Run("empty", func(t *testing.T) {
		out, err := w.Whiten(nil)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("dimension mismatch", func(t *testing.T) {
		_, err := w.Whiten([][]float32{{1, 2}, {1, 2, 3}})
		assert.ErrorIs(t, err, ErrDimensionMismatch)
	})
}
