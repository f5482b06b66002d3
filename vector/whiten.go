package vector

// MeanCenterWhitener subtracts the centroid of a batch and L2-normalizes each
// vector. Batches of fewer than two vectors are only normalized, since their
// centroid is the vector itself.
type MeanCenterWhitener struct{}

func NewMeanCenterWhitener() *MeanCenterWhitener {
	return &MeanCenterWhitener{}
}

// Whiten returns new vectors in input order. The input is not modified.
func (w *MeanCenterWhitener) Whiten(vectors [][]float32) ([][]float32, error) {
	out := make([][]float32, len(vectors))
	if len(vectors) == 0 {
		return out, nil
	}

	dim := len(vectors[0])
	for _, v := range vectors[1:] {
		if len(v) != dim {
			return nil, ErrDimensionMismatch
		}
	}

	if len(vectors) < 2 {
		out[0] = Normalize(vectors[0])
		return out, nil
	}

	centroid := make([]float64, dim)
	for _, v := range vectors {
		for i, val := range v {
			centroid[i] += float64(val)
		}
	}
	n := float64(len(vectors))
	for i := range centroid {
		centroid[i] /= n
	}

	centered := make([]float32, dim)
	for j, v := range vectors {
		for i, val := range v {
			centered[i] = float32(float64(val) - centroid[i])
		}
		out[j] = Normalize(centered)
	}
	return out, nil
}
