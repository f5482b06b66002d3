package vector

import "errors"

var (
	ErrDimensionMismatch = errors.New("vector dimensions do not match")
	ErrPhraseMismatch    = errors.New("candidate and phrase counts do not match")
	ErrInvalidPenalty    = errors.New("baseline penalty must be between 0 and 1")
)
