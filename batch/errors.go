package batch

import "errors"

var (
	// ErrExtractorRequired indicates a Runner was created without an extractor.
	ErrExtractorRequired = errors.New("extractor is required")

	// ErrInvalidWorkers indicates a non-positive worker count.
	ErrInvalidWorkers = errors.New("workers must be at least 1")
)
