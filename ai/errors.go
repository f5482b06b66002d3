package ai

import "errors"

var (
	// ErrEmbedderRequired is returned when an embedder is not provided.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrRecognizerRequired is returned when an entity recognizer is not provided.
	ErrRecognizerRequired = errors.New("entity recognizer required")
)
