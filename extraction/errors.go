// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extraction

import (
	"errors"

	"github.com/poiesic/keywordx/ai"
)

var (
	// ErrAIProviderRequired is returned when an AI provider is not provided.
	ErrAIProviderRequired = errors.New("AI provider required")

	// ErrEmbedderRequired is returned when the provider has no embedder.
	ErrEmbedderRequired = ai.ErrEmbedderRequired

	// ErrRecognizerRequired is returned when the provider has no entity recognizer.
	ErrRecognizerRequired = ai.ErrRecognizerRequired

	// ErrChunkerRequired is returned when a nil chunker is configured.
	ErrChunkerRequired = errors.New("chunker required")

	// ErrWhitenerRequired is returned when a nil whitener is configured.
	ErrWhitenerRequired = errors.New("whitener required")

	// ErrScorerRequired is returned when a nil scorer is configured.
	ErrScorerRequired = errors.New("scorer required")

	// ErrCollaboratorContract is returned when a collaborator returns a result
	// whose cardinality does not match its input.
	ErrCollaboratorContract = errors.New("collaborator violated its contract")
)
