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


package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/poiesic/keywordx/ai"
	"github.com/poiesic/keywordx/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// EntityRecognizer implements ai.EntityRecognizer using OpenAI-compatible chat APIs.
type EntityRecognizer struct {
	client        llms.Model
	parseAttempts int
	now           func() time.Time
	logger        *slog.Logger
}

// entity is an internal type used for JSON unmarshaling.
// It matches the structure expected by the LLM.
type entity struct {
	Type  string `json:"type"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

// recognition is the wrapper structure for the LLM's JSON response.
type recognition struct {
	Entities []entity `json:"entities"`
}

// newEntityRecognizer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newEntityRecognizer(config *ai.Config) (*EntityRecognizer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.RecognizerHost),
		openai.WithToken(config.Token),
		openai.WithModel(config.RecognizerModel),
	)
	if err != nil {
		return nil, err
	}

	return newEntityRecognizerWithModel(client, config.MaxParseAttempts), nil
}

func newEntityRecognizerWithModel(client llms.Model, parseAttempts int) *EntityRecognizer {
	if parseAttempts < 1 {
		parseAttempts = 1
	}
	return &EntityRecognizer{
		client:        client,
		parseAttempts: parseAttempts,
		now:           time.Now,
		logger:        slog.Default().With("component", "openai-recognizer"),
	}
}

// NewEntityRecognizer creates a new entity recognizer using the provided configuration.
//
// Returns ai.EntityRecognizer interface to enforce abstraction.
func NewEntityRecognizer(config *ai.Config) (ai.EntityRecognizer, error) {
	return newEntityRecognizer(config)
}

// Recognize extracts entities from text using an LLM.
// Entities whose text cannot be found in the input are dropped. The result
// is ordered by position in the input.
func (r *EntityRecognizer) Recognize(ctx context.Context, text string) ([]core.Entity, error) {
	if strings.TrimSpace(text) == "" {
		return []core.Entity{}, nil
	}

	content := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(buildSystemPrompt(r.now()))},
		},
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(text)},
		},
	}

	// Ask again when the model returns malformed JSON
	var result recognition
	var lastErr error
	for attempt := 0; attempt < r.parseAttempts; attempt++ {
		response, err := r.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			r.logger.Error("failed to generate content", "attempt", attempt+1, "err", err)
			return nil, err
		}

		if len(response.Choices) < 1 {
			r.logger.Debug("no choices returned from model")
			return []core.Entity{}, nil
		}

		responseText := cleanResponse(response.Choices[0].Content)
		result = recognition{}
		if err := json.Unmarshal([]byte(responseText), &result); err != nil {
			lastErr = err
			r.logger.Warn("error parsing recognizer response",
				"attempt", attempt+1,
				"response", responseText,
				"err", err)
			continue
		}

		lastErr = nil
		break
	}

	if lastErr != nil {
		r.logger.Error("failed to parse recognizer response after retries", "err", lastErr)
		return nil, lastErr
	}

	entities := make([]core.Entity, 0, len(result.Entities))
	cursor := 0
	for _, e := range result.Entities {
		label := core.EntityType(strings.ToUpper(strings.TrimSpace(e.Type)))
		if label == "" {
			continue
		}
		span, ok := locate(text, strings.TrimSpace(e.Text), cursor)
		if !ok {
			r.logger.Debug("dropping entity not present in text", "type", label, "text", e.Text)
			continue
		}
		cursor = span.End

		ent := core.Entity{
			Type: label,
			Text: text[span.Start:span.End],
			Span: span,
		}
		if label == core.EntityTypeDate || label == core.EntityTypeTime {
			ent.Value = strings.TrimSpace(e.Value)
		}
		entities = append(entities, ent)
	}

	slices.SortStableFunc(entities, func(a, b core.Entity) int {
		return a.Span.Start - b.Span.Start
	})

	r.logger.Debug("recognized entities",
		"total", len(result.Entities),
		"kept", len(entities))

	return entities, nil
}
