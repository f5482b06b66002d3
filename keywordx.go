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


// Package keywordx wires an AI provider, a keyword extractor, a document
// store and a batch runner into a single Engine.
package keywordx

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/poiesic/keywordx/ai"
	"github.com/poiesic/keywordx/ai/openai"
	"github.com/poiesic/keywordx/batch"
	"github.com/poiesic/keywordx/core"
	"github.com/poiesic/keywordx/extraction"
	"github.com/poiesic/keywordx/ner"
	"github.com/poiesic/keywordx/storage"
	"github.com/poiesic/keywordx/storage/badger"
)

// Engine extracts keywords and persists every result.
type Engine struct {
	backend      *badger.Backend
	documents    storage.DocumentRepository
	provider     ai.AIProvider
	ownsProvider bool
	extractor    *extraction.Extractor
	runner       *batch.Runner
	logger       *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	aiConfig      *ai.Config
	provider      ai.AIProvider
	llmRecognizer bool
	nerOpts       []ner.Option
	extractorOpts []extraction.Option
	workers       int
	progress      io.Writer
	logger        *slog.Logger
}

// WithAIConfig sets the configuration of the OpenAI-compatible services.
// Default is ai.DefaultConfig().
func WithAIConfig(cfg *ai.Config) EngineOption {
	return func(o *engineOptions) {
		if cfg != nil {
			o.aiConfig = cfg
		}
	}
}

// WithProvider uses provider instead of building one from the AI config.
// The caller keeps ownership; Close does not close it.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithLLMRecognizer recognizes entities with the configured chat model
// instead of the rule-based recognizer.
func WithLLMRecognizer() EngineOption {
	return func(o *engineOptions) {
		o.llmRecognizer = true
	}
}

// WithRecognizerOptions configures the rule-based recognizer.
func WithRecognizerOptions(opts ...ner.Option) EngineOption {
	return func(o *engineOptions) {
		o.nerOpts = append(o.nerOpts, opts...)
	}
}

// WithExtractorOptions passes options through to extraction.NewExtractor.
func WithExtractorOptions(opts ...extraction.Option) EngineOption {
	return func(o *engineOptions) {
		o.extractorOpts = append(o.extractorOpts, opts...)
	}
}

// WithWorkers sets how many documents ExtractAll processes at once.
func WithWorkers(workers int) EngineOption {
	return func(o *engineOptions) {
		o.workers = workers
	}
}

// WithProgress reports ExtractAll progress to w.
func WithProgress(w io.Writer) EngineOption {
	return func(o *engineOptions) {
		o.progress = w
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// Open creates an Engine storing documents at filePath.
// An empty filePath keeps documents in memory.
func Open(filePath string, opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig: ai.DefaultConfig(),
		workers:  batch.DefaultWorkers(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	logger := options.logger.With("component", "engine")

	backend, err := badger.OpenBackend(filePath, filePath == "", badger.WithBackendLogger(options.logger))
	if err != nil {
		return nil, err
	}

	documents, err := badger.NewDocumentRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	e := &Engine{
		backend:   backend,
		documents: documents,
		logger:    logger,
	}

	if err := e.init(options); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

func (e *Engine) init(options *engineOptions) error {
	provider, owned, err := newProvider(options)
	if err != nil {
		return err
	}
	e.provider = provider
	e.ownsProvider = owned

	extractorOpts := append([]extraction.Option{extraction.WithLogger(options.logger)}, options.extractorOpts...)
	e.extractor, err = extraction.NewExtractor(provider, extractorOpts...)
	if err != nil {
		return err
	}

	runnerOpts := []batch.Option{batch.WithWorkers(options.workers), batch.WithLogger(options.logger)}
	if options.progress != nil {
		runnerOpts = append(runnerOpts, batch.WithProgress(options.progress, 1))
	}
	e.runner, err = batch.NewRunner(e.extractor, runnerOpts...)
	return err
}

func newProvider(options *engineOptions) (ai.AIProvider, bool, error) {
	if options.provider != nil {
		return options.provider, false, nil
	}
	if options.llmRecognizer {
		provider, err := openai.NewProvider(options.aiConfig)
		return provider, true, err
	}

	nerOpts := append([]ner.Option{ner.WithLogger(options.logger)}, options.nerOpts...)
	recognizer, err := ner.NewRuleRecognizer(nerOpts...)
	if err != nil {
		return nil, false, err
	}
	provider, err := openai.NewProviderWithRecognizer(options.aiConfig, recognizer)
	return provider, true, err
}

// Extractor returns the extractor used by the engine.
func (e *Engine) Extractor() *extraction.Extractor {
	return e.extractor
}

// Documents returns the document store.
func (e *Engine) Documents() storage.DocumentRepository {
	return e.documents
}

// Extract runs one extraction and stores the resulting document.
func (e *Engine) Extract(ctx context.Context, text string, keywords []string, opts ...extraction.ExtractOption) (*core.Document, error) {
	result, err := e.extractor.Extract(ctx, text, keywords, opts...)
	if err != nil {
		return nil, err
	}
	return e.save(ctx, text, keywords, opts, result)
}

// Outcome is the stored document of one ExtractAll job, or its error.
type Outcome struct {
	Index    int
	Document *core.Document
	Err      error
}

// ExtractAll extracts jobs concurrently and stores each successful result.
// Outcomes are in job order. A failing job does not affect the others.
func (e *Engine) ExtractAll(ctx context.Context, jobs []batch.Job) []Outcome {
	results := e.runner.Run(ctx, jobs)

	outcomes := make([]Outcome, len(results))
	for i, r := range results {
		outcomes[i] = Outcome{Index: r.Index, Err: r.Err}
		if r.Err != nil {
			continue
		}
		job := jobs[i]
		outcomes[i].Document, outcomes[i].Err = e.save(ctx, job.Text, job.Keywords, job.Options, r.Result)
	}
	return outcomes
}

func (e *Engine) save(ctx context.Context, text string, keywords []string, opts []extraction.ExtractOption, result *core.Result) (*core.Document, error) {
	doc := &core.Document{
		Id:       core.IDFromContent(text),
		Text:     text,
		Keywords: keywords,
		MinScore: extraction.ResolveMinScore(opts...),
		Result:   *result,
	}
	saved, err := e.documents.SaveDocument(ctx, doc)
	if err != nil {
		e.logger.Error("error saving document", "err", err)
		return nil, err
	}
	return saved, nil
}

// Close releases the runner, the provider if the engine created it, and the
// store.
func (e *Engine) Close() error {
	var errs []error

	if e.runner != nil {
		e.runner.Release()
	}

	if e.provider != nil && e.ownsProvider {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
			errs = append(errs, err)
		}
	}

	if err := e.documents.Close(); err != nil {
		e.logger.Error("error closing document repository", "err", err)
		errs = append(errs, err)
	}

	if err := e.backend.Close(); err != nil {
		e.logger.Error("error closing backend storage", "err", err)
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
