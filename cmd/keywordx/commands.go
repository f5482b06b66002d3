package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/keywordx"
	"github.com/poiesic/keywordx/ai"
	"github.com/poiesic/keywordx/batch"
	"github.com/poiesic/keywordx/core"
	"github.com/poiesic/keywordx/extraction"
	"github.com/poiesic/keywordx/ner"
	"github.com/poiesic/keywordx/storage"
	"github.com/poiesic/keywordx/storage/badger"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"
)

func extractCommand(c *cli.Context) error {
	ctx := context.Background()

	texts, err := readDocuments(c)
	if err != nil {
		return err
	}
	if len(texts) == 0 {
		return fmt.Errorf("no input text: pass text arguments or --input")
	}

	weights, err := loadWeights(c.String("weights-file"), c.StringSlice("weight"))
	if err != nil {
		return err
	}

	engineOpts, err := engineOptions(c, weights)
	if err != nil {
		return err
	}

	engine, err := keywordx.Open(c.String("db"), engineOpts...)
	if err != nil {
		return fmt.Errorf("failed to open engine: %w", err)
	}
	defer engine.Close()

	extractOpts := []extraction.ExtractOption{extraction.WithMinScore(c.Float64("min-score"))}
	if c.Bool("trace") {
		extractOpts = append(extractOpts, extraction.WithMonitor(extraction.NewLogMonitor(slog.Default())))
	}

	keywords := c.StringSlice("keyword")
	jobs := make([]batch.Job, len(texts))
	for i, text := range texts {
		jobs[i] = batch.Job{Text: text, Keywords: keywords, Options: extractOpts}
	}

	outcomes := engine.ExtractAll(ctx, jobs)

	out := make([]documentJSON, len(outcomes))
	failed := 0
	for i, o := range outcomes {
		if o.Err != nil {
			failed++
			slog.Error("extraction failed", "index", i, "err", o.Err)
			out[i] = documentJSON{Text: texts[i], Keywords: keywords, Error: o.Err.Error()}
			continue
		}
		out[i] = toDocumentJSON(o.Document)
	}

	if err := writeJSON(c.App.Writer, out); err != nil {
		return err
	}
	if failed > 0 {
		return cli.Exit(fmt.Sprintf("%d of %d documents failed", failed, len(outcomes)), 1)
	}
	return nil
}

func engineOptions(c *cli.Context, weights map[string]any) ([]keywordx.EngineOption, error) {
	recognizerHost := c.String("recognizer-host")
	if recognizerHost == "" {
		recognizerHost = c.String("embedding-host")
	}

	aiConfig := ai.NewConfig(
		ai.WithEmbeddingHost(c.String("embedding-host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithRecognizerHost(recognizerHost),
		ai.WithRecognizerModel(c.String("recognizer-model")),
		ai.WithToken(c.String("token")),
	)
	if err := aiConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	workers := c.Int("workers")
	if workers <= 0 {
		return nil, fmt.Errorf("workers must be greater than 0")
	}

	opts := []keywordx.EngineOption{
		keywordx.WithAIConfig(aiConfig),
		keywordx.WithWorkers(workers),
		keywordx.WithExtractorOptions(
			extraction.WithBaselineText(c.String("baseline")),
			extraction.WithRawEntityWeights(weights),
		),
	}
	if c.Bool("progress") {
		opts = append(opts, keywordx.WithProgress(os.Stderr))
	}

	switch c.String("recognizer") {
	case "rules":
		if ref := c.String("reference-time"); ref != "" {
			t, err := time.Parse(time.RFC3339, ref)
			if err != nil {
				return nil, fmt.Errorf("invalid reference-time %q: %w", ref, err)
			}
			opts = append(opts, keywordx.WithRecognizerOptions(ner.WithReferenceTime(t)))
		}
	case "llm":
		opts = append(opts, keywordx.WithLLMRecognizer())
	default:
		return nil, fmt.Errorf("invalid recognizer %q: must be one of rules, llm", c.String("recognizer"))
	}
	return opts, nil
}

// readDocuments returns the positional arguments, or the non-blank lines of
// --input when it is set.
func readDocuments(c *cli.Context) ([]string, error) {
	path := c.String("input")
	if path == "" {
		return c.Args().Slice(), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	var texts []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			texts = append(texts, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return texts, nil
}

// loadWeights merges a weights file with TYPE=VALUE overrides. Validation is
// left to the extractor.
func loadWeights(path string, overrides []string) (map[string]any, error) {
	weights := make(map[string]any)

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read weights file: %w", err)
		}
		// YAML is a superset of JSON
		if err := yaml.Unmarshal(data, &weights); err != nil {
			return nil, fmt.Errorf("failed to parse weights file: %w", err)
		}
		if weights == nil {
			weights = make(map[string]any)
		}
	}

	for _, o := range overrides {
		key, value, ok := strings.Cut(o, "=")
		if !ok {
			return nil, fmt.Errorf("invalid weight %q: expected TYPE=VALUE", o)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid weight %q: %w", o, err)
		}
		weights[strings.ToUpper(strings.TrimSpace(key))] = f
	}
	return weights, nil
}

func showCommand(c *cli.Context) error {
	ctx := context.Background()

	id, err := strconv.ParseUint(c.String("id"), 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q: %w", c.String("id"), err)
	}

	return withDocuments(c.String("db"), func(repo storage.DocumentRepository) error {
		doc, err := repo.GetDocument(ctx, core.ID(id))
		if err != nil {
			return fmt.Errorf("failed to get document %d: %w", id, err)
		}
		return writeJSON(c.App.Writer, toDocumentJSON(doc))
	})
}

func listCommand(c *cli.Context) error {
	ctx := context.Background()

	return withDocuments(c.String("db"), func(repo storage.DocumentRepository) error {
		docs, err := repo.ListDocuments(ctx)
		if err != nil {
			return fmt.Errorf("failed to list documents: %w", err)
		}
		out := make([]documentJSON, len(docs))
		for i, doc := range docs {
			out[i] = toDocumentJSON(doc)
		}
		return writeJSON(c.App.Writer, out)
	})
}

// withDocuments opens an existing store without any AI services.
func withDocuments(dbPath string, fn func(storage.DocumentRepository) error) error {
	if dbPath == "" {
		return fmt.Errorf("database path is required")
	}
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	backend, err := badger.OpenBackend(dbPath, false)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer backend.Close()

	repo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		return fmt.Errorf("failed to create repository: %w", err)
	}
	defer repo.Close()

	return fn(repo)
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
