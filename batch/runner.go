package batch

import (
	"context"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/keywordx/core"
	"github.com/poiesic/keywordx/extraction"
)

// Extractor is the single-document operation a Runner fans out.
// *extraction.Extractor satisfies it.
type Extractor interface {
	Extract(ctx context.Context, text string, keywords []string, opts ...extraction.ExtractOption) (*core.Result, error)
}

// Job is one document to extract.
type Job struct {
	Text     string
	Keywords []string
	Options  []extraction.ExtractOption
}

// Outcome is the result of one Job. Exactly one of Result and Err is set.
type Outcome struct {
	Index  int
	Text   string
	Result *core.Result
	Err    error
}

// Runner extracts jobs concurrently on a bounded worker pool.
type Runner struct {
	extractor      Extractor
	pool           *ants.Pool
	workers        int
	progressWriter io.Writer
	reportInterval int
	logger         *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner) error

// WithWorkers sets the worker pool size.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithWorkers(workers int) Option {
	return func(r *Runner) error {
		if workers < 1 {
			return ErrInvalidWorkers
		}
		r.workers = workers
		return nil
	}
}

// WithProgress reports progress to w every interval completed documents.
func WithProgress(w io.Writer, interval int) Option {
	return func(r *Runner) error {
		if interval < 1 {
			interval = 1
		}
		r.progressWriter = w
		r.reportInterval = interval
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger.With("component", "batch")
		return nil
	}
}

// DefaultWorkers returns the default pool size.
func DefaultWorkers() int {
	workers := runtime.NumCPU() / 2
	if workers < 1 {
		workers = 1
	}
	return workers
}

// NewRunner creates a Runner. Call Release when done.
func NewRunner(extractor Extractor, opts ...Option) (*Runner, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}

	r := &Runner{
		extractor: extractor,
		workers:   DefaultWorkers(),
		logger:    slog.Default().With("component", "batch"),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(r.workers)
	if err != nil {
		return nil, err
	}
	r.pool = pool
	return r, nil
}

// Workers returns the pool size.
func (r *Runner) Workers() int {
	return r.workers
}

// Run extracts every job and blocks until all are done.
// Outcomes are returned in job order. Jobs not yet started when ctx is
// cancelled report ctx.Err().
func (r *Runner) Run(ctx context.Context, jobs []Job) []Outcome {
	outcomes := make([]Outcome, len(jobs))
	if len(jobs) == 0 {
		return outcomes
	}

	var progress *ProgressTracker
	if r.progressWriter != nil {
		progress = NewProgressTracker(r.progressWriter, len(jobs), r.reportInterval)
		progress.Start()
		defer progress.Finish()
	}

	var wg sync.WaitGroup
	for i, job := range jobs {
		outcomes[i] = Outcome{Index: i, Text: job.Text}

		wg.Add(1)
		err := r.pool.Submit(func() {
			defer wg.Done()
			r.runJob(ctx, job, &outcomes[i])
			if progress != nil {
				progress.Increment(1)
			}
		})
		if err != nil {
			wg.Done()
			r.logger.Error("error submitting job", "index", i, "err", err)
			outcomes[i].Err = err
		}
	}
	wg.Wait()

	failed := 0
	for _, o := range outcomes {
		if o.Err != nil {
			failed++
		}
	}
	r.logger.Debug("batch finished", "documents", len(jobs), "failed", failed)
	return outcomes
}

func (r *Runner) runJob(ctx context.Context, job Job, outcome *Outcome) {
	if err := ctx.Err(); err != nil {
		outcome.Err = err
		return
	}

	result, err := r.extractor.Extract(ctx, job.Text, job.Keywords, job.Options...)
	if err != nil {
		r.logger.Warn("extraction failed", "index", outcome.Index, "err", err)
		outcome.Err = err
		return
	}
	outcome.Result = result
}

// Release releases the worker pool.
// The runner should not be used after calling Release.
func (r *Runner) Release() {
	if r.pool != nil {
		r.pool.Release()
	}
}
