package journey

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"keywordjourney/internal/llm"
	"keywordjourney/internal/logger"
	"keywordjourney/internal/metrics"
)

// Backend produces a completion for one request. *llm.Client implements it.
type Backend interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

// Options tunes the classifier.
type Options struct {
	// BatchSize is the maximum number of keywords per request.
	BatchSize int
	// MaxConcurrency caps in-flight batches. Zero means no cap.
	MaxConcurrency int
	Retry          RetryPolicy
	// AttemptTimeout bounds each backend call. Zero means no bound.
	AttemptTimeout time.Duration
}

// DefaultOptions returns batch size 50, unlimited concurrency and the default retry policy.
func DefaultOptions() Options {
	return Options{
		BatchSize: DefaultBatchSize,
		Retry:     DefaultRetryPolicy(),
	}
}

// Classifier runs the batched classification pipeline against a Backend.
type Classifier struct {
	backend Backend
	opts    Options
	log     logger.Logger
	sleep   Sleeper
}

// NewClassifier creates a Classifier. Zero-valued options fall back to defaults.
func NewClassifier(backend Backend, opts Options, log logger.Logger) *Classifier {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Retry.MaxRetries < 0 {
		opts.Retry.MaxRetries = 0
	}
	if opts.Retry.BaseDelay < 0 {
		opts.Retry.BaseDelay = 0
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Classifier{
		backend: backend,
		opts:    opts,
		log:     log,
		sleep:   SleepContext,
	}
}

// WithSleeper replaces the backoff sleeper. Tests use it to observe delays
// without waiting.
func (c *Classifier) WithSleeper(s Sleeper) *Classifier {
	c.sleep = s
	return c
}

// BatchCount returns how many requests Classify issues for n keywords.
func (c *Classifier) BatchCount(n int) int {
	return (n + c.opts.BatchSize - 1) / c.opts.BatchSize
}

// Classify assigns a stage to every keyword. The result has the same length
// and order as keywords. Batch failures are absorbed by the retry loop and
// never surface here; a non-nil error means dispatch itself broke, in which
// case every keyword carries DefaultStage and the error describes why.
func (c *Classifier) Classify(ctx context.Context, keywords []string, model string) (results []Result, err error) {
	if len(keywords) == 0 {
		return []Result{}, nil
	}

	start := time.Now()
	log := c.log.With(map[string]interface{}{
		"run_id":   uuid.NewString(),
		"model":    model,
		"keywords": len(keywords),
	})

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("classification dispatch panicked: %v", r)
		}
		if err != nil {
			log.WithError(err).Error("classification failed, using default stage for all keywords", nil)
			metrics.FallbackKeywords.WithLabelValues(metrics.FallbackDispatch).Add(float64(len(keywords)))
			results = FallbackResults(keywords)
		}
		metrics.ClassifyDuration.Observe(time.Since(start).Seconds())
	}()

	if c.backend == nil {
		return nil, errors.New("no classification backend configured")
	}

	batches := Partition(keywords, c.opts.BatchSize)
	log.Info("classifying keywords", map[string]interface{}{
		"batches":    len(batches),
		"batch_size": c.opts.BatchSize,
	})

	perBatch := make([][]Result, len(batches))

	var g errgroup.Group
	if c.opts.MaxConcurrency > 0 {
		g.SetLimit(c.opts.MaxConcurrency)
	}
	for i, batch := range batches {
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("batch %d panicked: %v", i+1, r)
				}
			}()
			perBatch[i] = c.classifyBatch(ctx, log, i, batch, model)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results = make([]Result, 0, len(keywords))
	for _, r := range perBatch {
		results = append(results, r...)
	}
	if len(results) != len(keywords) {
		return nil, fmt.Errorf("classified %d of %d keywords", len(results), len(keywords))
	}

	log.Info("classification complete", map[string]interface{}{
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return results, nil
}

// classifyBatch runs the retry loop for one batch. It always returns one
// Result per keyword in batch.
func (c *Classifier) classifyBatch(ctx context.Context, log logger.Logger, index int, batch []string, model string) []Result {
	log = log.With(map[string]interface{}{
		"batch": index + 1,
		"size":  len(batch),
	})

	for attempt := 0; ; attempt++ {
		results, err := c.attempt(ctx, log, batch, model)
		if err == nil {
			metrics.BatchAttempts.WithLabelValues(metrics.AttemptSuccess).Inc()
			return results
		}
		metrics.BatchAttempts.WithLabelValues(metrics.AttemptError).Inc()

		err = batchError(index, err)
		log.WithError(err).Warn("batch attempt failed", map[string]interface{}{
			"attempt": attempt + 1,
		})

		if attempt >= c.opts.Retry.MaxRetries {
			break
		}

		delay := c.opts.Retry.Delay(attempt)
		log.Debug("retrying batch", map[string]interface{}{
			"attempt":  attempt + 2,
			"delay_ms": delay.Milliseconds(),
		})
		if err := c.sleep(ctx, delay); err != nil {
			log.WithError(err).Warn("retry wait interrupted", nil)
			break
		}
	}

	log.Error("batch fell back to default stage", nil)
	metrics.FallbackKeywords.WithLabelValues(metrics.FallbackRetriesExhausted).Add(float64(len(batch)))
	return FallbackResults(batch)
}

func (c *Classifier) attempt(ctx context.Context, log logger.Logger, batch []string, model string) ([]Result, error) {
	if c.opts.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.opts.AttemptTimeout)
		defer cancel()
	}

	text, err := c.backend.Complete(ctx, NewRequest(batch, model))
	if err != nil {
		return nil, err
	}

	// A successful reply without a single usable line still completes the
	// batch; Reconcile gives every keyword the default stage.
	results, stats := Reconcile(batch, ParseLines(text))
	if stats.Normalized > 0 {
		metrics.NormalizedMatches.Add(float64(stats.Normalized))
	}
	if stats.Unmatched > 0 {
		metrics.FallbackKeywords.WithLabelValues(metrics.FallbackUnmatched).Add(float64(stats.Unmatched))
	}
	if stats.BadStage > 0 {
		metrics.FallbackKeywords.WithLabelValues(metrics.FallbackInvalidStage).Add(float64(stats.BadStage))
	}
	if stats.Unmatched > 0 || stats.BadStage > 0 || stats.Normalized > 0 {
		log.Warn("classification lines did not match batch exactly", map[string]interface{}{
			"parsed":     stats.Parsed,
			"exact":      stats.Exact,
			"normalized": stats.Normalized,
			"unmatched":  stats.Unmatched,
			"bad_stage":  stats.BadStage,
		})
	}
	return results, nil
}

// BatchError records why one batch attempt failed. Batch is one-based.
type BatchError struct {
	Batch int
	Err   error
}

func (e *BatchError) Error() string {
	var apiErr *llm.APIError
	if errors.As(e.Err, &apiErr) {
		return fmt.Sprintf("batch %d failed: %d %s", e.Batch, apiErr.StatusCode, apiErr.StatusText())
	}
	return fmt.Sprintf("batch %d failed: %v", e.Batch, e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

func batchError(index int, err error) error {
	return &BatchError{Batch: index + 1, Err: err}
}
