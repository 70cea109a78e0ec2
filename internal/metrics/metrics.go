package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"keywordjourney/internal/logger"
	"keywordjourney/internal/models"
)

const namespace = "keywordjourney"

// Batch attempt outcomes.
const (
	AttemptSuccess = "success"
	AttemptError   = "error"
)

// Reasons a keyword received the default stage.
const (
	FallbackRetriesExhausted = "retries_exhausted"
	FallbackUnmatched        = "unmatched"
	FallbackInvalidStage     = "invalid_stage"
	FallbackDispatch         = "dispatch"
)

var (
	// BatchAttempts counts backend calls made by the classifier.
	BatchAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "batch_attempts_total",
		Help:      "Classification batch attempts by outcome",
	}, []string{"outcome"})

	// FallbackKeywords counts keywords that were given the default stage.
	FallbackKeywords = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fallback_keywords_total",
		Help:      "Keywords assigned the default stage by reason",
	}, []string{"reason"})

	// NormalizedMatches counts answer lines matched only after normalization.
	NormalizedMatches = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "normalized_matches_total",
		Help:      "Keywords matched to an answer line only after normalization",
	})

	// ClassifyDuration observes end-to-end classification latency.
	ClassifyDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "classify_duration_seconds",
		Help:      "Time spent classifying one keyword list",
		Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
	})

	// StatsCache counts keyword statistics cache lookups.
	StatsCache = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_cache_lookups_total",
		Help:      "Keyword statistics cache lookups by result",
	}, []string{"result"})

	outcomeDesc = prometheus.NewDesc(
		namespace+"_classification_outcomes_total",
		"Total keywords classified by source and stage",
		[]string{"source", "stage"},
		nil,
	)
	runsDesc = prometheus.NewDesc(
		namespace+"_classification_runs_total",
		"Total classification requests by source",
		[]string{"source"},
		nil,
	)
)

// OutcomeStore persists aggregate classification counts.
type OutcomeStore interface {
	IncrementOutcomes(ctx context.Context, source string, counts map[string]int, fallbacks int) error
	GetAllOutcomes(ctx context.Context) ([]models.ClassificationOutcome, error)
	GetAllRuns(ctx context.Context) ([]models.ClassificationRun, error)
}

// OutcomeCollector is a custom Prometheus collector that reads outcome
// counts from the store on each scrape.
type OutcomeCollector struct {
	store OutcomeStore
	log   logger.Logger
}

// NewOutcomeCollector creates a collector over store.
func NewOutcomeCollector(store OutcomeStore, log logger.Logger) *OutcomeCollector {
	return &OutcomeCollector{store: store, log: log}
}

// Describe sends the metric descriptors to the channel.
func (c *OutcomeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- outcomeDesc
	ch <- runsDesc
}

// Collect queries the store and emits the stored totals as counters.
func (c *OutcomeCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	outcomes, err := c.store.GetAllOutcomes(ctx)
	if err != nil {
		c.log.WithError(err).Error("failed to collect outcome metrics", nil)
		return
	}
	for _, o := range outcomes {
		ch <- prometheus.MustNewConstMetric(outcomeDesc, prometheus.CounterValue, float64(o.Count), o.Source, o.Stage)
	}

	runs, err := c.store.GetAllRuns(ctx)
	if err != nil {
		c.log.WithError(err).Error("failed to collect run metrics", nil)
		return
	}
	for _, r := range runs {
		ch <- prometheus.MustNewConstMetric(runsDesc, prometheus.CounterValue, float64(r.Runs), r.Source)
	}
}

// Recorder writes classification outcomes to the store in the background.
type Recorder struct {
	store OutcomeStore
	log   logger.Logger
	wg    sync.WaitGroup
}

// NewRecorder creates a recorder. A nil store makes Record a no-op.
func NewRecorder(store OutcomeStore, log logger.Logger) *Recorder {
	return &Recorder{store: store, log: log}
}

// Record asynchronously adds per-stage counts for one classification run.
func (r *Recorder) Record(source string, counts map[string]int, fallbacks int) {
	if r == nil || r.store == nil {
		return
	}
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.store.IncrementOutcomes(ctx, source, counts, fallbacks); err != nil {
			r.log.WithError(err).Error("failed to record classification outcomes", map[string]interface{}{
				"source": source,
			})
		}
	}()
}

// Wait blocks until all pending writes have finished.
func (r *Recorder) Wait() {
	if r == nil {
		return
	}
	r.wg.Wait()
}

var registerOnce sync.Once

// Register registers the classifier metrics with the default registry and,
// when store is non-nil, the outcome collector. Must be called once at startup.
func Register(store OutcomeStore, log logger.Logger) {
	registerOnce.Do(func() {
		prometheus.MustRegister(BatchAttempts, FallbackKeywords, NormalizedMatches, ClassifyDuration, StatsCache)
		if store != nil {
			prometheus.MustRegister(NewOutcomeCollector(store, log))
		}
	})
}
