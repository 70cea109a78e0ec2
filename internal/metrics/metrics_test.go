package metrics

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywordjourney/internal/logger"
	"keywordjourney/internal/models"
)

type fakeStore struct {
	mu       sync.Mutex
	recorded []map[string]int
	sources  []string
	outcomes []models.ClassificationOutcome
	runs     []models.ClassificationRun
	err      error
}

func (f *fakeStore) IncrementOutcomes(_ context.Context, source string, counts map[string]int, _ int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sources = append(f.sources, source)
	f.recorded = append(f.recorded, counts)
	return f.err
}

func (f *fakeStore) GetAllOutcomes(context.Context) ([]models.ClassificationOutcome, error) {
	return f.outcomes, f.err
}

func (f *fakeStore) GetAllRuns(context.Context) ([]models.ClassificationRun, error) {
	return f.runs, f.err
}

func TestOutcomeCollector(t *testing.T) {
	store := &fakeStore{
		outcomes: []models.ClassificationOutcome{
			{Source: models.SourceOpenAI, Stage: "정보 탐색", Count: 4},
			{Source: models.SourceDummy, Stage: "구매 결정", Count: 2},
		},
		runs: []models.ClassificationRun{{Source: models.SourceOpenAI, Runs: 3}},
	}
	c := NewOutcomeCollector(store, logger.NewTestLogger(t))

	assert.Equal(t, 3, testutil.CollectAndCount(c))

	expected := `
# HELP keywordjourney_classification_runs_total Total classification requests by source
# TYPE keywordjourney_classification_runs_total counter
keywordjourney_classification_runs_total{source="openai"} 3
`
	require.NoError(t, testutil.CollectAndCompare(c, strings.NewReader(expected), "keywordjourney_classification_runs_total"))
}

func TestOutcomeCollector_StoreError(t *testing.T) {
	store := &fakeStore{err: errors.New("connection refused")}
	c := NewOutcomeCollector(store, logger.NewTestLogger(t))
	assert.Equal(t, 0, testutil.CollectAndCount(c))
}

func TestRecorder(t *testing.T) {
	store := &fakeStore{}
	r := NewRecorder(store, logger.NewTestLogger(t))

	r.Record(models.SourceOpenAI, map[string]int{"정보 탐색": 2}, 1)
	r.Record(models.SourceFallback, map[string]int{"정보 탐색": 5}, 5)
	r.Wait()

	assert.ElementsMatch(t, []string{models.SourceOpenAI, models.SourceFallback}, store.sources)
	assert.Len(t, store.recorded, 2)
}

func TestRecorder_NilStore(t *testing.T) {
	r := NewRecorder(nil, logger.NewNoOpLogger())
	r.Record(models.SourceOpenAI, map[string]int{"정보 탐색": 1}, 0)
	r.Wait()

	var nilRecorder *Recorder
	nilRecorder.Record(models.SourceOpenAI, nil, 0)
	nilRecorder.Wait()
}

func TestFallbackKeywordsCounter(t *testing.T) {
	before := testutil.ToFloat64(FallbackKeywords.WithLabelValues(FallbackUnmatched))
	FallbackKeywords.WithLabelValues(FallbackUnmatched).Add(3)
	assert.InDelta(t, before+3, testutil.ToFloat64(FallbackKeywords.WithLabelValues(FallbackUnmatched)), 1e-9)
}
