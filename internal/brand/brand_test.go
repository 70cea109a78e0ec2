package brand

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywordjourney/internal/models"
)

type fakeLookup struct {
	mu    sync.Mutex
	calls []string
	rows  map[string][]models.KeywordStat
}

func (f *fakeLookup) Lookup(_ context.Context, keyword string, detail bool) ([]models.KeywordStat, string) {
	f.mu.Lock()
	f.calls = append(f.calls, fmt.Sprintf("%s:%v", keyword, detail))
	f.mu.Unlock()
	return f.rows[keyword], "searchad"
}

func TestSummarize(t *testing.T) {
	stats := []models.KeywordStat{
		{
			RelKeyword:             "스타벅스",
			MonthlyPcQcCnt:         "1,000",
			MonthlyMobileQcCnt:     "< 10",
			MonthlyAvePcClkCnt:     "1,200.5",
			MonthlyAveMobileClkCnt: "<10",
			MonthlyAvePcCtr:        "2",
			MonthlyAveMobileCtr:    "4",
			PlAvgDepth:             "10",
		},
		{
			RelKeyword:          "",
			MonthlyPcQcCnt:      "N/A",
			MonthlyMobileQcCnt:  "90",
			MonthlyAvePcCtr:     "1",
			MonthlyAveMobileCtr: "1",
			PlAvgDepth:          "6",
		},
	}

	s := Summarize("스타벅스", stats)

	assert.Equal(t, "스타벅스", s.Brand)
	assert.InDelta(t, 1100, s.TotalSearchVolume, 1e-9)
	assert.InDelta(t, 1200.5, s.TotalClickVolume, 1e-9)
	assert.InDelta(t, 2, s.AvgCtr, 1e-9)
	assert.InDelta(t, 8, s.AvgPosition, 1e-9)
	require.Len(t, s.Keywords, 2)
	assert.Equal(t, "스타벅스", s.Keywords[1].RelKeyword)
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   models.StatValue
		want float64
	}{
		{"1,234", 1234},
		{" 12.3% ", 12.3},
		{"0.5회", 0.5},
		{".75", 0.75},
		{"-3", -3},
		{"1e2", 100},
		{"< 10", 0},
		{"N/A", 0},
		{"", 0},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, number(tt.in), 1e-9, "number(%q)", tt.in)
	}
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize("없음", nil)
	assert.Zero(t, s.TotalSearchVolume)
	assert.Zero(t, s.AvgCtr)
	assert.Zero(t, s.AvgPosition)
	assert.Empty(t, s.Keywords)
}

func TestSummarize_KeepsTopTwenty(t *testing.T) {
	stats := make([]models.KeywordStat, 30)
	for i := range stats {
		stats[i] = models.KeywordStat{RelKeyword: fmt.Sprintf("kw %d", i), MonthlyPcQcCnt: "1"}
	}
	s := Summarize("brand", stats)
	assert.Len(t, s.Keywords, TopKeywords)
	assert.Equal(t, "kw 0", s.Keywords[0].RelKeyword)
	assert.InDelta(t, 30, s.TotalSearchVolume, 1e-9, "totals cover every row")
}

func TestCompare_PreservesInputOrder(t *testing.T) {
	lookup := &fakeLookup{rows: map[string][]models.KeywordStat{
		"스타벅스": {{RelKeyword: "스타벅스", MonthlyPcQcCnt: "300"}},
		"투썸":   {{RelKeyword: "투썸", MonthlyPcQcCnt: "200"}},
		"이디야":  {{RelKeyword: "이디야", MonthlyPcQcCnt: "100"}},
	}}
	a := NewAnalyzer(lookup)

	summaries, err := a.Compare(context.Background(), []string{"이디야", "스타벅스", "투썸"})
	require.NoError(t, err)
	require.Len(t, summaries, 3)

	assert.Equal(t, "이디야", summaries[0].Brand)
	assert.Equal(t, "스타벅스", summaries[1].Brand)
	assert.Equal(t, "투썸", summaries[2].Brand)
	assert.InDelta(t, 300, summaries[1].TotalSearchVolume, 1e-9)
	assert.Equal(t, "searchad", summaries[0].Source)
	assert.ElementsMatch(t, []string{"이디야:true", "스타벅스:true", "투썸:true"}, lookup.calls)
}

func TestCompare_CancelledContext(t *testing.T) {
	a := NewAnalyzer(&fakeLookup{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Compare(ctx, []string{"a", "b"})
	assert.ErrorIs(t, err, context.Canceled)
}
