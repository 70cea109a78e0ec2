package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordStat_UnmarshalMixedTypes(t *testing.T) {
	data := `{
		"relKeyword": "카페",
		"monthlyPcQcCnt": 12300,
		"monthlyMobileQcCnt": "< 10",
		"monthlyAvePcClkCnt": 45.6,
		"monthlyAveMobileClkCnt": null,
		"monthlyAvePcCtr": "1.2",
		"monthlyAveMobileCtr": 0.8,
		"plAvgDepth": 15,
		"compIdx": "높음"
	}`

	var stat KeywordStat
	require.NoError(t, json.Unmarshal([]byte(data), &stat))

	assert.Equal(t, "카페", stat.RelKeyword)
	assert.Equal(t, StatValue("12300"), stat.MonthlyPcQcCnt)
	assert.Equal(t, StatValue("< 10"), stat.MonthlyMobileQcCnt)
	assert.Equal(t, StatValue("45.6"), stat.MonthlyAvePcClkCnt)
	assert.Equal(t, StatValue(""), stat.MonthlyAveMobileClkCnt)
	assert.Equal(t, StatValue("15"), stat.PlAvgDepth)
	assert.InDelta(t, 12310, stat.TotalSearchVolume(), 1e-9)
}

func TestKeywordStat_MarshalAsStrings(t *testing.T) {
	out, err := json.Marshal(KeywordStat{RelKeyword: "a", MonthlyPcQcCnt: "10", CompIdx: "low"})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"monthlyPcQcCnt":"10"`)
	assert.NotContains(t, string(out), "buyerJourney")
}

func TestStatValue_Float(t *testing.T) {
	tests := []struct {
		in   StatValue
		want float64
	}{
		{"1234", 1234},
		{"1,234", 1234},
		{"< 10", 10},
		{"<10", 10},
		{"10.5", 10.5},
		{"N/A", 0},
		{"", 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.in), func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.in.Float(), 1e-9)
		})
	}
}
