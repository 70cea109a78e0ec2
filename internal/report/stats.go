package report

import (
	"sort"
	"strconv"
	"strings"

	"keywordjourney/internal/journey"
	"keywordjourney/internal/models"
)

// StageStat aggregates the keywords of one stage.
type StageStat struct {
	Stage        journey.Stage
	Count        int
	Percent      float64
	SearchPc     float64
	SearchMobile float64
	ClickPc      float64
	ClickMobile  float64
}

// SearchTotal is PC plus mobile search volume.
func (s StageStat) SearchTotal() float64 { return s.SearchPc + s.SearchMobile }

// ClickTotal is PC plus mobile click volume.
func (s StageStat) ClickTotal() float64 { return s.ClickPc + s.ClickMobile }

// CalculateStageStats returns statistics for every stage that has at least
// one keyword, in funnel order. Percent is the share of classified keywords.
func CalculateStageStats(keywords []models.KeywordStat) []StageStat {
	byStage := make(map[journey.Stage]*StageStat, len(journey.Stages))
	all := make([]StageStat, len(journey.Stages))
	for i, s := range journey.Stages {
		all[i] = StageStat{Stage: s}
		byStage[s] = &all[i]
	}

	classified := 0
	for _, kw := range keywords {
		st, ok := byStage[journey.Stage(kw.BuyerJourney)]
		if !ok {
			continue
		}
		classified++
		st.Count++
		st.SearchPc += volume(kw.MonthlyPcQcCnt)
		st.SearchMobile += volume(kw.MonthlyMobileQcCnt)
		st.ClickPc += volume(kw.MonthlyAvePcClkCnt)
		st.ClickMobile += volume(kw.MonthlyAveMobileClkCnt)
	}

	out := make([]StageStat, 0, len(all))
	for _, st := range all {
		if st.Count == 0 {
			continue
		}
		st.Percent = float64(st.Count) / float64(classified) * 100
		out = append(out, st)
	}
	return out
}

// RankedKeyword is a keyword with its total search volume.
type RankedKeyword struct {
	Keyword string
	Stage   string
	Total   float64
}

// TopKeywords returns the n classified keywords with the highest search volume.
func TopKeywords(keywords []models.KeywordStat, n int) []RankedKeyword {
	ranked := make([]RankedKeyword, 0, len(keywords))
	for _, kw := range keywords {
		if kw.BuyerJourney == "" {
			continue
		}
		ranked = append(ranked, RankedKeyword{
			Keyword: kw.RelKeyword,
			Stage:   kw.BuyerJourney,
			Total:   volume(kw.MonthlyPcQcCnt) + volume(kw.MonthlyMobileQcCnt),
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Total > ranked[j].Total })
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// volume parses a statistic for charting. The provider's "<10" bucket is
// plotted at its midpoint.
func volume(v models.StatValue) float64 {
	s := strings.TrimSpace(string(v))
	if strings.ReplaceAll(s, " ", "") == "<10" {
		return 5
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}
