// Package brand compares the search footprint of several brand names.
package brand

import (
	"context"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"keywordjourney/internal/models"
)

// TopKeywords is how many related keywords are kept per brand.
const TopKeywords = 20

// Lookup returns related keyword statistics for one keyword. *searchad.Service
// satisfies it.
type Lookup interface {
	Lookup(ctx context.Context, keyword string, detail bool) ([]models.KeywordStat, string)
}

// Summary aggregates the related keywords of one brand.
type Summary struct {
	Brand             string               `json:"brand"`
	Keywords          []models.KeywordStat `json:"keywords"`
	TotalSearchVolume float64              `json:"totalSearchVolume"`
	TotalClickVolume  float64              `json:"totalClickVolume"`
	AvgCtr            float64              `json:"avgCtr"`
	AvgPosition       float64              `json:"avgPosition"`
	Source            string               `json:"source"`
}

// Analyzer fetches and summarizes brands.
type Analyzer struct {
	lookup Lookup
}

// NewAnalyzer creates an analyzer over lookup.
func NewAnalyzer(lookup Lookup) *Analyzer {
	return &Analyzer{lookup: lookup}
}

// Compare fetches every brand concurrently and returns summaries in input order.
func (a *Analyzer) Compare(ctx context.Context, brands []string) ([]Summary, error) {
	out := make([]Summary, len(brands))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range brands {
		g.Go(func() error {
			stats, source := a.lookup.Lookup(ctx, name, true)
			out[i] = Summarize(name, stats)
			out[i].Source = source
			return ctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Summarize aggregates stats over all rows and keeps the first TopKeywords.
// Search volumes treat "< 10" as 10; unparseable values count as zero.
func Summarize(name string, stats []models.KeywordStat) Summary {
	s := Summary{Brand: name}

	var ctrSum, depthSum float64
	for _, kw := range stats {
		s.TotalSearchVolume += kw.MonthlyPcQcCnt.Float() + kw.MonthlyMobileQcCnt.Float()
		s.TotalClickVolume += number(kw.MonthlyAvePcClkCnt) + number(kw.MonthlyAveMobileClkCnt)
		ctrSum += (number(kw.MonthlyAvePcCtr) + number(kw.MonthlyAveMobileCtr)) / 2
		depthSum += number(kw.PlAvgDepth)
	}
	if n := float64(len(stats)); n > 0 {
		s.AvgCtr = ctrSum / n
		s.AvgPosition = depthSum / n
	}

	top := stats
	if len(top) > TopKeywords {
		top = top[:TopKeywords]
	}
	s.Keywords = make([]models.KeywordStat, len(top))
	for i, kw := range top {
		if kw.RelKeyword == "" {
			kw.RelKeyword = name
		}
		s.Keywords[i] = kw
	}
	return s
}

var numericPrefix = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// number parses the leading decimal of a statistic with thousands separators
// removed, so "12.3%" is 12.3. Values such as "< 10" do not start with a
// number and count as zero.
func number(v models.StatValue) float64 {
	s := strings.ReplaceAll(strings.TrimSpace(string(v)), ",", "")
	f, err := strconv.ParseFloat(numericPrefix.FindString(s), 64)
	if err != nil {
		return 0
	}
	return f
}
