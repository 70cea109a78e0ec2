// Package insights turns classified keyword lists into LLM-generated
// marketing, budget, landing page and ad strategy recommendations.
package insights

import (
	"fmt"
	"strings"

	"keywordjourney/internal/journey"
	"keywordjourney/internal/models"
)

// Type selects the insight prompt.
type Type string

const (
	TypeMarketing Type = "marketing"
	TypeBudget    Type = "budget"
	TypeLanding   Type = "landing"
	TypeDA        Type = "da"
	TypeSA        Type = "sa"
)

// Types lists every supported insight type.
var Types = []Type{TypeMarketing, TypeBudget, TypeLanding, TypeDA, TypeSA}

// ParseType validates raw as an insight type.
func ParseType(raw string) (Type, bool) {
	for _, t := range Types {
		if string(t) == raw {
			return t, true
		}
	}
	return "", false
}

const samplesPerStage = 5

// StageSummary is the count and first few keywords for one stage.
type StageSummary struct {
	Stage   journey.Stage
	Count   int
	Samples []string
}

// BuildContext groups keywords by buyerJourney in funnel order. Keywords
// without a recognized stage are ignored.
func BuildContext(keywords []models.KeywordStat) []StageSummary {
	byStage := make(map[journey.Stage]*StageSummary, len(journey.Stages))
	out := make([]StageSummary, len(journey.Stages))
	for i, s := range journey.Stages {
		out[i] = StageSummary{Stage: s}
		byStage[s] = &out[i]
	}

	for _, kw := range keywords {
		summary, ok := byStage[journey.Stage(kw.BuyerJourney)]
		if !ok {
			continue
		}
		summary.Count++
		if len(summary.Samples) < samplesPerStage {
			summary.Samples = append(summary.Samples, kw.RelKeyword)
		}
	}
	return out
}

// RenderContext formats the stage summaries as the data block of a prompt.
func RenderContext(summaries []StageSummary) string {
	var b strings.Builder
	b.WriteString("구매여정 단계별 키워드 분포:\n")
	for _, s := range summaries {
		fmt.Fprintf(&b, "- %s: %d개 키워드\n", s.Stage, s.Count)
	}
	b.WriteString("\n주요 키워드 샘플:\n")
	for i, s := range summaries {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s: %s", s.Stage, strings.Join(s.Samples, ", "))
	}
	return b.String()
}
