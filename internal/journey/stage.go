// Package journey classifies search keywords into the six buyer-journey
// stages. Keywords are split into fixed-size batches, each batch is sent to a
// completion backend concurrently with its own retry loop, and the per-batch
// results are merged back in input order. Classification never fails the
// caller: anything that cannot be classified gets DefaultStage.
package journey

import "strings"

// Stage is one of the six buyer-journey stages. The Korean label is the wire value.
type Stage string

const (
	StageProblemRecognition    Stage = "문제 인식"
	StageInformationSearch     Stage = "정보 탐색"
	StageAlternativeEvaluation Stage = "대안 평가"
	StagePurchaseDecision      Stage = "구매 결정"
	StagePurchaseAction        Stage = "구매 행동"
	StagePostPurchase          Stage = "구매 후 행동"
)

// DefaultStage is assigned whenever no classification could be obtained.
const DefaultStage = StageInformationSearch

// Stages lists the stages in funnel order.
var Stages = []Stage{
	StageProblemRecognition,
	StageInformationSearch,
	StageAlternativeEvaluation,
	StagePurchaseDecision,
	StagePurchaseAction,
	StagePostPurchase,
}

var englishNames = map[Stage]string{
	StageProblemRecognition:    "Problem Recognition",
	StageInformationSearch:     "Information Search",
	StageAlternativeEvaluation: "Alternative Evaluation",
	StagePurchaseDecision:      "Purchase Decision",
	StagePurchaseAction:        "Purchase Action",
	StagePostPurchase:          "Post-Purchase Behavior",
}

// Valid reports whether s is one of the six stages.
func (s Stage) Valid() bool {
	_, ok := englishNames[s]
	return ok
}

// English returns the English stage name.
func (s Stage) English() string {
	return englishNames[s]
}

// ParseStage maps a Korean label or English name onto a Stage.
func ParseStage(raw string) (Stage, bool) {
	raw = strings.TrimSpace(raw)
	if s := Stage(raw); s.Valid() {
		return s, true
	}
	// models sometimes answer "구매후 행동" or "구매 후행동"
	compact := strings.ReplaceAll(raw, " ", "")
	for _, s := range Stages {
		if strings.ReplaceAll(string(s), " ", "") == compact {
			return s, true
		}
		if strings.EqualFold(englishNames[s], raw) {
			return s, true
		}
	}
	return "", false
}

// Result is the classification of one keyword.
type Result struct {
	Keyword string `json:"keyword"`
	Stage   Stage  `json:"stage"`
	// Fallback is set when Stage is the default because no classification was obtained.
	Fallback bool `json:"fallback,omitempty"`
}

// FallbackResults assigns DefaultStage to every keyword.
func FallbackResults(keywords []string) []Result {
	out := make([]Result, len(keywords))
	for i, kw := range keywords {
		out[i] = Result{Keyword: kw, Stage: DefaultStage, Fallback: true}
	}
	return out
}

// CountByStage tallies results per stage. Every stage is present in the map.
func CountByStage(results []Result) map[Stage]int {
	counts := make(map[Stage]int, len(Stages))
	for _, s := range Stages {
		counts[s] = 0
	}
	for _, r := range results {
		if r.Stage.Valid() {
			counts[r.Stage]++
		}
	}
	return counts
}
