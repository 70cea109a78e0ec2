package journey

import "strings"

// Rule assigns Stage to any keyword containing one of Contains.
type Rule struct {
	Stage    Stage
	Contains []string
}

// DefaultRules is the substring rule table used without a backend. Rules are
// evaluated in order and the first hit wins.
var DefaultRules = []Rule{
	{Stage: StageProblemRecognition, Contains: []string{"이란", "뜻", "개념", "문제점"}},
	{Stage: StageInformationSearch, Contains: []string{"추천", "종류", "방법", "정보"}},
	{Stage: StageAlternativeEvaluation, Contains: []string{"비교", "vs", "차이", "장단점"}},
	{Stage: StagePurchaseDecision, Contains: []string{"가격", "할인", "최저가", "비용"}},
	{Stage: StagePurchaseAction, Contains: []string{"구매", "구입", "주문", "예약"}},
	{Stage: StagePostPurchase, Contains: []string{"후기", "리뷰", "평가", "만족"}},
}

// DummyClassifier classifies keywords locally from a rule table.
type DummyClassifier struct {
	rules []Rule
}

// NewDummyClassifier creates a classifier over rules. Rules naming an unknown
// stage are skipped; an empty table selects DefaultRules.
func NewDummyClassifier(rules []Rule) *DummyClassifier {
	valid := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if r.Stage.Valid() && len(r.Contains) > 0 {
			valid = append(valid, r)
		}
	}
	if len(valid) == 0 {
		valid = DefaultRules
	}
	return &DummyClassifier{rules: valid}
}

// Stage returns the stage for one keyword.
func (d *DummyClassifier) Stage(keyword string) Stage {
	kw := strings.ToLower(keyword)
	for _, r := range d.rules {
		for _, needle := range r.Contains {
			if strings.Contains(kw, strings.ToLower(needle)) {
				return r.Stage
			}
		}
	}
	return DefaultStage
}

// Classify returns one Result per keyword in input order.
func (d *DummyClassifier) Classify(keywords []string) []Result {
	out := make([]Result, len(keywords))
	for i, kw := range keywords {
		out[i] = Result{Keyword: kw, Stage: d.Stage(kw)}
	}
	return out
}

// DummyStage classifies keyword with DefaultRules.
func DummyStage(keyword string) Stage {
	return defaultDummy.Stage(keyword)
}

var defaultDummy = NewDummyClassifier(nil)
