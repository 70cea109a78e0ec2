package insights

import (
	"fmt"

	"keywordjourney/internal/models"
)

// Dummy returns a static insight of the right shape for t, filled with the
// sample keywords of each non-empty stage.
func Dummy(t Type, keywords []models.KeywordStat) map[string]interface{} {
	summaries := BuildContext(keywords)
	total := 0
	for _, s := range summaries {
		total += s.Count
	}
	summary := fmt.Sprintf("OpenAI API 키가 설정되지 않아 예시 인사이트를 표시합니다. 분류된 키워드 %d개를 기준으로 작성되었습니다.", total)

	if t == TypeBudget {
		return dummyBudget(summaries, summary)
	}

	stages := make(map[string]interface{})
	for _, s := range summaries {
		if s.Count == 0 {
			continue
		}
		stages[string(s.Stage)] = dummyStage(t, s)
	}
	return map[string]interface{}{
		"stages":  stages,
		"summary": summary,
	}
}

func dummyStage(t Type, s StageSummary) map[string]interface{} {
	keywords := append([]string{}, s.Samples...)
	switch t {
	case TypeLanding:
		return map[string]interface{}{
			"mainMessage":         []string{fmt.Sprintf("%s 단계 고객을 위한 핵심 메시지", s.Stage)},
			"essentialComponents": []string{"히어로 섹션", "핵심 혜택", "고객 후기"},
			"ctaStrategy":         []string{"자세히 보기"},
			"contentStructure":    []string{"문제 제기", "해결책", "행동 유도"},
			"conversionPoints":    []string{"CTA 위치 최적화"},
			"keywords":            keywords,
		}
	case TypeDA:
		return map[string]interface{}{
			"targeting":        []string{"관심사 타겟팅"},
			"messageDirection": fmt.Sprintf("%s 단계에 맞춘 메시지 방향입니다.", s.Stage),
			"visualConcept":    []string{"제품 중심 이미지"},
			"creatives": map[string]interface{}{
				"headlines":    []string{"지금 확인해보세요"},
				"descriptions": []string{"필요한 정보를 한눈에"},
			},
			"remarketing": "사이트 방문자를 대상으로 리마케팅합니다.",
			"keywords":    keywords,
		}
	case TypeSA:
		return map[string]interface{}{
			"keywordStrategy": []string{"핵심 키워드 그룹 구성"},
			"adCopy": map[string]interface{}{
				"headlines":    []string{"지금 비교해보세요"},
				"descriptions": []string{"검색 의도에 맞춘 광고문구"},
			},
			"extensions":       []string{"사이트링크 확장"},
			"biddingStrategy":  "전환 가능성이 높은 키워드에 입찰을 집중합니다.",
			"negativeKeywords": []string{"무료"},
			"keywords":         keywords,
		}
	default:
		return map[string]interface{}{
			"characteristics": fmt.Sprintf("%s 단계 키워드 %d개가 확인되었습니다.", s.Stage, s.Count),
			"customerNeeds":   "고객의 검색 의도를 파악해 니즈에 맞는 정보를 제공해야 합니다.",
			"messageStrategy": "단계에 맞는 핵심 메시지를 전달합니다.",
			"contentStrategy": "검색 의도에 맞춘 콘텐츠를 제작합니다.",
			"keywords":        keywords,
		}
	}
}

func dummyBudget(summaries []StageSummary, summary string) map[string]interface{} {
	stageAllocation := make(map[string]interface{})
	for _, s := range summaries {
		if s.Count == 0 {
			continue
		}
		stageAllocation[string(s.Stage)] = map[string]interface{}{
			"primaryChannels": []string{"SA", "Content"},
			"allocation":      map[string]interface{}{"SA": 60, "Content": 40},
			"strategy":        fmt.Sprintf("%s 단계 키워드 중심 운영", s.Stage),
		}
	}
	return map[string]interface{}{
		"overallAllocation": map[string]interface{}{
			"SA":      map[string]interface{}{"percentage": 40, "description": "검색광고"},
			"DA":      map[string]interface{}{"percentage": 15, "description": "디스플레이 광고"},
			"Social":  map[string]interface{}{"percentage": 10, "description": "소셜미디어 광고"},
			"Content": map[string]interface{}{"percentage": 25, "description": "콘텐츠 마케팅"},
			"Email":   map[string]interface{}{"percentage": 10, "description": "이메일 마케팅"},
		},
		"stageAllocation": stageAllocation,
		"summary":         summary,
	}
}
