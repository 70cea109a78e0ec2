package journey

import (
	"fmt"
	"strings"

	"keywordjourney/internal/llm"
)

// Persona is the fixed instruction sent as the system text.
const Persona = "당신은 마케팅 전문가입니다. 키워드를 보고 구매여정 단계를 정확하게 분류해주세요."

const (
	classifyTemperature = 0.3
	classifyMaxTokens   = 2000
)

const taxonomy = `다음 키워드들을 6단계 구매여정 단계 중 하나로 분류해주세요.

구매여정 6단계:
1. 문제 인식: 니즈나 문제를 처음 인식하는 단계 (예: "카페란", "창업이란", "문제점")
2. 정보 탐색: 해결책을 찾기 위해 정보를 수집하는 단계 (예: "카페 추천", "창업 방법", "종류")
3. 대안 평가: 여러 대안을 비교 검토하는 단계 (예: "카페 비교", "A vs B", "장단점")
4. 구매 결정: 특정 제품/서비스 구매를 결정하는 단계 (예: "카페 가격", "비용", "할인")
5. 구매 행동: 실제 구매 행동이 일어나는 단계 (예: "카페 구매", "주문", "예약")
6. 구매 후 행동: 구매 후 만족도를 평가하는 단계 (예: "카페 후기", "리뷰", "평가")`

const answerFormat = `각 키워드에 대해 반드시 다음 형식으로만 응답해주세요:
키워드명|단계명

정확한 예시:
카페 추천|정보 탐색
카페 창업 비용|구매 결정
카페 후기|구매 후 행동`

// BuildPrompt renders the classification prompt for one batch: the taxonomy,
// the keywords as a numbered list, and the keyword|stage answer format.
func BuildPrompt(batch []string) string {
	var b strings.Builder
	b.WriteString(taxonomy)
	b.WriteString("\n\n다음 키워드들을 분석해주세요:\n")
	for i, kw := range batch {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, kw)
	}
	b.WriteString("\n\n")
	b.WriteString(answerFormat)
	return b.String()
}

// NewRequest builds the completion request for one batch. Sampling settings
// only apply to the chat shape; the llm client ignores them for reasoning models.
func NewRequest(batch []string, model string) llm.CompletionRequest {
	return llm.CompletionRequest{
		Model:       model,
		System:      Persona,
		Prompt:      BuildPrompt(batch),
		Temperature: classifyTemperature,
		MaxTokens:   classifyMaxTokens,
	}
}
