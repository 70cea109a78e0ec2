package insights

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywordjourney/internal/journey"
	"keywordjourney/internal/llm"
	"keywordjourney/internal/logger"
	"keywordjourney/internal/models"
)

type completerFunc func(ctx context.Context, req llm.CompletionRequest) (string, error)

func (f completerFunc) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	return f(ctx, req)
}

func sampleKeywords() []models.KeywordStat {
	kw := []models.KeywordStat{
		{RelKeyword: "카페 추천", BuyerJourney: string(journey.StageInformationSearch)},
		{RelKeyword: "카페 가격", BuyerJourney: string(journey.StagePurchaseDecision)},
		{RelKeyword: "카페 후기", BuyerJourney: string(journey.StagePostPurchase)},
		{RelKeyword: "미분류", BuyerJourney: ""},
	}
	for i := 0; i < 7; i++ {
		kw = append(kw, models.KeywordStat{
			RelKeyword:   "정보 " + string(rune('a'+i)),
			BuyerJourney: string(journey.StageInformationSearch),
		})
	}
	return kw
}

func TestParseType(t *testing.T) {
	for _, raw := range []string{"marketing", "budget", "landing", "da", "sa"} {
		typ, ok := ParseType(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, Type(raw), typ)
	}
	_, ok := ParseType("seo")
	assert.False(t, ok)
	_, ok = ParseType("")
	assert.False(t, ok)
}

func TestBuildContext(t *testing.T) {
	summaries := BuildContext(sampleKeywords())
	require.Len(t, summaries, 6)

	assert.Equal(t, journey.StageProblemRecognition, summaries[0].Stage)
	assert.Equal(t, 0, summaries[0].Count)

	info := summaries[1]
	assert.Equal(t, journey.StageInformationSearch, info.Stage)
	assert.Equal(t, 8, info.Count)
	assert.Len(t, info.Samples, 5)
	assert.Equal(t, "카페 추천", info.Samples[0])

	assert.Equal(t, 1, summaries[3].Count)
	assert.Equal(t, 1, summaries[5].Count)
}

func TestRenderContext(t *testing.T) {
	text := RenderContext(BuildContext(sampleKeywords()))
	assert.Contains(t, text, "- 정보 탐색: 8개 키워드")
	assert.Contains(t, text, "- 문제 인식: 0개 키워드")
	assert.Contains(t, text, "구매 결정: 카페 가격")
	assert.NotContains(t, text, "미분류")
}

func TestPrompts(t *testing.T) {
	for _, typ := range Types {
		system, user, ok := Prompts(typ, "DATA")
		require.True(t, ok, typ)
		assert.Contains(t, system, "JSON")
		assert.Contains(t, user, "DATA")
		assert.Contains(t, user, `"summary"`)
	}
	_, _, ok := Prompts("seo", "DATA")
	assert.False(t, ok)
}

func TestSchemasCompile(t *testing.T) {
	all, err := loadSchemas()
	require.NoError(t, err)
	assert.Len(t, all, len(Types))
}

func TestValidate(t *testing.T) {
	errs, err := Validate(TypeMarketing, map[string]interface{}{
		"stages": map[string]interface{}{
			"정보 탐색": map[string]interface{}{"characteristics": "text", "keywords": []string{"a"}},
		},
		"summary": "ok",
	})
	require.NoError(t, err)
	assert.Empty(t, errs)

	errs, err = Validate(TypeMarketing, map[string]interface{}{
		"stages": map[string]interface{}{
			"정보 탐색": map[string]interface{}{"keywords": "not an array"},
		},
	})
	require.NoError(t, err)
	assert.Len(t, errs, 2)

	errs, err = Validate(TypeBudget, map[string]interface{}{
		"overallAllocation": map[string]interface{}{"SA": map[string]interface{}{"percentage": 140}},
		"summary":           "s",
	})
	require.NoError(t, err)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "percentage")
}

func TestDummyInsightsMatchSchemas(t *testing.T) {
	for _, typ := range Types {
		t.Run(string(typ), func(t *testing.T) {
			insight := Dummy(typ, sampleKeywords())
			errs, err := Validate(typ, insight)
			require.NoError(t, err)
			assert.Empty(t, errs)
		})
	}
}

func TestGenerate_Dummy(t *testing.T) {
	g := NewGenerator(nil, "", logger.NewTestLogger(t))
	res, err := g.Generate(context.Background(), TypeSA, sampleKeywords())
	require.NoError(t, err)
	assert.Equal(t, SourceDummy, res.Source)
	assert.IsType(t, map[string]interface{}{}, res.Insight)
}

func TestGenerate_InvalidType(t *testing.T) {
	g := NewGenerator(nil, "", logger.NewTestLogger(t))
	_, err := g.Generate(context.Background(), "seo", nil)
	assert.ErrorIs(t, err, ErrInvalidType)
}

func TestGenerate_OpenAI(t *testing.T) {
	var got llm.CompletionRequest
	completer := completerFunc(func(_ context.Context, req llm.CompletionRequest) (string, error) {
		got = req
		return `{"stages":{"구매 결정":{"characteristics":"가격 비교","keywords":["카페 가격"]}},"summary":"요약"}`, nil
	})
	g := NewGenerator(completer, "", logger.NewTestLogger(t))

	res, err := g.Generate(context.Background(), TypeMarketing, sampleKeywords())
	require.NoError(t, err)

	assert.Equal(t, SourceOpenAI, res.Source)
	assert.Empty(t, res.SchemaErrors)
	insight, ok := res.Insight.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "요약", insight["summary"])

	assert.Equal(t, DefaultModel, got.Model)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
	assert.Equal(t, 2000, got.MaxTokens)
	assert.True(t, got.JSONMode)
	assert.True(t, strings.HasPrefix(got.System, "당신은 마케팅 전략 전문가입니다."))
	assert.Contains(t, got.Prompt, "- 정보 탐색: 8개 키워드")
}

func TestGenerate_SchemaErrorsReported(t *testing.T) {
	completer := completerFunc(func(context.Context, llm.CompletionRequest) (string, error) {
		return `{"stages":{}}`, nil
	})
	g := NewGenerator(completer, "gpt-4.1-mini", logger.NewTestLogger(t))

	res, err := g.Generate(context.Background(), TypeLanding, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, res.SchemaErrors)
	assert.NotNil(t, res.Insight)
}

func TestGenerate_RawTextWhenNotJSON(t *testing.T) {
	completer := completerFunc(func(context.Context, llm.CompletionRequest) (string, error) {
		return "인사이트를 생성할 수 없습니다", nil
	})
	g := NewGenerator(completer, "", logger.NewTestLogger(t))

	res, err := g.Generate(context.Background(), TypeDA, nil)
	require.NoError(t, err)
	assert.Equal(t, "인사이트를 생성할 수 없습니다", res.Insight)
}

func TestGenerate_BackendError(t *testing.T) {
	completer := completerFunc(func(context.Context, llm.CompletionRequest) (string, error) {
		return "", &llm.APIError{StatusCode: 500, Status: "500 Internal Server Error"}
	})
	g := NewGenerator(completer, "", logger.NewTestLogger(t))

	_, err := g.Generate(context.Background(), TypeBudget, nil)
	var apiErr *llm.APIError
	assert.True(t, errors.As(err, &apiErr))
}
