package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keywordjourney/internal/brand"
	"keywordjourney/internal/cache"
	"keywordjourney/internal/config"
	"keywordjourney/internal/insights"
	"keywordjourney/internal/journey"
	"keywordjourney/internal/llm"
	"keywordjourney/internal/logger"
	"keywordjourney/internal/report"
	"keywordjourney/internal/searchad"
	"keywordjourney/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		Env:          "test",
		ServerAddr:   ":0",
		BaseURL:      "http://localhost:3000",
		DefaultModel: "gpt-5-nano",
		InsightModel: "gpt-4.1",
		BatchSize:    50,
		MaxRetries:   2,
		RateLimitMax: 100,
		SiteTitle:    "Keyword Journey",
		ViewsDir:     "../../views",
		StaticDir:    "../../static",
	}
}

func newTestServer(t *testing.T, cfg *config.Config, storage fiber.Storage) *Server {
	t.Helper()
	log := logger.NewTestLogger(t)
	stats := searchad.NewService(nil, nil, log)

	s := New(cfg, storage, log)
	s.RegisterRoutes(Dependencies{
		Dummy:    journey.NewDummyClassifier(nil),
		Stats:    stats,
		Insights: insights.NewGenerator(nil, cfg.InsightModel, log),
		Brands:   brand.NewAnalyzer(stats),
		Reports:  report.NewRenderer(cfg.SiteTitle),
	})
	return s
}

func get(t *testing.T, app *fiber.App, path string) (*http.Response, string) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestPages(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	tests := []struct {
		path     string
		contains string
	}{
		{"/", "키워드 구매여정 분석"},
		{"/brand-analysis", "브랜드 비교"},
		{"/settings", "미설정 (더미 데이터 사용)"},
		{"/history", "저장된 분석 기록이 없습니다."},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, body := get(t, s.App, tt.path)
			assert.Equal(t, fiber.StatusOK, resp.StatusCode)
			assert.Contains(t, body, tt.contains)
			assert.Contains(t, body, "<title>")
			assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
		})
	}
}

func TestSettingsNeverShowsCredentials(t *testing.T) {
	cfg := testConfig()
	cfg.OpenAIAPIKey = "sk-secret-value"
	cfg.NaverSecretKey = "naver-secret-value"

	_, body := get(t, newTestServer(t, cfg, nil).App, "/settings")
	assert.NotContains(t, body, "sk-secret-value")
	assert.NotContains(t, body, "naver-secret-value")
	assert.Contains(t, body, "연결됨")
}

func TestIndexListsModels(t *testing.T) {
	_, body := get(t, newTestServer(t, testConfig(), nil).App, "/")
	for _, m := range config.DefaultModels {
		assert.Contains(t, body, `value="`+m.Value+`"`)
	}
	for _, s := range journey.Stages {
		assert.Contains(t, body, string(s))
	}
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	resp, body := get(t, s.App, "/api/missing")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.NotEmpty(t, out["error"])

	resp, body = get(t, s.App, "/missing")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "404")
}

func TestProbesAndMetrics(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	resp, body := get(t, s.App, "/healthz")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	resp, _ = get(t, s.App, "/readyz")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, body = get(t, s.App, "/metrics")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "go_goroutines")
}

func TestAnalyzeJourneyDummyEndToEnd(t *testing.T) {
	s := newTestServer(t, testConfig(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-journey",
		strings.NewReader(`{"keywords":["카페 추천","카페 가격 비교"]}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Results []journey.Result `json:"results"`
		Source  string           `json:"source"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "dummy", out.Source)
	require.Len(t, out.Results, 2)
	assert.Equal(t, journey.StageInformationSearch, out.Results[0].Stage)
}

func TestAnalyzeJourneyOpenAIEndToEnd(t *testing.T) {
	fake := testutil.NewOpenAIServer(t, func(model, prompt string) (int, string) {
		kws := testutil.PromptKeywords(prompt)
		if len(kws) > 0 && kws[0] == "키워드 050" {
			return http.StatusServiceUnavailable, "overloaded"
		}
		return testutil.AnswerAll(string(journey.StagePurchaseDecision))(model, prompt)
	})

	cfg := testConfig()
	log := logger.NewTestLogger(t)
	client := llm.NewClient("sk-test", fake.URL, fake.Client())
	opts := journey.DefaultOptions()
	opts.Retry.BaseDelay = 0
	stats := searchad.NewService(nil, nil, log)

	s := New(cfg, nil, log)
	s.RegisterRoutes(Dependencies{
		Classifier: journey.NewClassifier(client, opts, log),
		Dummy:      journey.NewDummyClassifier(nil),
		Stats:      stats,
		Insights:   insights.NewGenerator(client, cfg.InsightModel, log),
		Brands:     brand.NewAnalyzer(stats),
		Reports:    report.NewRenderer(cfg.SiteTitle),
	})

	keywords := make([]string, 120)
	for i := range keywords {
		keywords[i] = fmt.Sprintf("키워드 %03d", i)
	}
	payload, err := json.Marshal(map[string]interface{}{"keywords": keywords, "model": "gpt-5-nano"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/analyze-journey", strings.NewReader(string(payload)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := s.App.Test(req, fiber.TestConfig{Timeout: 10 * time.Second})
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out struct {
		Results      []journey.Result `json:"results"`
		Source       string           `json:"source"`
		TotalBatches int              `json:"totalBatches"`
		Message      string           `json:"message"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))

	assert.Equal(t, "openai", out.Source)
	assert.Equal(t, 3, out.TotalBatches)
	assert.Equal(t, "gpt-5-nano을 사용하여 3개 배치를 병렬 처리했습니다.", out.Message)
	require.Len(t, out.Results, 120)
	for i, r := range out.Results {
		assert.Equal(t, keywords[i], r.Keyword)
		if i >= 50 && i < 100 {
			assert.Equal(t, journey.DefaultStage, r.Stage)
			assert.True(t, r.Fallback)
		} else {
			assert.Equal(t, journey.StagePurchaseDecision, r.Stage)
		}
	}
	// Batches 1 and 3 once, batch 2 three times.
	assert.Equal(t, 5, fake.Calls())
}

func TestRateLimit_RedisStorage(t *testing.T) {
	mr := miniredis.RunT(t)
	storage := cache.NewRedisStorage("redis://" + mr.Addr())
	t.Cleanup(func() { _ = storage.Close() })

	cfg := testConfig()
	cfg.RateLimitMax = 2
	s := newTestServer(t, cfg, storage)

	for i := 0; i < 2; i++ {
		resp, _ := get(t, s.App, "/history")
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	}

	resp, body := get(t, s.App, "/history")
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Contains(t, body, "Rate limit exceeded")

	resp, _ = get(t, s.App, "/healthz")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	assert.NotEmpty(t, mr.Keys())
}
