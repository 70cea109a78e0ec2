package handlers

import (
	"github.com/gofiber/fiber/v3"

	"keywordjourney/internal/config"
	"keywordjourney/internal/insights"
	"keywordjourney/internal/journey"
	"keywordjourney/internal/validation"
)

// PageHandler renders the dashboard pages.
type PageHandler struct {
	cfg *config.Config
}

// NewPageHandler creates a new page handler.
func NewPageHandler(cfg *config.Config) *PageHandler {
	return &PageHandler{cfg: cfg}
}

// Index renders the keyword search and journey dashboard.
func (h *PageHandler) Index(c fiber.Ctx) error {
	return c.Render("index", MergeBranding(fiber.Map{
		"Title":        "키워드 분석",
		"Stages":       journey.Stages,
		"InsightTypes": insights.Types,
		"Query":        c.Query("q", ""),
	}, h.cfg))
}

// BrandAnalysis renders the brand comparison page.
func (h *PageHandler) BrandAnalysis(c fiber.Ctx) error {
	return c.Render("brand_analysis", MergeBranding(fiber.Map{
		"Title":     "브랜드 분석",
		"MinBrands": validation.MinBrands,
		"MaxBrands": validation.MaxBrands,
	}, h.cfg))
}

// Settings shows which integrations are configured. Credential values are
// never rendered.
func (h *PageHandler) Settings(c fiber.Ctx) error {
	return c.Render("settings", MergeBranding(fiber.Map{
		"Title":           "설정",
		"OpenAIEnabled":   h.cfg.HasOpenAI(),
		"NaverEnabled":    h.cfg.HasNaver(),
		"DatabaseEnabled": h.cfg.DatabaseURL != "",
		"RedisEnabled":    h.cfg.RedisURL != "",
		"InsightModel":    h.cfg.InsightModel,
		"BatchSize":       h.cfg.BatchSize,
		"MaxRetries":      h.cfg.MaxRetries,
	}, h.cfg))
}

// History renders the analysis history page. Past analyses are not stored
// server side, so it only shows the empty state.
func (h *PageHandler) History(c fiber.Ctx) error {
	return c.Render("history", MergeBranding(fiber.Map{
		"Title": "분석 기록",
	}, h.cfg))
}
