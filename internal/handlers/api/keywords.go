package api

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v3"

	"keywordjourney/internal/models"
	"keywordjourney/internal/validation"
)

// StatsLookup resolves related keyword statistics. *searchad.Service implements it.
type StatsLookup interface {
	Lookup(ctx context.Context, keyword string, detail bool) ([]models.KeywordStat, string)
}

// KeywordHandler serves related keyword statistics.
type KeywordHandler struct {
	stats StatsLookup
}

// NewKeywordHandler creates a keyword handler.
func NewKeywordHandler(stats StatsLookup) *KeywordHandler {
	return &KeywordHandler{stats: stats}
}

// Search returns related keywords and their search statistics.
func (h *KeywordHandler) Search(c fiber.Ctx) error {
	var body struct {
		Keyword       string `json:"keyword"`
		IncludeDetail bool   `json:"includeDetail"`
	}
	if err := decodeBody(c, &body); err != nil {
		return jsonErrorDetails(c, fiber.StatusInternalServerError, "Failed to process request", err)
	}

	if strings.TrimSpace(body.Keyword) == "" {
		return jsonError(c, fiber.StatusBadRequest, "Keyword is required")
	}
	if !validation.ValidateKeyword(body.Keyword) {
		return jsonError(c, fiber.StatusBadRequest, "Invalid keyword")
	}

	keyword := validation.NormalizeKeyword(body.Keyword)
	stats, source := h.stats.Lookup(c.Context(), keyword, body.IncludeDetail)
	c.Set("X-Data-Source", source)
	return c.JSON(fiber.Map{
		"keywords": stats,
	})
}
