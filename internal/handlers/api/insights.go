package api

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"keywordjourney/internal/insights"
	"keywordjourney/internal/logger"
	"keywordjourney/internal/models"
)

// InsightGenerator produces insights. *insights.Generator implements it.
type InsightGenerator interface {
	Generate(ctx context.Context, t insights.Type, keywords []models.KeywordStat) (*insights.Result, error)
}

// InsightHandler serves marketing insight generation.
type InsightHandler struct {
	generator InsightGenerator
	log       logger.Logger
}

// NewInsightHandler creates an insight handler.
func NewInsightHandler(generator InsightGenerator, log logger.Logger) *InsightHandler {
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &InsightHandler{generator: generator, log: log}
}

// Generate builds an insight of the requested type from classified keywords.
func (h *InsightHandler) Generate(c fiber.Ctx) error {
	var body struct {
		Keywords    []models.KeywordStat `json:"keywords"`
		InsightType string               `json:"insightType"`
	}
	if err := decodeBody(c, &body); err != nil {
		h.log.WithError(err).Warn("failed to decode insight request", nil)
		return jsonError(c, fiber.StatusInternalServerError, "Failed to generate insights")
	}

	t, ok := insights.ParseType(body.InsightType)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest, "Invalid insight type")
	}

	result, err := h.generator.Generate(c.Context(), t, body.Keywords)
	if err != nil {
		if errors.Is(err, insights.ErrInvalidType) {
			return jsonError(c, fiber.StatusBadRequest, "Invalid insight type")
		}
		h.log.WithError(err).Error("failed to generate insights", map[string]interface{}{
			"type":     string(t),
			"keywords": len(body.Keywords),
		})
		return jsonError(c, fiber.StatusInternalServerError, "Failed to generate insights")
	}

	return c.JSON(result)
}
