package api

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"keywordjourney/internal/brand"
	"keywordjourney/internal/validation"
)

// BrandComparer summarizes several brands. *brand.Analyzer implements it.
type BrandComparer interface {
	Compare(ctx context.Context, brands []string) ([]brand.Summary, error)
}

// BrandHandler serves brand comparison.
type BrandHandler struct {
	analyzer BrandComparer
}

// NewBrandHandler creates a brand handler.
func NewBrandHandler(analyzer BrandComparer) *BrandHandler {
	return &BrandHandler{analyzer: analyzer}
}

// Compare returns search footprint summaries for the posted brand names.
func (h *BrandHandler) Compare(c fiber.Ctx) error {
	var body struct {
		Brands []string `json:"brands"`
	}
	if err := decodeBody(c, &body); err != nil {
		return jsonErrorDetails(c, fiber.StatusBadRequest, "Invalid request body", err)
	}

	brands, ok := validation.CleanBrands(body.Brands)
	if !ok {
		return jsonError(c, fiber.StatusBadRequest,
			fmt.Sprintf("Between %d and %d brands are required", validation.MinBrands, validation.MaxBrands))
	}

	summaries, err := h.analyzer.Compare(c.Context(), brands)
	if err != nil {
		return jsonErrorDetails(c, fiber.StatusInternalServerError, "Failed to compare brands", err)
	}

	return c.JSON(fiber.Map{
		"brands": summaries,
	})
}
