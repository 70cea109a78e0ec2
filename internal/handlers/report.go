package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v3"

	"keywordjourney/internal/models"
	"keywordjourney/internal/report"
)

// ReportHandler serves downloadable journey reports.
type ReportHandler struct {
	renderer *report.Renderer
}

// NewReportHandler creates a new report handler.
func NewReportHandler(renderer *report.Renderer) *ReportHandler {
	return &ReportHandler{renderer: renderer}
}

type reportRequest struct {
	Title    string               `json:"title"`
	Summary  string               `json:"summary"`
	Keywords []models.KeywordStat `json:"keywords"`
}

// Download renders the posted keywords as a standalone report attachment.
// The body is either a JSON document or a form with the document in the
// "payload" field. ?format=text returns the plain text rendering.
func (h *ReportHandler) Download(c fiber.Ctx) error {
	raw := c.Body()
	if payload := c.FormValue("payload"); payload != "" {
		raw = []byte(payload)
	}

	var req reportRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid report data")
	}
	if len(req.Keywords) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "No keywords to report")
	}

	htmlBody, textBody := h.renderer.Render(report.Data{
		Title:    req.Title,
		Keywords: req.Keywords,
		Summary:  req.Summary,
	})

	if c.Query("format") == "text" {
		c.Attachment("journey-report.txt")
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.SendString(textBody)
	}

	c.Attachment("journey-report.html")
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.SendString(htmlBody)
}
