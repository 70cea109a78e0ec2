package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"keywordjourney/internal/journey"
	"keywordjourney/internal/logger"
	"keywordjourney/internal/models"
)

const (
	messageDummy    = "OpenAI API 키가 설정되지 않아 더미 데이터를 사용합니다."
	messageFallback = "배치 처리 실패로 기본값을 사용합니다."
)

// Classifier assigns buyer-journey stages. *journey.Classifier implements it.
type Classifier interface {
	Classify(ctx context.Context, keywords []string, model string) ([]journey.Result, error)
	BatchCount(n int) int
}

// OutcomeRecorder persists per-stage counts of a classification run.
// *metrics.Recorder implements it.
type OutcomeRecorder interface {
	Record(source string, counts map[string]int, fallbacks int)
}

// JourneyHandler serves buyer-journey classification.
type JourneyHandler struct {
	classifier   Classifier
	dummy        *journey.DummyClassifier
	recorder     OutcomeRecorder
	defaultModel string
	log          logger.Logger
}

// NewJourneyHandler creates a journey handler. A nil classifier means no API
// key is configured and every request is answered by dummy.
func NewJourneyHandler(classifier Classifier, dummy *journey.DummyClassifier, recorder OutcomeRecorder, defaultModel string, log logger.Logger) *JourneyHandler {
	if dummy == nil {
		dummy = journey.NewDummyClassifier(nil)
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &JourneyHandler{
		classifier:   classifier,
		dummy:        dummy,
		recorder:     recorder,
		defaultModel: defaultModel,
		log:          log,
	}
}

type analyzeResponse struct {
	Results       []journey.Result `json:"results"`
	Source        string           `json:"source"`
	Model         string           `json:"model,omitempty"`
	TotalBatches  int              `json:"totalBatches,omitempty"`
	TotalKeywords int              `json:"totalKeywords,omitempty"`
	Message       string           `json:"message"`
	Error         string           `json:"error,omitempty"`
}

// Analyze classifies the posted keywords into buyer-journey stages.
func (h *JourneyHandler) Analyze(c fiber.Ctx) error {
	var body struct {
		Keywords json.RawMessage `json:"keywords"`
		Model    string          `json:"model"`
	}
	if err := decodeBody(c, &body); err != nil {
		return jsonErrorDetails(c, fiber.StatusInternalServerError, "Failed to analyze buyer journey", err)
	}

	keywords, ok := keywordList(body.Keywords)
	if !ok || len(keywords) == 0 {
		return jsonError(c, fiber.StatusBadRequest, "Keywords are required")
	}

	model := body.Model
	if model == "" {
		model = h.defaultModel
	}

	if h.classifier == nil {
		h.log.Warn("OpenAI API key not configured, returning dummy classification", map[string]interface{}{
			"keywords": len(keywords),
		})
		results := h.dummy.Classify(keywords)
		h.record(models.SourceDummy, results)
		return c.JSON(analyzeResponse{
			Results: results,
			Source:  models.SourceDummy,
			Message: messageDummy,
		})
	}

	results, err := h.classifier.Classify(c.Context(), keywords, model)
	if err != nil {
		h.record(models.SourceFallback, results)
		return c.JSON(analyzeResponse{
			Results: results,
			Source:  models.SourceFallback,
			Message: messageFallback,
			Error:   err.Error(),
		})
	}

	batches := h.classifier.BatchCount(len(keywords))
	h.record(models.SourceOpenAI, results)
	return c.JSON(analyzeResponse{
		Results:       results,
		Source:        models.SourceOpenAI,
		Model:         model,
		TotalBatches:  batches,
		TotalKeywords: len(keywords),
		Message:       fmt.Sprintf("%s을 사용하여 %d개 배치를 병렬 처리했습니다.", model, batches),
	})
}

func (h *JourneyHandler) record(source string, results []journey.Result) {
	if h.recorder == nil {
		return
	}
	counts := make(map[string]int)
	fallbacks := 0
	for _, r := range results {
		counts[string(r.Stage)]++
		if r.Fallback {
			fallbacks++
		}
	}
	if source == models.SourceFallback {
		fallbacks = len(results)
	}
	h.recorder.Record(source, counts, fallbacks)
}

// keywordList decodes a JSON array of keywords. Non-string elements are
// stringified so every element keeps its place in the result list.
func keywordList(raw json.RawMessage) ([]string, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var items []interface{}
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	keywords := make([]string, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string:
			keywords[i] = v
		case nil:
			keywords[i] = ""
		default:
			keywords[i] = fmt.Sprint(v)
		}
	}
	return keywords, true
}
