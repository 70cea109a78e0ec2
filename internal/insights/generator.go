package insights

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"keywordjourney/internal/llm"
	"keywordjourney/internal/logger"
	"keywordjourney/internal/models"
)

const (
	// DefaultModel is the chat model used for insights.
	DefaultModel = "gpt-4.1"

	insightTemperature = 0.7
	insightMaxTokens   = 2000
)

// Sources reported with an insight.
const (
	SourceOpenAI = "openai"
	SourceDummy  = "dummy"
)

// ErrInvalidType is returned for an unknown insight type.
var ErrInvalidType = errors.New("invalid insight type")

// Completer produces a completion. *llm.Client implements it.
type Completer interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (string, error)
}

// Result is a generated insight. Insight holds the decoded JSON object, or the
// raw completion text when it is not valid JSON.
type Result struct {
	Insight      interface{} `json:"insight"`
	Source       string      `json:"source"`
	SchemaErrors []string    `json:"schemaErrors,omitempty"`
}

// Generator produces insights through a Completer, or dummy insights when
// none is configured.
type Generator struct {
	completer Completer
	model     string
	log       logger.Logger
}

// NewGenerator creates a generator. A nil completer yields dummy insights.
func NewGenerator(completer Completer, model string, log logger.Logger) *Generator {
	if model == "" {
		model = DefaultModel
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Generator{completer: completer, model: model, log: log}
}

// Generate builds the prompt for t from keywords and asks the model for a
// JSON insight. Schema violations are logged and reported, never fatal.
func (g *Generator) Generate(ctx context.Context, t Type, keywords []models.KeywordStat) (*Result, error) {
	system, user, ok := Prompts(t, RenderContext(BuildContext(keywords)))
	if !ok {
		return nil, ErrInvalidType
	}

	if g.completer == nil {
		return &Result{Insight: Dummy(t, keywords), Source: SourceDummy}, nil
	}

	content, err := g.completer.Complete(ctx, llm.CompletionRequest{
		Model:       g.model,
		System:      system,
		Prompt:      user,
		Temperature: insightTemperature,
		MaxTokens:   insightMaxTokens,
		JSONMode:    true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s insight: %w", t, err)
	}

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		g.log.WithError(err).Warn("insight response is not valid JSON, returning raw text", map[string]interface{}{
			"type": string(t),
		})
		return &Result{Insight: content, Source: SourceOpenAI}, nil
	}

	result := &Result{Insight: parsed, Source: SourceOpenAI}
	schemaErrs, err := Validate(t, parsed)
	if err != nil {
		g.log.WithError(err).Error("insight schema validation failed", map[string]interface{}{"type": string(t)})
		return result, nil
	}
	if len(schemaErrs) > 0 {
		g.log.Warn("insight does not match expected shape", map[string]interface{}{
			"type":   string(t),
			"errors": schemaErrs,
		})
		result.SchemaErrors = schemaErrs
	}
	return result, nil
}
