package llm

import "strings"

// ReasoningEffort is the reasoning.effort hint for reasoning models.
type ReasoningEffort string

const (
	ReasoningEffortLow    ReasoningEffort = "low"
	ReasoningEffortMedium ReasoningEffort = "medium"
)

// Verbosity is the text.verbosity hint for reasoning models.
type Verbosity string

const (
	VerbosityMedium Verbosity = "medium"
	VerbosityHigh   Verbosity = "high"
)

const reasoningFamily = "gpt-5"

// IsReasoningModel reports whether model belongs to the reasoning family that
// is served by the Responses API.
func IsReasoningModel(model string) bool {
	return strings.HasPrefix(model, reasoningFamily)
}

// EffortFor returns the reasoning effort for a reasoning model variant.
func EffortFor(model string) ReasoningEffort {
	if model == "gpt-5" {
		return ReasoningEffortMedium
	}
	return ReasoningEffortLow
}

// VerbosityFor returns the verbosity hint for a reasoning model variant.
func VerbosityFor(model string) Verbosity {
	if model == "gpt-5-nano" {
		return VerbosityMedium
	}
	return VerbosityHigh
}

type responsesRequest struct {
	Model     string             `json:"model"`
	Input     string             `json:"input"`
	Reasoning responsesReasoning `json:"reasoning"`
	Text      responsesText      `json:"text"`
}

type responsesReasoning struct {
	Effort ReasoningEffort `json:"effort"`
}

type responsesText struct {
	Verbosity Verbosity `json:"verbosity"`
}

func newResponsesRequest(req CompletionRequest) responsesRequest {
	input := req.Prompt
	if req.System != "" {
		input = req.System + "\n\n" + req.Prompt
	}
	return responsesRequest{
		Model:     req.Model,
		Input:     input,
		Reasoning: responsesReasoning{Effort: EffortFor(req.Model)},
		Text:      responsesText{Verbosity: VerbosityFor(req.Model)},
	}
}

type responsesResponse struct {
	OutputText string `json:"output_text"`
	Output     []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// Text returns output_text when the API supplied it, otherwise the
// concatenated output_text parts of message items.
func (r *responsesResponse) Text() string {
	if r.OutputText != "" {
		return r.OutputText
	}
	var b strings.Builder
	for _, item := range r.Output {
		if item.Type != "" && item.Type != "message" {
			continue
		}
		for _, part := range item.Content {
			if part.Type != "" && part.Type != "output_text" {
				continue
			}
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// ChatMessage is a single chat turn.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []ChatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

func newChatRequest(req CompletionRequest) chatRequest {
	messages := make([]ChatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, ChatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, ChatMessage{Role: "user", Content: req.Prompt})

	out := chatRequest{
		Model:       req.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	}
	if req.JSONMode {
		out.ResponseFormat = &responseFormat{Type: "json_object"}
	}
	return out
}

type chatResponse struct {
	Choices []struct {
		Message ChatMessage `json:"message"`
	} `json:"choices"`
}

// Text returns the first choice's content, or "" when there are no choices.
func (r *chatResponse) Text() string {
	if len(r.Choices) == 0 {
		return ""
	}
	return r.Choices[0].Message.Content
}
