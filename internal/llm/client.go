// Package llm is a minimal OpenAI client covering the two request shapes the
// dashboard uses: the Responses API for reasoning models and Chat Completions
// for everything else.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const defaultBaseURL = "https://api.openai.com/v1"

var (
	// ErrMalformedResponse is returned when a 2xx body cannot be decoded.
	ErrMalformedResponse = errors.New("malformed completion response")
	// ErrMissingAPIKey is returned when the client has no key configured.
	ErrMissingAPIKey = errors.New("openai api key not configured")
)

// APIError is returned for any non-2xx response.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openai api error: %d %s", e.StatusCode, e.StatusText())
}

// StatusText returns the reason phrase without the numeric prefix.
func (e *APIError) StatusText() string {
	if text := strings.TrimSpace(strings.TrimPrefix(e.Status, fmt.Sprint(e.StatusCode))); text != "" {
		return text
	}
	return http.StatusText(e.StatusCode)
}

// CompletionRequest is a provider-neutral completion request. The wire shape is
// chosen from Model.
type CompletionRequest struct {
	Model       string
	System      string
	Prompt      string
	Temperature float64
	MaxTokens   int
	JSONMode    bool
}

// Client talks to the OpenAI HTTP API.
type Client struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a client. An empty baseURL selects the public endpoint.
func NewClient(apiKey, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		APIKey:     apiKey,
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: httpClient,
	}
}

// Complete sends one completion request and returns the generated text.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if c.APIKey == "" {
		return "", ErrMissingAPIKey
	}

	if IsReasoningModel(req.Model) {
		var resp responsesResponse
		if err := c.post(ctx, "/responses", newResponsesRequest(req), &resp); err != nil {
			return "", err
		}
		return resp.Text(), nil
	}

	var resp chatResponse
	if err := c.post(ctx, "/chat/completions", newChatRequest(req), &resp); err != nil {
		return "", err
	}
	return resp.Text(), nil
}

func (c *Client) post(ctx context.Context, path string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Body:       string(data),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return nil
}
