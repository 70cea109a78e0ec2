// Package testutil provides test utilities and helpers.
package testutil

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync/atomic"
	"testing"
)

// ReplyFunc answers one completion request. A status other than 200 is sent
// with text as the error body.
type ReplyFunc func(model, prompt string) (status int, text string)

// OpenAIServer is a fake of the two completion endpoints the llm client uses.
type OpenAIServer struct {
	*httptest.Server
	calls atomic.Int64
}

// Calls returns how many completion requests the server has answered.
func (s *OpenAIServer) Calls() int {
	return int(s.calls.Load())
}

// NewOpenAIServer starts a fake OpenAI API that answers /responses and
// /chat/completions through reply. It is closed when the test ends.
func NewOpenAIServer(t *testing.T, reply ReplyFunc) *OpenAIServer {
	t.Helper()
	s := &OpenAIServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		var req struct {
			Model    string `json:"model"`
			Input    string `json:"input"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.Unmarshal(body, &req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		prompt := req.Input
		if len(req.Messages) > 0 {
			prompt = req.Messages[len(req.Messages)-1].Content
		}

		status, text := reply(req.Model, prompt)
		if status != http.StatusOK {
			http.Error(w, text, status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/responses":
			_ = json.NewEncoder(w).Encode(map[string]string{"output_text": text})
		case "/chat/completions":
			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{
					{"message": map[string]string{"role": "assistant", "content": text}},
				},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(s.Close)
	return s
}

var numberedLine = regexp.MustCompile(`^\d+\. (.+)$`)

const keywordListHeader = "다음 키워드들을 분석해주세요:\n"

// PromptKeywords extracts the numbered keyword list from a classification prompt.
func PromptKeywords(prompt string) []string {
	_, list, ok := strings.Cut(prompt, keywordListHeader)
	if !ok {
		return nil
	}
	list, _, _ = strings.Cut(list, "\n\n")

	var out []string
	for _, line := range strings.Split(list, "\n") {
		if m := numberedLine.FindStringSubmatch(line); m != nil {
			out = append(out, strings.TrimSpace(m[1]))
		}
	}
	return out
}

// AnswerAll replies to every classification prompt by assigning stage to each
// keyword in the "keyword|stage" answer format.
func AnswerAll(stage string) ReplyFunc {
	return func(_, prompt string) (int, string) {
		var b strings.Builder
		for _, kw := range PromptKeywords(prompt) {
			fmt.Fprintf(&b, "%s|%s\n", kw, stage)
		}
		return http.StatusOK, b.String()
	}
}
