// Package searchad fetches related-keyword statistics from the Naver SearchAd
// keyword tool API.
package searchad

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"keywordjourney/internal/models"
)

const (
	defaultBaseURL  = "https://api.searchad.naver.com"
	keywordToolPath = "/keywordstool"
)

// Credentials authenticate against the SearchAd API.
type Credentials struct {
	APIKey     string
	SecretKey  string
	CustomerID string
}

// Configured reports whether all three credentials are set.
func (c Credentials) Configured() bool {
	return c.APIKey != "" && c.SecretKey != "" && c.CustomerID != ""
}

// Query selects related keywords for one or more hint keywords.
type Query struct {
	HintKeywords        string
	ShowDetail          bool
	IncludeHintKeywords bool
}

func (q Query) values() url.Values {
	v := url.Values{}
	v.Set("hintKeywords", q.HintKeywords)
	v.Set("showDetail", boolFlag(q.ShowDetail))
	v.Set("includeHintKeywords", boolFlag(q.IncludeHintKeywords))
	return v
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// Error is returned for non-2xx provider responses.
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("searchad request failed: %d %s - %s", e.StatusCode, http.StatusText(e.StatusCode), e.Body)
}

// Client calls the keyword tool endpoint.
type Client struct {
	creds      Credentials
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewClient creates a client. An empty baseURL selects the public endpoint.
func NewClient(creds Credentials, baseURL string, httpClient *http.Client) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		creds:      creds,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		now:        time.Now,
	}
}

// RelatedKeywords performs one signed GET against the keyword tool and
// returns its keywordList.
func (c *Client) RelatedKeywords(ctx context.Context, q Query) ([]models.KeywordStat, error) {
	endpoint := c.baseURL + keywordToolPath + "?" + q.values().Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	timestamp := strconv.FormatInt(c.now().UnixMilli(), 10)
	req.Header.Set("X-Timestamp", timestamp)
	req.Header.Set("X-API-KEY", c.creds.APIKey)
	req.Header.Set("X-Customer", c.creds.CustomerID)
	req.Header.Set("X-Signature", Sign(c.creds.SecretKey, timestamp, http.MethodGet, keywordToolPath))
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &Error{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var payload struct {
		KeywordList []models.KeywordStat `json:"keywordList"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("invalid JSON response from searchad: %w", err)
	}
	if payload.KeywordList == nil {
		return []models.KeywordStat{}, nil
	}
	return payload.KeywordList, nil
}
