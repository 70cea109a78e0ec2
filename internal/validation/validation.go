package validation

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxKeywordLength is the longest keyword, in runes, accepted from clients.
const MaxKeywordLength = 100

// Brand comparison accepts between MinBrands and MaxBrands names.
const (
	MinBrands = 2
	MaxBrands = 6
)

// ValidateKeyword checks that a search keyword is non-blank, short enough and
// free of control characters. Any script is allowed.
func ValidateKeyword(keyword string) bool {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" || utf8.RuneCountInString(keyword) > MaxKeywordLength {
		return false
	}
	for _, r := range keyword {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// NormalizeKeyword trims a keyword and collapses inner whitespace.
func NormalizeKeyword(keyword string) string {
	return strings.Join(strings.Fields(keyword), " ")
}

// CleanBrands normalizes brand names, drops blanks and duplicates, and
// reports whether the remaining count is within the accepted range.
func CleanBrands(brands []string) ([]string, bool) {
	seen := make(map[string]struct{}, len(brands))
	out := make([]string, 0, len(brands))
	for _, b := range brands {
		b = NormalizeKeyword(b)
		if !ValidateKeyword(b) {
			continue
		}
		if _, dup := seen[b]; dup {
			continue
		}
		seen[b] = struct{}{}
		out = append(out, b)
	}
	return out, len(out) >= MinBrands && len(out) <= MaxBrands
}

// ValidateURL checks if a URL is valid and uses an allowed scheme (http/https only).
func ValidateURL(urlStr string) (bool, string) {
	if urlStr == "" {
		return false, "URL is required"
	}

	u, err := url.Parse(urlStr)
	if err != nil {
		return false, "Invalid URL format"
	}

	scheme := strings.ToLower(u.Scheme)
	if scheme != "http" && scheme != "https" {
		return false, "URL must use http:// or https:// scheme"
	}

	if u.Host == "" {
		return false, "URL must have a valid host"
	}

	return true, ""
}
