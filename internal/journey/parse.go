package journey

import (
	"strings"
	"unicode"
)

// Line is one parsed "keyword|stage" answer line.
type Line struct {
	Keyword string
	Stage   string
}

// ParseLines extracts keyword|stage pairs from a completion. Lines without a
// '|' are ignored; each remaining line is split on its first '|' and both
// sides are trimmed. Lines with an empty keyword are dropped.
func ParseLines(text string) []Line {
	var lines []Line
	for _, raw := range strings.Split(text, "\n") {
		keyword, stage, ok := strings.Cut(raw, "|")
		if !ok {
			continue
		}
		keyword = strings.TrimSpace(keyword)
		if keyword == "" {
			continue
		}
		lines = append(lines, Line{Keyword: keyword, Stage: strings.TrimSpace(stage)})
	}
	return lines
}

// ReconcileStats describes how a batch's parsed lines matched its keywords.
type ReconcileStats struct {
	Parsed     int // lines with a '|'
	Exact      int // keywords matched verbatim
	Normalized int // keywords matched only after normalization
	Unmatched  int // keywords with no usable line
	BadStage   int // matched lines whose stage is outside the taxonomy
}

// Reconcile attaches parsed stages to the batch keywords by value. The output
// has one Result per batch keyword, in batch order. When the same keyword
// appears on several lines the first line wins. Keywords are matched exactly
// first and then by normalized form; a keyword whose line is missing or names
// an unknown stage gets DefaultStage with Fallback set.
func Reconcile(batch []string, lines []Line) ([]Result, ReconcileStats) {
	stats := ReconcileStats{Parsed: len(lines)}

	exact := make(map[string]string, len(lines))
	normalized := make(map[string]string, len(lines))
	for _, l := range lines {
		if _, seen := exact[l.Keyword]; !seen {
			exact[l.Keyword] = l.Stage
		}
		key := normalizeKeyword(l.Keyword)
		if _, seen := normalized[key]; !seen {
			normalized[key] = l.Stage
		}
	}

	out := make([]Result, len(batch))
	for i, kw := range batch {
		raw, ok := exact[kw]
		if ok {
			stats.Exact++
		} else if raw, ok = normalized[normalizeKeyword(kw)]; ok {
			stats.Normalized++
		}

		if !ok {
			stats.Unmatched++
			out[i] = Result{Keyword: kw, Stage: DefaultStage, Fallback: true}
			continue
		}

		stage, valid := ParseStage(raw)
		if !valid {
			stats.BadStage++
			out[i] = Result{Keyword: kw, Stage: DefaultStage, Fallback: true}
			continue
		}
		out[i] = Result{Keyword: kw, Stage: stage}
	}
	return out, stats
}

// normalizeKeyword trims, collapses inner whitespace and lower-cases. Lower
// casing is a no-op for Hangul, so it is safe for Korean keywords.
func normalizeKeyword(s string) string {
	return strings.ToLower(strings.Join(strings.FieldsFunc(s, unicode.IsSpace), " "))
}
