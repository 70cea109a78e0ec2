// Package report renders a standalone HTML buyer-journey report that can be
// downloaded and opened without the dashboard.
package report

import (
	"fmt"
	"html"
	"sort"
	"strings"
	"time"

	"keywordjourney/internal/journey"
	"keywordjourney/internal/models"
)

var stageColors = map[journey.Stage]string{
	journey.StageProblemRecognition:    "#3B82F6",
	journey.StageInformationSearch:     "#06B6D4",
	journey.StageAlternativeEvaluation: "#8B5CF6",
	journey.StagePurchaseDecision:      "#F59E0B",
	journey.StagePurchaseAction:        "#10B981",
	journey.StagePostPurchase:          "#6B7280",
}

// Data is the input of a report.
type Data struct {
	Title    string
	Keywords []models.KeywordStat
	// Summary is an optional insight summary shown above the tables.
	Summary string
}

// Renderer renders reports.
type Renderer struct {
	siteTitle string
	now       func() time.Time
}

// NewRenderer creates a renderer that credits siteTitle in the footer.
func NewRenderer(siteTitle string) *Renderer {
	return &Renderer{siteTitle: siteTitle, now: time.Now}
}

// Render returns the HTML document and a plain text rendering of the same report.
func (r *Renderer) Render(d Data) (htmlBody, textBody string) {
	title := d.Title
	if title == "" {
		title = "구매여정 분석 리포트"
	}
	generated := r.now().Format("2006-01-02 15:04")
	stats := CalculateStageStats(d.Keywords)

	var content strings.Builder
	fmt.Fprintf(&content, `<p class="meta">생성 시각: %s · 키워드 %d개</p>`, generated, len(d.Keywords))

	if d.Summary != "" {
		fmt.Fprintf(&content, `
        <div class="info-box">
            <p><span class="label">요약</span></p>
            <p>%s</p>
        </div>`, html.EscapeString(d.Summary))
	}

	content.WriteString(`
        <h2>단계별 분포</h2>
        <table>
            <tr><th>단계</th><th>키워드 수</th><th>비율</th><th>검색량</th><th>클릭량</th></tr>`)
	for _, s := range stats {
		fmt.Fprintf(&content, `
            <tr><td><span class="dot" style="background:%s"></span>%s <small>%s</small></td><td>%d</td><td>%.1f%%</td><td>%s</td><td>%s</td></tr>`,
			stageColors[s.Stage], html.EscapeString(string(s.Stage)), s.Stage.English(), s.Count, s.Percent,
			formatNumber(s.SearchTotal()), formatNumber(s.ClickTotal()))
	}
	content.WriteString(`
        </table>`)

	top := TopKeywords(d.Keywords, 5)
	if len(top) > 0 {
		content.WriteString(`
        <h2>검색량 상위 키워드</h2>
        <ol>`)
		for _, k := range top {
			fmt.Fprintf(&content, `
            <li><code>%s</code> · %s · %s</li>`,
				html.EscapeString(k.Keyword), html.EscapeString(k.Stage), formatNumber(k.Total))
		}
		content.WriteString(`
        </ol>`)
	}

	content.WriteString(`
        <h2>키워드 목록</h2>
        <table>
            <tr><th>키워드</th><th>PC 검색량</th><th>모바일 검색량</th><th>경쟁도</th><th>구매여정</th></tr>`)
	for _, kw := range sortedByStage(d.Keywords) {
		fmt.Fprintf(&content, `
            <tr><td>%s</td><td>%s</td><td>%s</td><td>%s</td><td>%s</td></tr>`,
			html.EscapeString(kw.RelKeyword),
			html.EscapeString(string(kw.MonthlyPcQcCnt)),
			html.EscapeString(string(kw.MonthlyMobileQcCnt)),
			html.EscapeString(kw.CompIdx),
			html.EscapeString(kw.BuyerJourney))
	}
	content.WriteString(`
        </table>`)

	htmlBody = r.baseHTML(title, content.String())

	var text strings.Builder
	fmt.Fprintf(&text, "%s\n생성 시각: %s\n\n", title, generated)
	if d.Summary != "" {
		fmt.Fprintf(&text, "요약: %s\n\n", d.Summary)
	}
	for _, s := range stats {
		fmt.Fprintf(&text, "%s: %d개 (%.1f%%)\n", s.Stage, s.Count, s.Percent)
	}
	textBody = text.String()
	return htmlBody, textBody
}

func (r *Renderer) baseHTML(title, content string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="ko">
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 960px; margin: 0 auto; padding: 20px; }
        .header { background: #2563eb; color: white; padding: 20px; border-radius: 8px 8px 0 0; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { background: #f9fafb; padding: 20px; border: 1px solid #e5e7eb; }
        .footer { background: #f3f4f6; padding: 15px; text-align: center; font-size: 12px; color: #6b7280; border-radius: 0 0 8px 8px; border: 1px solid #e5e7eb; border-top: none; }
        .info-box { background: white; border: 1px solid #e5e7eb; border-radius: 6px; padding: 15px; margin: 15px 0; }
        .label { font-weight: 600; color: #374151; }
        .meta { color: #6b7280; font-size: 14px; }
        .dot { display: inline-block; width: 10px; height: 10px; border-radius: 50%%; margin-right: 6px; }
        table { width: 100%%; border-collapse: collapse; background: white; margin: 10px 0 20px; }
        th, td { border: 1px solid #e5e7eb; padding: 6px 10px; text-align: left; font-size: 14px; }
        th { background: #f3f4f6; }
        code { background: #e5e7eb; padding: 2px 6px; border-radius: 4px; font-family: monospace; }
    </style>
</head>
<body>
    <div class="header">
        <h1>%s</h1>
    </div>
    <div class="content">
        %s
    </div>
    <div class="footer">
        <p>Generated by %s</p>
    </div>
</body>
</html>`, html.EscapeString(title), html.EscapeString(title), content, html.EscapeString(r.siteTitle))
}

// sortedByStage orders keywords by funnel stage, unclassified last, keeping
// input order within a stage.
func sortedByStage(keywords []models.KeywordStat) []models.KeywordStat {
	rank := make(map[string]int, len(journey.Stages))
	for i, s := range journey.Stages {
		rank[string(s)] = i
	}
	pos := func(kw models.KeywordStat) int {
		if r, ok := rank[kw.BuyerJourney]; ok {
			return r
		}
		return len(journey.Stages)
	}

	out := append([]models.KeywordStat(nil), keywords...)
	sort.SliceStable(out, func(i, j int) bool { return pos(out[i]) < pos(out[j]) })
	return out
}

func formatNumber(v float64) string {
	switch {
	case v >= 1000000:
		return fmt.Sprintf("%.1fM", v/1000000)
	case v >= 1000:
		return fmt.Sprintf("%.1fK", v/1000)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}
