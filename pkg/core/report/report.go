// Package report renders an analysis run as a markdown document: score
// summary, criteria table, recommendation block, advanced fundamentals, and
// the technical dashboard.
package report

import (
	"fmt"
	"strings"

	"stock_analyzer/pkg/core/analyzer"
	"stock_analyzer/pkg/core/indicators"
	"stock_analyzer/pkg/core/snapshot"
	"stock_analyzer/pkg/core/utils"
)

// =============================================================================
// MARKDOWN REPORT
// =============================================================================

// Render produces the full markdown report. The output always validates as
// markdown; an error means a section failed to build, not a formatting issue.
func Render(snap *snapshot.FinancialSnapshot, result *analyzer.AnalysisResult, tech *indicators.TechnicalSnapshot) (string, error) {
	if snap == nil || result == nil {
		return "", fmt.Errorf("report needs both snapshot and analysis result")
	}

	var b strings.Builder

	writeHeader(&b, snap)
	writeScore(&b, result)
	writeCriteria(&b, result)
	writeRecommendation(&b, result)
	writeAdvanced(&b, result)
	if tech != nil {
		writeTechnical(&b, tech)
	}

	out := utils.CleanMarkdown(b.String())
	if !utils.ValidateMarkdown(out) {
		return "", fmt.Errorf("rendered report is not valid markdown")
	}
	return out, nil
}

// RenderHTML converts the markdown report to HTML for the API layer.
func RenderHTML(snap *snapshot.FinancialSnapshot, result *analyzer.AnalysisResult, tech *indicators.TechnicalSnapshot) (string, error) {
	md, err := Render(snap, result, tech)
	if err != nil {
		return "", err
	}
	return utils.MarkdownToHTML(md)
}

func writeHeader(b *strings.Builder, snap *snapshot.FinancialSnapshot) {
	name := snap.LongName
	if name == "" {
		name = snap.ShortName
	}
	if name == "" {
		name = snap.Symbol
	}
	fmt.Fprintf(b, "# %s (%s)\n\n", name, snap.Symbol)

	sym := snap.CurrencySymbol
	fmt.Fprintf(b, "**Price:** %s%.2f", sym, snap.CurrentPrice)
	if snap.PreviousClose > 0 {
		change := (snap.CurrentPrice - snap.PreviousClose) / snap.PreviousClose * 100
		fmt.Fprintf(b, " (%+.2f%%)", change)
	}
	b.WriteString("\n\n")

	if snap.Sector != "" || snap.Industry != "" {
		fmt.Fprintf(b, "**Sector:** %s | **Industry:** %s | **Market:** %s\n\n",
			snap.Sector, snap.Industry, snap.Market)
	}
}

// scoreGrade buckets the criteria score as a percentage of the 15 points.
func scoreGrade(score int) string {
	percent := float64(score) / 15 * 100
	switch {
	case percent >= 75:
		return "Excellent"
	case percent >= 60:
		return "Good"
	case percent >= 40:
		return "Average"
	default:
		return "Poor"
	}
}

func writeScore(b *strings.Builder, result *analyzer.AnalysisResult) {
	b.WriteString("## 15-Point Analysis\n\n")
	fmt.Fprintf(b, "**Total Score:** %d/15 (%s)\n\n", result.TotalScore, scoreGrade(result.TotalScore))
}

func writeCriteria(b *strings.Builder, result *analyzer.AnalysisResult) {
	b.WriteString("| Criterion | Value | Rule | Result |\n")
	b.WriteString("|---|---|---|---|\n")
	for _, m := range result.Metrics {
		mark := "FAIL"
		if m.Passed {
			mark = "PASS"
		}
		fmt.Fprintf(b, "| %s | %s | %s | %s |\n",
			escapeCell(m.Name), escapeCell(m.Value), escapeCell(m.Criteria), mark)
	}
	b.WriteString("\n")
}

func writeRecommendation(b *strings.Builder, result *analyzer.AnalysisResult) {
	rec := result.Recommendation
	sym := rec.CurrencySymbol

	var headline string
	switch rec.Status {
	case "Buy":
		headline = "Strong Buy: EXCELLENT BUYING OPPORTUNITY"
	case "Hold":
		headline = "Hold: WAIT FOR BETTER PRICE"
	default:
		headline = "Avoid: OVERVALUED, STAY AWAY"
	}

	fmt.Fprintf(b, "## Recommendation\n\n**%s**\n\n", headline)
	fmt.Fprintf(b, "- Current Price: %s%.2f\n", sym, rec.CurrentPrice)
	fmt.Fprintf(b, "- Intrinsic Value: %s%.2f\n", sym, rec.IntrinsicValue)
	fmt.Fprintf(b, "- Margin of Safety: %.1f%%\n", rec.MarginOfSafety)

	switch rec.Status {
	case "Buy":
		fmt.Fprintf(b, "- Buy Range: %s%.2f to %s%.2f\n", sym, rec.BuyPriceMin, sym, rec.BuyPriceMax)
	case "Hold":
		fmt.Fprintf(b, "- Wait to buy below: %s%.2f\n", sym, rec.TargetPrice)
	}
	b.WriteString("\n")
}

// piotroskiLabel and friends mirror the dashboard gradings.
func piotroskiLabel(score int) string {
	switch {
	case score >= 7:
		return "Strong"
	case score >= 4:
		return "Average"
	default:
		return "Weak"
	}
}

func roicLabel(roic float64) string {
	switch {
	case roic > 15:
		return "Excellent"
	case roic > 10:
		return "Good"
	case roic > 0:
		return "Average"
	default:
		return "Poor"
	}
}

func writeAdvanced(b *strings.Builder, result *analyzer.AnalysisResult) {
	adv := result.Advanced
	b.WriteString("## Pro Fundamentals\n\n")
	fmt.Fprintf(b, "- Piotroski F-Score: %d/9 (%s)\n", adv.Piotroski.Score, piotroskiLabel(adv.Piotroski.Score))
	fmt.Fprintf(b, "- ROIC: %.2f%% (%s)\n", adv.ROIC, roicLabel(adv.ROIC))
	fmt.Fprintf(b, "- Altman Z-Score: %.2f (%s)\n\n", adv.AltmanZ.Score, adv.AltmanZ.Zone)
}

func writeTechnical(b *strings.Builder, tech *indicators.TechnicalSnapshot) {
	b.WriteString("## Technical Analysis\n\n")
	fmt.Fprintf(b, "**Score:** %d/100 | **Verdict:** %s | **Action:** %s\n\n",
		tech.TechnicalScore, tech.Verdict, tech.Action)

	fmt.Fprintf(b, "- RSI(14): %.2f\n", tech.RSI)
	fmt.Fprintf(b, "- SMA50: %.2f | SMA200: %.2f\n", tech.SMA50, tech.SMA200)
	fmt.Fprintf(b, "- EMA9: %.2f | EMA21: %.2f\n", tech.EMA9, tech.EMA21)
	fmt.Fprintf(b, "- MACD: %.2f | Signal: %.2f\n", tech.MACD, tech.MACDSignal)
	fmt.Fprintf(b, "- Stochastic %%K: %.2f | %%D: %.2f\n", tech.StochK, tech.StochD)
	fmt.Fprintf(b, "- Bollinger: %.2f to %.2f\n", tech.BBLower, tech.BBUpper)

	if len(tech.Signals) > 0 {
		b.WriteString("\nSignals:\n\n")
		for _, s := range tech.Signals {
			fmt.Fprintf(b, "- %s\n", s)
		}
	}
	b.WriteString("\n")
}

// escapeCell keeps pipe characters from breaking table rows.
func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
