package report

import (
	"strings"
	"testing"

	"stock_analyzer/pkg/core/analyzer"
	"stock_analyzer/pkg/core/indicators"
	"stock_analyzer/pkg/core/snapshot"
	"stock_analyzer/pkg/core/utils"
)

func sampleInputs() (*snapshot.FinancialSnapshot, *analyzer.AnalysisResult, *indicators.TechnicalSnapshot) {
	snap := &snapshot.FinancialSnapshot{
		Symbol:         "TCS.NS",
		LongName:       "Tata Consultancy Services",
		Sector:         "Technology",
		Industry:       "IT Services",
		Market:         "India",
		Currency:       "INR",
		CurrencySymbol: "₹",
		CurrentPrice:   3500,
		PreviousClose:  3450,
	}
	result := analyzer.New().Analyze(snap)
	tech := indicators.Fallback(snap.CurrentPrice)
	return snap, result, tech
}

func TestRenderValidates(t *testing.T) {
	snap, result, tech := sampleInputs()

	md, err := Render(snap, result, tech)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if !utils.ValidateMarkdown(md) {
		t.Error("Rendered report should be valid markdown")
	}

	for _, want := range []string{
		"# Tata Consultancy Services (TCS.NS)",
		"## 15-Point Analysis",
		"## Recommendation",
		"## Pro Fundamentals",
		"## Technical Analysis",
		"Piotroski F-Score:",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("Report missing %q", want)
		}
	}

	// Every criterion appears as a table row.
	if got := strings.Count(md, "| "); got < 15 {
		t.Errorf("Expected at least 15 table rows, got %d pipe-prefixed segments", got)
	}
}

func TestRenderWithoutTechnical(t *testing.T) {
	snap, result, _ := sampleInputs()
	md, err := Render(snap, result, nil)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Contains(md, "## Technical Analysis") {
		t.Error("Technical section should be omitted when no indicators are supplied")
	}
}

func TestRenderHTML(t *testing.T) {
	snap, result, tech := sampleInputs()
	html, err := RenderHTML(snap, result, tech)
	if err != nil {
		t.Fatalf("RenderHTML failed: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "<table") {
		t.Error("Expected heading and criteria table in HTML output")
	}
}

func TestRenderNilInputs(t *testing.T) {
	if _, err := Render(nil, nil, nil); err == nil {
		t.Error("Expected error for nil inputs")
	}
}
