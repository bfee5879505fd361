package e2e_test

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"stock_analyzer/pkg/core/analyzer"
	"stock_analyzer/pkg/core/fetch"
	"stock_analyzer/pkg/core/indicators"
	"stock_analyzer/pkg/core/report"
	"stock_analyzer/pkg/core/snapshot"
	"stock_analyzer/pkg/core/store"
)

// writeFixture lays out a saved-payload directory the FileQuoter can serve.
func writeFixture(t *testing.T, root string) {
	t.Helper()
	dir := filepath.Join(root, "TCS_NS")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	info := `{
		"currency": "INR",
		"longName": "Tata Consultancy Services",
		"sector": "Technology",
		"currentPrice": 3500,
		"previousClose": 3450,
		"bookValue": 250,
		"trailingPE": 25,
		"priceToBook": 14,
		"trailingEps": 140,
		"sharesOutstanding": 3600000000,
		"dividendYield": 1.2
	}`
	if err := os.WriteFile(filepath.Join(dir, "info.json"), []byte(info), 0644); err != nil {
		t.Fatal(err)
	}

	// 60 rising closes give the indicator engine enough for every window
	// except the 200-day SMA.
	bars := make([]snapshot.Bar, 60)
	for i := range bars {
		price := 3200 + float64(i)*5
		bars[i] = snapshot.Bar{
			Date:  "2026-06-01",
			Open:  price - 2,
			High:  price + 5,
			Low:   price - 5,
			Close: price,
		}
	}
	raw, _ := json.Marshal(bars)
	if err := os.WriteFile(filepath.Join(dir, "history.json"), raw, 0644); err != nil {
		t.Fatal(err)
	}

	income := `<html><body><table>
<tr><th>Breakdown</th><th>2025</th><th>2024</th><th>2023</th></tr>
<tr><td>Total Revenue</td><td>2,420,000</td><td>2,200,000</td><td>2,000,000</td></tr>
<tr><td>Operating Income</td><td>580,000</td><td>540,000</td><td>500,000</td></tr>
<tr><td>Net Income</td><td>484,000</td><td>440,000</td><td>400,000</td></tr>
</table></body></html>`
	if err := os.WriteFile(filepath.Join(dir, "income.html"), []byte(income), 0644); err != nil {
		t.Fatal(err)
	}

	balance := `<html><body><table>
<tr><th>Breakdown</th><th>2025</th><th>2024</th></tr>
<tr><td>Total Assets</td><td>1,600,000</td><td>1,500,000</td></tr>
<tr><td>Current Assets</td><td>700,000</td><td>650,000</td></tr>
<tr><td>Current Liabilities</td><td>300,000</td><td>320,000</td></tr>
<tr><td>Total Debt</td><td>80,000</td><td>90,000</td></tr>
<tr><td>Stockholders Equity</td><td>900,000</td><td>850,000</td></tr>
</table></body></html>`
	if err := os.WriteFile(filepath.Join(dir, "balance.html"), []byte(balance), 0644); err != nil {
		t.Fatal(err)
	}

	cashflow := `<html><body><table>
<tr><th>Breakdown</th><th>2025</th><th>2024</th></tr>
<tr><td>Free Cash Flow</td><td>430,000</td><td>400,000</td></tr>
</table></body></html>`
	if err := os.WriteFile(filepath.Join(dir, "cashflow.html"), []byte(cashflow), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestE2E_FullPipeline(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root)

	ctx := context.Background()
	fetcher := fetch.NewFetcher(fetch.NewFileQuoter(root))

	// 1. Fetch: query by name, resolve to the saved symbol.
	snap, history, err := fetcher.GetSnapshot(ctx, "tcs")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if snap.Symbol != "TCS.NS" || snap.Market != "India" {
		t.Fatalf("Unexpected resolution: %s / %s", snap.Symbol, snap.Market)
	}
	if snap.CurrencySymbol != "₹" {
		t.Errorf("Expected ₹, got %q", snap.CurrencySymbol)
	}
	// Last bar wins over the quote price.
	wantPrice := 3200 + 59*5.0
	if math.Abs(snap.CurrentPrice-wantPrice) > 0.0001 {
		t.Errorf("Expected price %f from history, got %f", wantPrice, snap.CurrentPrice)
	}
	// Revenue 2,000,000 -> 2,420,000 over 2 spans is exactly 10% CAGR.
	if math.Abs(snap.RevenueGrowth-10) > 0.0001 || snap.RevenueGrowthYears != 2 {
		t.Errorf("Expected 10%% revenue CAGR, got %f over %d years", snap.RevenueGrowth, snap.RevenueGrowthYears)
	}

	// 2. Cache the fetch and read it back.
	cache := store.NewSnapshotCache(nil, filepath.Join(root, "cache"))
	if err := cache.Save(ctx, snap, history); err != nil {
		t.Fatalf("Cache save failed: %v", err)
	}
	entry, err := cache.Get(ctx, snap.Symbol)
	if err != nil || entry == nil {
		t.Fatalf("Cache read failed: entry=%v err=%v", entry, err)
	}

	// 3. Technical indicators over the rising series.
	tech := indicators.Compute(history, snap.CurrentPrice)
	if tech.TechnicalScore <= 50 {
		t.Errorf("Rising series should score bullish, got %d", tech.TechnicalScore)
	}
	if tech.RSI < 50 {
		t.Errorf("Rising series should have RSI above 50, got %f", tech.RSI)
	}

	// 4. Fundamental scoring.
	result := analyzer.New().Analyze(entry.Snapshot)
	if result.TotalScore < 0 || result.TotalScore > 15 {
		t.Fatalf("Score out of range: %d", result.TotalScore)
	}
	passed := 0
	for _, m := range result.Metrics {
		if m.Passed {
			passed++
		}
	}
	if passed != result.TotalScore {
		t.Errorf("Score %d disagrees with passed count %d", result.TotalScore, passed)
	}
	// ROE 484,000/900,000 = 53.8% and D/E 0.09 are clear passes.
	if !result.Metrics[0].Passed {
		t.Errorf("ROE criterion should pass: %+v", result.Metrics[0])
	}
	if !result.Metrics[1].Passed {
		t.Errorf("Debt-to-equity criterion should pass: %+v", result.Metrics[1])
	}

	// 5. Advanced metrics come from the parsed statements.
	if result.Advanced.ROIC <= 0 {
		t.Errorf("Expected positive ROIC, got %f", result.Advanced.ROIC)
	}
	if result.Advanced.AltmanZ.Zone == "Unknown" {
		t.Error("Altman zone should be computable from the fixture")
	}

	// 6. Render the report.
	md, err := report.Render(entry.Snapshot, result, tech)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	for _, want := range []string{"Tata Consultancy Services", "15-Point Analysis", "Technical Analysis"} {
		if !strings.Contains(md, want) {
			t.Errorf("Report missing %q", want)
		}
	}
}
