package indicators

import (
	"math"
	"testing"

	"stock_analyzer/pkg/core/snapshot"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= 0.0001
}

func flatBars(n int, price float64) []snapshot.Bar {
	out := make([]snapshot.Bar, n)
	for i := range out {
		out[i] = snapshot.Bar{Open: price, High: price, Low: price, Close: price}
	}
	return out
}

func risingBars(n int, start, step float64) []snapshot.Bar {
	out := make([]snapshot.Bar, n)
	for i := range out {
		c := start + float64(i)*step
		out[i] = snapshot.Bar{Open: c - 1, High: c + 5, Low: c - 5, Close: c}
	}
	return out
}

func TestSMA(t *testing.T) {
	vals := []float64{1, 2, 3, 4, 5}
	got, ok := SMA(vals, 3)
	if !ok || !almostEqual(got, 4) {
		t.Fatalf("sma(3): got %v/%v, want 4/true", got, ok)
	}
	if _, ok := SMA(vals, 6); ok {
		t.Fatal("sma window larger than series must not be ok")
	}
	if _, ok := SMA(vals, 0); ok {
		t.Fatal("sma with zero window must not be ok")
	}
}

func TestEMA(t *testing.T) {
	// k = 2/(3+1) = 0.5, seeded by the first value.
	got, ok := EMA([]float64{10, 20}, 3)
	if !ok || !almostEqual(got, 15) {
		t.Fatalf("ema: got %v/%v, want 15/true", got, ok)
	}
	if _, ok := EMA(nil, 9); ok {
		t.Fatal("ema on empty series must not be ok")
	}
}

func TestRSIExtremes(t *testing.T) {
	up := make([]float64, 20)
	down := make([]float64, 20)
	for i := range up {
		up[i] = float64(100 + i)
		down[i] = float64(100 - i)
	}
	if got, ok := RSI(up, 14); !ok || got != 100 {
		t.Fatalf("rsi all gains: got %v/%v, want 100/true", got, ok)
	}
	if got, ok := RSI(down, 14); !ok || got != 0 {
		t.Fatalf("rsi all losses: got %v/%v, want 0/true", got, ok)
	}
	if _, ok := RSI(up[:10], 14); ok {
		t.Fatal("rsi needs period+1 values")
	}
}

func TestRSIMixed(t *testing.T) {
	// Deltas over the window: +2 and -1, so avgGain=1, avgLoss=0.5, RS=2.
	got, ok := RSI([]float64{10, 12, 11}, 2)
	want := 100 - 100.0/3
	if !ok || !almostEqual(got, want) {
		t.Fatalf("rsi mixed: got %v, want %v", got, want)
	}
}

func TestMACDFlatSeries(t *testing.T) {
	vals := make([]float64, 40)
	for i := range vals {
		vals[i] = 50
	}
	line, signal, ok := MACD(vals)
	if !ok || !almostEqual(line, 0) || !almostEqual(signal, 0) {
		t.Fatalf("macd on flat series: got %v/%v, want 0/0", line, signal)
	}
}

func TestBollinger(t *testing.T) {
	upper, lower, ok := Bollinger([]float64{1, 2, 3, 4, 5}, 5, 2)
	std := math.Sqrt(2.5) // sample stddev of 1..5
	if !ok || !almostEqual(upper, 3+2*std) || !almostEqual(lower, 3-2*std) {
		t.Fatalf("bollinger: got %v/%v, want %v/%v", upper, lower, 3+2*std, 3-2*std)
	}
	if _, _, ok := Bollinger([]float64{1, 2}, 5, 2); ok {
		t.Fatal("bollinger needs a full window")
	}
}

func TestStochastic(t *testing.T) {
	bars := []snapshot.Bar{
		{High: 10, Low: 8, Close: 9},
		{High: 11, Low: 9, Close: 10},
		{High: 12, Low: 10, Close: 11},
		{High: 13, Low: 11, Close: 12},
		{High: 14, Low: 12, Close: 13},
	}
	k, d, ok := Stochastic(bars, 3)
	if !ok || !almostEqual(k, 75) || !almostEqual(d, 75) {
		t.Fatalf("stochastic: got k=%v d=%v, want 75/75", k, d)
	}

	// A flat range neutralizes %K instead of dividing by zero.
	k, d, ok = Stochastic(flatBars(20, 100), 14)
	if !ok || !almostEqual(k, 50) || !almostEqual(d, 50) {
		t.Fatalf("flat stochastic: got k=%v d=%v, want 50/50", k, d)
	}

	if _, _, ok := Stochastic(flatBars(5, 100), 14); ok {
		t.Fatal("stochastic needs period bars")
	}
}

func TestFallbackSnapshot(t *testing.T) {
	ts := Fallback(200)
	if ts.TechnicalScore != 50 || ts.Verdict != "Data Not Available" || ts.Action != "HOLD" {
		t.Fatalf("fallback verdict: got %d/%s/%s", ts.TechnicalScore, ts.Verdict, ts.Action)
	}
	if ts.RSI != 50 || ts.StochK != 50 || ts.StochD != 50 {
		t.Fatal("fallback oscillators must be neutral")
	}
	if ts.SMA50 != 200 || ts.SMA200 != 190 || ts.BBUpper != 210 || ts.BBLower != 190 {
		t.Fatalf("fallback price levels: %v/%v/%v/%v", ts.SMA50, ts.SMA200, ts.BBUpper, ts.BBLower)
	}
	if len(ts.Signals) != 1 || ts.Signals[0] != "Insufficient Data" {
		t.Fatalf("fallback signals: %v", ts.Signals)
	}
}

func TestComputeEmptyHistory(t *testing.T) {
	ts := Compute(nil, 120)
	if ts.TechnicalScore != 50 || ts.Action != "HOLD" {
		t.Fatalf("empty history must fall back: got %d/%s", ts.TechnicalScore, ts.Action)
	}
}

func TestComputeRisingSeries(t *testing.T) {
	// 60 daily bars rising 5 per day. Expected contributions:
	// SMA50 +5 (no SMA200 with 60 bars), EMA cross +20, RSI overbought +5,
	// MACD cross +15, stochastic flat at %K == %D +0, inside Bollinger +15.
	bars := risingBars(60, 3200, 5)
	ts := Compute(bars, 0)

	if ts.TechnicalScore != 60 {
		t.Fatalf("score: got %d, want 60", ts.TechnicalScore)
	}
	if ts.Verdict != "Bullish" || ts.Action != "ACCUMULATE" {
		t.Fatalf("verdict: got %s/%s", ts.Verdict, ts.Action)
	}
	if ts.RSI != 100 {
		t.Fatalf("rsi: got %v, want 100", ts.RSI)
	}
	if ts.EMA9 <= ts.EMA21 {
		t.Fatalf("ema cross: ema9 %v must exceed ema21 %v", ts.EMA9, ts.EMA21)
	}
	if !almostEqual(ts.StochK, 93.33) {
		t.Fatalf("stoch k: got %v, want 93.33", ts.StochK)
	}

	wantSignals := map[string]bool{
		"EMA 9 > EMA 21 (Short Term Bullish)": false,
		"RSI Overbought (>70)":                false,
		"MACD Bullish Crossover":              false,
	}
	for _, sig := range ts.Signals {
		if _, ok := wantSignals[sig]; ok {
			wantSignals[sig] = true
		}
	}
	for sig, seen := range wantSignals {
		if !seen {
			t.Fatalf("missing signal %q in %v", sig, ts.Signals)
		}
	}
}

func TestVerdictBoundaries(t *testing.T) {
	cases := []struct {
		score   int
		verdict string
		action  string
	}{
		{85, "Strong Bullish", "BUY"},
		{80, "Strong Bullish", "BUY"},
		{79, "Bullish", "ACCUMULATE"},
		{60, "Bullish", "ACCUMULATE"},
		{59, "Neutral", "HOLD"},
		{40, "Neutral", "HOLD"},
		{39, "Bearish", "AVOID"},
		{0, "Bearish", "AVOID"},
	}
	for _, c := range cases {
		verdict, action := verdictFor(c.score)
		if verdict != c.verdict || action != c.action {
			t.Fatalf("score %d: got %s/%s, want %s/%s", c.score, verdict, action, c.verdict, c.action)
		}
	}
}
