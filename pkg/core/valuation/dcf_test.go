package valuation

import (
	"math"
	"testing"

	"stock_analyzer/pkg/core/snapshot"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestSimpleIntrinsicValue(t *testing.T) {
	if got := SimpleIntrinsicValue(10, 500); got != 120 {
		t.Fatalf("eps multiple: got %v, want 120", got)
	}
	if got := SimpleIntrinsicValue(0, 100); got != 80 {
		t.Fatalf("price discount: got %v, want 80", got)
	}
	if got := SimpleIntrinsicValue(-2, 100); got != 80 {
		t.Fatalf("negative eps: got %v, want 80", got)
	}
}

func TestIntrinsicValueFallsBackWithoutCashFlow(t *testing.T) {
	s := &snapshot.FinancialSnapshot{
		CurrentPrice: 100,
		EPS:          8,
	}
	// No statements and no shares outstanding, so the DCF cannot run.
	if got := IntrinsicValuePerShare(s, DefaultParams()); got != 96 {
		t.Fatalf("fallback iv: got %v, want 96 (eps*12)", got)
	}
}

func TestIntrinsicValueClampUpper(t *testing.T) {
	cf := snapshot.NewStatement("2025")
	cf.Set(snapshot.FreeCashFlow, 0, 1000)
	s := &snapshot.FinancialSnapshot{
		CurrentPrice:      10,
		SharesOutstanding: 1,
		CashFlow:          cf,
	}
	// Raw DCF per share is orders of magnitude above price; the band edge wins.
	if got := IntrinsicValuePerShare(s, DefaultParams()); got != 50 {
		t.Fatalf("upper clamp: got %v, want 50 (5x price)", got)
	}
}

func TestIntrinsicValueClampLower(t *testing.T) {
	cf := snapshot.NewStatement("2025")
	cf.Set(snapshot.FreeCashFlow, 0, 1)
	s := &snapshot.FinancialSnapshot{
		CurrentPrice:      1000,
		SharesOutstanding: 1,
		CashFlow:          cf,
	}
	if got := IntrinsicValuePerShare(s, DefaultParams()); got != 200 {
		t.Fatalf("lower clamp: got %v, want 200 (0.2x price)", got)
	}
}

func TestImpliedGrowthRoundTrip(t *testing.T) {
	p := DefaultParams()
	const fcfPerShare = 5.0
	const growth = 0.08

	price := ConstantGrowthValue(fcfPerShare, growth, p)
	if price <= 0 {
		t.Fatalf("constant-growth value must be positive, got %v", price)
	}

	implied, ok := ImpliedGrowthRate(price, fcfPerShare, 1, p)
	if !ok {
		t.Fatal("expected a solution")
	}
	if !almostEqual(implied, growth*100, 0.1) {
		t.Fatalf("round trip: got %v%%, want ~%v%%", implied, growth*100)
	}
}

func TestImpliedGrowthRejectsBadInputs(t *testing.T) {
	p := DefaultParams()
	cases := []struct {
		price, fcf, shares float64
	}{
		{0, 100, 10},
		{50, 0, 10},
		{50, 100, 0},
		{-1, 100, 10},
	}
	for _, c := range cases {
		if _, ok := ImpliedGrowthRate(c.price, c.fcf, c.shares, p); ok {
			t.Fatalf("expected no solution for price=%v fcf=%v shares=%v", c.price, c.fcf, c.shares)
		}
	}
}

func TestCAGREstimator(t *testing.T) {
	est := CAGREstimator{}

	// 10% compounded over two year-over-year spans, newest first.
	got, years := est.Estimate([]float64{1331, 1210, 1100})
	if !almostEqual(got, 10, 0.0001) || years != 2 {
		t.Fatalf("cagr: got %v over %d years, want 10 over 2", got, years)
	}

	// More than five columns are truncated to the newest five.
	got, years = est.Estimate([]float64{1.4641, 1.331, 1.21, 1.1, 1.0, 0.9, 0.8})
	if !almostEqual(got, 10, 0.0001) || years != 4 {
		t.Fatalf("truncated cagr: got %v over %d years, want 10 over 4", got, years)
	}

	if got, years = est.Estimate([]float64{100}); got != 0 || years != 0 {
		t.Fatalf("single column: got %v/%d, want 0/0", got, years)
	}
	if got, years = est.Estimate([]float64{100, -50}); got != 0 || years != 0 {
		t.Fatalf("negative endpoint: got %v/%d, want 0/0", got, years)
	}
}

func TestConstantEstimator(t *testing.T) {
	if got, years := DefaultRevenueFallback.Estimate(nil); got != 8 || years != 0 {
		t.Fatalf("revenue fallback: got %v/%d, want 8/0", got, years)
	}
	if got, years := DefaultEarningsFallback.Estimate([]float64{1, 2, 3}); got != 10 || years != 0 {
		t.Fatalf("earnings fallback: got %v/%d, want 10/0", got, years)
	}
	if DefaultRevenueFallback.Name() != "constant" || (CAGREstimator{}).Name() != "cagr" {
		t.Fatal("strategy names changed")
	}
}
