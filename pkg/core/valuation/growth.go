package valuation

import "math"

// =============================================================================
// GROWTH ESTIMATION STRATEGIES
// Two named strategies exist: the CAGR estimator used on statement history,
// and a constant conservative estimator used when history is too short.
// Both are selectable so either can be exercised and tested directly.
// =============================================================================

// GrowthEstimator turns a value history (newest first) into an annual growth
// estimate in percent, plus the number of year-over-year spans it covers
// (0 when the estimate is not history-derived).
type GrowthEstimator interface {
	Name() string
	Estimate(history []float64) (growthPct float64, years int)
}

// CAGREstimator derives compound annual growth between the oldest and newest
// positive values of up to five annual columns.
//
// FORMULA: CAGR = (latest/oldest)^(1/(n−1)) − 1
type CAGREstimator struct{}

func (CAGREstimator) Name() string { return "cagr" }

func (CAGREstimator) Estimate(history []float64) (float64, int) {
	n := len(history)
	if n > 5 {
		n = 5
	}
	if n < 2 {
		return 0, 0
	}
	latest := history[0]
	oldest := history[n-1]
	if latest <= 0 || oldest <= 0 {
		// Negative endpoints make the exponent meaningless; report no growth
		// rather than a complex result.
		return 0, 0
	}
	cagr := (math.Pow(latest/oldest, 1/float64(n-1)) - 1) * 100
	return math.Round(cagr*100) / 100, n - 1
}

// ConstantEstimator reports a fixed conservative growth assumption. Used as
// the fallback when statement history cannot support a CAGR: 8% for revenue,
// 10% for earnings, matching long-run market averages.
type ConstantEstimator struct {
	Pct float64
}

func (ConstantEstimator) Name() string { return "constant" }

func (c ConstantEstimator) Estimate([]float64) (float64, int) {
	return c.Pct, 0
}

// DefaultRevenueFallback and DefaultEarningsFallback are the standard
// constant strategies.
var (
	DefaultRevenueFallback  = ConstantEstimator{Pct: 8.0}
	DefaultEarningsFallback = ConstantEstimator{Pct: 10.0}
)
