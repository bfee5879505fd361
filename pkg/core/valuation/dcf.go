// Package valuation implements the intrinsic-value engine: a forward
// discounted-cash-flow estimator with a declining-growth projection and
// Gordon terminal value, its inverse (implied growth solved by bisection),
// and the growth-estimation strategies feeding both.
package valuation

import (
	"math"

	"stock_analyzer/pkg/core/snapshot"
)

// =============================================================================
// DCF PARAMETERS
// All rates are fixed model constants, not fitted values.
// =============================================================================

// Params holds the DCF model constants.
type Params struct {
	DiscountRate    float64 // r: 10-year Treasury + equity risk premium, rounded
	TerminalGrowth  float64 // g_t: perpetual growth, approximately GDP growth
	ProjectionYears int     // explicit projection horizon
	GrowthCap       float64 // ceiling on the starting FCF growth rate
}

// DefaultParams returns the standard conservative parameter set:
// 10% discount, 2.5% terminal growth, 10-year horizon, 15% growth cap.
func DefaultParams() Params {
	return Params{
		DiscountRate:    0.10,
		TerminalGrowth:  0.025,
		ProjectionYears: 10,
		GrowthCap:       0.15,
	}
}

// =============================================================================
// FORWARD DCF
// =============================================================================

// IntrinsicValuePerShare estimates per-share intrinsic value from a snapshot
// using the declining-growth DCF.
//
// FORMULA: IV = Σ_{t=1..n} FCF_t / (1+r)^t + TV / (1+r)^n
//
//	FCF_t compounds at a per-year growth rate interpolated linearly from the
//	capped starting growth down to the terminal growth:
//	  g_year = g_0 − (g_0 − g_t)·(year/n)
//	TV = FCF_n × (1+g_t) / (r − g_t)
//
// Free cash flow is resolved through the snapshot's documented estimation
// chain. When FCF or shares outstanding are non-positive the simple fallback
// applies (EPS×12, else price×0.8). The result is clamped to
// [0.2×price, 5×price] and rounded to 2 decimals.
func IntrinsicValuePerShare(s *snapshot.FinancialSnapshot, p Params) float64 {
	price := s.CurrentPrice
	fcf := s.FreeCashFlowOrEstimate()
	shares := s.SharesOutstanding

	if fcf <= 0 || shares <= 0 {
		return SimpleIntrinsicValue(s.EPS, price)
	}

	// Starting growth: earnings growth estimate, capped. A zero estimate is
	// treated as unknown and replaced by the conservative 10% default.
	growth := s.EarningsGrowth
	if growth == 0 {
		growth = 10
	}
	g0 := math.Min(growth/100, p.GrowthCap)

	totalPV := 0.0
	projected := fcf
	for year := 1; year <= p.ProjectionYears; year++ {
		yearGrowth := g0 - (g0-p.TerminalGrowth)*(float64(year)/float64(p.ProjectionYears))
		projected *= 1 + yearGrowth
		totalPV += projected / math.Pow(1+p.DiscountRate, float64(year))
	}

	terminalFCF := projected * (1 + p.TerminalGrowth)
	terminalValue := terminalFCF / (p.DiscountRate - p.TerminalGrowth)
	terminalPV := terminalValue / math.Pow(1+p.DiscountRate, float64(p.ProjectionYears))

	perShare := (totalPV + terminalPV) / shares
	if perShare <= 0 {
		return round2(price * 0.8)
	}

	// Sanity clamp: implausible multiples of the market price are reported at
	// the band edge rather than raw.
	if price > 0 {
		switch ratio := perShare / price; {
		case ratio > 5:
			perShare = price * 5
		case ratio < 0.2:
			perShare = price * 0.2
		}
	}
	return round2(perShare)
}

// SimpleIntrinsicValue is the fallback estimator used when cash-flow inputs
// are unusable: a conservative 12× earnings multiple, else a 20% discount to
// the market price.
func SimpleIntrinsicValue(eps, price float64) float64 {
	if eps > 0 {
		return round2(eps * 12)
	}
	return round2(price * 0.8)
}

// =============================================================================
// REVERSE DCF
// =============================================================================

// ConstantGrowthValue computes the per-share DCF value for a constant FCF
// growth rate. This is the monotone-in-g kernel the reverse DCF inverts.
func ConstantGrowthValue(fcfPerShare, growthRate float64, p Params) float64 {
	totalPV := 0.0
	current := fcfPerShare
	for year := 1; year <= p.ProjectionYears; year++ {
		current *= 1 + growthRate
		totalPV += current / math.Pow(1+p.DiscountRate, float64(year))
	}
	terminalFCF := current * (1 + p.TerminalGrowth)
	terminalValue := terminalFCF / (p.DiscountRate - p.TerminalGrowth)
	totalPV += terminalValue / math.Pow(1+p.DiscountRate, float64(p.ProjectionYears))
	return totalPV
}

// ImpliedGrowthRate solves for the constant FCF growth rate, as a percentage,
// that justifies the current market price.
//
// Bisection over g ∈ [−50%, 100%], at most 100 iterations, tolerance 0.01
// currency units on the reproduced price. DCF value is increasing in g over
// this range for any realistic discount/terminal-growth pair, which is what
// makes bisection valid.
//
// Returns ok=false when price, FCF, or shares are non-positive.
func ImpliedGrowthRate(currentPrice, freeCashFlow, sharesOutstanding float64, p Params) (float64, bool) {
	if currentPrice <= 0 || freeCashFlow <= 0 || sharesOutstanding <= 0 {
		return 0, false
	}
	fcfPerShare := freeCashFlow / sharesOutstanding

	low, high := -0.50, 1.00
	const tolerance = 0.01
	mid := (low + high) / 2

	for i := 0; i < 100; i++ {
		mid = (low + high) / 2
		implied := ConstantGrowthValue(fcfPerShare, mid, p)
		if math.Abs(implied-currentPrice) < tolerance {
			return mid * 100, true
		}
		if implied < currentPrice {
			low = mid
		} else {
			high = mid
		}
	}
	return mid * 100, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
