package fundamentals

import (
	"math"

	"stock_analyzer/pkg/core/snapshot"
)

// =============================================================================
// ROIC
// =============================================================================

// ROIC computes return on invested capital for the latest year, as a
// percentage.
//
// FORMULA: ROIC = Net Income / (Stockholders Equity + Long Term Debt) × 100
//
// Returns 0 when invested capital is zero or statement data is missing.
func ROIC(income, balance *snapshot.Statement) float64 {
	if income.Empty() || balance.Empty() {
		return 0
	}

	netIncome := income.ValueOr(snapshot.NetIncome, 0, 0)
	equity, _ := balance.FirstOf(0, snapshot.StockholderEq, snapshot.TotalStockholderEq)
	debt, _ := balance.FirstOf(0, snapshot.LongTermDebt, snapshot.TotalDebt)

	investedCapital := equity + debt
	if investedCapital == 0 {
		return 0
	}
	return netIncome / investedCapital * 100
}

// =============================================================================
// ALTMAN Z-SCORE
// =============================================================================

// AltmanResult holds the Z-Score and its risk zone.
type AltmanResult struct {
	Score float64 `json:"score"`
	Zone  string  `json:"zone"`
}

// AltmanZ computes the original (manufacturing) Altman Z-Score from the
// latest annual column plus market capitalization.
//
// FORMULA: Z = 1.2A + 1.4B + 3.3C + 0.6D + 1.0E
//
//	A = Working Capital / Total Assets
//	B = Retained Earnings / Total Assets
//	C = EBIT / Total Assets (EBIT falls back to pretax income + interest
//	    expense, then pretax income alone)
//	D = Market Cap / Total Liabilities
//	E = Revenue / Total Assets
//
// Zones: z > 2.99 "Safe", 1.81 < z <= 2.99 "Grey", z <= 1.81 "Distress".
// Missing total assets yields score 0 and zone "Unknown".
func AltmanZ(income, balance *snapshot.Statement, marketCap float64) AltmanResult {
	if income.Empty() || balance.Empty() {
		return AltmanResult{Zone: "Unknown"}
	}

	totalAssets := balance.ValueOr(snapshot.TotalAssets, 0, 0)
	if totalAssets == 0 {
		return AltmanResult{Zone: "Unknown"}
	}

	workingCapital := balance.ValueOr(snapshot.CurrentAssets, 0, 0) - balance.ValueOr(snapshot.CurrentLiab, 0, 0)
	retained := balance.ValueOr(snapshot.RetainedEarnings, 0, 0)

	ebit, ok := income.Value(snapshot.EBIT, 0)
	if !ok {
		pretax := income.ValueOr(snapshot.PretaxIncome, 0, 0)
		if interest, got := income.Value(snapshot.InterestExp, 0); got {
			ebit = pretax + interest
		} else {
			ebit = pretax
		}
	}

	totalLiab, _ := balance.FirstOf(0, snapshot.TotalLiabNMI, snapshot.TotalLiabilities)
	sales := income.ValueOr(snapshot.Revenue, 0, 0)

	a := workingCapital / totalAssets
	b := retained / totalAssets
	c := ebit / totalAssets
	d := safeDiv(marketCap, totalLiab)
	e := sales / totalAssets

	z := 1.2*a + 1.4*b + 3.3*c + 0.6*d + 1.0*e
	return AltmanResult{Score: math.Round(z*100) / 100, Zone: ZoneFor(z)}
}

// ZoneFor maps a raw Z-Score to its risk zone. Boundaries are exact:
// 2.99 is still Grey, 1.81 is still Distress.
func ZoneFor(z float64) string {
	switch {
	case z > 2.99:
		return "Safe"
	case z > 1.81:
		return "Grey"
	default:
		return "Distress"
	}
}

// AdvancedMetrics bundles the supplementary metrics attached to an analysis.
type AdvancedMetrics struct {
	Piotroski PiotroskiResult `json:"piotroski"`
	ROIC      float64         `json:"roic"`
	AltmanZ   AltmanResult    `json:"altman_z"`
}

// Compute evaluates all supplementary metrics over one snapshot.
func Compute(s *snapshot.FinancialSnapshot) AdvancedMetrics {
	return AdvancedMetrics{
		Piotroski: Piotroski(s.Income, s.Balance, s.CashFlow),
		ROIC:      ROIC(s.Income, s.Balance),
		AltmanZ:   AltmanZ(s.Income, s.Balance, s.MarketCap),
	}
}
