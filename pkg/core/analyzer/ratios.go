package analyzer

import (
	"math"

	"stock_analyzer/pkg/core/snapshot"
	"stock_analyzer/pkg/core/valuation"
)

// =============================================================================
// DERIVED RATIOS
// Computed once per snapshot, never mutated afterwards, then merged with the
// raw snapshot into the profile the criteria evaluate against.
// =============================================================================

// DerivedRatios holds the per-analysis ratio set. Zero denominators follow
// the documented substitutions: equity and revenue default to 1 when
// unreported, PEG degrades to +Inf when growth is non-positive.
type DerivedRatios struct {
	DebtToEquity    float64 `json:"debt_to_equity"`
	CurrentRatio    float64 `json:"current_ratio"`
	ROE             float64 `json:"roe"`              // percent
	OperatingMargin float64 `json:"operating_margin"` // percent
	ROCE            float64 `json:"roce"`             // percent
	PEGRatio        float64 `json:"peg_ratio"`
	BookValueCheck  bool    `json:"book_value_check"`
	IntrinsicValue  float64 `json:"intrinsic_value"`
	GrowthAlignment float64 `json:"growth_alignment"`
	FCFPositive     bool    `json:"free_cash_flow"`
	DividendPaid    bool    `json:"dividend_history"`
}

// profile is the merged field space criteria read from: raw snapshot fields
// and derived ratios, accessed uniformly.
type profile struct {
	snap    *snapshot.FinancialSnapshot
	derived DerivedRatios
}

// deriveRatios computes the full derived set for one snapshot.
func deriveRatios(s *snapshot.FinancialSnapshot, params valuation.Params) DerivedRatios {
	var d DerivedRatios

	totalDebt := s.Balance.ValueOr(snapshot.TotalDebt, 0, 0)
	totalEquity, _ := s.Balance.FirstOf(0, snapshot.StockholderEq, snapshot.TotalStockholderEq)
	if totalEquity == 0 {
		totalEquity = 1
	}
	if totalEquity > 0 {
		d.DebtToEquity = totalDebt / totalEquity
	} else {
		d.DebtToEquity = math.Inf(1)
	}

	currentAssets := s.Balance.ValueOr(snapshot.CurrentAssets, 0, 0)
	currentLiab := s.Balance.ValueOr(snapshot.CurrentLiab, 0, 0)
	if currentLiab == 0 {
		currentLiab = 1
	}
	if currentLiab > 0 {
		d.CurrentRatio = currentAssets / currentLiab
	}

	netIncome := s.Income.ValueOr(snapshot.NetIncome, 0, 0)
	if totalEquity > 0 {
		d.ROE = netIncome / totalEquity * 100
	}

	operatingIncome := s.Income.ValueOr(snapshot.OperatingInc, 0, 0)
	revenue := s.Income.ValueOr(snapshot.Revenue, 0, 0)
	if revenue == 0 {
		revenue = 1
	}
	if revenue > 0 {
		d.OperatingMargin = operatingIncome / revenue * 100
	}

	if capital := totalEquity + totalDebt; capital > 0 {
		d.ROCE = operatingIncome / capital * 100
	}

	earningsGrowth := s.EarningsGrowth
	if earningsGrowth == 0 {
		earningsGrowth = 1
	}
	if earningsGrowth > 0 {
		d.PEGRatio = s.PERatio / earningsGrowth
	} else {
		d.PEGRatio = math.Inf(1)
	}

	d.BookValueCheck = s.BookValue > 0 && s.CurrentPrice < s.BookValue
	d.IntrinsicValue = valuation.IntrinsicValuePerShare(s, params)

	if s.RevenueGrowth > 0 && s.EarningsGrowth > 0 {
		d.GrowthAlignment = math.Min(s.RevenueGrowth, s.EarningsGrowth) / math.Max(s.RevenueGrowth, s.EarningsGrowth)
	}

	d.FCFPositive = s.CashFlow.ValueOr(snapshot.FreeCashFlow, 0, 0) > 0
	d.DividendPaid = s.DividendYield > 0

	return d
}
