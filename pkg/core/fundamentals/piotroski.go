// Package fundamentals computes supplementary distress and quality metrics
// from annual statement snapshots: Piotroski F-Score, ROIC, and the Altman
// Z-Score. All metrics degrade to neutral/zero results on missing or
// single-year data instead of returning errors.
package fundamentals

import (
	"stock_analyzer/pkg/core/snapshot"
)

// PiotroskiResult holds the 0-9 composite score plus a per-test breakdown
// keyed by a human-readable label for display.
type PiotroskiResult struct {
	Score   int             `json:"score"`
	Details map[string]bool `json:"details"`
}

// Piotroski computes the Piotroski F-Score (0-9, one point per true test)
// over the two newest annual columns of the supplied statements.
//
// Tests: positive ROA, positive OCF, ROA rising, OCF > net income (accrual
// quality), leverage not rising, current ratio rising, no share dilution,
// gross margin rising, asset turnover rising.
//
// Fewer than two income columns, or any empty statement, yields score 0 with
// no details: a partial score would be misleading. Every division substitutes
// a neutral zero when the denominator is unknown or zero.
func Piotroski(income, balance, cashflow *snapshot.Statement) PiotroskiResult {
	res := PiotroskiResult{Details: map[string]bool{}}
	if income.Empty() || balance.Empty() || cashflow.Empty() || income.Columns() < 2 {
		return PiotroskiResult{Details: map[string]bool{}}
	}

	const t, t1 = 0, 1 // newest, prior year columns

	mark := func(label string, pass bool) {
		res.Details[label] = pass
		if pass {
			res.Score++
		}
	}

	// --- PROFITABILITY (4 points) ---

	netIncome := income.ValueOr(snapshot.NetIncome, t, 0)
	totalAssets := nonZeroOr(balance.ValueOr(snapshot.TotalAssets, t, 0), 1)
	totalAssetsPrev := nonZeroOr(balance.ValueOr(snapshot.TotalAssets, t1, 0), totalAssets)
	avgAssets := (totalAssets + totalAssetsPrev) / 2

	roa := safeDiv(netIncome, avgAssets)
	mark("Positive ROA", roa > 0)

	ocf := cashflow.ValueOr(snapshot.OperatingCashFlow, t, 0)
	mark("Positive OCF", ocf > 0)

	netIncomePrev := income.ValueOr(snapshot.NetIncome, t1, 0)
	roaPrev := safeDiv(netIncomePrev, totalAssetsPrev)
	mark("ROA Increasing", roa > roaPrev)

	mark("Quality of Earnings (OCF > NI)", ocf > netIncome)

	// --- LEVERAGE, LIQUIDITY, SOURCE OF FUNDS (3 points) ---

	ltDebt := balance.ValueOr(snapshot.LongTermDebt, t, 0)
	ltDebtPrev := balance.ValueOr(snapshot.LongTermDebt, t1, 0)
	leverage := safeDiv(ltDebt, avgAssets)
	leveragePrev := safeDiv(ltDebtPrev, totalAssetsPrev)
	mark("Lower Leverage", leverage <= leveragePrev)

	currRatio := safeDiv(balance.ValueOr(snapshot.CurrentAssets, t, 0), balance.ValueOr(snapshot.CurrentLiab, t, 0))
	currRatioPrev := safeDiv(balance.ValueOr(snapshot.CurrentAssets, t1, 0), balance.ValueOr(snapshot.CurrentLiab, t1, 0))
	mark("Higher Liquidity (Current Ratio)", currRatio > currRatioPrev)

	// Share count falls back to the Common Stock balance line when an explicit
	// share count is unavailable. These are not equivalent (dollar value vs.
	// unit count) but the approximation is preserved from the reference model.
	shares := firstNonZero(
		balance.ValueOr(snapshot.OrdinaryShares, t, 0),
		balance.ValueOr(snapshot.CommonStock, t, 0),
	)
	sharesPrev := firstNonZero(
		balance.ValueOr(snapshot.OrdinaryShares, t1, 0),
		balance.ValueOr(snapshot.CommonStock, t1, 0),
	)
	mark("No Dilution", shares <= sharesPrev)

	// --- OPERATING EFFICIENCY (2 points) ---

	revenue := income.ValueOr(snapshot.Revenue, t, 0)
	revenuePrev := income.ValueOr(snapshot.Revenue, t1, 0)
	gm := safeDiv(income.ValueOr(snapshot.GrossProfit, t, 0), revenue)
	gmPrev := safeDiv(income.ValueOr(snapshot.GrossProfit, t1, 0), revenuePrev)
	mark("Higher Gross Margin", gm > gmPrev)

	turnover := safeDiv(revenue, avgAssets)
	turnoverPrev := safeDiv(revenuePrev, totalAssetsPrev)
	mark("Higher Asset Turnover", turnover > turnoverPrev)

	return res
}

// nonZeroOr substitutes fallback when v is zero (missing or reported zero
// assets would otherwise poison every average-asset ratio).
func nonZeroOr(v, fallback float64) float64 {
	if v == 0 {
		return fallback
	}
	return v
}

func firstNonZero(vals ...float64) float64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
