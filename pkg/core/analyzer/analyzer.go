package analyzer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"stock_analyzer/pkg/core/fundamentals"
	"stock_analyzer/pkg/core/snapshot"
	"stock_analyzer/pkg/core/valuation"
)

// =============================================================================
// CRITERIA ENGINE
// Evaluates the fixed criteria table against a snapshot, totals the score,
// and derives the recommendation.
// =============================================================================

// Analyzer runs the full fundamental scoring pass. The zero value is not
// usable; construct with New.
type Analyzer struct {
	criteria []CriterionSpec
	params   valuation.Params
}

// New returns an Analyzer with the standard criteria table and default
// valuation parameters.
func New() *Analyzer {
	return &Analyzer{
		criteria: buffettCriteria(),
		params:   valuation.DefaultParams(),
	}
}

// NewWithParams returns an Analyzer using custom valuation parameters.
func NewWithParams(params valuation.Params) *Analyzer {
	return &Analyzer{
		criteria: buffettCriteria(),
		params:   params,
	}
}

// Recommendation is the final buy/hold/avoid verdict with the price band the
// score and margin of safety imply.
type Recommendation struct {
	Status         string  `json:"status"`
	CurrentPrice   float64 `json:"current_price"`
	IntrinsicValue float64 `json:"intrinsic_value"`
	MarginOfSafety float64 `json:"margin_of_safety"`
	BuyPriceMin    float64 `json:"buy_price_min"`
	BuyPriceMax    float64 `json:"buy_price_max"`
	TargetPrice    float64 `json:"target_price"`
	CurrencySymbol string  `json:"currency_symbol"`
}

// AnalysisResult bundles one complete analysis pass.
type AnalysisResult struct {
	TotalScore     int                          `json:"total_score"`
	Metrics        []CriterionResult            `json:"metrics"`
	Recommendation Recommendation               `json:"recommendation"`
	Timestamp      time.Time                    `json:"analysis_timestamp"`
	Advanced       fundamentals.AdvancedMetrics `json:"advanced_metrics"`
}

// Analyze scores the snapshot against every criterion. Total score is the
// count of passed criteria; the recommendation follows from score and margin
// of safety.
func (a *Analyzer) Analyze(s *snapshot.FinancialSnapshot) *AnalysisResult {
	s.Normalize()

	p := profile{
		snap:    s,
		derived: deriveRatios(s, a.params),
	}

	metrics := make([]CriterionResult, 0, len(a.criteria))
	total := 0
	for _, spec := range a.criteria {
		res := evaluate(p, spec)
		metrics = append(metrics, res)
		if res.Passed {
			total++
		}
	}

	return &AnalysisResult{
		TotalScore:     total,
		Metrics:        metrics,
		Recommendation: a.recommend(p, total),
		Timestamp:      time.Now(),
		Advanced:       fundamentals.Compute(s),
	}
}

// evaluate applies one criterion rule to the merged profile. The returned
// Value string is display-ready; Status refines pass/fail for presentation.
func evaluate(p profile, spec CriterionSpec) CriterionResult {
	res := CriterionResult{
		Name:     spec.Name,
		Value:    "N/A",
		Status:   StatusPoor,
		Criteria: spec.Criteria,
	}

	s := p.snap
	d := p.derived

	switch spec.Key {
	case "roe":
		if d.ROE > spec.GoodThreshold {
			res.Passed = true
			res.Status = StatusGood
		} else if d.ROE > spec.BadThreshold {
			res.Status = StatusCaution
		}
		res.Value = fmt.Sprintf("%.2f%%", d.ROE)

	case "debt_to_equity":
		if d.DebtToEquity < spec.ExcellentThreshold {
			res.Passed = true
			res.Status = StatusGood
		} else if d.DebtToEquity <= spec.AvoidThreshold {
			res.Status = StatusCaution
		}
		res.Value = fmt.Sprintf("%.2f", d.DebtToEquity)

	case "current_ratio":
		if d.CurrentRatio > spec.GoodThreshold {
			res.Passed = true
			res.Status = StatusGood
		} else if d.CurrentRatio >= spec.BadThreshold {
			res.Status = StatusCaution
		}
		res.Value = fmt.Sprintf("%.2f", d.CurrentRatio)

	case "book_value_check":
		if s.BookValue > 0 {
			sym := currencySymbol(s)
			res.Passed = s.CurrentPrice < s.BookValue
			if res.Passed {
				res.Status = StatusGood
			}
			res.Value = fmt.Sprintf("%s%s (Price: %s%s)",
				sym, comma2(s.BookValue), sym, comma2(s.CurrentPrice))
		}

	case "pe_ratio":
		if s.PERatio > 0 {
			if s.PERatio >= spec.FairMin && s.PERatio <= spec.FairMax {
				res.Passed = true
				res.Status = StatusGood
			} else if s.PERatio <= spec.OkayMax {
				res.Status = StatusCaution
			}
			res.Value = fmt.Sprintf("%.2f", s.PERatio)
		}

	case "pb_ratio":
		if s.PBRatio > 0 {
			if s.PBRatio < spec.GoodThreshold {
				res.Passed = true
				res.Status = StatusGood
			} else if s.PBRatio < 2.0 {
				res.Status = StatusCaution
			}
			res.Value = fmt.Sprintf("%.2f", s.PBRatio)
		}

	case "intrinsic_value_check":
		if s.CurrentPrice > 0 && d.IntrinsicValue > 0 {
			mos := (1 - s.CurrentPrice/d.IntrinsicValue) * 100
			if mos >= spec.DiscountThreshold {
				res.Passed = true
				res.Status = StatusGood
			} else if mos > 0 {
				res.Status = StatusCaution
			}
			sym := currencySymbol(s)
			direction := "Undervalued"
			if mos < 0 {
				direction = "Overvalued"
			}
			res.Value = fmt.Sprintf("IV: %s%s | MoS: %.1f%% (%s)",
				sym, comma2(d.IntrinsicValue), mos, direction)
		}

	case "operating_margin", "roce":
		v := d.OperatingMargin
		if spec.Key == "roce" {
			v = d.ROCE
		}
		if v > spec.GoodThreshold {
			res.Passed = true
			res.Status = StatusGood
		} else if v > spec.GoodThreshold*0.7 {
			res.Status = StatusCaution
		}
		res.Value = fmt.Sprintf("%.2f%%", v)

	case "growth_alignment":
		revGrowth := s.RevenueGrowth
		profitGrowth := s.EarningsGrowth
		years := s.RevenueGrowthYears
		if years == 0 {
			years = s.EarningsGrowthYears
		}

		if revGrowth > 0 && profitGrowth > 0 {
			res.Passed = true
			res.Status = StatusGood
			if d.GrowthAlignment < 0.5 {
				res.Status = StatusCaution
			}
		}

		var period string
		switch {
		case years > 1:
			period = fmt.Sprintf(" (%dY CAGR)", years)
		case years == 1:
			period = " (YoY)"
		default:
			period = " (Est)"
		}

		if years > 0 || revGrowth != 0 || profitGrowth != 0 {
			res.Value = fmt.Sprintf("Rev: %s%.1f%% | Profit: %s%.1f%%%s",
				signPrefix(revGrowth), revGrowth, signPrefix(profitGrowth), profitGrowth, period)
		} else {
			res.Value = "N/A (Data not available)"
			res.Status = StatusCaution
		}

	case "earnings_consistency":
		history := s.NetIncomeHistory()
		if len(history) >= 2 {
			// Oldest first for the displayed trend.
			trend := make([]float64, len(history))
			for i, v := range history {
				trend[len(history)-1-i] = v
			}

			allPositive := true
			for _, v := range trend {
				if v <= 0 {
					allPositive = false
					break
				}
			}
			if allPositive {
				res.Passed = true
				res.Status = StatusGood
			}

			parts := make([]string, 0, len(trend))
			for _, v := range trend {
				parts = append(parts, scaleAmount(v, s.Currency))
			}
			if len(parts) > 5 {
				parts = parts[len(parts)-5:]
			}
			label := "Consistent"
			if !allPositive {
				label = "Volatile"
			}
			res.Value = fmt.Sprintf("%s (%s)", strings.Join(parts, " → "), label)
		} else {
			res.Value = "N/A (Insufficient Data)"
		}

	case "peg_ratio":
		if !math.IsInf(d.PEGRatio, 1) {
			if d.PEGRatio < spec.GoodThreshold {
				res.Passed = true
				res.Status = StatusGood
			} else if d.PEGRatio < 1.5 {
				res.Status = StatusCaution
			}
			res.Value = fmt.Sprintf("%.2f", d.PEGRatio)
		}

	case "earnings_growth":
		if s.EarningsGrowth > spec.GoodThreshold {
			res.Passed = true
			res.Status = StatusGood
		} else if s.EarningsGrowth > 0 {
			res.Status = StatusCaution
		}
		res.Value = fmt.Sprintf("%.2f%%", s.EarningsGrowth)

	case "free_cash_flow":
		res.Passed = d.FCFPositive
		if res.Passed {
			res.Status = StatusGood
			res.Value = "Positive"
		} else {
			res.Value = "Negative"
		}

	case "dividend_history":
		res.Passed = d.DividendPaid
		if res.Passed {
			res.Status = StatusGood
			res.Value = "Yes"
		} else {
			res.Status = StatusCaution
			res.Value = "No"
		}
	}

	return res
}

// recommend derives the verdict from the total score and margin of safety.
// The price band depends on the branch: strong scores anchor to the current
// price, weaker ones to a discounted intrinsic value.
func (a *Analyzer) recommend(p profile, totalScore int) Recommendation {
	price := p.snap.CurrentPrice
	iv := p.derived.IntrinsicValue
	if iv == 0 {
		iv = price
	}

	mos := 0.0
	if price > 0 && iv > 0 {
		mos = (1 - price/iv) * 100
	}

	rec := Recommendation{
		CurrentPrice:   price,
		IntrinsicValue: iv,
		MarginOfSafety: mos,
		CurrencySymbol: currencySymbol(p.snap),
	}

	switch {
	case totalScore >= 12 && mos >= 20:
		rec.Status = "Buy"
		rec.BuyPriceMin = price * 0.95
		rec.BuyPriceMax = price * 1.05
	case totalScore >= 10 && mos >= 10:
		rec.Status = "Buy"
		rec.BuyPriceMin = price * 0.9
		rec.BuyPriceMax = price
	case totalScore >= 8 || mos >= 0:
		rec.Status = "Hold"
		target := iv * 0.8
		rec.BuyPriceMin = target * 0.9
		rec.BuyPriceMax = target
	default:
		rec.Status = "Avoid"
		target := iv * 0.7
		rec.BuyPriceMin = target * 0.9
		rec.BuyPriceMax = target
	}
	rec.TargetPrice = rec.BuyPriceMax

	return rec
}
