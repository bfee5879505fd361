// Package analyzer evaluates the fixed Buffett-style criteria list against a
// company snapshot, accumulates the total score, and derives the final
// buy/hold/avoid recommendation.
package analyzer

// Status is the three-level display signal attached to a criterion result.
// It refines the binary pass/fail for presentation and never affects scoring.
type Status string

const (
	StatusGood    Status = "good"
	StatusCaution Status = "caution"
	StatusPoor    Status = "poor"
)

// CriterionSpec is one static entry of the criteria table: identity, the
// human-readable rule text, and the numeric thresholds the rule evaluates.
// Threshold meaning depends on the rule; unused fields stay zero.
type CriterionSpec struct {
	Name     string
	Key      string
	Criteria string

	GoodThreshold      float64
	BadThreshold       float64
	ExcellentThreshold float64
	AvoidThreshold     float64
	FairMin            float64
	FairMax            float64
	OkayMax            float64
	DiscountThreshold  float64
	AlignmentThreshold float64
	GrowthThreshold    float64
}

// CriterionResult is the outcome of evaluating one criterion: a formatted
// display value, the three-level status, and the binary pass that feeds the
// total score.
type CriterionResult struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Status   Status `json:"status"`
	Passed   bool   `json:"passed"`
	Criteria string `json:"criteria"`
}

// buffettCriteria is the fixed 15-entry criteria table. Order defines the
// presentation order only; each entry contributes exactly one point.
func buffettCriteria() []CriterionSpec {
	return []CriterionSpec{
		{
			Name:          "Return on Equity (ROE)",
			Key:           "roe",
			Criteria:      "> 15% = Good, < 10% = Avoid",
			GoodThreshold: 15,
			BadThreshold:  10,
		},
		{
			Name:               "Debt-to-Equity Ratio",
			Key:                "debt_to_equity",
			Criteria:           "< 0.5 = Excellent, 0.5-1 = Okay, > 1 = Avoid",
			ExcellentThreshold: 0.5,
			AvoidThreshold:     1.0,
		},
		{
			Name:          "Current Ratio",
			Key:           "current_ratio",
			Criteria:      "> 1.5 = Healthy, < 1 = Risky",
			GoodThreshold: 1.5,
			BadThreshold:  1.0,
		},
		{
			Name:     "Book Value Per Share",
			Key:      "book_value_check",
			Criteria: "Stock Price < Book Value",
		},
		{
			Name:     "Price-to-Earnings (P/E) Ratio",
			Key:      "pe_ratio",
			Criteria: "10-15 = Fair, 15-25 = Okay, > 25 = Expensive",
			FairMin:  10,
			FairMax:  15,
			OkayMax:  25,
		},
		{
			Name:          "Price-to-Book (P/B) Ratio",
			Key:           "pb_ratio",
			Criteria:      "< 1.5 = Undervalued",
			GoodThreshold: 1.5,
		},
		{
			Name:              "Intrinsic Value vs Market Price",
			Key:               "intrinsic_value_check",
			Criteria:          "MoS >= 20% (IV=Intrinsic Value via DCF, MoS=Margin of Safety)",
			DiscountThreshold: 20,
		},
		{
			Name:          "Operating Profit Margin (OPM)",
			Key:           "operating_margin",
			Criteria:      "> 15% and stable",
			GoodThreshold: 15,
		},
		{
			Name:               "Revenue vs Profit Growth",
			Key:                "growth_alignment",
			Criteria:           "Both positive (5-year CAGR or YoY)",
			AlignmentThreshold: 0.8,
		},
		{
			Name:          "Return on Capital Employed (ROCE)",
			Key:           "roce",
			Criteria:      "> 15%",
			GoodThreshold: 15,
		},
		{
			Name:          "PEG Ratio",
			Key:           "peg_ratio",
			Criteria:      "< 1.0",
			GoodThreshold: 1.0,
		},
		{
			Name:          "Earnings Growth",
			Key:           "earnings_growth",
			Criteria:      "> 8-10% CAGR",
			GoodThreshold: 8,
		},
		{
			Name:     "Consistent Earnings",
			Key:      "earnings_consistency",
			Criteria: "Net Income stable over 5-10 years",
		},
		{
			Name:            "Free Cash Flow",
			Key:             "free_cash_flow",
			Criteria:        "Positive & growing over 5 years",
			GrowthThreshold: 0,
		},
		{
			Name:     "Dividend History",
			Key:      "dividend_history",
			Criteria: "Dividend paid last 5 years (bonus)",
		},
	}
}
