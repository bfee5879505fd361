package snapshot

// =============================================================================
// FINANCIAL SNAPSHOT
// Immutable per-analysis bundle: scalar company facts + statement tables.
// Produced by the fetch collaborator (or tests), consumed by the analyzer.
// =============================================================================

// FinancialSnapshot is the unified input for one company analysis.
// Zero scalar values mean "not reported" for display purposes; ratio math
// applies the documented fallbacks instead of failing.
type FinancialSnapshot struct {
	// Identity
	Symbol          string `json:"symbol"`
	LongName        string `json:"long_name"`
	ShortName       string `json:"short_name"`
	Industry        string `json:"industry"`
	Sector          string `json:"sector"`
	Exchange        string `json:"exchange"`
	Currency        string `json:"currency"`
	CurrencySymbol  string `json:"currency_symbol"`
	Market          string `json:"market"`

	// Price data
	CurrentPrice     float64 `json:"current_price"`
	PreviousClose    float64 `json:"previous_close"`
	DayLow           float64 `json:"day_low"`
	DayHigh          float64 `json:"day_high"`
	FiftyTwoWeekLow  float64 `json:"fifty_two_week_low"`
	FiftyTwoWeekHigh float64 `json:"fifty_two_week_high"`

	// Market data
	MarketCap         float64 `json:"market_cap"`
	SharesOutstanding float64 `json:"shares_outstanding"`
	Volume            float64 `json:"volume"`
	AvgVolume         float64 `json:"avg_volume"`

	// Valuation ratios (as reported by the provider)
	PERatio   float64 `json:"pe_ratio"`
	ForwardPE float64 `json:"forward_pe"`
	PBRatio   float64 `json:"pb_ratio"`
	PSRatio   float64 `json:"ps_ratio"`
	BookValue float64 `json:"book_value"` // per share
	EPS       float64 `json:"eps"`
	Beta      float64 `json:"beta"`

	// Dividend data
	DividendRate  float64 `json:"dividend_rate"`
	DividendYield float64 `json:"dividend_yield"`
	PayoutRatio   float64 `json:"payout_ratio"`

	// Ownership
	PromoterHolding  float64 `json:"promoter_holding"`
	PromoterPledging float64 `json:"promoter_pledging"`

	// Growth metrics, percentages. Populated at ingestion from statement
	// history (CAGR) with the provider's YoY figures as fallback.
	RevenueGrowth       float64 `json:"revenue_growth"`
	EarningsGrowth      float64 `json:"earnings_growth"`
	RevenueGrowthYears  int     `json:"revenue_growth_years"`
	EarningsGrowthYears int     `json:"earnings_growth_years"`

	// Statement tables, 1-5 annual columns each, newest first.
	Income    *Statement `json:"income"`
	Balance   *Statement `json:"balance"`
	CashFlow  *Statement `json:"cash_flow"`
}

// Normalize prepares a snapshot decoded from JSON for use: presence flags on
// statement tables are rebuilt treating every decoded cell as reported.
func (s *FinancialSnapshot) Normalize() {
	if s == nil {
		return
	}
	s.Income.rehydrate()
	s.Balance.rehydrate()
	s.CashFlow.rehydrate()
}

// LatestIncome returns the newest reported value for an income statement item.
func (s *FinancialSnapshot) LatestIncome(item LineItem) (float64, bool) {
	return s.Income.Value(item, 0)
}

// LatestBalance returns the newest reported value for a balance sheet item.
func (s *FinancialSnapshot) LatestBalance(item LineItem) (float64, bool) {
	return s.Balance.Value(item, 0)
}

// LatestCashFlow returns the newest reported value for a cash flow item.
func (s *FinancialSnapshot) LatestCashFlow(item LineItem) (float64, bool) {
	return s.CashFlow.Value(item, 0)
}

// NetIncomeHistory returns up to five annual net income values, newest first.
// The earnings-consistency criterion reverses this into chronological order.
func (s *FinancialSnapshot) NetIncomeHistory() []float64 {
	return s.Income.History(NetIncome, 5)
}

// FreeCashFlowOrEstimate resolves free cash flow with the documented
// fallback chain:
//
//	reported FCF → net income × 0.8 → EPS × shares × 0.8 → price × shares × 0.05
//
// The last resort assumes a 5% FCF yield on market value. Returns 0 only when
// every input is unusable.
func (s *FinancialSnapshot) FreeCashFlowOrEstimate() float64 {
	if fcf, ok := s.LatestCashFlow(FreeCashFlow); ok && fcf > 0 {
		return fcf
	}
	if ni, ok := s.LatestIncome(NetIncome); ok && ni > 0 {
		return ni * 0.8
	}
	if s.EPS > 0 && s.SharesOutstanding > 0 {
		return s.EPS * s.SharesOutstanding * 0.8
	}
	if s.CurrentPrice > 0 && s.SharesOutstanding > 0 {
		return s.CurrentPrice * s.SharesOutstanding * 0.05
	}
	return 0
}

// Bar is one daily price-history row. Chronological series of Bars feed the
// technical indicator engine.
type Bar struct {
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume float64 `json:"volume"`
}
