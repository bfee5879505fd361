// Package snapshot defines the immutable per-analysis data bundle consumed by
// the scoring and valuation engines: scalar company facts plus the three
// financial-statement tables (income, balance sheet, cash flow).
package snapshot

// =============================================================================
// STATEMENT TABLE
// A typed 2-D lookup: fixed line-item enumeration × ordered annual periods.
// Periods are ordered NEWEST FIRST and hold 1-5 annual columns.
// A missing cell is explicitly "unknown", never numeric zero.
// =============================================================================

// LineItem identifies a financial-statement row. The string value matches the
// provider label so ingested tables map 1:1 without a translation layer.
type LineItem string

// Income statement line items.
const (
	Revenue      LineItem = "Total Revenue"
	GrossProfit  LineItem = "Gross Profit"
	OperatingInc LineItem = "Operating Income"
	NetIncome    LineItem = "Net Income"
	EBIT         LineItem = "EBIT"
	EBITDA       LineItem = "EBITDA"
	PretaxIncome LineItem = "Pretax Income"
	InterestExp  LineItem = "Interest Expense"
)

// Balance sheet line items.
const (
	TotalAssets      LineItem = "Total Assets"
	TotalLiabilities LineItem = "Total Liabilities"
	CurrentAssets    LineItem = "Current Assets"
	CurrentLiab      LineItem = "Current Liabilities"
	LongTermDebt     LineItem = "Long Term Debt"
	TotalDebt        LineItem = "Total Debt"
	StockholderEq    LineItem = "Stockholders Equity"
	// Legacy provider labels kept for fallback chains.
	TotalStockholderEq LineItem = "Total Stockholder Equity"
	TotalLiabNMI       LineItem = "Total Liabilities Net Minority Interest"
	RetainedEarnings   LineItem = "Retained Earnings"
	CommonStock        LineItem = "Common Stock"
	OrdinaryShares     LineItem = "Ordinary Shares Number"
)

// Cash flow statement line items.
const (
	OperatingCashFlow  LineItem = "Total Cash From Operating Activities"
	FreeCashFlow       LineItem = "Free Cash Flow"
	CapitalExpenditure LineItem = "Capital Expenditures"
	DividendsPaid      LineItem = "Dividends Paid"
)

// Statement holds one statement table for up to 5 annual periods.
type Statement struct {
	// Periods are column labels (fiscal year ends), newest first.
	Periods []string               `json:"periods"`
	Rows    map[LineItem][]float64 `json:"rows"`
	// present mirrors Rows; a false entry means the provider did not report
	// the value for that column.
	present map[LineItem][]bool
}

// NewStatement creates an empty statement with the given period columns
// (newest first).
func NewStatement(periods ...string) *Statement {
	return &Statement{
		Periods: periods,
		Rows:    make(map[LineItem][]float64),
		present: make(map[LineItem][]bool),
	}
}

// Columns returns the number of annual periods held.
func (s *Statement) Columns() int {
	if s == nil {
		return 0
	}
	return len(s.Periods)
}

// Empty reports whether the statement holds no periods or no rows.
func (s *Statement) Empty() bool {
	return s == nil || len(s.Periods) == 0 || len(s.Rows) == 0
}

// Set records a reported value for a line item at the given column
// (0 = newest). Out-of-range columns are ignored.
func (s *Statement) Set(item LineItem, col int, value float64) {
	if s == nil || col < 0 || col >= len(s.Periods) {
		return
	}
	if _, ok := s.Rows[item]; !ok {
		s.Rows[item] = make([]float64, len(s.Periods))
		s.present[item] = make([]bool, len(s.Periods))
	}
	s.Rows[item][col] = value
	s.present[item][col] = true
}

// Value returns the reported value and whether it was reported.
// Absence means "unknown", not zero.
func (s *Statement) Value(item LineItem, col int) (float64, bool) {
	if s == nil || col < 0 || col >= len(s.Periods) {
		return 0, false
	}
	vals, ok := s.Rows[item]
	if !ok || col >= len(vals) {
		return 0, false
	}
	if flags, ok := s.present[item]; !ok || col >= len(flags) || !flags[col] {
		return 0, false
	}
	return vals[col], true
}

// ValueOr returns the reported value, or fallback when the cell is unknown.
// Ratio math uses this with fallback 0 so a missing item never poisons a
// division; score rules that must distinguish missing use Value directly.
func (s *Statement) ValueOr(item LineItem, col int, fallback float64) float64 {
	if v, ok := s.Value(item, col); ok {
		return v
	}
	return fallback
}

// FirstOf returns the first reported value among candidate line items at the
// given column. Used for provider-label fallback chains, e.g. equity under
// "Stockholders Equity" vs "Total Stockholder Equity".
func (s *Statement) FirstOf(col int, items ...LineItem) (float64, bool) {
	for _, item := range items {
		if v, ok := s.Value(item, col); ok {
			return v, true
		}
	}
	return 0, false
}

// History returns up to maxCols reported values for a line item, newest first.
// Unknown cells are skipped, so the result may be shorter than the statement.
func (s *Statement) History(item LineItem, maxCols int) []float64 {
	if s == nil {
		return nil
	}
	n := s.Columns()
	if maxCols > 0 && maxCols < n {
		n = maxCols
	}
	out := make([]float64, 0, n)
	for col := 0; col < n; col++ {
		if v, ok := s.Value(item, col); ok {
			out = append(out, v)
		}
	}
	return out
}

// rehydrate rebuilds presence flags after JSON decoding: every decoded row
// cell is treated as reported. Callers that need unknown cells must rebuild
// statements through Set.
func (s *Statement) rehydrate() {
	if s == nil || s.present != nil && len(s.present) > 0 {
		return
	}
	s.present = make(map[LineItem][]bool, len(s.Rows))
	for item, vals := range s.Rows {
		flags := make([]bool, len(vals))
		for i := range flags {
			flags[i] = true
		}
		s.present[item] = flags
	}
}
