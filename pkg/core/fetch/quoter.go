package fetch

import (
	"context"

	"stock_analyzer/pkg/core/snapshot"
)

// =============================================================================
// PROVIDER BOUNDARY
// =============================================================================

// Quoter is the provider boundary. Implementations talk to a market data
// source; everything above works from the returned Bundle.
type Quoter interface {
	// Fetch returns the full data bundle for an exchange symbol.
	Fetch(ctx context.Context, symbol string) (*Bundle, error)
	// Search returns provider-side symbol suggestions for a free-text query.
	Search(ctx context.Context, query string) ([]Suggestion, error)
	// Validate reports whether the symbol exists and has quotable data.
	Validate(ctx context.Context, symbol string) bool
}

// Bundle is one raw fetch result: the quote payload as delivered (decoded
// tolerantly later), a year of daily bars, and the statement pages as HTML
// tables.
type Bundle struct {
	InfoJSON []byte
	History  []snapshot.Bar

	IncomeHTML   string
	BalanceHTML  string
	CashFlowHTML string

	// InsiderHolding is the major-holders insider percentage (already in
	// percent), 0 when the provider did not report it.
	InsiderHolding float64
}

// Info mirrors the provider quote payload. Field tags follow the provider's
// key names; zero means not reported.
type Info struct {
	Symbol    string `json:"symbol"`
	LongName  string `json:"longName"`
	ShortName string `json:"shortName"`
	Industry  string `json:"industry"`
	Sector    string `json:"sector"`
	Exchange  string `json:"exchange"`
	Currency  string `json:"currency"`

	CurrentPrice       float64 `json:"currentPrice"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	PreviousClose      float64 `json:"previousClose"`
	Open               float64 `json:"open"`
	DayLow             float64 `json:"dayLow"`
	DayHigh            float64 `json:"dayHigh"`
	FiftyTwoWeekLow    float64 `json:"fiftyTwoWeekLow"`
	FiftyTwoWeekHigh   float64 `json:"fiftyTwoWeekHigh"`

	MarketCap         float64 `json:"marketCap"`
	SharesOutstanding float64 `json:"sharesOutstanding"`
	Volume            float64 `json:"volume"`
	AverageVolume     float64 `json:"averageVolume"`

	TrailingPE    float64 `json:"trailingPE"`
	ForwardPE     float64 `json:"forwardPE"`
	PriceToBook   float64 `json:"priceToBook"`
	PriceToSales  float64 `json:"priceToSalesTrailing12Months"`
	BookValue     float64 `json:"bookValue"`
	TrailingEPS   float64 `json:"trailingEps"`
	Beta          float64 `json:"beta"`
	DividendRate  float64 `json:"dividendRate"`
	DividendYield float64 `json:"dividendYield"`
	PayoutRatio   float64 `json:"payoutRatio"`

	// Growth fractions (0.12 = 12%), used only when statement history is
	// too short for a CAGR.
	RevenueGrowth           float64 `json:"revenueGrowth"`
	EarningsGrowth          float64 `json:"earningsGrowth"`
	EarningsQuarterlyGrowth float64 `json:"earningsQuarterlyGrowth"`

	// Insider fraction (0.72 = 72%).
	HeldPercentInsiders float64 `json:"heldPercentInsiders"`
}

// Suggestion is one search result, local or provider-side.
type Suggestion struct {
	Name     string  `json:"name"`
	Symbol   string  `json:"symbol"`
	Score    float64 `json:"score"`
	Exchange string  `json:"exchange"`
}
