package fetch

import (
	"context"
	"fmt"
	"log"
	"time"

	"stock_analyzer/pkg/core/snapshot"
	"stock_analyzer/pkg/core/utils"
	"stock_analyzer/pkg/core/valuation"
)

// =============================================================================
// FETCHER - query resolution, bounded retry, snapshot assembly
// =============================================================================

// Fetcher turns free-text queries into assembled snapshots. It owns no
// network code: all I/O goes through the Quoter.
type Fetcher struct {
	quoter  Quoter
	retries int
	delay   time.Duration

	revenueEstimator  valuation.GrowthEstimator
	earningsEstimator valuation.GrowthEstimator
}

// NewFetcher returns a Fetcher with 3 fetch attempts and CAGR-based growth
// estimation.
func NewFetcher(q Quoter) *Fetcher {
	return &Fetcher{
		quoter:            q,
		retries:           3,
		delay:             time.Second,
		revenueEstimator:  valuation.CAGREstimator{},
		earningsEstimator: valuation.CAGREstimator{},
	}
}

// ResolveSymbol finds the exchange symbol for a query: known table first,
// then suffix probing through the provider.
func (f *Fetcher) ResolveSymbol(ctx context.Context, query string) (string, error) {
	normalized := NormalizeQuery(query)

	if sym, ok := lookupKnown(normalized); ok {
		return sym, nil
	}

	for _, candidate := range candidateSymbols(normalized) {
		if f.quoter.Validate(ctx, candidate) {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("no symbol resolved for query %q", query)
}

// GetSnapshot resolves the query and assembles a full snapshot plus the
// daily price history.
func (f *Fetcher) GetSnapshot(ctx context.Context, query string) (*snapshot.FinancialSnapshot, []snapshot.Bar, error) {
	symbol, err := f.ResolveSymbol(ctx, query)
	if err != nil {
		return nil, nil, err
	}

	bundle, err := f.fetchWithRetry(ctx, symbol)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching %s: %w", symbol, err)
	}

	snap, err := f.assemble(symbol, bundle)
	if err != nil {
		return nil, nil, fmt.Errorf("assembling %s: %w", symbol, err)
	}
	return snap, bundle.History, nil
}

// GetWithSuggestions fetches the snapshot, or returns search suggestions
// when the query cannot be resolved.
func (f *Fetcher) GetWithSuggestions(ctx context.Context, query string) (*snapshot.FinancialSnapshot, []snapshot.Bar, []Suggestion, error) {
	snap, bars, err := f.GetSnapshot(ctx, query)
	if err == nil {
		return snap, bars, nil, nil
	}

	suggestions := f.Search(ctx, query, 8)
	return nil, nil, suggestions, err
}

// fetchWithRetry retries transient provider failures with a fixed delay.
func (f *Fetcher) fetchWithRetry(ctx context.Context, symbol string) (*Bundle, error) {
	var lastErr error
	for attempt := 0; attempt < f.retries; attempt++ {
		bundle, err := f.quoter.Fetch(ctx, symbol)
		if err == nil {
			return bundle, nil
		}
		lastErr = err
		log.Printf("[Fetcher] attempt %d/%d for %s failed: %v", attempt+1, f.retries, symbol, err)

		if attempt < f.retries-1 {
			select {
			case <-time.After(f.delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("all %d attempts failed: %w", f.retries, lastErr)
}

// assemble decodes the quote payload, parses statement pages, and fills the
// snapshot including growth metrics.
func (f *Fetcher) assemble(symbol string, bundle *Bundle) (*snapshot.FinancialSnapshot, error) {
	var info Info
	if err := utils.DecodeTolerant(bundle.InfoJSON, &info); err != nil {
		return nil, fmt.Errorf("decoding quote payload: %w", err)
	}

	income := parseStatementOrEmpty(bundle.IncomeHTML, "income")
	balance := parseStatementOrEmpty(bundle.BalanceHTML, "balance")
	cashflow := parseStatementOrEmpty(bundle.CashFlowHTML, "cashflow")

	currentPrice := info.CurrentPrice
	if n := len(bundle.History); n > 0 {
		currentPrice = bundle.History[n-1].Close
	}

	market := MarketFromSymbol(symbol)
	currency := info.Currency
	if currency == "" {
		currency = "USD"
	}

	previousClose := info.PreviousClose
	if previousClose == 0 {
		previousClose = currentPrice
	}

	promoterHolding := info.HeldPercentInsiders * 100
	if promoterHolding == 0 {
		promoterHolding = bundle.InsiderHolding
	}

	beta := info.Beta
	if beta == 0 {
		beta = 1.0
	}

	snap := &snapshot.FinancialSnapshot{
		Symbol:         symbol,
		LongName:       info.LongName,
		ShortName:      info.ShortName,
		Industry:       info.Industry,
		Sector:         info.Sector,
		Exchange:       info.Exchange,
		Currency:       currency,
		CurrencySymbol: CurrencySymbol(currency, market),
		Market:         market,

		CurrentPrice:     currentPrice,
		PreviousClose:    previousClose,
		DayLow:           info.DayLow,
		DayHigh:          info.DayHigh,
		FiftyTwoWeekLow:  info.FiftyTwoWeekLow,
		FiftyTwoWeekHigh: info.FiftyTwoWeekHigh,

		MarketCap:         info.MarketCap,
		SharesOutstanding: info.SharesOutstanding,
		Volume:            info.Volume,
		AvgVolume:         info.AverageVolume,

		PERatio:   info.TrailingPE,
		ForwardPE: info.ForwardPE,
		PBRatio:   info.PriceToBook,
		PSRatio:   info.PriceToSales,
		BookValue: info.BookValue,
		EPS:       info.TrailingEPS,
		Beta:      beta,

		DividendRate:  info.DividendRate,
		DividendYield: info.DividendYield,
		PayoutRatio:   info.PayoutRatio,

		PromoterHolding:  promoterHolding,
		PromoterPledging: 0,

		Income:   income,
		Balance:  balance,
		CashFlow: cashflow,
	}

	f.populateGrowth(snap, &info)
	return snap, nil
}

// populateGrowth prefers multi-year statement CAGR (at least two spans),
// then the provider's year-over-year fraction, then the constant
// conservative estimate.
func (f *Fetcher) populateGrowth(snap *snapshot.FinancialSnapshot, info *Info) {
	revHistory := snap.Income.History(snapshot.Revenue, 5)
	snap.RevenueGrowth, snap.RevenueGrowthYears = f.revenueEstimator.Estimate(revHistory)
	if snap.RevenueGrowthYears < 2 {
		if info.RevenueGrowth != 0 {
			snap.RevenueGrowth = info.RevenueGrowth * 100
			snap.RevenueGrowthYears = 1
		} else {
			snap.RevenueGrowth, snap.RevenueGrowthYears = valuation.DefaultRevenueFallback.Estimate(nil)
		}
	}

	earnHistory := snap.NetIncomeHistory()
	snap.EarningsGrowth, snap.EarningsGrowthYears = f.earningsEstimator.Estimate(earnHistory)
	if snap.EarningsGrowthYears < 2 {
		yoy := info.EarningsGrowth
		if yoy == 0 {
			yoy = info.EarningsQuarterlyGrowth
		}
		if yoy != 0 {
			snap.EarningsGrowth = yoy * 100
			snap.EarningsGrowthYears = 1
		} else {
			snap.EarningsGrowth, snap.EarningsGrowthYears = valuation.DefaultEarningsFallback.Estimate(nil)
		}
	}
}

func parseStatementOrEmpty(html, kind string) *snapshot.Statement {
	if html == "" {
		return snapshot.NewStatement()
	}
	stmt, err := ParseStatementHTML(html)
	if err != nil {
		log.Printf("[Fetcher] parsing %s statement failed: %v", kind, err)
		return snapshot.NewStatement()
	}
	return stmt
}
