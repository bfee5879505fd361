// Package fetch resolves user queries to ticker symbols and assembles
// FinancialSnapshot values from provider payloads. All network I/O sits
// behind the Quoter interface so the scoring engine and tests never dial out.
package fetch

import (
	"regexp"
	"strings"
)

// =============================================================================
// SYMBOL RESOLUTION
// =============================================================================

// knownSymbols maps common company names and tickers to their exchange
// symbols. Indian large caps dominate the table since bare NSE tickers are
// the most frequent ambiguous input.
var knownSymbols = map[string]string{
	"tcs":                "TCS.NS",
	"reliance":           "RELIANCE.NS",
	"infy":               "INFY.NS",
	"infosys":            "INFY.NS",
	"hdfcbank":           "HDFCBANK.NS",
	"icicibank":          "ICICIBANK.NS",
	"wipro":              "WIPRO.NS",
	"itc":                "ITC.NS",
	"lt":                 "LT.NS",
	"larsen":             "LT.NS",
	"sbin":               "SBIN.NS",
	"bhartiartl":         "BHARTIARTL.NS",
	"airtel":             "BHARTIARTL.NS",
	"maruti":             "MARUTI.NS",
	"asian paints":       "ASIANPAINT.NS",
	"asianpaint":         "ASIANPAINT.NS",
	"bajaj finance":      "BAJFINANCE.NS",
	"bajfinance":         "BAJFINANCE.NS",
	"kotak":              "KOTAKBANK.NS",
	"kotakbank":          "KOTAKBANK.NS",
	"hindunilvr":         "HINDUNILVR.NS",
	"hindustan unilever": "HINDUNILVR.NS",
	"axisbank":           "AXISBANK.NS",
	"axis bank":          "AXISBANK.NS",
	"nestleind":          "NESTLEIND.NS",
	"nestle":             "NESTLEIND.NS",
	"titan":              "TITAN.NS",
	"ultratech":          "ULTRACEMCO.NS",
	"ultracemco":         "ULTRACEMCO.NS",
	"powergrid":          "POWERGRID.NS",
	"ntpc":               "NTPC.NS",
	"ongc":               "ONGC.NS",
	"coal india":         "COALINDIA.NS",
	"coalindia":          "COALINDIA.NS",
	"jswsteel":           "JSWSTEEL.NS",
	"jsw steel":          "JSWSTEEL.NS",
	"tatamotors":         "TATAMOTORS.NS",
	"tata motors":        "TATAMOTORS.NS",
	"bajaj auto":         "BAJAJ-AUTO.NS",
	"bajaj-auto":         "BAJAJ-AUTO.NS",
	"bajajauto":          "BAJAJ-AUTO.NS",
	"britannia":          "BRITANNIA.NS",
	"drreddy":            "DRREDDY.NS",
	"dr reddy":           "DRREDDY.NS",
	"eichermot":          "EICHERMOT.NS",
	"eicher":             "EICHERMOT.NS",
	"grasim":             "GRASIM.NS",
	"hcltech":            "HCLTECH.NS",
	"hcl tech":           "HCLTECH.NS",
	"heromotoco":         "HEROMOTOCO.NS",
	"hero motocorp":      "HEROMOTOCO.NS",
	"hindalco":           "HINDALCO.NS",
	"indusindbk":         "INDUSINDBK.NS",
	"indusind bank":      "INDUSINDBK.NS",
	"techm":              "TECHM.NS",
	"tech mahindra":      "TECHM.NS",
	"upl":                "UPL.NS",
	"vedl":               "VEDL.NS",
	"vedanta":            "VEDL.NS",
}

var spaceRe = regexp.MustCompile(`\s+`)

// NormalizeQuery lowercases, collapses whitespace, and strips a trailing
// exchange suffix so "TCS.NS" and "tcs" resolve identically.
func NormalizeQuery(query string) string {
	normalized := spaceRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(query)), " ")
	for _, suffix := range []string{".ns", ".bo", ".nse", ".bse"} {
		if strings.HasSuffix(normalized, suffix) {
			normalized = strings.TrimSuffix(normalized, suffix)
			break
		}
	}
	return normalized
}

// candidateSymbols returns the probe order for a query that misses the known
// table: the bare uppercase ticker, then NSE, then BSE.
func candidateSymbols(query string) []string {
	upper := strings.ToUpper(query)
	return []string{upper, upper + ".NS", upper + ".BO"}
}

// lookupKnown resolves through the known table, first exact, then substring
// either way.
func lookupKnown(query string) (string, bool) {
	if sym, ok := knownSymbols[query]; ok {
		return sym, true
	}
	for name, sym := range knownSymbols {
		if strings.Contains(name, query) || strings.Contains(query, name) {
			return sym, true
		}
	}
	return "", false
}

// MarketFromSymbol determines the market from the exchange suffix.
func MarketFromSymbol(symbol string) string {
	switch {
	case strings.Contains(symbol, ".NS") || strings.Contains(symbol, ".BO"):
		return "India"
	case strings.Contains(symbol, ".L"):
		return "UK"
	case strings.Contains(symbol, ".HK"):
		return "Hong Kong"
	case strings.Contains(symbol, ".T") || strings.Contains(symbol, ".JP"):
		return "Japan"
	case strings.Contains(symbol, ".AX"):
		return "Australia"
	case strings.Contains(symbol, ".SA"):
		return "Brazil"
	case strings.Contains(symbol, ".TO"):
		return "Canada"
	default:
		return "USA"
	}
}

// =============================================================================
// CURRENCY
// =============================================================================

var currencySymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"GBP": "£",
	"EUR": "€",
	"JPY": "¥",
	"CNY": "¥",
	"AUD": "A$",
	"CAD": "C$",
	"HKD": "HK$",
	"SGD": "S$",
	"BRL": "R$",
	"KRW": "₩",
	"CHF": "CHF",
}

var marketCurrencySymbols = map[string]string{
	"India":     "₹",
	"USA":       "$",
	"UK":        "£",
	"Japan":     "¥",
	"Hong Kong": "HK$",
	"Australia": "A$",
	"Canada":    "C$",
	"Brazil":    "R$",
	"Germany":   "€",
	"France":    "€",
	"Italy":     "€",
	"Spain":     "€",
}

// CurrencySymbol resolves a display symbol from the currency code, falling
// back to the market and finally to "$".
func CurrencySymbol(currencyCode, market string) string {
	if sym, ok := currencySymbols[strings.ToUpper(currencyCode)]; ok {
		return sym
	}
	if sym, ok := marketCurrencySymbols[market]; ok {
		return sym
	}
	return "$"
}

// ChangePercent returns the percentage move from previous to current.
func ChangePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
