package analyzer

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"stock_analyzer/pkg/core/snapshot"
)

// =============================================================================
// DISPLAY FORMATTING
// Criteria render currency-aware human strings; these helpers keep the
// formatting rules in one place.
// =============================================================================

// criterionSymbols maps common currency codes for criterion display. Full
// symbol resolution (market fallback and the long tail of codes) lives in the
// fetch collaborator; the analyzer only needs this short map when a snapshot
// arrives without a pre-resolved symbol.
var criterionSymbols = map[string]string{
	"INR": "₹",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
}

// currencySymbol resolves the display symbol for a snapshot.
func currencySymbol(s *snapshot.FinancialSnapshot) string {
	if s.CurrencySymbol != "" {
		return s.CurrencySymbol
	}
	if sym, ok := criterionSymbols[strings.ToUpper(s.Currency)]; ok {
		return sym
	}
	if s.Currency != "" {
		return s.Currency + " "
	}
	return "$"
}

// comma2 formats a value with thousands separators and 2 decimals.
func comma2(v float64) string {
	s := strconv.FormatFloat(math.Abs(v), 'f', 2, 64)
	intPart, fracPart, _ := strings.Cut(s, ".")
	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	b.WriteByte('.')
	b.WriteString(fracPart)
	return b.String()
}

// scaleAmount renders a large monetary value in a compact unit: billions,
// crores for INR, millions, thousands.
func scaleAmount(v float64, currency string) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case abs >= 1e7:
		if currency == "INR" {
			return fmt.Sprintf("%.0fCr", v/1e7)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	default:
		return fmt.Sprintf("%.0fK", v/1e3)
	}
}

// signPrefix returns "+" for non-negative growth figures.
func signPrefix(v float64) string {
	if v >= 0 {
		return "+"
	}
	return ""
}
