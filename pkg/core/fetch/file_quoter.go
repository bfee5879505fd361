package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"stock_analyzer/pkg/core/snapshot"
)

// =============================================================================
// FILE QUOTER - serves saved provider payloads from a data directory
// =============================================================================

// FileQuoter serves bundles from saved provider pages. Layout per symbol:
//
//	<dir>/<SYMBOL>/info.json      quote payload
//	<dir>/<SYMBOL>/history.json   daily bars
//	<dir>/<SYMBOL>/income.html    income statement page
//	<dir>/<SYMBOL>/balance.html   balance sheet page
//	<dir>/<SYMBOL>/cashflow.html  cash flow page
//
// Only info.json is required. Symbols with ".": the directory name replaces
// it with "_" (TCS.NS -> TCS_NS).
type FileQuoter struct {
	dir string
}

// NewFileQuoter creates a quoter over a data directory.
func NewFileQuoter(dir string) *FileQuoter {
	return &FileQuoter{dir: dir}
}

func (q *FileQuoter) symbolDir(symbol string) string {
	return filepath.Join(q.dir, strings.ReplaceAll(strings.ToUpper(symbol), ".", "_"))
}

// Fetch loads the saved bundle for a symbol.
func (q *FileQuoter) Fetch(_ context.Context, symbol string) (*Bundle, error) {
	base := q.symbolDir(symbol)

	infoJSON, err := os.ReadFile(filepath.Join(base, "info.json"))
	if err != nil {
		return nil, fmt.Errorf("no saved data for %s: %w", symbol, err)
	}

	bundle := &Bundle{InfoJSON: infoJSON}

	if raw, err := os.ReadFile(filepath.Join(base, "history.json")); err == nil {
		var bars []snapshot.Bar
		if err := json.Unmarshal(raw, &bars); err != nil {
			return nil, fmt.Errorf("bad history for %s: %w", symbol, err)
		}
		bundle.History = bars
	}

	bundle.IncomeHTML = readOptional(filepath.Join(base, "income.html"))
	bundle.BalanceHTML = readOptional(filepath.Join(base, "balance.html"))
	bundle.CashFlowHTML = readOptional(filepath.Join(base, "cashflow.html"))

	return bundle, nil
}

// Search lists saved symbols whose directory name contains the query.
func (q *FileQuoter) Search(_ context.Context, query string) ([]Suggestion, error) {
	entries, err := os.ReadDir(q.dir)
	if err != nil {
		return nil, err
	}

	needle := strings.ToUpper(NormalizeQuery(query))
	var out []Suggestion
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		symbol := strings.Replace(e.Name(), "_", ".", 1)
		if strings.Contains(e.Name(), needle) {
			out = append(out, Suggestion{
				Name:     symbol,
				Symbol:   symbol,
				Score:    0.9,
				Exchange: MarketFromSymbol(symbol),
			})
		}
	}
	return out, nil
}

// Validate reports whether saved data exists for the symbol.
func (q *FileQuoter) Validate(_ context.Context, symbol string) bool {
	_, err := os.Stat(filepath.Join(q.symbolDir(symbol), "info.json"))
	return err == nil
}

func readOptional(path string) string {
	raw, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(raw)
}
