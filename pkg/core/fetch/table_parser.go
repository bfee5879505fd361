package fetch

import (
	"log"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"stock_analyzer/pkg/core/snapshot"
)

// =============================================================================
// STATEMENT TABLE PARSER - extract statement tables from provider HTML
// =============================================================================

// statementItems maps row labels as they appear on statement pages to line
// items. Lookup is case-insensitive on the trimmed label.
var statementItems = map[string]snapshot.LineItem{
	"total revenue":                           snapshot.Revenue,
	"gross profit":                            snapshot.GrossProfit,
	"operating income":                        snapshot.OperatingInc,
	"net income":                              snapshot.NetIncome,
	"ebit":                                    snapshot.EBIT,
	"ebitda":                                  snapshot.EBITDA,
	"pretax income":                           snapshot.PretaxIncome,
	"interest expense":                        snapshot.InterestExp,
	"total assets":                            snapshot.TotalAssets,
	"total liabilities":                       snapshot.TotalLiabilities,
	"total liabilities net minority interest": snapshot.TotalLiabNMI,
	"current assets":                          snapshot.CurrentAssets,
	"total current assets":                    snapshot.CurrentAssets,
	"current liabilities":                     snapshot.CurrentLiab,
	"total current liabilities":               snapshot.CurrentLiab,
	"long term debt":                          snapshot.LongTermDebt,
	"total debt":                              snapshot.TotalDebt,
	"stockholders equity":                     snapshot.StockholderEq,
	"total stockholder equity":                snapshot.TotalStockholderEq,
	"retained earnings":                       snapshot.RetainedEarnings,
	"common stock":                            snapshot.CommonStock,
	"ordinary shares number":                  snapshot.OrdinaryShares,
	"total cash from operating activities":    snapshot.OperatingCashFlow,
	"operating cash flow":                     snapshot.OperatingCashFlow,
	"free cash flow":                          snapshot.FreeCashFlow,
	"capital expenditure":                     snapshot.CapitalExpenditure,
	"capital expenditures":                    snapshot.CapitalExpenditure,
	"dividends paid":                          snapshot.DividendsPaid,
}

var yearRe = regexp.MustCompile(`\b(19|20)\d{2}\b`)

// parseColumnYear extracts a 4-digit year from a header cell, 0 when absent.
func parseColumnYear(header string) int {
	match := yearRe.FindString(header)
	if match == "" {
		return 0
	}
	year, _ := strconv.Atoi(match)
	return year
}

// parseCellValue converts a statement cell to a number. Handles thousands
// separators, parenthesized negatives, and dash placeholders for missing
// values.
func parseCellValue(text string) (float64, bool) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" || cleaned == "-" || cleaned == "--" || cleaned == "—" || cleaned == "N/A" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = cleaned[1 : len(cleaned)-1]
	}
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.TrimPrefix(cleaned, "₹")

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	if negative {
		v = -v
	}
	return v, true
}

// ParseStatementHTML extracts the first statement table from an HTML page
// into a Statement. The header row is the first row containing a year;
// columns keep page order, which providers render newest first.
func ParseStatementHTML(html string) (*snapshot.Statement, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var stmt *snapshot.Statement

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		parsed := parseStatementTable(table)
		if parsed != nil && !parsed.Empty() {
			stmt = parsed
			return false
		}
		return true
	})

	if stmt == nil {
		log.Printf("[TableParser] no statement table found in document")
		return snapshot.NewStatement(), nil
	}
	return stmt, nil
}

// parseStatementTable parses one <table> into a Statement, nil when the
// table has no year header or no recognizable rows.
func parseStatementTable(table *goquery.Selection) *snapshot.Statement {
	rows := table.Find("tr")
	if rows.Length() < 2 {
		return nil
	}

	var periods []string
	dataStart := 0

	rows.EachWithBreak(func(i int, row *goquery.Selection) bool {
		var headers []string
		row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
			headers = append(headers, strings.TrimSpace(cell.Text()))
		})

		hasYear := false
		for _, h := range headers {
			if parseColumnYear(h) > 0 {
				hasYear = true
				break
			}
		}
		if hasYear {
			// First cell is the label column; the rest are periods.
			if len(headers) > 1 {
				periods = headers[1:]
			}
			dataStart = i + 1
			return false
		}
		return true
	})

	if len(periods) == 0 {
		return nil
	}

	stmt := snapshot.NewStatement(periods...)

	rows.Slice(dataStart, rows.Length()).Each(func(_ int, row *goquery.Selection) {
		label := ""
		var cells []string
		row.Find("td, th").Each(func(j int, cell *goquery.Selection) {
			text := strings.TrimSpace(cell.Text())
			if j == 0 {
				label = text
			} else {
				cells = append(cells, text)
			}
		})
		if label == "" {
			return
		}

		item, ok := statementItems[strings.ToLower(label)]
		if !ok {
			return
		}
		for col, text := range cells {
			if v, reported := parseCellValue(text); reported {
				stmt.Set(item, col, v)
			}
		}
	})

	if stmt.Empty() {
		return nil
	}
	return stmt
}
