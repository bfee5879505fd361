package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"stock_analyzer/pkg/core/analyzer"
	"stock_analyzer/pkg/core/fetch"
	"stock_analyzer/pkg/core/indicators"
	"stock_analyzer/pkg/core/report"
)

// Logger helper
func logStep(step string, details string) {
	fmt.Printf("\n[STEP] %s\n", step)
	fmt.Println("---------------------------------------------------------")
	fmt.Println(details)
	fmt.Println("---------------------------------------------------------")
}

func main() {
	query := flag.String("symbol", "", "ticker or company name to analyze")
	dataDir := flag.String("data", "data", "directory with saved provider payloads")
	flag.Parse()

	godotenv.Load()

	if *query == "" {
		fmt.Println("usage: analyze -symbol TCS.NS [-data data]")
		os.Exit(1)
	}

	logStep("0. Initialization", fmt.Sprintf("Analyzing %q from %s", *query, *dataDir))

	ctx := context.Background()
	fetcher := fetch.NewFetcher(fetch.NewFileQuoter(*dataDir))

	logStep("1. Fetch", "Resolving symbol and loading saved payloads...")
	snap, history, suggestions, err := fetcher.GetWithSuggestions(ctx, *query)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		for _, s := range suggestions {
			fmt.Printf("  did you mean %s (%s)?\n", s.Symbol, s.Name)
		}
		os.Exit(1)
	}
	fmt.Printf(" [Data] %s: %d bars, %d statement columns\n",
		snap.Symbol, len(history), snap.Income.Columns())

	logStep("2. Technical Indicators", "Scoring the price series...")
	var tech *indicators.TechnicalSnapshot
	if len(history) > 0 {
		tech = indicators.Compute(history, snap.CurrentPrice)
	} else {
		tech = indicators.Fallback(snap.CurrentPrice)
	}
	fmt.Printf(" [Tech] Score %d/100 (%s / %s)\n", tech.TechnicalScore, tech.Verdict, tech.Action)

	logStep("3. Fundamental Scoring", "Running the 15-point checklist and valuation...")
	result := analyzer.New().Analyze(snap)
	fmt.Printf(" [Score] %d/15, recommendation: %s\n", result.TotalScore, result.Recommendation.Status)

	logStep("4. Report", "Rendering markdown...")
	md, err := report.Render(snap, result, tech)
	if err != nil {
		fmt.Printf("Error rendering report: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(md)
}
