package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"stock_analyzer/pkg/core/analyzer"
	"stock_analyzer/pkg/core/fetch"
	"stock_analyzer/pkg/core/indicators"
	"stock_analyzer/pkg/core/report"
	"stock_analyzer/pkg/core/snapshot"
	"stock_analyzer/pkg/core/store"
)

var engine *analyzer.Analyzer
var fetcher *fetch.Fetcher
var cache *store.SnapshotCache

// InitHandler wires the scoring engine and an optional fetcher. With a nil
// fetcher only inline-snapshot requests work, which is what tests use.
func InitHandler(f *fetch.Fetcher) {
	engine = analyzer.New()
	fetcher = f
	cache = store.NewSnapshotCache(store.GetPool(), "") // Defaults to .cache/snapshots
}

// AnalysisRequest either names a symbol to fetch or carries the snapshot and
// price history inline. Inline data wins when both are present.
type AnalysisRequest struct {
	Query    string                      `json:"query"`
	Snapshot *snapshot.FinancialSnapshot `json:"snapshot"`
	History  []snapshot.Bar              `json:"history"`
	HTML     bool                        `json:"html"`
}

// AnalysisResponse is the full analysis envelope.
type AnalysisResponse struct {
	RequestID   string                        `json:"request_id"`
	Symbol      string                        `json:"symbol"`
	GeneratedAt time.Time                     `json:"generated_at"`
	Result      *analyzer.AnalysisResult      `json:"result"`
	Technical   *indicators.TechnicalSnapshot `json:"technical"`
	Report      string                        `json:"report_markdown"`
	ReportHTML  string                        `json:"report_html,omitempty"`
	Suggestions []fetch.Suggestion            `json:"suggestions,omitempty"`
}

// HandleAnalysisReport serves POST /api/analysis/report.
func HandleAnalysisReport(w http.ResponseWriter, r *http.Request) {
	// CORS
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req AnalysisRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	requestID := uuid.New().String()
	fmt.Printf("[ANALYSIS] Request %s: query=%q inline=%v\n", requestID, req.Query, req.Snapshot != nil)

	snap := req.Snapshot
	history := req.History

	if snap == nil {
		if req.Query == "" {
			http.Error(w, "either query or snapshot is required", http.StatusBadRequest)
			return
		}
		if fetcher == nil {
			http.Error(w, "no data source configured", http.StatusServiceUnavailable)
			return
		}

		var suggestions []fetch.Suggestion
		var err error
		snap, history, suggestions, err = resolveSnapshot(r.Context(), req.Query)
		if err != nil {
			if len(suggestions) > 0 {
				fmt.Printf("[ANALYSIS] Request %s: unresolved, %d suggestions\n", requestID, len(suggestions))
				writeJSON(w, http.StatusNotFound, AnalysisResponse{
					RequestID:   requestID,
					GeneratedAt: time.Now(),
					Suggestions: suggestions,
				})
				return
			}
			http.Error(w, fmt.Sprintf("fetch failed: %v", err), http.StatusBadGateway)
			return
		}
	}
	snap.Normalize()

	var tech *indicators.TechnicalSnapshot
	if len(history) > 0 {
		tech = indicators.Compute(history, snap.CurrentPrice)
	} else {
		tech = indicators.Fallback(snap.CurrentPrice)
	}

	result := engine.Analyze(snap)

	md, err := report.Render(snap, result, tech)
	if err != nil {
		http.Error(w, fmt.Sprintf("report rendering failed: %v", err), http.StatusInternalServerError)
		return
	}

	resp := AnalysisResponse{
		RequestID:   requestID,
		Symbol:      snap.Symbol,
		GeneratedAt: time.Now(),
		Result:      result,
		Technical:   tech,
		Report:      md,
	}
	if req.HTML {
		if html, err := report.RenderHTML(snap, result, tech); err == nil {
			resp.ReportHTML = html
		}
	}

	fmt.Printf("[ANALYSIS] Request %s: %s scored %d/15 (%s)\n",
		requestID, snap.Symbol, result.TotalScore, result.Recommendation.Status)
	writeJSON(w, http.StatusOK, resp)
}

// resolveSnapshot checks the cache first, fetches on a miss, and caches the
// fresh result. Fetch failures surface the search suggestions.
func resolveSnapshot(ctx context.Context, query string) (*snapshot.FinancialSnapshot, []snapshot.Bar, []fetch.Suggestion, error) {
	if symbol, err := fetcher.ResolveSymbol(ctx, query); err == nil {
		if entry, err := cache.Get(ctx, symbol); err == nil && entry != nil {
			fmt.Printf("[ANALYSIS] CACHE HIT for %s\n", symbol)
			return entry.Snapshot, entry.History, nil, nil
		}
	}

	snap, history, suggestions, err := fetcher.GetWithSuggestions(ctx, query)
	if err != nil {
		return nil, nil, suggestions, err
	}

	if err := cache.Save(ctx, snap, history); err != nil {
		fmt.Printf("[ANALYSIS] cache save failed for %s: %v\n", snap.Symbol, err)
	}
	return snap, history, nil, nil
}

// HandleSearch serves GET /api/analysis/search?q=...
func HandleSearch(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	if r.Method == "OPTIONS" {
		w.WriteHeader(http.StatusOK)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		http.Error(w, "q parameter is required", http.StatusBadRequest)
		return
	}
	if fetcher == nil {
		http.Error(w, "no data source configured", http.StatusServiceUnavailable)
		return
	}

	suggestions := fetcher.Search(r.Context(), query, 10)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"request_id":  uuid.New().String(),
		"query":       query,
		"suggestions": suggestions,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fmt.Printf("[ANALYSIS] response encoding failed: %v\n", err)
	}
}
