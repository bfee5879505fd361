package fetch

import (
	"context"
	"log"
	"sort"
	"strings"
)

// =============================================================================
// SEARCH - provider suggestions merged with local fuzzy matches
// =============================================================================

// Search combines provider-side suggestions with fuzzy matches over the
// known-symbol table, deduplicated by symbol with the higher score winning.
func (f *Fetcher) Search(ctx context.Context, query string, limit int) []Suggestion {
	combined := make(map[string]Suggestion)

	for _, s := range localSuggestions(query) {
		combined[s.Symbol] = s
	}

	remote, err := f.quoter.Search(ctx, query)
	if err != nil {
		log.Printf("[Fetcher] provider search failed: %v", err)
	}
	for _, s := range remote {
		if existing, ok := combined[s.Symbol]; !ok || s.Score > existing.Score {
			combined[s.Symbol] = s
		}
	}

	results := make([]Suggestion, 0, len(combined))
	for _, s := range combined {
		results = append(results, s)
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Symbol < results[j].Symbol
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// localSuggestions scores the known table against the query. Substring and
// prefix matches boost the base similarity; entries under 0.4 are dropped.
func localSuggestions(query string) []Suggestion {
	normalized := NormalizeQuery(query)
	var out []Suggestion

	for name, symbol := range knownSymbols {
		score := similarity(normalized, name)

		if strings.Contains(name, normalized) {
			score += 0.3
		} else if strings.Contains(normalized, name) {
			score += 0.2
		}
		if strings.HasPrefix(name, normalized) {
			score += 0.2
		}

		if score > 0.4 {
			exchange := "BSE"
			if strings.Contains(symbol, ".NS") {
				exchange = "NSE"
			}
			out = append(out, Suggestion{
				Name:     strings.Title(name),
				Symbol:   symbol,
				Score:    score,
				Exchange: exchange,
			})
		}
	}
	return out
}

// similarity is a sequence-matcher ratio: twice the total length of common
// substrings (found greedily, longest first) over the combined length.
func similarity(a, b string) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1
	}
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	m := commonLength(a, b)
	return 2 * float64(m) / float64(len(a)+len(b))
}

// commonLength sums the matched characters: find the longest common
// substring, then recurse on the unmatched left and right remainders.
func commonLength(a, b string) int {
	ai, bi, size := longestCommonSubstring(a, b)
	if size == 0 {
		return 0
	}
	total := size
	total += commonLength(a[:ai], b[:bi])
	total += commonLength(a[ai+size:], b[bi+size:])
	return total
}

func longestCommonSubstring(a, b string) (ai, bi, size int) {
	// lengths[j] is the match length ending at a[i], b[j] for the current i.
	lengths := make([]int, len(b)+1)
	for i := 0; i < len(a); i++ {
		// Walk j backwards so lengths[j] still holds the previous row.
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lengths[j+1] = lengths[j] + 1
				if lengths[j+1] > size {
					size = lengths[j+1]
					ai = i - size + 1
					bi = j - size + 1
				}
			} else {
				lengths[j+1] = 0
			}
		}
	}
	return ai, bi, size
}
