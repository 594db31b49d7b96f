// Package ranking selects the least competitive keywords from estimated results.
package ranking

import (
	"sort"

	"github.com/jonathan/keyword-scout/internal/types"
)

// DefaultLimit is used when Filter is called with a non-positive limit.
const DefaultLimit = types.DefaultResultCount

// Filter drops results with no search volume, sorts the rest by ascending
// volume and keeps at most limit entries. Ties keep their input order.
// The input slice is not modified.
func Filter(results []types.SuggestionResult, limit int) []types.SuggestionResult {
	if limit <= 0 {
		limit = DefaultLimit
	}

	kept := make([]types.SuggestionResult, 0, len(results))
	for _, r := range results {
		if r.SearchVolume > 0 {
			kept = append(kept, r)
		}
	}

	// Lowest volume first: fewer results means less competition
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].SearchVolume < kept[j].SearchVolume
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}
