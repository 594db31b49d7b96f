package ranking

import (
	"testing"

	"github.com/jonathan/keyword-scout/internal/types"
	"github.com/stretchr/testify/assert"
)

func sr(keyword string, volume int64) types.SuggestionResult {
	return types.SuggestionResult{Keyword: keyword, SearchVolume: volume}
}

func TestFilter_DropsZeroAndSortsAscending(t *testing.T) {
	input := []types.SuggestionResult{sr("A", 50), sr("B", 0), sr("C", 10), sr("D", 200)}

	got := Filter(input, 5)

	assert.Equal(t, []types.SuggestionResult{sr("C", 10), sr("A", 50), sr("D", 200)}, got)
}

func TestFilter_TruncatesToLimit(t *testing.T) {
	input := []types.SuggestionResult{
		sr("a", 7), sr("b", 3), sr("c", 9), sr("d", 1), sr("e", 5), sr("f", 2), sr("g", 8),
	}

	got := Filter(input, 3)

	assert.Equal(t, []types.SuggestionResult{sr("d", 1), sr("f", 2), sr("b", 3)}, got)
}

func TestFilter_NonPositiveLimitUsesDefault(t *testing.T) {
	input := []types.SuggestionResult{
		sr("a", 1), sr("b", 2), sr("c", 3), sr("d", 4), sr("e", 5), sr("f", 6), sr("g", 7),
	}

	assert.Len(t, Filter(input, 0), DefaultLimit)
	assert.Len(t, Filter(input, -1), DefaultLimit)
}

func TestFilter_StableForTies(t *testing.T) {
	input := []types.SuggestionResult{sr("first", 10), sr("second", 10), sr("low", 1), sr("third", 10)}

	got := Filter(input, 5)

	assert.Equal(t, []types.SuggestionResult{sr("low", 1), sr("first", 10), sr("second", 10), sr("third", 10)}, got)
}

func TestFilter_AllZero(t *testing.T) {
	got := Filter([]types.SuggestionResult{sr("a", 0), sr("b", 0)}, 5)
	assert.Empty(t, got)
}

func TestFilter_EmptyInput(t *testing.T) {
	assert.Empty(t, Filter(nil, 5))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	input := []types.SuggestionResult{sr("A", 50), sr("B", 0), sr("C", 10)}
	snapshot := append([]types.SuggestionResult(nil), input...)

	Filter(input, 5)

	assert.Equal(t, snapshot, input)
}

func TestFilter_Idempotent(t *testing.T) {
	input := []types.SuggestionResult{sr("A", 50), sr("B", 0), sr("C", 10), sr("D", 200), sr("E", 3)}

	once := Filter(input, 3)
	twice := Filter(once, 3)

	assert.Equal(t, once, twice)
}

func TestFilter_Invariants(t *testing.T) {
	input := []types.SuggestionResult{
		sr("a", 900), sr("b", 0), sr("c", 15), sr("d", 15), sr("e", 1), sr("f", 0), sr("g", 44),
	}

	got := Filter(input, 4)

	assert.LessOrEqual(t, len(got), 4)
	for i, r := range got {
		assert.Positive(t, r.SearchVolume)
		if i > 0 {
			assert.LessOrEqual(t, got[i-1].SearchVolume, r.SearchVolume)
		}
	}
}
