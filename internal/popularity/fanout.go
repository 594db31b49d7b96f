package popularity

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/jonathan/keyword-scout/internal/observability"
	"github.com/jonathan/keyword-scout/internal/types"
	"golang.org/x/sync/errgroup"
)

// EstimateAll estimates every candidate in parallel and waits for all of them.
// limit caps in-flight estimates; limit <= 0 runs one goroutine per candidate.
// The result has the same order as candidates.
func EstimateAll(ctx context.Context, est Estimator, candidates []string, limit int, logger *log.Logger) []types.SuggestionResult {
	logger = observability.OrDiscard(logger).WithPrefix("popularity")
	results := make([]types.SuggestionResult, len(candidates))

	var g errgroup.Group
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, candidate := range candidates {
		g.Go(func() error {
			volume := est.Estimate(ctx, candidate)
			if volume < 0 {
				volume = 0
			}
			logger.Info("estimated search volume", "keyword", candidate, "volume", volume)
			results[i] = types.SuggestionResult{Keyword: candidate, SearchVolume: volume}
			return nil
		})
	}

	// Estimators never return errors; Wait is the join barrier.
	_ = g.Wait()
	return results
}
