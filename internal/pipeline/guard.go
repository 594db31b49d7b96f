package pipeline

import (
	"context"
	"runtime/debug"

	"github.com/jonathan/keyword-scout/internal/metrics"
	"github.com/jonathan/keyword-scout/internal/types"
)

// SafeRun is RunWithProgress for presentation surfaces: a panic anywhere in
// the run is logged and answered with MsgGenericFailure.
func (a *Analyzer) SafeRun(ctx context.Context, req types.AnalyzeRequest, onProgress ProgressCallback) (result *types.AnalysisResult) {
	startedAt := a.now()
	defer func() {
		if rec := recover(); rec != nil {
			a.logger.Error("analysis panicked", "keyword", req.Keyword, "panic", rec, "stack", string(debug.Stack()))
			metrics.ObserveOutcome(string(types.OutcomeInternalError))
			result = &types.AnalysisResult{
				Keyword:    req.Keyword,
				Count:      req.Count,
				Outcome:    types.OutcomeInternalError,
				Candidates: []string{},
				Ranked:     []types.SuggestionResult{},
				Report:     MsgGenericFailure,
				StartedAt:  startedAt,
				FinishedAt: a.now(),
			}
		}
	}()
	return a.RunWithProgress(ctx, req, onProgress)
}
