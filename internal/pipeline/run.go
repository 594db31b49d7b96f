// Package pipeline orchestrates a keyword analysis: suggestions, search
// volume estimates, low-competition filtering and the written report.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/jonathan/keyword-scout/internal/metrics"
	"github.com/jonathan/keyword-scout/internal/observability"
	"github.com/jonathan/keyword-scout/internal/pipeline/steps"
	"github.com/jonathan/keyword-scout/internal/popularity"
	"github.com/jonathan/keyword-scout/internal/ranking"
	"github.com/jonathan/keyword-scout/internal/types"
)

// Fixed user-facing messages for the short-circuit paths.
const (
	MsgNoKeyword         = "No keyword was provided."
	MsgNoSuggestions     = "No suggested keywords were found."
	MsgNothingAnalyzable = "No analyzable keywords were found."
	MsgGenericFailure    = "An error occurred. Check the diagnostic log for details."
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Suggester returns autocomplete candidates for a keyword.
type Suggester interface {
	Fetch(ctx context.Context, keyword string) []string
}

// ReportGenerator writes the report for ranked results.
type ReportGenerator interface {
	GenerateWithOutcome(ctx context.Context, results []types.SuggestionResult, limit int) (string, types.Outcome)
}

// Options holds the tunables of an Analyzer
type Options struct {
	// Concurrency caps in-flight estimates; 0 is unbounded.
	Concurrency int
	// ResultCount is used when a request does not carry a count.
	ResultCount int
	Logger      *log.Logger
	// OnProgress receives events for every run of this Analyzer.
	OnProgress ProgressCallback
}

// Analyzer runs the keyword analysis. It holds no per-run state and is safe
// for concurrent use.
type Analyzer struct {
	suggester   Suggester
	estimator   popularity.Estimator
	generator   ReportGenerator
	concurrency int
	resultCount int
	logger      *log.Logger
	onProgress  ProgressCallback
	now         func() time.Time
}

// New creates an Analyzer from its collaborators.
func New(suggester Suggester, estimator popularity.Estimator, generator ReportGenerator, opts Options) *Analyzer {
	resultCount := opts.ResultCount
	if resultCount <= 0 {
		resultCount = types.DefaultResultCount
	}
	return &Analyzer{
		suggester:   suggester,
		estimator:   estimator,
		generator:   generator,
		concurrency: opts.Concurrency,
		resultCount: resultCount,
		logger:      observability.OrDiscard(opts.Logger).WithPrefix("pipeline"),
		onProgress:  opts.OnProgress,
		now:         time.Now,
	}
}

// Analyze returns the report for keyword using the configured result count.
func (a *Analyzer) Analyze(ctx context.Context, keyword string) string {
	return a.Run(ctx, types.AnalyzeRequest{Keyword: keyword}).Report
}

// AnalyzeN returns the report for keyword keeping at most n ranked keywords.
func (a *Analyzer) AnalyzeN(ctx context.Context, keyword string, n int) string {
	return a.Run(ctx, types.AnalyzeRequest{Keyword: keyword, Count: n}).Report
}

// Run executes the analysis and returns the full record. It never fails:
// every path ends with a report string.
func (a *Analyzer) Run(ctx context.Context, req types.AnalyzeRequest) *types.AnalysisResult {
	return a.RunWithProgress(ctx, req, nil)
}

// RunWithProgress is Run with an extra per-call progress callback.
func (a *Analyzer) RunWithProgress(ctx context.Context, req types.AnalyzeRequest, onProgress ProgressCallback) *types.AnalysisResult {
	r := &run{
		analyzer:   a,
		onProgress: onProgress,
		completed:  make(map[string]bool),
		result: &types.AnalysisResult{
			RunID:      uuid.New().String(),
			Keyword:    strings.TrimSpace(req.Keyword),
			Count:      a.resultCount,
			Candidates: []string{},
			Ranked:     []types.SuggestionResult{},
			StartedAt:  a.now(),
		},
	}
	if req.Count > 0 {
		r.result.Count = req.Count
	}
	r.logger = a.logger.With("run_id", r.result.RunID)

	r.execute(ctx)

	r.result.FinishedAt = a.now()
	metrics.ObserveOutcome(string(r.result.Outcome))
	r.logger.Info("analysis finished", "outcome", r.result.Outcome, "duration", r.result.FinishedAt.Sub(r.result.StartedAt))
	r.emit(steps.Complete, fmt.Sprintf("Analysis finished: %s", r.result.Outcome), r.result.Report)
	return r.result
}

// run carries the state of one invocation.
type run struct {
	analyzer   *Analyzer
	onProgress ProgressCallback
	logger     *log.Logger
	completed  map[string]bool
	result     *types.AnalysisResult
}

func (r *run) execute(ctx context.Context) {
	a := r.analyzer
	res := r.result

	if res.Keyword == "" {
		r.finish(types.OutcomeNoKeyword, MsgNoKeyword)
		return
	}
	r.logger.Info("analysis started", "keyword", res.Keyword, "count", res.Count)

	// Step 1: autocomplete candidates
	r.start(steps.Suggest)
	candidates := a.suggester.Fetch(ctx, res.Keyword)
	if candidates == nil {
		candidates = []string{}
	}
	res.Candidates = candidates
	r.logger.Info("suggested keywords", "count", len(candidates), "candidates", candidates)
	r.done(steps.Suggest, fmt.Sprintf("Found %d suggested keywords", len(candidates)), candidates)
	if len(candidates) == 0 {
		r.finish(types.OutcomeNoSuggestions, MsgNoSuggestions)
		return
	}

	// Step 2: search volume per candidate
	r.start(steps.Estimate)
	estimated := popularity.EstimateAll(ctx, a.estimator, candidates, a.concurrency, r.logger)
	r.done(steps.Estimate, fmt.Sprintf("Estimated search volume for %d keywords", len(estimated)), estimated)

	// Step 3: least competitive first
	r.start(steps.Filter)
	ranked := ranking.Filter(estimated, res.Count)
	res.Ranked = ranked
	r.logger.Info("filtered keywords", "count", len(ranked), "ranked", ranked)
	r.done(steps.Filter, fmt.Sprintf("Kept %d low-competition keywords", len(ranked)), ranked)
	if len(ranked) == 0 {
		r.finish(types.OutcomeNoneAnalyzable, MsgNothingAnalyzable)
		return
	}

	// Step 4: written report
	r.start(steps.Report)
	report, outcome := a.generator.GenerateWithOutcome(ctx, ranked, res.Count)
	r.done(steps.Report, "Report ready", nil)
	r.finish(outcome, report)
}

func (r *run) finish(outcome types.Outcome, report string) {
	r.result.Outcome = outcome
	r.result.Report = report
}

func (r *run) start(step string) {
	if err := steps.ValidateDependencies(step, r.completed); err != nil {
		r.logger.Warn("step started out of order", "err", err)
	}
	r.emit(step, "Started "+step, nil)
}

func (r *run) done(step, message string, content any) {
	r.completed[step] = true
	r.emit(step, message, content)
}

func (r *run) emit(step, message string, content any) {
	event := ProgressEvent{
		Step:     step,
		Category: steps.Category(step),
		Message:  message,
		RunID:    r.result.RunID,
		Content:  content,
	}
	if r.analyzer.onProgress != nil {
		r.analyzer.onProgress(event)
	}
	if r.onProgress != nil {
		r.onProgress(event)
	}
}
