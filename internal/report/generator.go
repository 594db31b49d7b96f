// Package report turns ranked keyword results into a written report using an
// LLM, retrying while the model is overloaded and falling back to a plain
// listing when it cannot be used.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jonathan/keyword-scout/internal/llm"
	"github.com/jonathan/keyword-scout/internal/metrics"
	"github.com/jonathan/keyword-scout/internal/observability"
	"github.com/jonathan/keyword-scout/internal/prompts"
	"github.com/jonathan/keyword-scout/internal/types"
)

// Retry defaults for the overloaded condition.
const (
	DefaultMaxAttempts    = 3
	DefaultInitialBackoff = time.Second
)

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Generator writes competitive keyword reports.
type Generator struct {
	client         llm.Client
	tier           llm.ModelTier
	template       string
	logger         *log.Logger
	sleep          SleepFunc
	maxAttempts    int
	initialBackoff time.Duration
}

// Option configures a Generator.
type Option func(*Generator)

// WithTemplate replaces the embedded report prompt.
func WithTemplate(template string) Option {
	return func(g *Generator) { g.template = template }
}

// WithLogger sets the diagnostic logger.
func WithLogger(logger *log.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithSleep replaces the backoff sleep. Tests use it to record delays.
func WithSleep(sleep SleepFunc) Option {
	return func(g *Generator) { g.sleep = sleep }
}

// WithRetry overrides the attempt count and first backoff delay.
func WithRetry(maxAttempts int, initialBackoff time.Duration) Option {
	return func(g *Generator) {
		g.maxAttempts = maxAttempts
		g.initialBackoff = initialBackoff
	}
}

// WithTier selects the model tier used for the report.
func WithTier(tier llm.ModelTier) Option {
	return func(g *Generator) { g.tier = tier }
}

// New creates a Generator. A nil client means no API key is configured and
// every report is the no-key fallback listing.
func New(client llm.Client, opts ...Option) *Generator {
	g := &Generator{
		client:         client,
		tier:           llm.ReportTier,
		sleep:          sleepContext,
		maxAttempts:    DefaultMaxAttempts,
		initialBackoff: DefaultInitialBackoff,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = observability.OrDiscard(g.logger).WithPrefix("report")
	if g.maxAttempts <= 0 {
		g.maxAttempts = DefaultMaxAttempts
	}
	if g.template == "" {
		g.template = prompts.MustGet(prompts.ReportFile, prompts.ReportKey)
	}
	return g
}

// Generate returns the report for results. It never fails: every error
// path produces a fallback report.
func (g *Generator) Generate(ctx context.Context, results []types.SuggestionResult, limit int) string {
	text, _ := g.GenerateWithOutcome(ctx, results, limit)
	return text
}

// GenerateWithOutcome is Generate plus the path that produced the text.
func (g *Generator) GenerateWithOutcome(ctx context.Context, results []types.SuggestionResult, limit int) (string, types.Outcome) {
	if g.client == nil {
		g.logger.Warn("Gemini API key not configured; returning plain listing")
		return noKeyReport(results, limit), types.OutcomeNoAPIKey
	}

	prompt, err := g.buildPrompt(results)
	if err != nil {
		g.logger.Error("failed to build report prompt", "err", err)
		return failureReport(err, results, limit), types.OutcomeFailed
	}

	var (
		state     = StateAttempting
		remaining = g.maxAttempts
		backoff   = g.initialBackoff
		text      string
		lastErr   error
	)

	for !state.Terminal() {
		switch state {
		case StateAttempting:
			text, lastErr = g.client.GenerateContent(ctx, prompt, g.tier)
			switch {
			case lastErr == nil:
				metrics.ObserveReportAttempt(metrics.AttemptSuccess)
				state = StateSuccess
			case llm.IsOverloaded(lastErr):
				metrics.ObserveReportAttempt(metrics.AttemptOverloaded)
				state = StateBusyRetry
			default:
				metrics.ObserveReportAttempt(metrics.AttemptError)
				state = StateFailed
			}

		case StateBusyRetry:
			remaining--
			g.logger.Warn("Gemini API is busy; retrying", "remaining", remaining)
			if remaining == 0 {
				state = StateExhaustedFallback
				continue
			}
			if err := g.sleep(ctx, backoff); err != nil {
				lastErr = err
				state = StateFailed
				continue
			}
			backoff *= 2
			state = StateAttempting
		}
	}

	switch state {
	case StateSuccess:
		g.logger.Info("report generated", "chars", len(text))
		return text, types.OutcomeGenerated
	case StateExhaustedFallback:
		g.logger.Error("all Gemini API retries failed", "attempts", g.maxAttempts)
		return overloadReport(results, limit), types.OutcomeOverloaded
	default:
		g.logger.Error("report generation with Gemini failed", "err", lastErr)
		return failureReport(lastErr, results, limit), types.OutcomeFailed
	}
}

func (g *Generator) buildPrompt(results []types.SuggestionResult) (string, error) {
	input, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to serialize results: %w", err)
	}
	return prompts.Format(g.template, map[string]string{"Input": string(input)}), nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
