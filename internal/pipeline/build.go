package pipeline

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/jonathan/keyword-scout/internal/config"
	"github.com/jonathan/keyword-scout/internal/fetch"
	"github.com/jonathan/keyword-scout/internal/llm"
	"github.com/jonathan/keyword-scout/internal/observability"
	"github.com/jonathan/keyword-scout/internal/popularity"
	"github.com/jonathan/keyword-scout/internal/prompts"
	"github.com/jonathan/keyword-scout/internal/report"
	"github.com/jonathan/keyword-scout/internal/suggest"
)

// Built is an Analyzer plus the resources it owns.
type Built struct {
	*Analyzer
	client llm.Client
}

// Close releases the LLM client, if any.
func (b *Built) Close() error {
	if b.client == nil {
		return nil
	}
	return b.client.Close()
}

// NewFromConfig wires an Analyzer from configuration. Each credential goes
// to its own service: the search key and engine id to the estimator, the
// Gemini key to the report client. Missing credentials select fallbacks.
func NewFromConfig(ctx context.Context, cfg *config.Config, logger *log.Logger, onProgress ProgressCallback) (*Built, error) {
	logger = observability.OrDiscard(logger)
	present := cfg.CredentialSummary()
	logger.Info("credentials configured",
		"gemini_api_key", present["gemini_api_key"],
		"search_api_key", present["search_api_key"],
		"search_engine_id", present["search_engine_id"],
	)

	suggester := suggest.NewFetcher(suggest.Config{
		Endpoint: cfg.SuggestEndpoint,
		Client:   cfg.SuggestClient,
		Language: cfg.Language,
		Encoding: cfg.SuggestEncoding,
		Options:  fetch.DefaultOptions(),
	}, logger)

	estimator, err := popularity.New(ctx, cfg.SearchAPIKey, cfg.SearchEngineID, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create estimator: %w", err)
	}

	template, err := prompts.ReportTemplate(cfg.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load report prompt: %w", err)
	}

	var client llm.Client
	if cfg.GeminiAPIKey != "" {
		client, err = llm.NewClient(ctx, llm.NewConfig(cfg.Model), cfg.GeminiAPIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
	}

	generator := report.New(client,
		report.WithTemplate(template),
		report.WithLogger(logger),
	)

	analyzer := New(suggester, estimator, generator, Options{
		Concurrency: cfg.Concurrency,
		ResultCount: cfg.ResultCount,
		Logger:      logger,
		OnProgress:  onProgress,
	})
	return &Built{Analyzer: analyzer, client: client}, nil
}
