// Package suggest fetches autocomplete candidates for a seed keyword.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/jonathan/keyword-scout/internal/fetch"
	"github.com/jonathan/keyword-scout/internal/observability"
)

// Defaults for the public Google autocomplete endpoint.
const (
	DefaultEndpoint = "http://suggestqueries.google.com/complete/search"
	DefaultClient   = "firefox"
	DefaultLanguage = "ja"
	DefaultEncoding = "shift_jis"
)

// Config configures a Fetcher. Zero values fall back to the defaults above.
type Config struct {
	Endpoint string
	Client   string
	Language string
	// Encoding is used when the response does not announce a charset.
	Encoding string
	Options  *fetch.Options
}

// Fetcher queries an autocomplete endpoint.
type Fetcher struct {
	cfg    Config
	logger *log.Logger
}

// NewFetcher creates a Fetcher. A nil logger discards diagnostics.
func NewFetcher(cfg Config, logger *log.Logger) *Fetcher {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Client == "" {
		cfg.Client = DefaultClient
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Encoding == "" {
		cfg.Encoding = DefaultEncoding
	}
	if cfg.Options == nil {
		cfg.Options = fetch.DefaultOptions()
	}
	return &Fetcher{cfg: cfg, logger: observability.OrDiscard(logger).WithPrefix("suggest")}
}

// Fetch returns the candidate completions for keyword.
// Failures are logged and reported as no candidates; they never reach the caller.
func (f *Fetcher) Fetch(ctx context.Context, keyword string) []string {
	candidates, err := f.fetch(ctx, keyword)
	if err != nil {
		f.logger.Error("failed to fetch suggestions", "keyword", keyword, "err", err)
		return []string{}
	}
	f.logger.Info("fetched suggestions", "keyword", keyword, "count", len(candidates))
	return candidates
}

func (f *Fetcher) fetch(ctx context.Context, keyword string) ([]string, error) {
	endpoint, err := fetch.WithQuery(f.cfg.Endpoint, url.Values{
		"client": {f.cfg.Client},
		"q":      {keyword},
		"hl":     {f.cfg.Language},
	})
	if err != nil {
		return nil, fmt.Errorf("invalid suggest endpoint: %w", err)
	}

	result, err := fetch.URL(ctx, endpoint, f.cfg.Options)
	if err != nil {
		if result != nil && len(result.Body) > 0 {
			f.logger.Debug("suggest error response", "status", result.StatusCode, "body", string(result.Body))
		}
		return nil, err
	}

	text, err := fetch.DecodeBody(result.Body, result.ContentType, f.cfg.Encoding)
	if err != nil {
		return nil, err
	}
	f.logger.Info("raw suggest payload", "payload", text)

	return ParseCandidates([]byte(text))
}

// ParseCandidates extracts the candidate list from an autocomplete payload of the
// form [query, [candidates...], ...]. A missing or non-array second element yields
// an empty list; non-string entries are skipped.
func ParseCandidates(payload []byte) ([]string, error) {
	var top []json.RawMessage
	if err := json.Unmarshal(payload, &top); err != nil {
		return nil, fmt.Errorf("failed to parse suggest payload: %w", err)
	}
	if len(top) < 2 {
		return []string{}, nil
	}

	var items []any
	if err := json.Unmarshal(top[1], &items); err != nil {
		return []string{}, nil
	}

	candidates := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			candidates = append(candidates, s)
		}
	}
	return candidates, nil
}
