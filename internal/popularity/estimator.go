// Package popularity estimates how competitive a keyword is from web search result counts.
package popularity

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jonathan/keyword-scout/internal/metrics"
	"github.com/jonathan/keyword-scout/internal/observability"
	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// SyntheticCeiling is the exclusive upper bound of placeholder volumes.
const SyntheticCeiling = 1_000_000

// Estimator returns an approximate result count for a query.
// Implementations never fail: errors are reported as 0.
type Estimator interface {
	Estimate(ctx context.Context, query string) int64
}

// New returns a SearchEstimator when both credentials are present.
// Otherwise it returns a SyntheticEstimator so the pipeline stays usable
// without live credentials; this substitution is logged as a warning.
func New(ctx context.Context, apiKey, engineID string, logger *log.Logger, opts ...option.ClientOption) (Estimator, error) {
	logger = observability.OrDiscard(logger).WithPrefix("popularity")
	if apiKey == "" || engineID == "" {
		logger.Warn("search API key or search engine id not set; using synthetic search volumes")
		return NewSyntheticEstimator(nil), nil
	}
	return NewSearchEstimator(ctx, apiKey, engineID, logger, opts...)
}

// SearchEstimator reads totalResults from the Custom Search JSON API.
type SearchEstimator struct {
	svc    *customsearch.Service
	cx     string
	logger *log.Logger
}

// NewSearchEstimator creates a SearchEstimator. Extra client options are
// appended after the API key (tests use them to point at a local endpoint).
func NewSearchEstimator(ctx context.Context, apiKey, engineID string, logger *log.Logger, opts ...option.ClientOption) (*SearchEstimator, error) {
	clientOpts := append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := customsearch.NewService(ctx, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}
	return &SearchEstimator{
		svc:    svc,
		cx:     engineID,
		logger: observability.OrDiscard(logger),
	}, nil
}

// Estimate returns the approximate total result count for query, or 0 on any failure.
func (e *SearchEstimator) Estimate(ctx context.Context, query string) int64 {
	resp, err := e.svc.Cse.List().Cx(e.cx).Q(query).Context(ctx).Do()
	if err != nil {
		e.logger.Error("failed to fetch search result count", "query", query, "err", err)
		metrics.ObserveEstimate(metrics.SourceSearch, metrics.ResultError)
		return 0
	}
	if resp.SearchInformation == nil {
		metrics.ObserveEstimate(metrics.SourceSearch, metrics.ResultEmpty)
		return 0
	}
	total := parseTotal(resp.SearchInformation.TotalResults)
	metrics.ObserveEstimate(metrics.SourceSearch, metrics.ResultOK)
	return total
}

// parseTotal parses the API's string-typed count; unparsable or negative values are 0.
func parseTotal(raw string) int64 {
	raw = strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	if raw == "" {
		return 0
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// SyntheticEstimator returns pseudo-random volumes in [0, SyntheticCeiling).
// It exists so the pipeline can be exercised without search credentials.
type SyntheticEstimator struct {
	draw func(n int64) int64
}

// NewSyntheticEstimator creates a SyntheticEstimator. A nil draw uses math/rand/v2.
func NewSyntheticEstimator(draw func(n int64) int64) *SyntheticEstimator {
	if draw == nil {
		draw = rand.Int64N
	}
	return &SyntheticEstimator{draw: draw}
}

// Estimate returns a placeholder volume.
func (e *SyntheticEstimator) Estimate(_ context.Context, _ string) int64 {
	metrics.ObserveEstimate(metrics.SourceSynthetic, metrics.ResultOK)
	return e.draw(SyntheticCeiling)
}
