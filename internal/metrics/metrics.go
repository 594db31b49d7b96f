// Package metrics exposes Prometheus counters for analysis runs.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Estimate sources.
const (
	SourceSearch    = "search"
	SourceSynthetic = "synthetic"
)

// Estimate results.
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultEmpty = "empty"
)

// Report attempt results.
const (
	AttemptSuccess    = "success"
	AttemptOverloaded = "overloaded"
	AttemptError      = "error"
)

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keyword_scout_analyses_total",
			Help: "Total analysis runs by outcome",
		},
		[]string{"outcome"},
	)
	estimatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keyword_scout_estimates_total",
			Help: "Total search volume estimates by source and result",
		},
		[]string{"source", "result"},
	)
	reportAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keyword_scout_report_attempts_total",
			Help: "Total report generation attempts by result",
		},
		[]string{"result"},
	)
)

var (
	registry     *prometheus.Registry
	registryOnce sync.Once
)

// Init registers the counters and Go runtime collectors on a dedicated registry.
// Safe to call more than once.
func Init() {
	registryOnce.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			analysesTotal,
			estimatesTotal,
			reportAttemptsTotal,
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	})
}

// Handler serves the registry in the Prometheus text format.
func Handler() http.Handler {
	Init()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

// ObserveOutcome counts a finished analysis run.
func ObserveOutcome(outcome string) {
	analysesTotal.WithLabelValues(outcome).Inc()
}

// ObserveEstimate counts a single search volume lookup.
func ObserveEstimate(source, result string) {
	estimatesTotal.WithLabelValues(source, result).Inc()
}

// ObserveReportAttempt counts one call to the language model.
func ObserveReportAttempt(result string) {
	reportAttemptsTotal.WithLabelValues(result).Inc()
}
