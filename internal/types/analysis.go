//nolint:revive // types is a standard Go package name pattern
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultResultCount is the number of ranked keywords kept when no count is requested.
const DefaultResultCount = 5

// MaxResultCount bounds the count accepted from external callers.
const MaxResultCount = 50

// Outcome identifies which path an analysis took.
type Outcome string

// Outcome values. Every outcome still carries a user-facing report string.
const (
	OutcomeNoKeyword      Outcome = "no_keyword"
	OutcomeNoSuggestions  Outcome = "no_suggestions"
	OutcomeNoneAnalyzable Outcome = "none_analyzable"
	OutcomeGenerated      Outcome = "generated"
	OutcomeNoAPIKey       Outcome = "fallback_no_api_key"
	OutcomeOverloaded     Outcome = "fallback_overloaded"
	OutcomeFailed         Outcome = "fallback_error"
	OutcomeInternalError  Outcome = "internal_error"
)

// AnalyzeRequest is the input accepted by the presentation surfaces.
// Keyword is deliberately not required here: an empty keyword is answered
// with a fixed message by the pipeline rather than rejected.
type AnalyzeRequest struct {
	Keyword string `json:"keyword" msgpack:"k"`
	Count   int    `json:"count,omitempty" msgpack:"n,omitempty" validate:"omitempty,min=1,max=50"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ResultCount returns the requested count or DefaultResultCount when unset.
func (r *AnalyzeRequest) ResultCount() int {
	if r.Count <= 0 {
		return DefaultResultCount
	}
	return r.Count
}

// AnalysisResult is the full record of one pipeline invocation.
// Report is always the exact string returned to plain-text callers.
type AnalysisResult struct {
	RunID      string             `json:"run_id"`
	Keyword    string             `json:"keyword"`
	Count      int                `json:"count"`
	Outcome    Outcome            `json:"outcome"`
	Candidates []string           `json:"candidates"`
	Ranked     []SuggestionResult `json:"ranked"`
	Report     string             `json:"report"`
	StartedAt  time.Time          `json:"started_at"`
	FinishedAt time.Time          `json:"finished_at"`
}
