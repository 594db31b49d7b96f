package report

import (
	"fmt"
	"strings"

	"github.com/jonathan/keyword-scout/internal/types"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Fallback report headers. Each is followed by Listing.
const (
	NoKeyHeader    = "[error] GEMINI_API_KEY is not configured.\nGenerating a simple report instead.\n\n"
	OverloadHeader = "[error] The Gemini API is heavily overloaded. Please try again later.\n\n"
	FailureHeader  = "[error] Report generation with Gemini failed.\n"
)

// Listing renders results as a numbered plain-text list:
//
//	--- Competitive Keywords Top 5 ---
//	1. coffee beans (1,234 results)
//
// limit is the requested count shown in the title; non-positive means the default.
func Listing(results []types.SuggestionResult, limit int) string {
	if limit <= 0 {
		limit = types.DefaultResultCount
	}
	numbers := message.NewPrinter(language.English)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- Competitive Keywords Top %d ---\n", limit)
	for i, r := range results {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(numbers.Sprintf("%d. %s (%d results)", i+1, r.Keyword, r.SearchVolume))
	}
	return sb.String()
}

func noKeyReport(results []types.SuggestionResult, limit int) string {
	return NoKeyHeader + Listing(results, limit)
}

func overloadReport(results []types.SuggestionResult, limit int) string {
	return OverloadHeader + Listing(results, limit)
}

func failureReport(err error, results []types.SuggestionResult, limit int) string {
	return FailureHeader + err.Error() + "\n\n" + Listing(results, limit)
}
