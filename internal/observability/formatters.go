// Package observability provides the diagnostic logger and formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/keyword-scout/internal/types"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out     io.Writer
	numbers *message.Printer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, numbers: message.NewPrinter(language.English)}
}

// printBox prints a formatted box with a title and content.
// Widths are measured in terminal cells so CJK keywords line up.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", runewidth.FillRight(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		line = runewidth.Truncate(line, inner, "...")
		fmt.Fprintf(p.out, "│ %s │\n", runewidth.FillRight(line, inner))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCandidates outputs the autocomplete candidates returned for a seed keyword.
func (p *Printer) PrintCandidates(seed string, candidates []string) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Seed: %s\n", seed))
	sb.WriteString(fmt.Sprintf("Candidates: %d\n\n", len(candidates)))

	count := min(len(candidates), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", candidates[i]))
	}
	if len(candidates) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(candidates)-maxItemsToShow))
	}

	p.printBox("SUGGESTED KEYWORDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRanked outputs the filtered keywords in ranking order with their volumes.
func (p *Printer) PrintRanked(ranked []types.SuggestionResult) {
	if len(ranked) == 0 {
		return
	}

	var sb strings.Builder
	for i, r := range ranked {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, r.Keyword))
		sb.WriteString(p.numbers.Sprintf("    Volume: %d", r.SearchVolume))
		if i < len(ranked)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("LOW-COMPETITION KEYWORDS", sb.String())
}
