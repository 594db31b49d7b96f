package observability

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultLogFile is the diagnostic log written in the working directory.
const DefaultLogFile = "analyzer_debug.log"

// LoggerOptions configures NewLogger.
type LoggerOptions struct {
	Prefix string
	Level  log.Level
	JSON   bool
}

// NewLogger creates a timestamped charm logger writing to w.
func NewLogger(w io.Writer, opts LoggerOptions) *log.Logger {
	formatter := log.TextFormatter
	if opts.JSON {
		formatter = log.JSONFormatter
	}
	return log.NewWithOptions(w, log.Options{
		Prefix:          opts.Prefix,
		Level:           opts.Level,
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Formatter:       formatter,
	})
}

// Discard returns a logger that drops everything. Components use it when
// no logger was injected.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

// OrDiscard returns logger, or a discarding logger when logger is nil.
func OrDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return Discard()
	}
	return logger
}

// OpenLogFile opens path for appending, creating it and its directory if needed.
// The caller owns the returned file.
func OpenLogFile(path string) (*os.File, error) {
	if path == "" {
		path = DefaultLogFile
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}
