package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/keyword-scout/internal/config"
	"github.com/jonathan/keyword-scout/internal/observability"
)

// loadConfig resolves the config file, environment and defaults, then
// applies the shared flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = logFile
	}
	return cfg, nil
}

// openLogger opens the diagnostic log. The returned close func is never nil.
func openLogger(cfg *config.Config) (*log.Logger, func(), error) {
	f, err := observability.OpenLogFile(cfg.LogFile)
	if err != nil {
		return nil, func() {}, err
	}
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}
	logger := observability.NewLogger(f, observability.LoggerOptions{Level: level})
	return logger, func() { _ = f.Close() }, nil
}

// stdout returns the command's output writer.
func stdout(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}
