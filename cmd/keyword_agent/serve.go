package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/keyword-scout/internal/observability"
	"github.com/jonathan/keyword-scout/internal/pipeline"
	"github.com/jonathan/keyword-scout/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server exposing POST /analyze, POST /analyze/stream (Server-Sent Events), GET /health and GET /metrics.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	built, err := pipeline.NewFromConfig(context.Background(), cfg, logger, nil)
	if err != nil {
		return err
	}
	defer func() { _ = built.Close() }()

	// Request logs go to stderr as well as the diagnostic log
	requestLogger := observability.NewLogger(os.Stderr, observability.LoggerOptions{Level: log.InfoLevel})

	srv := server.New(server.Config{Port: servePort, Logger: requestLogger}, built)
	return srv.Start()
}
