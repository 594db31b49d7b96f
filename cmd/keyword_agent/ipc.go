package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/keyword-scout/internal/ipc"
	"github.com/jonathan/keyword-scout/internal/pipeline"
)

var ipcCmd = &cobra.Command{
	Use:   "ipc",
	Short: "Serve analyses over stdin/stdout as MessagePack frames",
	Long: `Reads requests {id, k: keyword, n: count} from stdin and writes responses {id, r: report, o: outcome}
to stdout. A {status: "ready"} frame is written first. Diagnostics go to the log file only.`,
	RunE: runIPC,
}

func init() {
	rootCmd.AddCommand(ipcCmd)
}

func runIPC(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	built, err := pipeline.NewFromConfig(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer func() { _ = built.Close() }()

	return ipc.NewServer(built, cmd.InOrStdin(), stdout(cmd), logger).Serve(ctx)
}
