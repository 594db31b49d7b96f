package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/keyword-scout/internal/observability"
	"github.com/jonathan/keyword-scout/internal/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <keyword>",
	Short: "Print the autocomplete suggestions for a keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runSuggest,
}

var suggestVerbose bool

func init() {
	suggestCmd.Flags().BoolVarP(&suggestVerbose, "verbose", "v", false, "Print suggestions in a box")
	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	fetcher := suggest.NewFetcher(suggest.Config{
		Endpoint: cfg.SuggestEndpoint,
		Client:   cfg.SuggestClient,
		Language: cfg.Language,
		Encoding: cfg.SuggestEncoding,
	}, logger)

	candidates := fetcher.Fetch(context.Background(), args[0])

	out := stdout(cmd)
	if suggestVerbose {
		observability.NewPrinter(out).PrintCandidates(args[0], candidates)
		return nil
	}
	for _, c := range candidates {
		_, _ = fmt.Fprintln(out, c)
	}
	return nil
}
