package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/keyword-scout/internal/config"
	"github.com/jonathan/keyword-scout/internal/observability"
	"github.com/jonathan/keyword-scout/internal/pipeline"
	"github.com/jonathan/keyword-scout/internal/schemas"
	"github.com/jonathan/keyword-scout/internal/types"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <keyword>",
	Short: "Analyze a seed keyword and print the competitive keyword report",
	Long: `Runs the full analysis: autocomplete suggestions -> search volume estimates -> low-competition filter -> report.

Config file values are overridden by flags that are set explicitly.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	analyzeCount       int
	analyzeOut         string
	analyzeVerbose     bool
	analyzeConcurrency int
	analyzeModel       string
	analyzePromptFile  string
)

func init() {
	analyzeCmd.Flags().IntVarP(&analyzeCount, "count", "n", 0, "Number of keywords to keep (1-50, default from config or 5)")
	analyzeCmd.Flags().StringVarP(&analyzeOut, "out", "o", "", "Write the full analysis result as JSON to this file")
	analyzeCmd.Flags().BoolVarP(&analyzeVerbose, "verbose", "v", false, "Print suggestions and ranked keywords before the report")
	analyzeCmd.Flags().IntVar(&analyzeConcurrency, "concurrency", 0, "Maximum parallel search volume lookups (0 = unbounded)")
	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "", "Gemini model for the report")
	analyzeCmd.Flags().StringVar(&analyzePromptFile, "prompt-file", "", "Report prompt template file containing {{.Input}}")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyAnalyzeFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	req := types.AnalyzeRequest{Keyword: args[0], Count: cfg.ResultCount}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("invalid --count: %w", err)
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

	result := built.SafeRun(ctx, req, nil)

	out := stdout(cmd)
	if cfg.Verbose {
		printer := observability.NewPrinter(out)
		printer.PrintCandidates(result.Keyword, result.Candidates)
		printer.PrintRanked(result.Ranked)
	}
	_, _ = fmt.Fprintln(out, result.Report)

	if analyzeOut != "" {
		if err := writeResult(analyzeOut, result, logger); err != nil {
			return err
		}
		if cfg.Verbose {
			_, _ = fmt.Fprintf(out, "Wrote analysis result to %s\n", analyzeOut)
		}
	}
	return nil
}

// applyAnalyzeFlags copies explicitly set flags over config values.
func applyAnalyzeFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("count") {
		cfg.ResultCount = analyzeCount
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = analyzeVerbose
	}
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency = analyzeConcurrency
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = analyzeModel
	}
	if cmd.Flags().Changed("prompt-file") {
		cfg.PromptFile = analyzePromptFile
	}
}

// writeResult validates result against the AnalysisResult schema and writes it as indented JSON.
func writeResult(path string, result *types.AnalysisResult, logger *log.Logger) error {
	if schemaPath := schemas.ResolveSchemaPath(schemas.AnalysisResultSchema); schemaPath != "" {
		if err := schemas.ValidateDocument(schemaPath, result); err != nil {
			return fmt.Errorf("analysis result failed schema validation: %w", err)
		}
	} else {
		observability.OrDiscard(logger).Warn("analysis result schema not found; skipping validation")
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis result: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}
