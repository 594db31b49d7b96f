// Package main provides the entry point for the keyword analyzer CLI and servers.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "keyword_agent",
	Short: "Competitive keyword analyzer",
	Long: `keyword_agent expands a seed keyword with autocomplete suggestions, estimates how many
search results each suggestion has, keeps the least competitive ones and asks Gemini for a report.

Credentials are read from GEMINI_API_KEY, CUSTOM_SEARCH_API_KEY and SEARCH_ENGINE_ID
(a .env file in the working directory is loaded first) or from a config file.`,
	SilenceUsage: true,
}

var (
	configPath string
	logFile    string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a .json, .toml or .yaml config file")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Diagnostic log path (default analyzer_debug.log)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
