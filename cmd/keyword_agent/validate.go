package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/keyword-scout/internal/schemas"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a saved analysis result against its JSON schema",
	Long:  `Checks a file written by "analyze --out" against schemas/analysis_result.schema.json, or another schema given with --schema.`,
	RunE:  runValidate,
}

var (
	validateSchema string
	validateJSON   string
)

func init() {
	validateCmd.Flags().StringVar(&validateSchema, "schema", "", "Path to the JSON schema (default: the analysis result schema)")
	validateCmd.Flags().StringVar(&validateJSON, "json", "", "Path to the JSON file to validate")
	_ = validateCmd.MarkFlagRequired("json")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if err := validateFile(validateSchema, validateJSON); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout(cmd), "Validation passed")
	return nil
}

// validateFile checks jsonPath against schemaPath, falling back to the
// analysis result schema when schemaPath is empty.
func validateFile(schemaPath, jsonPath string) error {
	if schemaPath == "" {
		schemaPath = schemas.ResolveSchemaPath(schemas.AnalysisResultSchema)
		if schemaPath == "" {
			return fmt.Errorf("analysis result schema not found; pass --schema")
		}
	}
	if err := schemas.ValidateJSON(schemaPath, jsonPath); err != nil {
		return fmt.Errorf("%s: %w", jsonPath, err)
	}
	return nil
}
