package schemas

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/keyword-scout/internal/schemas"
	"github.com/jonathan/keyword-scout/internal/types"
)

var schemaFiles = []string{
	"analysis_result.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(schemaFile)
			require.NoError(t, err, "should be able to read schema file")

			var schemaObj map[string]interface{}
			require.NoError(t, json.Unmarshal(data, &schemaObj), "schema file should be valid JSON")

			_, hasType := schemaObj["type"]
			_, hasSchema := schemaObj["$schema"]
			assert.True(t, hasType && hasSchema, "schema should declare $schema and type")
		})
	}
}

func TestAnalysisResultSchema_OutcomesMatchTypes(t *testing.T) {
	data, err := os.ReadFile("analysis_result.schema.json")
	require.NoError(t, err)

	var schema struct {
		Properties struct {
			Outcome struct {
				Enum []string `json:"enum"`
			} `json:"outcome"`
		} `json:"properties"`
	}
	require.NoError(t, json.Unmarshal(data, &schema))

	outcomes := []types.Outcome{
		types.OutcomeNoKeyword,
		types.OutcomeNoSuggestions,
		types.OutcomeNoneAnalyzable,
		types.OutcomeGenerated,
		types.OutcomeNoAPIKey,
		types.OutcomeOverloaded,
		types.OutcomeFailed,
		types.OutcomeInternalError,
	}
	for _, o := range outcomes {
		assert.Contains(t, schema.Properties.Outcome.Enum, string(o))
	}
	assert.Len(t, schema.Properties.Outcome.Enum, len(outcomes))
}

func TestAnalysisResultSchema_ShortCircuitDocument(t *testing.T) {
	doc := `{
		"run_id": "r1",
		"keyword": "",
		"count": 5,
		"outcome": "no_keyword",
		"candidates": [],
		"ranked": [],
		"report": "No keyword was provided.",
		"started_at": "2026-01-02T03:04:05Z",
		"finished_at": "2026-01-02T03:04:05Z"
	}`

	assert.NoError(t, schemas.ValidateJSON("analysis_result.schema.json", writeTemp(t, doc)))
}

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "doc-*.json")
	require.NoError(t, err)
	_, err = f.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}
