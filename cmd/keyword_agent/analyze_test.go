package main

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/keyword-scout/internal/observability"
	"github.com/jonathan/keyword-scout/internal/pipeline"
	"github.com/jonathan/keyword-scout/internal/types"
)

func TestAnalyzeCommand_FlagsValidation(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		wantError   bool
		errorString string
	}{
		{
			name:        "Missing keyword",
			args:        []string{"analyze"},
			wantError:   true,
			errorString: "accepts 1 arg",
		},
		{
			name:        "Too many keywords",
			args:        []string{"analyze", "coffee", "tea"},
			wantError:   true,
			errorString: "accepts 1 arg",
		},
		{
			name:        "Count out of range",
			args:        []string{"analyze", "coffee", "--count", "51"},
			wantError:   true,
			errorString: "result_count",
		},
		{
			name:        "Unsupported config format",
			args:        []string{"analyze", "coffee", "--config", "settings.ini"},
			wantError:   true,
			errorString: "failed to load config",
		},
	}

	binaryPath := getBinaryPath(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := exec.Command(binaryPath, tt.args...)
			cmd.Dir = t.TempDir()
			output, err := cmd.CombinedOutput()

			if tt.wantError {
				assert.Error(t, err)
				if tt.errorString != "" {
					assert.Contains(t, string(output), tt.errorString)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAnalyzeCommand_EmptyKeyword(t *testing.T) {
	binaryPath := getBinaryPath(t)
	tmpDir := t.TempDir()
	logPath := filepath.Join(tmpDir, "debug.log")
	outPath := filepath.Join(tmpDir, "result.json")

	cmd := exec.Command(binaryPath, "analyze", "", "--log-file", logPath, "--out", outPath)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, string(output))
	assert.Contains(t, string(output), pipeline.MsgNoKeyword)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var result types.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &result))
	assert.Equal(t, types.OutcomeNoKeyword, result.Outcome)
	assert.Equal(t, pipeline.MsgNoKeyword, result.Report)

	_, err = os.Stat(logPath)
	assert.NoError(t, err, "diagnostic log should be created")
}

func TestWriteResult(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	result := &types.AnalysisResult{
		RunID:      "8f1f3a52-0d8e-4c39-9d2c-6f0f5d0b5e11",
		Keyword:    "coffee",
		Count:      5,
		Outcome:    types.OutcomeNoAPIKey,
		Candidates: []string{"coffee beans", "cold brew"},
		Ranked:     []types.SuggestionResult{{Keyword: "cold brew", SearchVolume: 42}},
		Report:     "report",
		StartedAt:  now,
		FinishedAt: now.Add(time.Second),
	}

	outPath := filepath.Join(t.TempDir(), "nested", "result.json")
	require.NoError(t, writeResult(outPath, result, observability.Discard()))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var got types.AnalysisResult
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, result.Keyword, got.Keyword)
	assert.Equal(t, result.Ranked, got.Ranked)
	assert.Contains(t, string(data), "\n  \"run_id\"")
}

func TestWriteResult_SchemaViolation(t *testing.T) {
	result := &types.AnalysisResult{
		Outcome:    types.OutcomeGenerated,
		Candidates: []string{},
		Ranked:     []types.SuggestionResult{{Keyword: "dead", SearchVolume: 0}},
	}

	outPath := filepath.Join(t.TempDir(), "result.json")
	err := writeResult(outPath, result, observability.Discard())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema validation")

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "invalid results must not be written")
}
