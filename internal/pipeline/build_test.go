package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/keyword-scout/internal/config"
	"github.com/jonathan/keyword-scout/internal/report"
	"github.com/jonathan/keyword-scout/internal/types"
)

func TestNewFromConfig_WithoutCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "coffee", r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(`["coffee",["coffee beans","coffee grinder","cold brew"]]`))
	}))
	defer server.Close()

	cfg := config.Defaults()
	cfg.SuggestEndpoint = server.URL

	built, err := NewFromConfig(context.Background(), &cfg, nil, nil)
	require.NoError(t, err)
	defer func() { _ = built.Close() }()

	result := built.Run(context.Background(), types.AnalyzeRequest{Keyword: "coffee"})

	assert.Equal(t, []string{"coffee beans", "coffee grinder", "cold brew"}, result.Candidates)
	assert.Equal(t, types.OutcomeNoAPIKey, result.Outcome)
	assert.True(t, strings.HasPrefix(result.Report, report.NoKeyHeader))
}

func TestNewFromConfig_MissingPromptFile(t *testing.T) {
	cfg := config.Defaults()
	cfg.PromptFile = filepath.Join(t.TempDir(), "missing.txt")

	_, err := NewFromConfig(context.Background(), &cfg, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load report prompt")
}

func TestRunPipeline_Integration(t *testing.T) {
	// Requires live credentials and internet access
	cfg, err := config.Load("")
	require.NoError(t, err)
	if cfg.GeminiAPIKey == "" || cfg.SearchAPIKey == "" || cfg.SearchEngineID == "" {
		t.Skip("Skipping integration test: GEMINI_API_KEY, CUSTOM_SEARCH_API_KEY or SEARCH_ENGINE_ID not set")
	}
	if os.Getenv("KEYWORD_SCOUT_INTEGRATION") == "" {
		t.Skip("Skipping integration test: KEYWORD_SCOUT_INTEGRATION not set")
	}

	built, err := NewFromConfig(context.Background(), cfg, nil, nil)
	require.NoError(t, err)
	defer func() { _ = built.Close() }()

	got := built.Analyze(context.Background(), "golang")
	assert.NotEmpty(t, got)
}
