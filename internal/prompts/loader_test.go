package prompts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ReportPrompt(t *testing.T) {
	prompt, err := Get(ReportFile, ReportKey)
	require.NoError(t, err)
	assert.Contains(t, prompt, InputPlaceholder)
	assert.Contains(t, prompt, "searchVolume")
}

func TestGet_InvalidFile(t *testing.T) {
	_, err := Get("nonexistent.json", "some-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt file")
}

func TestGet_InvalidKey(t *testing.T) {
	_, err := Get(ReportFile, "nonexistent-key")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Contains(t, err.Error(), "available: "+ReportKey)
}

func TestMustGet_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("nonexistent.json", "some-key")
	})
}

func TestMustGet_ValidPrompt(t *testing.T) {
	assert.NotPanics(t, func() {
		assert.NotEmpty(t, MustGet(ReportFile, ReportKey))
	})
}

func TestReportTemplate_Embedded(t *testing.T) {
	template, err := ReportTemplate("")
	require.NoError(t, err)
	assert.Equal(t, MustGet(ReportFile, ReportKey), template)
}

func TestReportTemplate_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.txt")
	require.NoError(t, os.WriteFile(path, []byte("Summarize:\n{{.Input}}\n"), 0o644))

	template, err := ReportTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, "Summarize:\n{{.Input}}\n", template)
}

func TestLoadTemplate_MissingPlaceholder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.txt")
	require.NoError(t, os.WriteFile(path, []byte("no input here"), 0o644))

	_, err := LoadTemplate(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not contain")
}

func TestLoadTemplate_MissingFile(t *testing.T) {
	_, err := LoadTemplate(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read prompt template")
}

func TestFormat(t *testing.T) {
	template := "Keywords for {{.Seed}}:\n{{.Input}}"
	data := map[string]string{
		"Seed":  "coffee",
		"Input": `[{"keyword":"coffee beans","searchVolume":12}]`,
	}

	result := Format(template, data)
	assert.Equal(t, "Keywords for coffee:\n[{\"keyword\":\"coffee beans\",\"searchVolume\":12}]", result)
}

func TestFormat_NoPlaceholders(t *testing.T) {
	template := "No placeholders here"

	result := Format(template, map[string]string{"Input": "x"})
	assert.Equal(t, template, result)
}

func TestFormat_EmptyData(t *testing.T) {
	template := "Data: {{.Input}}"

	result := Format(template, map[string]string{})
	assert.Equal(t, template, result)
}

func TestList(t *testing.T) {
	keys, err := List(ReportFile)
	require.NoError(t, err)
	assert.Equal(t, []string{ReportKey}, keys)
}

func TestCaching(t *testing.T) {
	prompt1, err := Get(ReportFile, ReportKey)
	require.NoError(t, err)

	prompt2, err := Get(ReportFile, ReportKey)
	require.NoError(t, err)

	assert.Equal(t, prompt1, prompt2)
}
