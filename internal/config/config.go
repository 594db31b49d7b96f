// Package config provides configuration loading and validation for the CLI and servers.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/encoding/htmlindex"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/keyword-scout/internal/observability"
	"github.com/jonathan/keyword-scout/internal/suggest"
	"github.com/jonathan/keyword-scout/internal/types"
)

// Environment variables holding credentials
const (
	EnvGeminiAPIKey   = "GEMINI_API_KEY"
	EnvSearchAPIKey   = "CUSTOM_SEARCH_API_KEY"
	EnvSearchEngineID = "SEARCH_ENGINE_ID"
)

// DefaultModel is the Gemini model used for reports.
const DefaultModel = "gemini-2.5-flash"

// Config represents the analyzer configuration. It can be loaded from a
// JSON, TOML or YAML file; missing values use defaults, the environment or CLI flags.
type Config struct {
	// Credentials
	GeminiAPIKey   string `json:"gemini_api_key,omitempty" toml:"gemini_api_key" yaml:"gemini_api_key,omitempty"`
	SearchAPIKey   string `json:"search_api_key,omitempty" toml:"search_api_key" yaml:"search_api_key,omitempty"`
	SearchEngineID string `json:"search_engine_id,omitempty" toml:"search_engine_id" yaml:"search_engine_id,omitempty"`

	// Report
	Model       string `json:"model,omitempty" toml:"model" yaml:"model,omitempty"`
	PromptFile  string `json:"prompt_file,omitempty" toml:"prompt_file" yaml:"prompt_file,omitempty"`
	ResultCount int    `json:"result_count,omitempty" toml:"result_count" yaml:"result_count,omitempty"`

	// Estimation fan-out cap, 0 = one goroutine per candidate
	Concurrency int `json:"concurrency,omitempty" toml:"concurrency" yaml:"concurrency,omitempty"`

	// Autocomplete endpoint
	SuggestEndpoint string `json:"suggest_endpoint,omitempty" toml:"suggest_endpoint" yaml:"suggest_endpoint,omitempty"`
	SuggestClient   string `json:"suggest_client,omitempty" toml:"suggest_client" yaml:"suggest_client,omitempty"`
	Language        string `json:"language,omitempty" toml:"language" yaml:"language,omitempty"`
	SuggestEncoding string `json:"suggest_encoding,omitempty" toml:"suggest_encoding" yaml:"suggest_encoding,omitempty"`

	// Behavior
	LogFile string `json:"log_file,omitempty" toml:"log_file" yaml:"log_file,omitempty"`
	Verbose bool   `json:"verbose,omitempty" toml:"verbose" yaml:"verbose,omitempty"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Model:           DefaultModel,
		ResultCount:     types.DefaultResultCount,
		SuggestEndpoint: suggest.DefaultEndpoint,
		SuggestClient:   suggest.DefaultClient,
		Language:        suggest.DefaultLanguage,
		SuggestEncoding: suggest.DefaultEncoding,
		LogFile:         observability.DefaultLogFile,
	}
}

// LoadConfig loads configuration from a file. The format is chosen by
// extension: .json, .toml, .yaml or .yml.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Credentials are optional: missing ones select the fallback behaviors.
func (c *Config) Validate() error {
	if c.ResultCount < 0 || c.ResultCount > types.MaxResultCount {
		return fmt.Errorf("config error: 'result_count' must be between 0 (default) and %d", types.MaxResultCount)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	if c.SuggestEndpoint != "" {
		u, err := url.Parse(c.SuggestEndpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("config error: 'suggest_endpoint' must be an http(s) URL: %s", c.SuggestEndpoint)
		}
	}

	if c.SuggestEncoding != "" {
		if _, err := htmlindex.Get(c.SuggestEncoding); err != nil {
			return fmt.Errorf("config error: unknown 'suggest_encoding' %q", c.SuggestEncoding)
		}
	}

	if c.PromptFile != "" {
		if _, err := os.Stat(c.PromptFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: prompt file not found: %s", c.PromptFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.GeminiAPIKey == "" {
		result.GeminiAPIKey = defaults.GeminiAPIKey
	}
	if result.SearchAPIKey == "" {
		result.SearchAPIKey = defaults.SearchAPIKey
	}
	if result.SearchEngineID == "" {
		result.SearchEngineID = defaults.SearchEngineID
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.PromptFile == "" {
		result.PromptFile = defaults.PromptFile
	}
	if result.SuggestEndpoint == "" {
		result.SuggestEndpoint = defaults.SuggestEndpoint
	}
	if result.SuggestClient == "" {
		result.SuggestClient = defaults.SuggestClient
	}
	if result.Language == "" {
		result.Language = defaults.Language
	}
	if result.SuggestEncoding == "" {
		result.SuggestEncoding = defaults.SuggestEncoding
	}
	if result.LogFile == "" {
		result.LogFile = defaults.LogFile
	}

	if result.ResultCount == 0 {
		result.ResultCount = defaults.ResultCount
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bools cannot distinguish unset from false; CLI flags win

	return result
}

// ApplyEnv fills empty credentials from the environment.
func (c *Config) ApplyEnv() {
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv(EnvGeminiAPIKey)
	}
	if c.SearchAPIKey == "" {
		c.SearchAPIKey = os.Getenv(EnvSearchAPIKey)
	}
	if c.SearchEngineID == "" {
		c.SearchEngineID = os.Getenv(EnvSearchEngineID)
	}
}

// Load resolves the effective configuration: the optional file, then the
// environment, then the defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}

// CredentialSummary reports which credentials are present without revealing them.
func (c *Config) CredentialSummary() map[string]bool {
	return map[string]bool{
		"gemini_api_key":   c.GeminiAPIKey != "",
		"search_api_key":   c.SearchAPIKey != "",
		"search_engine_id": c.SearchEngineID != "",
	}
}
