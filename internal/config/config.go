// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Paths
	Corpus string `json:"corpus,omitempty"` // Path to sitemap corpus JSON file
	Items  string `json:"items,omitempty"`  // Path to content items JSON file
	Store  string `json:"store,omitempty"`  // Path to SQLite blob store file

	// Limits
	MaxLinks    int `json:"max_links,omitempty"`   // Maximum internal links injected per item
	Concurrency int `json:"concurrency,omitempty"` // Concurrent generation tasks per window

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	Tier        string `json:"tier,omitempty"`         // Model tier: lite, standard, advanced
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.MaxLinks < 0 {
		return fmt.Errorf("config error: 'max_links' must be non-negative")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config error: 'concurrency' must be non-negative")
	}

	switch c.Tier {
	case "", "lite", "standard", "advanced":
	default:
		return fmt.Errorf("config error: unknown tier %q (expected lite, standard, or advanced)", c.Tier)
	}

	// Validate file paths exist (if specified)
	if c.Corpus != "" {
		if _, err := os.Stat(c.Corpus); os.IsNotExist(err) {
			return fmt.Errorf("config error: corpus file not found: %s", c.Corpus)
		}
	}
	if c.Items != "" {
		if _, err := os.Stat(c.Items); os.IsNotExist(err) {
			return fmt.Errorf("config error: items file not found: %s", c.Items)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Corpus == "" {
		result.Corpus = defaults.Corpus
	}
	if result.Items == "" {
		result.Items = defaults.Items
	}
	if result.Store == "" {
		result.Store = defaults.Store
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Tier == "" {
		result.Tier = defaults.Tier
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Int fields: use default if zero
	if result.MaxLinks == 0 {
		result.MaxLinks = defaults.MaxLinks
	}
	if result.Concurrency == 0 {
		result.Concurrency = defaults.Concurrency
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
