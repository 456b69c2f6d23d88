// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags or environment variables.
type Config struct {
	// Credentials and endpoints
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	DatabaseURL string `json:"database_url,omitempty"` // Record store PostgreSQL URL

	// Extraction
	Models         []string `json:"models,omitempty" validate:"omitempty,dive,required"` // Ordered model fallback chain
	TimeoutSeconds int      `json:"timeout_seconds,omitempty" validate:"gte=0"`          // Per-model call timeout
	Artifact       string   `json:"artifact,omitempty"`                                  // Path of the parsed record artifact

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed progress information
}

var validate = validator.New()

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// Validate checks that the configuration has valid values. Required fields
// are not checked here; they are enforced per command after merging flags
// and environment variables.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. This is used to apply config file values as defaults for CLI
// flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if len(result.Models) == 0 {
		result.Models = defaults.Models
	}
	if result.TimeoutSeconds == 0 {
		result.TimeoutSeconds = defaults.TimeoutSeconds
	}
	if result.Artifact == "" {
		result.Artifact = defaults.Artifact
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// MissingConfigurationError reports a required credential or identifier
// absent at startup. It halts a command before any processing happens.
type MissingConfigurationError struct {
	Name string
	Hint string
}

func (e *MissingConfigurationError) Error() string {
	if e.Hint != "" {
		return fmt.Sprintf("missing configuration: %s (%s)", e.Name, e.Hint)
	}
	return fmt.Sprintf("missing configuration: %s", e.Name)
}
