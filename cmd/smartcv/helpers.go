package main

import (
	"os"

	"github.com/jonathan/smartcv/internal/config"
)

// resolveConfig layers flag values over an optional config file and the
// environment. Precedence: flags, then config file, then environment
// variables.
func resolveConfig(configPath string, flags config.Config) (config.Config, error) {
	merged := flags

	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		merged = merged.MergeWithDefaults(*fileCfg)
	}

	merged = merged.MergeWithDefaults(config.Config{
		APIKey:      os.Getenv("GEMINI_API_KEY"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
	})

	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	return merged, nil
}

// artifactPath returns the configured artifact location or the stage
// default.
func artifactPath(cfg config.Config, fallback string) string {
	if cfg.Artifact != "" {
		return cfg.Artifact
	}
	return fallback
}
