// Package config resolves runtime settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/abhisek/grammarquest/internal/logging"
	"github.com/abhisek/grammarquest/internal/progress"
	"github.com/joho/godotenv"
)

// Environment variables read by FromEnv.
const (
	EnvDB                  = "GRAMMARQUEST_DB"
	EnvLogMode             = "GRAMMARQUEST_LOG_MODE"
	EnvCatalog             = "GRAMMARQUEST_CATALOG"
	EnvCurriculum          = "GRAMMARQUEST_CURRICULUM"
	EnvCompletionThreshold = "GRAMMARQUEST_COMPLETION_THRESHOLD"
)

// Config holds all runtime configuration.
type Config struct {
	// DBPath is the SQLite file. Empty means the XDG default.
	DBPath string

	// LogMode is one of quiet, dev or prod. Default: quiet.
	LogMode string

	// CatalogPath is an optional achievement catalog file. Empty means the
	// embedded catalog.
	CatalogPath string

	// CurriculumPath is an optional topic map file. Empty means the
	// embedded curriculum.
	CurriculumPath string

	Progress progress.Config
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		LogMode:  logging.ModeQuiet,
		Progress: progress.DefaultConfig(),
	}
}

// FromEnv builds a Config from environment variables, falling back to
// defaults for unset values. A .env file in the working directory is read
// first if present; variables already set in the environment win.
func FromEnv() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := DefaultConfig()

	if v := os.Getenv(EnvDB); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv(EnvLogMode); v != "" {
		cfg.LogMode = v
		if m, err := logging.ParseMode(v); err == nil {
			cfg.LogMode = m
		}
	}
	if v := os.Getenv(EnvCatalog); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv(EnvCurriculum); v != "" {
		cfg.CurriculumPath = v
	}
	if v := os.Getenv(EnvCompletionThreshold); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvCompletionThreshold, err)
		}
		cfg.Progress.CompletionThreshold = n
	}

	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if _, err := logging.ParseMode(c.LogMode); err != nil {
		return fmt.Errorf("%s: %w", EnvLogMode, err)
	}
	if t := c.Progress.CompletionThreshold; t < 1 || t > 100 {
		return fmt.Errorf("%s must be between 1 and 100, got %d", EnvCompletionThreshold, t)
	}
	return nil
}
