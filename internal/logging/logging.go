// Package logging builds the zap logger shared by every service.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Modes accepted by New.
const (
	ModeQuiet       = "quiet"
	ModeDevelopment = "dev"
	ModeProduction  = "prod"
)

// ParseMode maps a user-supplied mode to one of the Mode constants. Case
// and surrounding space are ignored; empty means quiet.
func ParseMode(mode string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeQuiet:
		return ModeQuiet, nil
	case ModeDevelopment, "development":
		return ModeDevelopment, nil
	case ModeProduction, "production":
		return ModeProduction, nil
	}
	return "", fmt.Errorf("unknown log mode %q (want %s, %s or %s)", mode, ModeQuiet, ModeDevelopment, ModeProduction)
}

// New returns a logger for the given mode. All modes write to stderr.
//
//   - quiet: human-readable, warnings and above (the CLI default)
//   - dev: human-readable, debug and above
//   - prod: JSON, info and above
func New(mode string) (*zap.Logger, error) {
	m, err := ParseMode(mode)
	if err != nil {
		return nil, err
	}
	var cfg zap.Config
	switch m {
	case ModeQuiet:
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
		cfg.DisableStacktrace = true
		cfg.EncoderConfig.TimeKey = ""
	case ModeDevelopment:
		cfg = zap.NewDevelopmentConfig()
	case ModeProduction:
		cfg = zap.NewProductionConfig()
	}
	return cfg.Build()
}
