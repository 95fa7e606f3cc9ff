/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"

	"github.com/weegreenblobbie/eoscript/internal/timeline"
)

// Config covers process level configuration read from environment variables.
// Command line flags take precedence over these values.
type Config struct {
	Environment     string  `env:"EOSCRIPT_ENV" envDefault:"production"`
	MinTimeStep     float64 `env:"EOSCRIPT_MIN_TIME_STEP" envDefault:"3.0"`     // seconds added after every shot
	ReleaseDuration float64 `env:"EOSCRIPT_RELEASE_DURATION" envDefault:"0.050"` // trigger length of RELEASE rows
	Quality         string  `env:"EOSCRIPT_QUALITY" envDefault:"RAW+F-JPG"`
	ScanWorkers     int     `env:"EOSCRIPT_SCAN_WORKERS" envDefault:"4"`

	LegacyEnvWarnings []string `env:"-"`
}

// Load reads environment variables, applies defaults, and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if cfg.MinTimeStep < 0 {
		return nil, fmt.Errorf("EOSCRIPT_MIN_TIME_STEP must be >= 0, got %v", cfg.MinTimeStep)
	}
	if cfg.ReleaseDuration <= 0 {
		return nil, fmt.Errorf("EOSCRIPT_RELEASE_DURATION must be > 0, got %v", cfg.ReleaseDuration)
	}
	if _, err := timeline.ParseQuality(cfg.Quality); err != nil {
		return nil, fmt.Errorf("EOSCRIPT_QUALITY: %w", err)
	}
	if cfg.ScanWorkers < 1 {
		return nil, fmt.Errorf("EOSCRIPT_SCAN_WORKERS must be >= 1, got %d", cfg.ScanWorkers)
	}
	cfg.LegacyEnvWarnings = detectLegacyEnvWarnings()

	return cfg, nil
}

// TimelineOptions returns the timeline defaults carried by the config.
func (c *Config) TimelineOptions() timeline.Options {
	return timeline.Options{
		MinTimeStep:     c.MinTimeStep,
		ReleaseDuration: c.ReleaseDuration,
		Quality:         timeline.Quality(c.Quality),
	}
}

// IsDevelopment reports whether debug logging should be enabled.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

func detectLegacyEnvWarnings() []string {
	legacy := map[string]string{
		"MIN_TIME_STEP":    "use EOSCRIPT_MIN_TIME_STEP",
		"RELEASE_DURATION": "use EOSCRIPT_RELEASE_DURATION",
		"IMAGE_QUALITY":    "use EOSCRIPT_QUALITY",
	}

	warnings := make([]string, 0, len(legacy))
	for key, recommendation := range legacy {
		if os.Getenv(key) != "" {
			warnings = append(warnings, fmt.Sprintf("legacy env key %s is set; %s", key, recommendation))
		}
	}
	return warnings
}
