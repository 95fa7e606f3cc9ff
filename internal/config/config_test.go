package config

import (
	"errors"
	"testing"

	"github.com/weegreenblobbie/eoscript/internal/timeline"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Environment != "production" || cfg.IsDevelopment() {
		t.Fatalf("unexpected environment: %q", cfg.Environment)
	}
	if cfg.MinTimeStep != 3.0 || cfg.ReleaseDuration != 0.050 {
		t.Fatalf("timing defaults = %v/%v, want 3/0.05", cfg.MinTimeStep, cfg.ReleaseDuration)
	}
	if cfg.Quality != "RAW+F-JPG" || cfg.ScanWorkers != 4 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadReadsEnvKeys(t *testing.T) {
	t.Setenv("EOSCRIPT_ENV", "development")
	t.Setenv("EOSCRIPT_MIN_TIME_STEP", "0.333")
	t.Setenv("EOSCRIPT_RELEASE_DURATION", "0.1")
	t.Setenv("EOSCRIPT_QUALITY", "RAW")
	t.Setenv("EOSCRIPT_SCAN_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.IsDevelopment() {
		t.Fatal("expected development environment")
	}

	opts := cfg.TimelineOptions()
	if opts.MinTimeStep != 0.333 || opts.ReleaseDuration != 0.1 || opts.Quality != timeline.QualityRaw {
		t.Fatalf("unexpected timeline options: %+v", opts)
	}
	if cfg.ScanWorkers != 8 {
		t.Fatalf("scan workers = %d, want 8", cfg.ScanWorkers)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"EOSCRIPT_MIN_TIME_STEP":    "-1",
		"EOSCRIPT_RELEASE_DURATION": "0",
		"EOSCRIPT_QUALITY":          "JPEG",
		"EOSCRIPT_SCAN_WORKERS":     "0",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected %s=%s to be rejected", key, value)
			}
		})
	}
}

func TestLoadQualityErrorWrapsTimelineError(t *testing.T) {
	t.Setenv("EOSCRIPT_QUALITY", "TIFF")
	_, err := Load()
	if !errors.Is(err, timeline.ErrInvalidArgument) {
		t.Fatalf("err = %v, want timeline.ErrInvalidArgument", err)
	}
}

func TestLoadRejectsUnparsableNumbers(t *testing.T) {
	t.Setenv("EOSCRIPT_MIN_TIME_STEP", "fast")
	if _, err := Load(); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadReportsLegacyEnvWarnings(t *testing.T) {
	t.Setenv("MIN_TIME_STEP", "1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.LegacyEnvWarnings) != 1 {
		t.Fatalf("warnings = %v, want one", cfg.LegacyEnvWarnings)
	}
}
