/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/weegreenblobbie/eoscript/internal/config"
	"github.com/weegreenblobbie/eoscript/internal/logging"
)

var (
	logger zerolog.Logger
	cfg    *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "eoscript",
	Short: "eoscript - eclipse camera script generator",
	Long: `eoscript turns a shooting plan into the timed camera script read by
Eclipse Orchestrator. Offsets are computed from the eclipse contact times
(C1, C2, MAX, C3, C4), exposures are snapped to the standard third-stop
scale and brackets are expanded into individual shots.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig loads configuration (called by commands that need it)
func loadConfig() error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger = logging.Setup(cfg.Environment)
	for _, warning := range cfg.LegacyEnvWarnings {
		logger.Warn().Msg(warning)
	}
	return nil
}
