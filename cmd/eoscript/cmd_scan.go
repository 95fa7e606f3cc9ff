/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/weegreenblobbie/eoscript/internal/photoscan"
)

var (
	scanOutput    string
	scanWorkers   int
	scanReference string
	scanJSON      bool
)

var scanCmd = &cobra.Command{
	Use:   "scan DIR...",
	Short: "Report capture time offsets of photos taken during a run",
	Long: `Scan reads the EXIF capture time, camera and exposure settings of every
photo under the given directories and prints their offsets, sorted by
filename. Offsets are measured from the first photo unless --reference is
given (for example the C2 contact time). Camera clocks are read as UTC.

Examples:
  eoscript scan /media/card/DCIM
  eoscript scan "/photos/*" --reference "2024/04/08 18:38:46.6"
  eoscript scan /photos --json -o scan.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().StringVarP(&scanOutput, "output", "o", "", "Output file (default: stdout)")
	scanCmd.Flags().IntVarP(&scanWorkers, "workers", "w", 0, "Parallel decode workers (overrides EOSCRIPT_SCAN_WORKERS)")
	scanCmd.Flags().StringVar(&scanReference, "reference", "", "Instant offsets are measured from (default: first photo)")
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "Write a JSON report instead of a table")
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	workers := cfg.ScanWorkers
	if scanWorkers > 0 {
		workers = scanWorkers
	}

	var reference time.Time
	if scanReference != "" {
		var err error
		reference, err = dateparse.ParseIn(scanReference, time.UTC)
		if err != nil {
			return fmt.Errorf("parse reference %q: %w", scanReference, err)
		}
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Info().Int("dirs", len(args)).Int("workers", workers).Msg("scanning photos")

	report, err := photoscan.NewScanner(workers, reference, logger).Scan(ctx, args)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	var out io.Writer = cmd.OutOrStdout()
	if scanOutput != "" {
		f, err := os.Create(scanOutput)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}

	if scanJSON {
		err = report.WriteJSON(out)
	} else {
		err = report.WriteTable(out)
	}
	if err != nil {
		return err
	}

	if scanOutput != "" {
		logger.Info().Str("path", scanOutput).Msg("report written")
	}
	return nil
}
