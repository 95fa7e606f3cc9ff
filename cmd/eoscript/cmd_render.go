/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weegreenblobbie/eoscript/internal/csvplan"
	"github.com/weegreenblobbie/eoscript/internal/planfile"
	"github.com/weegreenblobbie/eoscript/internal/timeline"
)

var (
	renderOutput          string
	renderMinTimeStep     float64
	renderReleaseDuration float64
	renderQuality         string
)

var renderCmd = &cobra.Command{
	Use:   "render PLAN.yaml",
	Short: "Render a YAML shooting plan to a camera script",
	Long: `Render replays a YAML shooting plan and writes the resulting camera
script. Without --output the script is written to stdout.

Examples:
  eoscript render eclipse2024.yaml -o eclipse2024.csv
  eoscript render plan.yaml --min-time-step 1.5`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "Output file (default: stdout)")
	renderCmd.Flags().Float64Var(&renderMinTimeStep, "min-time-step", 0, "Seconds added after every shot (overrides EOSCRIPT_MIN_TIME_STEP)")
	renderCmd.Flags().Float64Var(&renderReleaseDuration, "release-duration", 0, "Trigger length of RELEASE rows in seconds (overrides EOSCRIPT_RELEASE_DURATION)")
	renderCmd.Flags().StringVar(&renderQuality, "quality", "", "Image quality RAW or RAW+F-JPG (overrides EOSCRIPT_QUALITY)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}

	opts := cfg.TimelineOptions()
	if cmd.Flags().Changed("min-time-step") {
		opts.MinTimeStep = renderMinTimeStep
	}
	if cmd.Flags().Changed("release-duration") {
		opts.ReleaseDuration = renderReleaseDuration
	}
	if cmd.Flags().Changed("quality") {
		opts.Quality = timeline.Quality(renderQuality)
	}

	plan, err := planfile.Load(args[0])
	if err != nil {
		return err
	}
	tl, err := plan.Build(opts, logger)
	if err != nil {
		return fmt.Errorf("%s: %w", args[0], err)
	}

	if renderOutput == "" {
		return csvplan.Write(cmd.OutOrStdout(), tl)
	}
	if err := csvplan.Save(renderOutput, tl); err != nil {
		return err
	}
	logger.Info().Str("path", renderOutput).Int("events", len(tl.Events())).Msg("wrote script")
	return nil
}
