/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weegreenblobbie/eoscript/internal/exposure"
	"github.com/weegreenblobbie/eoscript/internal/timeline"
)

var (
	exposureStops   float64
	exposureBracket int
	exposureStep    float64
	exposureList    bool
)

var exposureCmd = &cobra.Command{
	Use:   "exposure [VALUE]",
	Short: "Show exposure values on the standard third-stop scale",
	Long: `Exposure snaps a shutter speed onto the standard scale and can shift
it by stops or expand it into a bracket. Values are seconds: 1/400, 0.5, 8.

Examples:
  eoscript exposure 1/400 --stops 2
  eoscript exposure 1/60 --bracket 11
  eoscript exposure 1/125 --bracket 7 --step 0.6667
  eoscript exposure --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExposure,
}

func init() {
	exposureCmd.Flags().Float64Var(&exposureStops, "stops", 0, "Shift by this many stops (positive is longer)")
	exposureCmd.Flags().IntVar(&exposureBracket, "bracket", 0, "Expand into a bracket of this many exposures (odd, >= 3)")
	exposureCmd.Flags().Float64Var(&exposureStep, "step", 1, "EV step between bracket exposures")
	exposureCmd.Flags().BoolVar(&exposureList, "list", false, "Print the standard scale")
	rootCmd.AddCommand(exposureCmd)
}

func runExposure(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if exposureList {
		for _, e := range exposure.Standard() {
			fmt.Fprintf(out, "%-6s %12.6f\n", e, e.Seconds())
		}
		return nil
	}
	if len(args) == 0 {
		return fmt.Errorf("exposure value required (or --list)")
	}

	e, err := exposure.Parse(args[0])
	if err != nil {
		return err
	}
	e = e.AddStops(exposureStops)

	if exposureBracket == 0 {
		fmt.Fprintf(out, "%-6s %12.6f\n", e, e.Seconds())
		return nil
	}

	rungs, err := timeline.Ladder(e, exposureBracket, exposureStep)
	if err != nil {
		return err
	}
	for _, r := range rungs {
		fmt.Fprintf(out, "%+7.3f %-6s %12.6f\n", r.Stops, r.Exposure, r.Exposure.Seconds())
	}
	return nil
}
