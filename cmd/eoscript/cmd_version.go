/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weegreenblobbie/eoscript/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the eoscript version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), version.Current())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
