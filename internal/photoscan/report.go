/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package photoscan

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/weegreenblobbie/eoscript/internal/offsetfmt"
)

// Report is the result of scanning one or more photo directories.
type Report struct {
	ScannedAt time.Time `json:"scanned_at"`
	RootDirs  []string  `json:"root_dirs"`
	Reference time.Time `json:"reference"`
	Photos    []Photo   `json:"photos"`
	Stats     Stats     `json:"stats"`
}

// Photo describes a single image and when it was taken.
type Photo struct {
	Path         string    `json:"path"`
	RelativePath string    `json:"relative_path"`
	Camera       string    `json:"camera"`
	TakenAt      time.Time `json:"taken_at"`
	Offset       float64   `json:"offset_seconds"`
	Exposure     string    `json:"exposure"`
	FStop        float64   `json:"fstop"`
	ISO          int       `json:"iso"`
}

// Stats holds aggregate scan statistics.
type Stats struct {
	TotalFiles      int     `json:"total_files"`
	Skipped         int     `json:"skipped"`
	Errors          int     `json:"errors"`
	DurationSeconds float64 `json:"duration_seconds"`
}

// ReportHeader names the columns written by WriteTable.
const ReportHeader = "Filename, Offset, Camera, Exposure, Fstop, ISO"

// WriteTable writes one comma separated line per photo, in the layout of
// plan rows so shots can be matched against the script.
func (r *Report) WriteTable(w io.Writer) error {
	if _, err := fmt.Fprintln(w, ReportHeader); err != nil {
		return err
	}
	for _, p := range r.Photos {
		_, err := fmt.Fprintf(w, "%-32s, %s, %s, %-6s, %4.1f, %4d\n",
			p.RelativePath,
			offsetfmt.Signed(p.Offset),
			p.Camera,
			p.Exposure,
			p.FStop,
			p.ISO,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON writes the report as indented JSON.
func (r *Report) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
