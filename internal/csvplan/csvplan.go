/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package csvplan renders a timeline as the comma separated script read by
// the camera automation software.
package csvplan

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/weegreenblobbie/eoscript/internal/contact"
	"github.com/weegreenblobbie/eoscript/internal/offsetfmt"
	"github.com/weegreenblobbie/eoscript/internal/timeline"
)

// ColumnHeader names the fields of every event row.
const ColumnHeader = "# Action, Date/Ref, Offset sign, Time (offset), Camera, Exposure, Aperture, ISO, MLU, Quality, Size, Incremental, Comment"

const contactTimeLayout = "2006/01/02,15:04:05.000000"

var contactPreamble = []string{
	"# Keep these commented out to use the computed contact times of the computer.",
	"# Add a GPS receiver to get < 1s accurate computed contact times.",
	"# Event, Date, Time",
}

// Labels are padded so the date columns line up.
var (
	phaseLabels = map[contact.Phase]string{
		contact.C1:  "C1,  ",
		contact.C2:  "C2,  ",
		contact.MAX: "MAX, ",
		contact.C3:  "C3,  ",
		contact.C4:  "C4,  ",
	}
	spanLabels = []string{"C1:C2  ", "C2:MAX ", "MAX:C3 ", "C3:4   "}
)

// Render returns the full script for t, one line per event, each line
// terminated by a newline.
func Render(t *timeline.Timeline) string {
	var b strings.Builder
	if in := t.Instants(); in != nil {
		writeContactHeader(&b, in)
	}
	b.WriteString(ColumnHeader)
	b.WriteByte('\n')

	for _, ev := range t.Events() {
		b.WriteString(Line(ev))
		b.WriteByte('\n')
	}
	return b.String()
}

// Write renders t to w.
func Write(w io.Writer, t *timeline.Timeline) error {
	if _, err := io.WriteString(w, Render(t)); err != nil {
		return fmt.Errorf("write plan: %w", err)
	}
	return nil
}

// Save renders t to the file at path, replacing it.
func Save(path string, t *timeline.Timeline) error {
	if err := os.WriteFile(path, []byte(Render(t)), 0o644); err != nil {
		return fmt.Errorf("save plan: %w", err)
	}
	return nil
}

// Line renders a single event without the trailing newline.
func Line(ev timeline.Event) string {
	switch e := ev.(type) {
	case timeline.Capture:
		return settingsRow(e.Phase, e.Offset, e.Settings)
	case timeline.SetExposure:
		return settingsRow(e.Phase, e.Offset, e.Settings)
	case timeline.ReleaseOnly:
		return fmt.Sprintf("%s,%s,%s,%s,%6.3f,,,,,,,%s",
			timeline.CommandRelease,
			e.Phase,
			offsetfmt.Signed(e.Offset),
			clean(e.Camera),
			e.ReleaseDuration,
			clean(e.Comment),
		)
	case timeline.Annotation:
		if strings.HasPrefix(e.Text, "#") {
			return e.Text
		}
		return "# " + e.Text
	default:
		return fmt.Sprintf("# unknown event %T", ev)
	}
}

func settingsRow(phase contact.Phase, offset float64, s timeline.Settings) string {
	return fmt.Sprintf("%s,%s,%s,%s,%-6s,%4.1f,%4d,%.1f,%s,None,%s,%s",
		s.Command,
		phase,
		offsetfmt.Signed(offset),
		clean(s.Camera),
		s.Exposure,
		s.FStop,
		s.ISO,
		s.MirrorLockUp,
		s.Quality,
		s.Incremental,
		clean(s.Comment),
	)
}

func writeContactHeader(b *strings.Builder, in *contact.Instants) {
	for _, line := range contactPreamble {
		b.WriteString(line)
		b.WriteByte('\n')
	}
	for _, p := range contact.Phases() {
		at, err := in.At(p)
		if err != nil {
			continue
		}
		fmt.Fprintf(b, "# %s%s\n", phaseLabels[p], at.Format(contactTimeLayout))
	}

	b.WriteString("#\n")
	for i, span := range in.Spans() {
		fmt.Fprintf(b, "# %sduration: %s\n", spanLabels[i], offsetfmt.FormatDuration(span.Duration))
	}
	b.WriteString("#\n")
}

// clean drops field delimiters from free text.
func clean(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
