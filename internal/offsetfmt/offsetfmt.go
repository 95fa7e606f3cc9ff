/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package offsetfmt formats signed second offsets as HH:MM:SS.mmm.
package offsetfmt

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Sign returns "-" for negative offsets and "+" otherwise.
func Sign(seconds float64) string {
	if seconds < 0 {
		return "-"
	}
	return "+"
}

// Format renders |seconds| as HH:MM:SS.mmm. The value is rounded to the
// millisecond before it is split, so 59.9996 s becomes 00:01:00.000.
func Format(seconds float64) string {
	rounded := strconv.FormatFloat(math.Abs(seconds), 'f', 3, 64)
	whole, frac, _ := strings.Cut(rounded, ".")
	total, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return rounded
	}
	return fmt.Sprintf("%02d:%02d:%02d.%s", total/3600, total%3600/60, total%60, frac)
}

// FormatDuration renders a duration the same way as Format.
func FormatDuration(d time.Duration) string {
	return Format(d.Seconds())
}

// Signed joins Sign and Format with a comma, the layout of the offset
// columns in plan and report files.
func Signed(seconds float64) string {
	return Sign(seconds) + "," + Format(seconds)
}
