/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package timeline

import (
	"fmt"
	"sort"

	"github.com/weegreenblobbie/eoscript/internal/exposure"
)

// Rung is one exposure of a bracket and its offset from the centre in stops.
type Rung struct {
	Exposure exposure.Exposure
	Stops    float64
}

// Ladder returns n exposures centred on center, spaced evStep stops apart,
// shortest first. n must be odd and at least 3, and every rung must stay a
// finite positive duration.
func Ladder(center exposure.Exposure, n int, evStep float64) ([]Rung, error) {
	if n < 3 || n%2 == 0 {
		return nil, fmt.Errorf("%w: bracket size must be odd and >= 3, got %d", ErrInvalidArgument, n)
	}
	if !(evStep > 0) {
		return nil, fmt.Errorf("%w: EV step must be > 0, got %v", ErrInvalidArgument, evStep)
	}
	if center.IsZero() {
		return nil, fmt.Errorf("%w: bracket centre is unset", ErrInvalidArgument)
	}

	half := (n - 1) / 2
	rungs := make([]Rung, 0, n)
	rungs = append(rungs, Rung{Exposure: center})

	faster, stops := center, 0.0
	for i := 0; i < half; i++ {
		faster = faster.SubtractStops(evStep)
		stops -= evStep
		rungs = append(rungs, Rung{Exposure: faster, Stops: stops})
	}

	slower, stops := center, 0.0
	for i := 0; i < half; i++ {
		slower = slower.AddStops(evStep)
		stops += evStep
		rungs = append(rungs, Rung{Exposure: slower, Stops: stops})
	}

	for _, r := range rungs {
		if _, err := exposure.FromSeconds(r.Exposure.Seconds()); err != nil {
			return nil, fmt.Errorf("%w: bracket rung %+.3f EV is out of range", ErrInvalidArgument, r.Stops)
		}
	}

	sort.SliceStable(rungs, func(i, j int) bool {
		if c := rungs[i].Exposure.Compare(rungs[j].Exposure); c != 0 {
			return c < 0
		}
		return rungs[i].Stops < rungs[j].Stops
	})
	return rungs, nil
}

// CaptureBracket shoots n exposures around the current exposure, evStep
// stops apart, from shortest to longest. The first shot sends all settings,
// the rest are incremental. Each comment is suffixed with the rung's stop
// offset. The base comment is restored afterwards; the incremental flag is
// left at "Y".
func (t *Timeline) CaptureBracket(n int, evStep float64) error {
	if err := t.checkReady(); err != nil {
		return err
	}
	if t.settings.Exposure.IsZero() {
		return fmt.Errorf("%w: exposure hasn't been specified", ErrPrecondition)
	}
	rungs, err := Ladder(t.settings.Exposure, n, evStep)
	if err != nil {
		return err
	}

	base := t.settings.Comment
	defer func() { t.settings.Comment = base }()

	for i, r := range rungs {
		if i == 0 {
			t.settings.Incremental = incrementalNo
		} else {
			t.settings.Incremental = incrementalYes
		}
		t.settings.Comment = fmt.Sprintf("%s %+7.3f EV Stops", base, r.Stops)
		if err := t.CaptureWith(r.Exposure); err != nil {
			return err
		}
	}

	t.logger.Debug().
		Int("rungs", n).
		Float64("ev_step", evStep).
		Str("center", t.settings.Exposure.String()).
		Msg("bracket captured")
	return nil
}
