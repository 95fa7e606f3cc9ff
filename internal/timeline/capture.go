/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package timeline

import (
	"fmt"

	"github.com/weegreenblobbie/eoscript/internal/exposure"
)

// Capture appends a shot with the current settings at the current offset.
//
// In TAKEPIC mode the row carries the full settings and the offset advances
// by the exposure plus the minimum time step. In RELEASE mode (after
// SendExposure) the row is a bare trigger and the offset advances by the
// release duration plus the minimum time step.
func (t *Timeline) Capture() error {
	return t.capture(exposure.Exposure{})
}

// CaptureWith appends a TAKEPIC shot using e instead of the current exposure.
func (t *Timeline) CaptureWith(e exposure.Exposure) error {
	if e.IsZero() {
		return fmt.Errorf("%w: exposure override is unset", ErrInvalidArgument)
	}
	t.settings.Command = CommandTakePic
	return t.capture(e)
}

// CaptureAt sets the offset from a wall-clock time, then captures.
func (t *Timeline) CaptureAt(clock string) error {
	if err := t.SetOffsetClock(clock); err != nil {
		return err
	}
	return t.Capture()
}

func (t *Timeline) capture(override exposure.Exposure) error {
	if err := t.checkReady(); err != nil {
		return err
	}

	if t.settings.Command == CommandRelease {
		t.append(ReleaseOnly{
			Offset:          t.offset,
			Phase:           t.phase,
			Camera:          t.settings.Camera,
			ReleaseDuration: t.releaseDuration,
			Comment:         t.settings.Comment,
		})
		t.offset += t.releaseDuration + t.minTimeStep
		return nil
	}

	e := override
	if e.IsZero() {
		e = t.settings.Exposure
	}
	if e.IsZero() {
		return fmt.Errorf("%w: exposure hasn't been specified", ErrPrecondition)
	}

	snapshot := t.settings
	snapshot.Exposure = e
	t.append(Capture{
		Offset:   t.offset,
		Phase:    t.phase,
		Settings: snapshot,
	})
	t.offset += e.Seconds() + t.minTimeStep
	return nil
}

// SendExposure appends a SETEXP row carrying the full current settings and
// switches to RELEASE mode with incremental transfers. The offset does not
// move; callers advance it to cover the camera's processing delay.
func (t *Timeline) SendExposure() error {
	if err := t.checkReady(); err != nil {
		return err
	}
	if t.settings.Exposure.IsZero() {
		return fmt.Errorf("%w: exposure hasn't been specified", ErrPrecondition)
	}

	snapshot := t.settings
	snapshot.Command = CommandSetExposure
	snapshot.Incremental = incrementalNo
	snapshot.Comment = sendExposureComment
	t.append(SetExposure{
		Offset:   t.offset,
		Phase:    t.phase,
		Settings: snapshot,
	})

	t.settings.Incremental = incrementalYes
	t.settings.Command = CommandRelease
	return nil
}

func (t *Timeline) checkReady() error {
	switch {
	case t.phase == "":
		return fmt.Errorf("%w: phase hasn't been specified", ErrPrecondition)
	case t.settings.Camera == "":
		return fmt.Errorf("%w: camera hasn't been specified", ErrPrecondition)
	case t.settings.FStop == 0:
		return fmt.Errorf("%w: f-stop hasn't been specified", ErrPrecondition)
	case t.settings.ISO == 0:
		return fmt.Errorf("%w: ISO hasn't been specified", ErrPrecondition)
	}
	return nil
}

func (t *Timeline) append(ev Event) {
	t.events = append(t.events, ev)
	t.logger.Debug().
		Str("phase", string(t.phase)).
		Float64("offset", t.offset).
		Str("kind", fmt.Sprintf("%T", ev)).
		Msg("event added")
}
