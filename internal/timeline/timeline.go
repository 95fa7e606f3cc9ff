/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package timeline builds the ordered list of camera actions of a shooting
// plan. A Timeline tracks the current camera settings and a running offset
// from the active contact; capture operations append rows and advance it.
package timeline

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/weegreenblobbie/eoscript/internal/contact"
	"github.com/weegreenblobbie/eoscript/internal/exposure"
)

var (
	// ErrInvalidArgument is returned by setters and operations given bad values.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrPrecondition is returned when an operation runs before the state it needs is set.
	ErrPrecondition = errors.New("precondition failed")
)

const (
	// DefaultMinTimeStep is the default spacing added after every shot, in seconds.
	DefaultMinTimeStep = 3.0
	// DefaultReleaseDuration is the shutter trigger length of RELEASE rows, in seconds.
	DefaultReleaseDuration = 0.050
	// BannerWidth is the number of dashes in a banner rule.
	BannerWidth = 120
)

// Options configure a new Timeline. Zero fields take the defaults.
type Options struct {
	// Instants anchor phases to absolute times. Nil means offsets are
	// relative only and clock-time offsets are rejected.
	Instants        *contact.Instants
	MinTimeStep     float64
	ReleaseDuration float64
	Quality         Quality
}

// Timeline accumulates plan events. It is not safe for concurrent use.
type Timeline struct {
	logger          zerolog.Logger
	instants        *contact.Instants
	settings        Settings
	phase           contact.Phase
	offset          float64
	minTimeStep     float64
	releaseDuration float64
	events          []Event
}

// New creates an empty timeline.
func New(opts Options, logger zerolog.Logger) (*Timeline, error) {
	t := &Timeline{
		logger:          logger.With().Str("component", "timeline").Logger(),
		instants:        opts.Instants,
		minTimeStep:     DefaultMinTimeStep,
		releaseDuration: DefaultReleaseDuration,
		settings: Settings{
			Incremental: incrementalNo,
			Command:     CommandTakePic,
			Quality:     DefaultQuality,
		},
	}

	if opts.MinTimeStep != 0 {
		if err := t.SetMinTimeStep(opts.MinTimeStep); err != nil {
			return nil, err
		}
	}
	if opts.ReleaseDuration != 0 {
		if err := t.SetReleaseDuration(opts.ReleaseDuration); err != nil {
			return nil, err
		}
	}
	if opts.Quality != "" {
		q, err := ParseQuality(string(opts.Quality))
		if err != nil {
			return nil, err
		}
		t.settings.Quality = q
	}
	return t, nil
}

// Instants returns the contact times, or nil in relative mode.
func (t *Timeline) Instants() *contact.Instants { return t.instants }

// Settings returns a copy of the current camera settings.
func (t *Timeline) Settings() Settings { return t.settings }

// Phase returns the active phase, empty until SetPhase is called.
func (t *Timeline) Phase() contact.Phase { return t.phase }

// Offset returns the running offset from the active phase, in seconds.
func (t *Timeline) Offset() float64 { return t.offset }

// MinTimeStep returns the spacing added after every shot.
func (t *Timeline) MinTimeStep() float64 { return t.minTimeStep }

// ReleaseDuration returns the trigger length used for RELEASE rows.
func (t *Timeline) ReleaseDuration() float64 { return t.releaseDuration }

// Events returns the accumulated events in append order.
func (t *Timeline) Events() []Event {
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}

// SetCamera sets the camera identifier.
func (t *Timeline) SetCamera(name string) {
	t.settings.Camera = name
}

// SetFStop sets the aperture. Changing it returns to TAKEPIC releases.
func (t *Timeline) SetFStop(f float64) error {
	if !(f > 0) {
		return fmt.Errorf("%w: f-stop must be > 0, got %v", ErrInvalidArgument, f)
	}
	t.settings.Command = CommandTakePic
	t.settings.FStop = f
	return nil
}

// SetISO sets the sensor sensitivity. Changing it returns to TAKEPIC releases.
func (t *Timeline) SetISO(iso int) error {
	if iso <= 0 {
		return fmt.Errorf("%w: ISO must be > 0, got %d", ErrInvalidArgument, iso)
	}
	t.settings.Command = CommandTakePic
	t.settings.ISO = iso
	return nil
}

// SetExposure sets the current exposure. Changing it returns to TAKEPIC releases.
func (t *Timeline) SetExposure(e exposure.Exposure) error {
	if e.IsZero() {
		return fmt.Errorf("%w: exposure is unset", ErrInvalidArgument)
	}
	t.settings.Command = CommandTakePic
	t.settings.Exposure = e
	return nil
}

// SetComment sets the comment column. Commas are removed since they
// delimit fields.
func (t *Timeline) SetComment(comment string) {
	t.settings.Comment = stripCommas(comment)
}

// SetIncremental sets whether only changed settings are sent: "Y" or "N".
func (t *Timeline) SetIncremental(flag string) error {
	if flag != incrementalYes && flag != incrementalNo {
		return fmt.Errorf("%w: incremental must be Y or N, got %q", ErrInvalidArgument, flag)
	}
	t.settings.Incremental = flag
	return nil
}

// SetReleaseCommand selects TAKEPIC or RELEASE rows for subsequent captures.
// SETEXP rows are only produced by SendExposure.
func (t *Timeline) SetReleaseCommand(cmd Command) error {
	if cmd != CommandTakePic && cmd != CommandRelease {
		return fmt.Errorf("%w: release command must be TAKEPIC or RELEASE, got %q", ErrInvalidArgument, cmd)
	}
	t.settings.Command = cmd
	return nil
}

// SetPhase makes label the active phase and resets the offset to zero.
func (t *Timeline) SetPhase(label string) error {
	p, err := contact.ParsePhase(label)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	t.phase = p
	t.offset = 0
	return nil
}

// SetOffset sets the offset from the active phase, in seconds.
func (t *Timeline) SetOffset(seconds float64) {
	t.offset = seconds
}

// AdvanceOffset adds seconds to the running offset.
func (t *Timeline) AdvanceOffset(seconds float64) {
	t.offset += seconds
}

// SetOffsetClock sets the offset from a wall-clock time such as "17:23:27"
// on the date of the active phase. It needs contact times and a phase.
func (t *Timeline) SetOffsetClock(clock string) error {
	if t.instants == nil {
		return fmt.Errorf("%w: clock-time offsets need contact times", ErrPrecondition)
	}
	if t.phase == "" {
		return fmt.Errorf("%w: phase hasn't been specified", ErrPrecondition)
	}
	offset, err := t.instants.ClockOffset(t.phase, clock)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}
	t.offset = offset
	return nil
}

// SetMinTimeStep sets the spacing added after every shot, in seconds.
func (t *Timeline) SetMinTimeStep(seconds float64) error {
	if !(seconds >= 0) {
		return fmt.Errorf("%w: min time step must be >= 0, got %v", ErrInvalidArgument, seconds)
	}
	t.minTimeStep = seconds
	return nil
}

// SetReleaseDuration sets the trigger length used for RELEASE rows, in seconds.
func (t *Timeline) SetReleaseDuration(seconds float64) error {
	if !(seconds > 0) {
		return fmt.Errorf("%w: release duration must be > 0, got %v", ErrInvalidArgument, seconds)
	}
	t.releaseDuration = seconds
	return nil
}

// Comment inserts a comment line at the current position.
func (t *Timeline) Comment(text string) {
	t.events = append(t.events, Annotation{Text: text})
}

// Banner inserts a message framed by two rules of dashes.
func (t *Timeline) Banner(message string) {
	rule := "#" + strings.Repeat("-", BannerWidth)
	t.Comment(rule)
	t.Comment("# " + message)
	t.Comment(rule)
}

func stripCommas(s string) string {
	return strings.ReplaceAll(s, ",", "")
}
