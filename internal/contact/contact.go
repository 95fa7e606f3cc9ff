/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package contact holds the eclipse contact times that anchor a shooting plan.
package contact

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

var (
	// ErrInvalidArgument covers unknown phase labels and malformed times.
	ErrInvalidArgument = errors.New("invalid contact argument")

	// ErrIncomplete is returned when only some contact times are supplied.
	ErrIncomplete = fmt.Errorf("%w: contact times must be all set or all empty", ErrInvalidArgument)

	// ErrOutOfOrder is returned when contact times are not strictly increasing.
	ErrOutOfOrder = fmt.Errorf("%w: contact times must satisfy C1 < C2 < MAX < C3 < C4", ErrInvalidArgument)
)

// Phase names one of the five contact instants.
type Phase string

const (
	C1  Phase = "C1"
	C2  Phase = "C2"
	MAX Phase = "MAX"
	C3  Phase = "C3"
	C4  Phase = "C4"
)

var phases = [...]Phase{C1, C2, MAX, C3, C4}

// Phases returns the contact labels in chronological order.
func Phases() []Phase {
	out := make([]Phase, len(phases))
	copy(out, phases[:])
	return out
}

// ParsePhase returns the canonical phase for s ("c2" -> C2).
func ParsePhase(s string) (Phase, error) {
	p := Phase(strings.ToUpper(strings.TrimSpace(s)))
	if p.index() < 0 {
		return "", fmt.Errorf("%w: phase %q, want one of C1, C2, MAX, C3, C4", ErrInvalidArgument, s)
	}
	return p, nil
}

func (p Phase) index() int {
	for i, q := range phases {
		if p == q {
			return i
		}
	}
	return -1
}

// Instants are the five contact times of one eclipse, strictly increasing.
type Instants struct {
	times [len(phases)]time.Time
}

// New validates the ordering of already parsed contact times.
func New(c1, c2, max, c3, c4 time.Time) (*Instants, error) {
	in := &Instants{times: [len(phases)]time.Time{c1, c2, max, c3, c4}}
	for i := 1; i < len(in.times); i++ {
		if !in.times[i-1].Before(in.times[i]) {
			return nil, fmt.Errorf("%w: %s (%s) is not before %s (%s)",
				ErrOutOfOrder,
				phases[i-1], in.times[i-1].Format(time.RFC3339Nano),
				phases[i], in.times[i].Format(time.RFC3339Nano))
		}
	}
	return in, nil
}

// Parse reads five contact times in any common textual date format. Times
// without a zone are taken as UTC. When every argument is empty Parse
// returns nil and no error, meaning the plan uses relative offsets only.
func Parse(c1, c2, max, c3, c4 string) (*Instants, error) {
	raw := [len(phases)]string{c1, c2, max, c3, c4}

	set := 0
	for _, s := range raw {
		if strings.TrimSpace(s) != "" {
			set++
		}
	}
	switch set {
	case 0:
		return nil, nil
	case len(raw):
	default:
		return nil, fmt.Errorf("%w: got %d of %d", ErrIncomplete, set, len(raw))
	}

	var parsed [len(phases)]time.Time
	for i, s := range raw {
		t, err := dateparse.ParseIn(strings.TrimSpace(s), time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: %s time %q: %v", ErrInvalidArgument, phases[i], s, err)
		}
		parsed[i] = t
	}
	return New(parsed[0], parsed[1], parsed[2], parsed[3], parsed[4])
}

// At returns the instant of phase p.
func (in *Instants) At(p Phase) (time.Time, error) {
	i := p.index()
	if i < 0 {
		return time.Time{}, fmt.Errorf("%w: phase %q", ErrInvalidArgument, p)
	}
	return in.times[i], nil
}

// Span is the elapsed time between two consecutive contacts.
type Span struct {
	From     Phase
	To       Phase
	Duration time.Duration
}

// Spans returns C1:C2, C2:MAX, MAX:C3 and C3:C4.
func (in *Instants) Spans() []Span {
	out := make([]Span, 0, len(phases)-1)
	for i := 1; i < len(phases); i++ {
		out = append(out, Span{
			From:     phases[i-1],
			To:       phases[i],
			Duration: in.times[i].Sub(in.times[i-1]),
		})
	}
	return out
}

var clockLayouts = []string{
	"15:04:05",
	"3:04:05 PM",
	"3:04:05PM",
	"15:04",
	"3:04 PM",
	"3:04PM",
}

// ClockOffset resolves a wall-clock time such as "17:23:27", "17:23:27.5"
// or "1:04:07 PM" on the calendar date of phase p and returns its offset
// from that contact in seconds.
func (in *Instants) ClockOffset(p Phase, clock string) (float64, error) {
	anchor, err := in.At(p)
	if err != nil {
		return 0, err
	}

	value := strings.ToUpper(strings.TrimSpace(clock))
	for _, layout := range clockLayouts {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		at := time.Date(anchor.Year(), anchor.Month(), anchor.Day(),
			t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), anchor.Location())
		return at.Sub(anchor).Seconds(), nil
	}
	return 0, fmt.Errorf("%w: clock time %q, want HH:MM:SS[.f] [AM|PM]", ErrInvalidArgument, clock)
}
