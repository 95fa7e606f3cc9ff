/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package exposure implements shutter durations with stop arithmetic and
// rendering onto the standard third-stop shutter speed scale.
package exposure

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInvalidArgument indicates a non-positive or non-numeric exposure input.
	ErrInvalidArgument = errors.New("invalid exposure")

	// ErrDivisionByZero is returned by Divide for a zero denominator.
	ErrDivisionByZero = errors.New("exposure division by zero")
)

// Exposure is a positive shutter duration in seconds.
//
// Values are immutable: every arithmetic method returns a new Exposure.
// The zero value is not a valid exposure and reports IsZero.
type Exposure struct {
	seconds float64
}

// FromRatio returns numerator/denominator seconds, e.g. FromRatio(1, 400).
func FromRatio(numerator, denominator float64) (Exposure, error) {
	if !positive(numerator) {
		return Exposure{}, fmt.Errorf("%w: numerator must be > 0, got %v", ErrInvalidArgument, numerator)
	}
	if !positive(denominator) {
		return Exposure{}, fmt.Errorf("%w: denominator must be > 0, got %v", ErrInvalidArgument, denominator)
	}
	return FromSeconds(numerator / denominator)
}

// FromSeconds returns an exposure of v seconds.
func FromSeconds(v float64) (Exposure, error) {
	if !positive(v) || math.IsInf(v, 1) {
		return Exposure{}, fmt.Errorf("%w: duration must be > 0, got %v", ErrInvalidArgument, v)
	}
	return Exposure{seconds: v}, nil
}

// MustRatio is FromRatio for literals known to be valid. It panics on error.
func MustRatio(numerator, denominator float64) Exposure {
	e, err := FromRatio(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return e
}

// MustSeconds is FromSeconds for literals known to be valid. It panics on error.
func MustSeconds(v float64) Exposure {
	e, err := FromSeconds(v)
	if err != nil {
		panic(err)
	}
	return e
}

// Seconds returns the raw duration in seconds.
func (e Exposure) Seconds() float64 { return e.seconds }

// Duration returns the exposure as a time.Duration.
func (e Exposure) Duration() time.Duration {
	return time.Duration(e.seconds * float64(time.Second))
}

// IsZero reports whether e is the unset zero value.
func (e Exposure) IsZero() bool { return e.seconds == 0 }

// AddStops lengthens the exposure by n stops of light; each whole stop
// doubles the duration. Negative n shortens it.
//
// In exposure-value terms this is ev = log2(1/t), ev -= n, t = 1/2^ev,
// which reduces to t * 2^n. Extreme n can overflow to +Inf or underflow
// to zero; pass the result through FromSeconds when n is not trusted.
func (e Exposure) AddStops(n float64) Exposure {
	return Exposure{seconds: e.seconds * math.Exp2(n)}
}

// SubtractStops shortens the exposure by n stops of light.
func (e Exposure) SubtractStops(n float64) Exposure {
	return e.AddStops(-n)
}

// Divide rescales the duration directly, so MustSeconds(1).Divide(400) is
// 1/400 s. This is not a stop computation.
func (e Exposure) Divide(denominator float64) (Exposure, error) {
	if denominator == 0 {
		return Exposure{}, ErrDivisionByZero
	}
	return FromSeconds(e.seconds / denominator)
}

// Compare orders exposures by duration, returning -1, 0 or +1.
func (e Exposure) Compare(other Exposure) int {
	switch {
	case e.seconds < other.seconds:
		return -1
	case e.seconds > other.seconds:
		return 1
	default:
		return 0
	}
}

// Less reports whether e is shorter than other.
func (e Exposure) Less(other Exposure) bool {
	return e.seconds < other.seconds
}

// Nearest snaps e onto the standard shutter speed scale.
func (e Exposure) Nearest() Exposure {
	return Exposure{seconds: lookup(e.seconds).seconds()}
}

// String renders the nearest standard shutter speed, "1/400" or "30".
func (e Exposure) String() string {
	return lookup(e.seconds).String()
}

func positive(v float64) bool {
	return v > 0 && !math.IsNaN(v)
}
