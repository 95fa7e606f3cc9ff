/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package exposure

import (
	"fmt"
	"strconv"
	"strings"
)

// Coerce converts a loosely typed exposure (plan files, CLI arguments) into
// an Exposure. Numbers are seconds; strings may be "1/400", "2.5" or "30".
func Coerce(v any) (Exposure, error) {
	switch x := v.(type) {
	case Exposure:
		if x.IsZero() {
			return Exposure{}, fmt.Errorf("%w: unset exposure", ErrInvalidArgument)
		}
		return x, nil
	case *Exposure:
		if x == nil {
			return Exposure{}, fmt.Errorf("%w: nil exposure", ErrInvalidArgument)
		}
		return Coerce(*x)
	case int:
		return FromSeconds(float64(x))
	case int8:
		return FromSeconds(float64(x))
	case int16:
		return FromSeconds(float64(x))
	case int32:
		return FromSeconds(float64(x))
	case int64:
		return FromSeconds(float64(x))
	case uint:
		return FromSeconds(float64(x))
	case uint8:
		return FromSeconds(float64(x))
	case uint16:
		return FromSeconds(float64(x))
	case uint32:
		return FromSeconds(float64(x))
	case uint64:
		return FromSeconds(float64(x))
	case float32:
		return FromSeconds(float64(x))
	case float64:
		return FromSeconds(x)
	case string:
		return Parse(x)
	default:
		return Exposure{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidArgument, v)
	}
}

// Parse reads "N" or "N/D" seconds.
func Parse(s string) (Exposure, error) {
	s = strings.TrimSpace(s)
	num, den, isRatio := strings.Cut(s, "/")
	n, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return Exposure{}, fmt.Errorf("%w: %q", ErrInvalidArgument, s)
	}
	if !isRatio {
		return FromSeconds(n)
	}
	d, err := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err != nil {
		return Exposure{}, fmt.Errorf("%w: %q", ErrInvalidArgument, s)
	}
	return FromRatio(n, d)
}
