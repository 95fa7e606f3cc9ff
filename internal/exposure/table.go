/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package exposure

import (
	"math"
	"sort"
	"strconv"
)

// speed is one marked shutter speed, kept as the numerator/denominator pair
// printed on camera dials (1/2.5 s, 1.3 s, ...).
type speed struct {
	num float64
	den float64
}

func (s speed) seconds() float64 { return s.num / s.den }

func (s speed) String() string {
	out := strconv.FormatFloat(s.num, 'f', -1, 64)
	if s.den != 1 {
		out += "/" + strconv.FormatFloat(s.den, 'f', -1, 64)
	}
	return out
}

// standardSpeeds is the third-stop scale from 1/8000 s to 30 s, ascending.
var standardSpeeds = []speed{
	{1, 8000}, {1, 6400}, {1, 5000},
	{1, 4000}, {1, 3200}, {1, 2500},
	{1, 2000}, {1, 1600}, {1, 1250},
	{1, 1000}, {1, 800}, {1, 640},
	{1, 500}, {1, 400}, {1, 320},
	{1, 250}, {1, 200}, {1, 160},
	{1, 125}, {1, 100}, {1, 80},
	{1, 60}, {1, 50}, {1, 40},
	{1, 30}, {1, 25}, {1, 20},
	{1, 15}, {1, 13}, {1, 10},
	{1, 8}, {1, 6}, {1, 5},
	{1, 4}, {1, 3}, {1, 2.5},
	{1, 2}, {1, 1.6}, {1, 1.3},
	{1, 1}, {1.3, 1}, {1.6, 1},
	{2, 1}, {2.5, 1}, {3, 1},
	{4, 1}, {5, 1}, {6, 1},
	{8, 1}, {10, 1}, {13, 1},
	{15, 1}, {20, 1}, {25, 1},
	{30, 1},
}

var standardSeconds = func() []float64 {
	out := make([]float64, len(standardSpeeds))
	for i, s := range standardSpeeds {
		out[i] = s.seconds()
	}
	return out
}()

// lookup returns the standard speed closest to t by absolute difference.
// Exact ties go to the longer neighbour; values outside the scale clamp.
func lookup(t float64) speed {
	last := len(standardSeconds) - 1
	if t <= standardSeconds[0] {
		return standardSpeeds[0]
	}
	if t >= standardSeconds[last] {
		return standardSpeeds[last]
	}
	hi := sort.SearchFloat64s(standardSeconds, t)
	lo := hi - 1
	if math.Abs(t-standardSeconds[lo]) < math.Abs(t-standardSeconds[hi]) {
		return standardSpeeds[lo]
	}
	return standardSpeeds[hi]
}

// Standard returns the standard shutter speed scale, shortest first.
func Standard() []Exposure {
	out := make([]Exposure, len(standardSeconds))
	for i, s := range standardSeconds {
		out[i] = Exposure{seconds: s}
	}
	return out
}
