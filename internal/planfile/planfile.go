/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package planfile loads declarative shooting plans from YAML and replays
// them onto a timeline.
//
// A plan has optional contact times, initial camera settings and an ordered
// list of steps. Each step is a single-key mapping:
//
//	instants:
//	  c1: 2024/04/08 17:21:27.5
//	  ...
//	camera: Nikon Z7
//	fstop: 8
//	steps:
//	  - banner: C1 -> C2 partials
//	  - phase: C1
//	  - iso: 800
//	  - exposure: 1/400
//	  - capture: {at: ["17:23:27", "17:31:35"]}
//	  - bracket: {count: 5, step: 1}
package planfile

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidPlan is returned for documents that are not valid plans.
var ErrInvalidPlan = errors.New("invalid plan")

// Instants are the optional contact times, in any common date format.
type Instants struct {
	C1  string `yaml:"c1"`
	C2  string `yaml:"c2"`
	Max string `yaml:"max"`
	C3  string `yaml:"c3"`
	C4  string `yaml:"c4"`
}

// Plan is a parsed plan document.
type Plan struct {
	Name            string   `yaml:"name"`
	Instants        Instants `yaml:"instants"`
	MinTimeStep     float64  `yaml:"min_time_step"`
	ReleaseDuration float64  `yaml:"release_duration"`
	Quality         string   `yaml:"quality"`
	Camera          string   `yaml:"camera"`
	FStop           float64  `yaml:"fstop"`
	ISO             int      `yaml:"iso"`
	Steps           []Step   `yaml:"steps"`
}

// Step is one entry of the steps list. The value node is decoded when the
// step is applied, according to Kind.
type Step struct {
	Kind  string
	Line  int
	value *yaml.Node
}

// UnmarshalYAML requires a mapping with exactly one key.
func (s *Step) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: line %d: step must be a mapping like \"capture: 3\"", ErrInvalidPlan, node.Line)
	}
	if len(node.Content) != 2 {
		return fmt.Errorf("%w: line %d: step must have exactly one key, got %d", ErrInvalidPlan, node.Line, len(node.Content)/2)
	}

	key, value := node.Content[0], node.Content[1]
	if _, ok := appliers[key.Value]; !ok {
		return fmt.Errorf("%w: line %d: unknown step %q", ErrInvalidPlan, key.Line, key.Value)
	}
	s.Kind = key.Value
	s.Line = key.Line
	s.value = value
	return nil
}

// Parse decodes a plan document.
func Parse(data []byte) (*Plan, error) {
	var p Plan
	if err := yaml.Unmarshal(data, &p); err != nil {
		if errors.Is(err, ErrInvalidPlan) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	if len(p.Steps) == 0 {
		return nil, fmt.Errorf("%w: no steps", ErrInvalidPlan)
	}
	return &p, nil
}

// Load reads and parses the plan at path.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan: %w", err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}
