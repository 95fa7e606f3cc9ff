/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package planfile

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/weegreenblobbie/eoscript/internal/contact"
	"github.com/weegreenblobbie/eoscript/internal/exposure"
	"github.com/weegreenblobbie/eoscript/internal/timeline"
)

// Build replays the plan onto a new timeline. Values set in the plan
// override those in defaults.
func (p *Plan) Build(defaults timeline.Options, logger zerolog.Logger) (*timeline.Timeline, error) {
	log := logger.With().Str("component", "planfile").Str("plan", p.Name).Logger()

	in, err := contact.Parse(p.Instants.C1, p.Instants.C2, p.Instants.Max, p.Instants.C3, p.Instants.C4)
	if err != nil {
		return nil, fmt.Errorf("%w: instants: %w", ErrInvalidPlan, err)
	}

	opts := defaults
	opts.Instants = in
	if p.MinTimeStep != 0 {
		opts.MinTimeStep = p.MinTimeStep
	}
	if p.ReleaseDuration != 0 {
		opts.ReleaseDuration = p.ReleaseDuration
	}
	if p.Quality != "" {
		opts.Quality = timeline.Quality(p.Quality)
	}

	tl, err := timeline.New(opts, logger)
	if err != nil {
		return nil, err
	}

	if p.Camera != "" {
		tl.SetCamera(p.Camera)
	}
	if p.FStop != 0 {
		if err := tl.SetFStop(p.FStop); err != nil {
			return nil, err
		}
	}
	if p.ISO != 0 {
		if err := tl.SetISO(p.ISO); err != nil {
			return nil, err
		}
	}

	for _, step := range p.Steps {
		apply := appliers[step.Kind]
		if err := apply(tl, step.value); err != nil {
			return nil, fmt.Errorf("line %d: %s: %w", step.Line, step.Kind, err)
		}
		log.Debug().
			Int("line", step.Line).
			Str("step", step.Kind).
			Float64("offset", tl.Offset()).
			Msg("step applied")
	}

	log.Info().
		Int("steps", len(p.Steps)).
		Int("events", len(tl.Events())).
		Bool("contact_times", in != nil).
		Msg("plan built")
	return tl, nil
}

type applier func(tl *timeline.Timeline, value *yaml.Node) error

var appliers = map[string]applier{
	"banner":           text(func(tl *timeline.Timeline, s string) error { tl.Banner(s); return nil }),
	"comment":          text(func(tl *timeline.Timeline, s string) error { tl.Comment(s); return nil }),
	"note":             text(func(tl *timeline.Timeline, s string) error { tl.SetComment(s); return nil }),
	"camera":           text(func(tl *timeline.Timeline, s string) error { tl.SetCamera(s); return nil }),
	"phase":            text((*timeline.Timeline).SetPhase),
	"incremental":      text((*timeline.Timeline).SetIncremental),
	"release":          text(applyRelease),
	"fstop":            number((*timeline.Timeline).SetFStop),
	"advance":          number(func(tl *timeline.Timeline, v float64) error { tl.AdvanceOffset(v); return nil }),
	"min_time_step":    number((*timeline.Timeline).SetMinTimeStep),
	"release_duration": number((*timeline.Timeline).SetReleaseDuration),
	"iso":              applyISO,
	"exposure":         applyExposure,
	"offset":           applyOffset,
	"capture":          applyCapture,
	"bracket":          applyBracket,
	"send_exposure":    applySendExposure,
	"burst":            applyBurst,
}

func text(fn func(*timeline.Timeline, string) error) applier {
	return func(tl *timeline.Timeline, value *yaml.Node) error {
		var s string
		if err := decodeScalar(value, &s); err != nil {
			return err
		}
		return fn(tl, s)
	}
}

func number(fn func(*timeline.Timeline, float64) error) applier {
	return func(tl *timeline.Timeline, value *yaml.Node) error {
		var v float64
		if err := decodeScalar(value, &v); err != nil {
			return err
		}
		return fn(tl, v)
	}
}

func decodeScalar(value *yaml.Node, target any) error {
	if value.Kind != yaml.ScalarNode || value.Tag == "!!null" {
		return fmt.Errorf("%w: expected a value", ErrInvalidPlan)
	}
	if err := value.Decode(target); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	return nil
}

func applyRelease(tl *timeline.Timeline, s string) error {
	return tl.SetReleaseCommand(timeline.Command(strings.ToUpper(strings.TrimSpace(s))))
}

func applyISO(tl *timeline.Timeline, value *yaml.Node) error {
	var iso int
	if err := decodeScalar(value, &iso); err != nil {
		return err
	}
	return tl.SetISO(iso)
}

func applyExposure(tl *timeline.Timeline, value *yaml.Node) error {
	var e exposure.Exposure
	if err := decodeScalar(value, &e); err != nil {
		return err
	}
	return tl.SetExposure(e)
}

// applyOffset takes seconds (-15, 2.5) or a wall-clock time ("17:23:27").
func applyOffset(tl *timeline.Timeline, value *yaml.Node) error {
	var s string
	if err := decodeScalar(value, &s); err != nil {
		return err
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
		tl.SetOffset(v)
		return nil
	}
	return tl.SetOffsetClock(s)
}

type captureStep struct {
	Count    int                `yaml:"count"`
	At       clockList          `yaml:"at"`
	Exposure *exposure.Exposure `yaml:"exposure"`
}

// clockList accepts one clock time or a list of them.
type clockList []string

func (c *clockList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*c = clockList{value.Value}
		return nil
	}
	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	*c = list
	return nil
}

// applyCapture takes nothing, a count, or a mapping with count, at and
// exposure. "at" and a count above one are mutually exclusive.
func applyCapture(tl *timeline.Timeline, value *yaml.Node) error {
	step := captureStep{Count: 1}
	switch {
	case value.Tag == "!!null":
	case value.Kind == yaml.ScalarNode:
		if err := value.Decode(&step.Count); err != nil {
			return fmt.Errorf("%w: capture count: %v", ErrInvalidPlan, err)
		}
	case value.Kind == yaml.MappingNode:
		if err := value.Decode(&step); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPlan, err)
		}
	default:
		return fmt.Errorf("%w: capture must be empty, a count or a mapping", ErrInvalidPlan)
	}

	if len(step.At) > 0 && step.Count > 1 {
		return fmt.Errorf("%w: capture with both at and count %d is ambiguous", ErrInvalidPlan, step.Count)
	}
	if step.Count < 1 {
		return fmt.Errorf("%w: capture count must be >= 1, got %d", ErrInvalidPlan, step.Count)
	}

	shoot := tl.Capture
	if step.Exposure != nil {
		e := *step.Exposure
		shoot = func() error { return tl.CaptureWith(e) }
	}

	if len(step.At) > 0 {
		for _, clock := range step.At {
			if err := tl.SetOffsetClock(clock); err != nil {
				return err
			}
			if err := shoot(); err != nil {
				return err
			}
		}
		return nil
	}
	for i := 0; i < step.Count; i++ {
		if err := shoot(); err != nil {
			return err
		}
	}
	return nil
}

type bracketStep struct {
	Count  int     `yaml:"count"`
	Step   float64 `yaml:"step"`
	Repeat int     `yaml:"repeat"`
}

// applyBracket takes a size or a mapping with count, step and repeat.
func applyBracket(tl *timeline.Timeline, value *yaml.Node) error {
	step := bracketStep{Step: 1, Repeat: 1}
	switch value.Kind {
	case yaml.ScalarNode:
		if err := value.Decode(&step.Count); err != nil {
			return fmt.Errorf("%w: bracket size: %v", ErrInvalidPlan, err)
		}
	case yaml.MappingNode:
		if err := value.Decode(&step); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidPlan, err)
		}
	default:
		return fmt.Errorf("%w: bracket must be a size or a mapping", ErrInvalidPlan)
	}
	if step.Repeat < 1 {
		return fmt.Errorf("%w: bracket repeat must be >= 1, got %d", ErrInvalidPlan, step.Repeat)
	}

	for i := 0; i < step.Repeat; i++ {
		if err := tl.CaptureBracket(step.Count, step.Step); err != nil {
			return err
		}
	}
	return nil
}

func applySendExposure(tl *timeline.Timeline, value *yaml.Node) error {
	if value.Tag != "!!null" {
		return fmt.Errorf("%w: send_exposure takes no value", ErrInvalidPlan)
	}
	return tl.SendExposure()
}

type burstStep struct {
	Count  int     `yaml:"count"`
	Settle float64 `yaml:"settle"`
}

// applyBurst pushes the exposure once, waits settle seconds for the camera,
// then fires count releases.
func applyBurst(tl *timeline.Timeline, value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("%w: burst must be a mapping with count and settle", ErrInvalidPlan)
	}
	var step burstStep
	if err := value.Decode(&step); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPlan, err)
	}
	if step.Count < 1 {
		return fmt.Errorf("%w: burst count must be >= 1, got %d", ErrInvalidPlan, step.Count)
	}
	if step.Settle < 0 {
		return fmt.Errorf("%w: burst settle must be >= 0, got %v", ErrInvalidPlan, step.Settle)
	}

	if err := tl.SendExposure(); err != nil {
		return err
	}
	tl.AdvanceOffset(step.Settle)
	for i := 0; i < step.Count; i++ {
		if err := tl.Capture(); err != nil {
			return err
		}
	}
	return nil
}
