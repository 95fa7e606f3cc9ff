/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package timeline

import (
	"fmt"

	"github.com/weegreenblobbie/eoscript/internal/contact"
	"github.com/weegreenblobbie/eoscript/internal/exposure"
)

// Command is the action column of a plan row.
type Command string

const (
	// CommandTakePic transmits settings and releases the shutter.
	CommandTakePic Command = "TAKEPIC"
	// CommandRelease only triggers the shutter with settings already on the camera.
	CommandRelease Command = "RELEASE"
	// CommandSetExposure pushes settings without taking a picture.
	CommandSetExposure Command = "SETEXP"
)

// Quality is the image quality column.
type Quality string

const (
	QualityRaw         Quality = "RAW"       // RAW only
	QualityRawFineJPEG Quality = "RAW+F-JPG" // RAW + fine JPEG

	DefaultQuality = QualityRawFineJPEG
)

const (
	incrementalYes = "Y"
	incrementalNo  = "N"

	sendExposureComment = "sending all camera exposure settings via USB"
)

// ParseQuality validates a quality name.
func ParseQuality(s string) (Quality, error) {
	switch q := Quality(s); q {
	case QualityRaw, QualityRawFineJPEG:
		return q, nil
	default:
		return "", fmt.Errorf("%w: quality %q, want RAW or RAW+F-JPG", ErrInvalidArgument, s)
	}
}

// Settings is the camera state copied into every emitted row.
type Settings struct {
	Camera       string
	FStop        float64
	ISO          int
	Exposure     exposure.Exposure
	MirrorLockUp float64
	Incremental  string
	Command      Command
	Comment      string
	Quality      Quality
}

// Event is one entry of a plan, in the order it was added.
type Event interface {
	event()
}

// Capture takes a picture with a full settings row.
type Capture struct {
	Offset   float64
	Phase    contact.Phase
	Settings Settings
}

// ReleaseOnly triggers the shutter with the settings pushed by a prior SetExposure.
type ReleaseOnly struct {
	Offset          float64
	Phase           contact.Phase
	Camera          string
	ReleaseDuration float64
	Comment         string
}

// SetExposure transmits settings without taking a picture.
type SetExposure struct {
	Offset   float64
	Phase    contact.Phase
	Settings Settings
}

// Annotation is a comment line kept verbatim in the output.
type Annotation struct {
	Text string
}

func (Capture) event()     {}
func (ReleaseOnly) event() {}
func (SetExposure) event() {}
func (Annotation) event()  {}
