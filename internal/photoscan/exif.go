/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

package photoscan

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rwcarlsen/goexif/exif"

	"github.com/weegreenblobbie/eoscript/internal/exposure"
)

// ErrNoExif is returned for files without usable capture metadata.
var ErrNoExif = errors.New("no exif data")

// exifTimeLayout is the fixed layout of DateTimeOriginal.
const exifTimeLayout = "2006:01:02 15:04:05"

// ReadPhoto decodes the capture metadata of the image at path. Camera clocks
// carry no zone, so times are taken as UTC like the contact times.
func ReadPhoto(path string) (Photo, error) {
	f, err := os.Open(path)
	if err != nil {
		return Photo{}, err
	}
	defer f.Close()

	return decodePhoto(f, path)
}

func decodePhoto(r io.Reader, path string) (Photo, error) {
	x, err := exif.Decode(r)
	if x == nil || (err != nil && exif.IsCriticalError(err)) {
		return Photo{}, fmt.Errorf("%w: %s", ErrNoExif, path)
	}

	taken, err := takenAt(x)
	if err != nil {
		return Photo{}, fmt.Errorf("%w: %s: %v", ErrNoExif, path, err)
	}

	p := Photo{
		Path:     path,
		TakenAt:  taken,
		Camera:   stringTag(x, exif.Model),
		Exposure: "?",
	}
	if num, den, ok := ratTag(x, exif.ExposureTime); ok {
		if e, err := exposure.FromRatio(float64(num), float64(den)); err == nil {
			p.Exposure = e.String()
		}
	}
	if num, den, ok := ratTag(x, exif.FNumber); ok && den != 0 {
		p.FStop = float64(num) / float64(den)
	}
	if tag, err := x.Get(exif.ISOSpeedRatings); err == nil {
		if iso, err := tag.Int(0); err == nil {
			p.ISO = iso
		}
	}
	return p, nil
}

// takenAt combines DateTimeOriginal with its sub-second companion tag.
func takenAt(x *exif.Exif) (time.Time, error) {
	raw := stringTag(x, exif.DateTimeOriginal)
	if raw == "" {
		return time.Time{}, errors.New("missing DateTimeOriginal")
	}
	t, err := time.ParseInLocation(exifTimeLayout, strings.TrimSpace(raw), time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("DateTimeOriginal %q: %w", raw, err)
	}

	subsec := stringTag(x, exif.SubSecTimeOriginal)
	if subsec == "" {
		subsec = stringTag(x, exif.SubSecTime)
	}
	return t.Add(subsecond(subsec)), nil
}

// subsecond reads the digits of a SubSecTime tag as a decimal fraction:
// "5" is 0.5 s, "05" is 0.05 s.
func subsecond(digits string) time.Duration {
	digits = strings.TrimSpace(digits)
	if digits == "" {
		return 0
	}
	frac, err := strconv.ParseFloat("0."+digits, 64)
	if err != nil {
		return 0
	}
	return time.Duration(frac * float64(time.Second)).Round(time.Microsecond)
}

func stringTag(x *exif.Exif, name exif.FieldName) string {
	tag, err := x.Get(name)
	if err != nil {
		return ""
	}
	s, err := tag.StringVal()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(s)
}

func ratTag(x *exif.Exif, name exif.FieldName) (int64, int64, bool) {
	tag, err := x.Get(name)
	if err != nil {
		return 0, 0, false
	}
	num, den, err := tag.Rat2(0)
	if err != nil {
		return 0, 0, false
	}
	return num, den, true
}

func isPhotoFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jpg", ".jpeg", ".tif", ".tiff", ".nef", ".nrw", ".cr2", ".arw", ".dng", ".orf", ".rw2", ".pef":
		return true
	default:
		return false
	}
}
