/*
Copyright (C) 2026 The eoscript Authors

SPDX-License-Identifier: AGPL-3.0-or-later
*/

// Package version provides build version information.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Version is the current version of eoscript.
// This is set at build time via ldflags:
//
//	-X github.com/weegreenblobbie/eoscript/internal/version.Version=X.Y.Z
var Version = "0.3.0"

// Info describes the running binary.
type Info struct {
	Version   string
	GoVersion string
	Revision  string
	Modified  bool
}

// Current returns the version and whatever VCS details the toolchain
// stamped into the binary.
func Current() Info {
	info := Info{
		Version:   strings.TrimPrefix(Version, "v"),
		GoVersion: runtime.Version(),
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				info.Revision = s.Value
			case "vcs.modified":
				info.Modified = s.Value == "true"
			}
		}
	}
	return info
}

// String formats the info on one line, e.g. "eoscript 0.3.0 (1a2b3c4d, go1.24.0)".
func (i Info) String() string {
	details := []string{i.GoVersion}
	if i.Revision != "" {
		rev := i.Revision
		if len(rev) > 8 {
			rev = rev[:8]
		}
		if i.Modified {
			rev += "-dirty"
		}
		details = append([]string{rev}, details...)
	}
	return fmt.Sprintf("eoscript %s (%s)", i.Version, strings.Join(details, ", "))
}
