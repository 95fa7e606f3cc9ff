package version

import (
	"strings"
	"testing"
)

func TestInfoString(t *testing.T) {
	cases := []struct {
		info Info
		want string
	}{
		{Info{Version: "1.2.3", GoVersion: "go1.24.0"}, "eoscript 1.2.3 (go1.24.0)"},
		{Info{Version: "1.2.3", GoVersion: "go1.24.0", Revision: "0123456789abcdef"}, "eoscript 1.2.3 (01234567, go1.24.0)"},
		{Info{Version: "1.2.3", GoVersion: "go1.24.0", Revision: "abc", Modified: true}, "eoscript 1.2.3 (abc-dirty, go1.24.0)"},
	}
	for _, tc := range cases {
		if got := tc.info.String(); got != tc.want {
			t.Fatalf("String() = %q, want %q", got, tc.want)
		}
	}
}

func TestCurrentStripsPrefix(t *testing.T) {
	old := Version
	Version = "v9.9.9"
	t.Cleanup(func() { Version = old })

	info := Current()
	if info.Version != "9.9.9" {
		t.Fatalf("Version = %q, want 9.9.9", info.Version)
	}
	if !strings.HasPrefix(info.GoVersion, "go") && !strings.HasPrefix(info.GoVersion, "devel") {
		t.Fatalf("GoVersion = %q", info.GoVersion)
	}
}
