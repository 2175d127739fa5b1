package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFillFrom(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}

	tests := []struct {
		name string
		in   Info
		want Info
	}{
		{
			name: "defaults filled",
			in:   Info{Version: "dev", Commit: "none", Date: "unknown"},
			want: Info{Version: "v0.3.1", Commit: "abc123", Date: "2026-01-02T03:04:05Z", Dirty: true},
		},
		{
			name: "ldflags win",
			in:   Info{Version: "v1.0.0", Commit: "fff", Date: "today"},
			want: Info{Version: "v1.0.0", Commit: "fff", Date: "today", Dirty: true},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fillFrom(tt.in, bi); got != tt.want {
				t.Errorf("fillFrom() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFillFromDevelBuild(t *testing.T) {
	got := fillFrom(Info{Version: "dev", Commit: "none", Date: "unknown"}, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if got.Version != "dev" {
		t.Errorf("Version = %q, want dev", got.Version)
	}
}

func TestInfoString(t *testing.T) {
	s := Info{Version: "v1", Commit: "abc", Date: "d", Dirty: true}.String()
	for _, want := range []string{"version: v1", "commit: abc (modified)", "built: d"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
