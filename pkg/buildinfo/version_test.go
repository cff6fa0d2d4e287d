package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	tests := []struct {
		name        string
		version     string
		bi          debug.BuildInfo
		wantVersion string
		wantCommit  string
	}{
		{
			name:        "module version",
			version:     "dev",
			bi:          debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}},
			wantVersion: "v0.3.0",
			wantCommit:  "none",
		},
		{
			name:        "devel build",
			version:     "dev",
			bi:          debug.BuildInfo{Main: debug.Module{Version: "(devel)"}, Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}}},
			wantVersion: "dev",
			wantCommit:  "abc123",
		},
		{
			name:        "ldflags win",
			version:     "v1.0.0",
			bi:          debug.BuildInfo{Main: debug.Module{Version: "v0.3.0"}},
			wantVersion: "v1.0.0",
			wantCommit:  "none",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldV, oldC, oldD := Version, Commit, Date
			defer func() { Version, Commit, Date = oldV, oldC, oldD }()
			Version, Commit, Date = tt.version, "none", "unknown"

			fill(&tt.bi)
			if Version != tt.wantVersion || Commit != tt.wantCommit {
				t.Errorf("fill() = %s, %s, want %s, %s", Version, Commit, tt.wantVersion, tt.wantCommit)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	if got := Template(); !strings.HasPrefix(got, "{{.Name}} version "+Version) {
		t.Errorf("Template() = %q", got)
	}
	if got := String(); !strings.Contains(got, "commit: "+Commit) {
		t.Errorf("String() = %q", got)
	}
}
