// Package version reports the skillcheck build.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Set via ldflags, e.g.
// go build -ldflags="-X github.com/andywolf/skillcheck/internal/version.Version=v1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// build holds the resolved version fields.
type build struct {
	version string
	commit  string
	date    string
}

// resolve prefers ldflags values and falls back to the module build info
// recorded by "go install".
func resolve() build {
	b := build{version: Version, commit: Commit, date: BuildDate}

	info, ok := readBuildInfo()
	if !ok {
		return b
	}
	if b.version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.commit == "unknown" {
				b.commit = s.Value
			}
		case "vcs.time":
			if b.date == "unknown" {
				b.date = s.Value
			}
		}
	}
	return b
}

// Short returns the version string (e.g., "v1.2.3" or "dev").
func Short() string {
	return resolve().version
}

// Info returns a single-line version string,
// e.g. "skillcheck v1.2.3 (commit: abc1234, built: 2024-01-15T10:30:00Z, go: go1.24.7)".
func Info() string {
	b := resolve()
	commit := b.commit
	if len(commit) > 7 {
		commit = commit[:7]
	}
	return fmt.Sprintf("skillcheck %s (commit: %s, built: %s, go: %s)",
		b.version, commit, b.date, runtime.Version())
}

// Full returns a multi-line verbose version output.
func Full() string {
	b := resolve()
	return fmt.Sprintf(`skillcheck %s
  Commit:     %s
  Built:      %s
  Go version: %s
  OS/Arch:    %s/%s`,
		b.version, b.commit, b.date, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
