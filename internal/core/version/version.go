// Package version reports what build of a binary is running.
package version

import "runtime/debug"

// Stamped with -ldflags "-X scanwedge/internal/core/version.version=v1.2.0 -X ...commit=... -X ...date=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo identifies a binary
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the stamped build info for service. Fields that were not
// stamped fall back to what the go toolchain embedded, when present.
func Info(service string) BuildInfo {
	b := BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
	if bi, ok := debug.ReadBuildInfo(); ok {
		b = b.fill(bi)
	}
	return b
}

func (b BuildInfo) fill(bi *debug.BuildInfo) BuildInfo {
	if b.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		b.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch {
		case s.Key == "vcs.revision" && b.Commit == "none":
			b.Commit = s.Value
			if len(b.Commit) > 12 {
				b.Commit = b.Commit[:12]
			}
		case s.Key == "vcs.time" && b.Date == "unknown":
			b.Date = s.Value
		}
	}
	return b
}

// String renders a one-line banner such as "scanwedge-api dev (none, unknown)"
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}
