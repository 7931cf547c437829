package version

import (
	"runtime/debug"
	"testing"
)

func TestInfo(t *testing.T) {
	b := Info("scanwedge-replay")
	if b.Service != "scanwedge-replay" || b.Version == "" || b.Commit == "" {
		t.Fatalf("info = %+v", b)
	}
}

func TestFill(t *testing.T) {
	stamped := BuildInfo{Service: "scanwedge-api", Version: "dev", Commit: "none", Date: "unknown"}
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef0123"},
			{Key: "vcs.time", Value: "2026-05-01T09:00:00Z"},
			{Key: "GOOS", Value: "linux"},
		},
	}
	got := stamped.fill(bi)
	if got.String() != "scanwedge-api v0.4.1 (0123456789ab, 2026-05-01T09:00:00Z)" {
		t.Fatalf("filled = %s", got)
	}

	ld := BuildInfo{Service: "x", Version: "v1.0.0", Commit: "abc", Date: "2026-01-01"}
	if ld.fill(bi) != ld {
		t.Fatal("ldflags values must win over embedded build info")
	}
	if dev := stamped.fill(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}); dev.Version != "dev" {
		t.Fatalf("devel build = %+v", dev)
	}
}
