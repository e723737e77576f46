package version

import "testing"

func TestVersion(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if Version != "unknown" {
		t.Logf("Version is: %s (expected 'unknown' or version set via ldflags)", Version)
	}
}

func TestString(t *testing.T) {
	oldVersion, oldCommit, oldTime := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = oldVersion, oldCommit, oldTime })

	Version, GitCommit, BuildTime = "v1.2.0", "unknown", "unknown"
	if got := String(); got != "v1.2.0" {
		t.Errorf("String() = %q, want v1.2.0", got)
	}

	GitCommit, BuildTime = "abc123", "2025-01-01"
	if got, want := String(), "v1.2.0 (commit abc123, built 2025-01-01)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
