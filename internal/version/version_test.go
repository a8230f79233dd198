package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	oldCommit, oldVersion := Commit, Version
	t.Cleanup(func() { Commit, Version = oldCommit, oldVersion })

	Version = "1.2.0"
	Commit = "0123456789abcdef"
	if got := String(); !strings.HasPrefix(got, "fleetdesk 1.2.0 (commit: 0123456,") {
		t.Errorf("unexpected version string %q", got)
	}

	Commit = "abc"
	if got := String(); !strings.Contains(got, "commit: abc,") {
		t.Errorf("short commit should be kept whole, got %q", got)
	}

	Commit = ""
	if got := String(); strings.Contains(got, "commit: ,") {
		t.Errorf("empty commit should fall back, got %q", got)
	}
}
