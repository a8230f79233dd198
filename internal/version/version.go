// Package version reports the build identity of the fleetdesk binary.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X github.com/example/fleetdesk/internal/version.Commit=...".
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = "unknown"
)

// String formats the version line shown by `fleetdesk --version`.
func String() string {
	return fmt.Sprintf("fleetdesk %s (commit: %s, built: %s)", Version, revision(), BuildTime)
}

// revision prefers the ldflags commit and falls back to the VCS stamp of the module build.
func revision() string {
	rev := Commit
	if rev == "" {
		rev = "unknown"
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" && s.Value != "" {
					rev = s.Value
				}
			}
		}
	}
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
