package buildinfo

import (
	"fmt"

	"github.com/wtask/duplex/pkg/semver"
)

// Overridden at link time with -ldflags "-X github.com/wtask/duplex/internal/buildinfo.Version=...".
var (
	Version = "0.1.0-dev"
	Commit  = "none"
	Date    = "unknown"
)

// SemVer - returns parsed Version, unparsable value is reported as 0.0.0 with Version in pre-release.
func SemVer() semver.V {
	v, err := semver.Parse(Version)
	if err != nil {
		return semver.V{PreRelease: Version}
	}
	return v
}

func String() string {
	return fmt.Sprintf("duplex %s (commit=%s, date=%s)", SemVer(), Commit, Date)
}
