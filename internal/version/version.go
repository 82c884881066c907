// Package version holds build metadata injected via ldflags:
//
//	-X github.com/kailas-cloud/plagcheck/internal/version.Version=v1.2.0
package version

import (
	"fmt"
	"runtime"
)

//nolint:revive // Set via ldflags at build time.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info is a snapshot of the build metadata.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// Get returns the current build metadata.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
	}
}

// String formats the build as "plagcheck dev (unknown, built unknown)".
func (i Info) String() string {
	return fmt.Sprintf("plagcheck %s (%s, built %s)", i.Version, i.Commit, i.Date)
}
