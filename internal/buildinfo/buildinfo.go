// Package buildinfo holds version variables set through -ldflags.
package buildinfo

import "fmt"

// Overridden by -ldflags "-X github.com/go-ports/gameshelf/internal/buildinfo.Version=..." at release time.
var (
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// String formats the build information on a single line.
func String() string {
	return fmt.Sprintf("gameshelf %s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
