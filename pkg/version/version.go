// Package version exposes build metadata injected with -ldflags.
package version

import "fmt"

// Build metadata, overridden at link time:
//
//	go build -ldflags "-X github.com/jetsetgo/dispatchdesk/pkg/version.version=1.2.0"
//
//nolint:gochecknoglobals // Set by the linker.
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the release version.
func GetVersion() string {
	return version
}

// GetGitCommit returns the commit the binary was built from.
func GetGitCommit() string {
	return gitCommit
}

// GetBuildDate returns the build timestamp.
func GetBuildDate() string {
	return buildDate
}

// String returns the version line printed by --version.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", version, gitCommit, buildDate)
}

// UserAgent is the User-Agent header sent to the backend.
func UserAgent() string {
	return "dispatchdesk/" + version
}
