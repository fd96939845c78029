// Package version reports the build version of storeview.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Set at build time with -ldflags "-X github.com/rshade/storeview/pkg/version.version=...".
//
//nolint:gochecknoglobals // Overridden by the linker.
var (
	version   = "0.1.0-dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// GetVersion returns the version string.
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

// Parse returns the version as a semantic version.
func Parse() (*semver.Version, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", version, err)
	}
	return v, nil
}

// IsDevelopment reports whether this is a pre-release build.
func IsDevelopment() bool {
	v, err := Parse()
	if err != nil {
		return true
	}
	return v.Prerelease() != ""
}

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("storeview %s (commit %s, built %s, %s/%s)",
		version, gitCommit, buildDate, runtime.GOOS, runtime.GOARCH)
}
