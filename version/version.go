// Package version holds the release information of wanna. The values are
// set at build time:
//
//	go build -ldflags "-X github.com/peak/wanna/version.Version=v1.2.0 -X github.com/peak/wanna/version.GitCommit=abcdef0"
package version

import "strings"

var (
	// Version represents the git tag of a particular release.
	Version = "v0.0.0"

	// GitCommit represents git commit hash of a particular release.
	GitCommit = "dev"
)

// GetHumanVersion returns the version and the commit joined with a dash,
// e.g. v1.2.0-abcdef0.
func GetHumanVersion() string {
	version := Version
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}

	if GitCommit == "" {
		return version
	}
	return version + "-" + GitCommit
}
