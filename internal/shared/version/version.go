// Package version carries the build metadata and semantic version helpers.
package version

import (
	"runtime"
	"strings"

	"golang.org/x/mod/semver"
)

// Set at build time via -ldflags "-X banking/internal/shared/version.Version=..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info is the build metadata reported by the API root and the version command
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// Get returns the build metadata of the running binary
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	if version == "" {
		return ""
	}
	version = strings.TrimSpace(version)
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// IsRelease reports whether v is a valid semantic version without a prerelease suffix
func IsRelease(v string) bool {
	normalized := Normalize(v)
	return semver.IsValid(normalized) && semver.Prerelease(normalized) == ""
}

// APIVersion returns the major version used to label the API, e.g. "v1".
// Development builds report "v0".
func APIVersion() string {
	normalized := Normalize(Version)
	if !semver.IsValid(normalized) {
		return "v0"
	}
	return semver.Major(normalized)
}
