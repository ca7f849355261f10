// Package version holds the build version and compares the semantic
// versions reported by conversion services.
package version

import (
	"regexp"
	"strings"

	"golang.org/x/mod/semver"
)

// Version is set at build time with -ldflags "-X .../version.Version=v1.2.3".
var Version = "dev"

var semverPattern = regexp.MustCompile(`v?\d+\.\d+(\.\d+)?(-[0-9A-Za-z.-]+)?`)

// Normalize ensures version string has "v" prefix for semver compatibility.
// Examples: "1.2.3" -> "v1.2.3", "v1.2.3" -> "v1.2.3"
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		return "v" + version
	}
	return version
}

// Extract finds the first semantic version in free text such as
// "subconverter v0.9.0-3fb4c4d backend". It returns "" when none is present.
func Extract(text string) string {
	v := Normalize(semverPattern.FindString(text))
	if !semver.IsValid(v) {
		return ""
	}
	return v
}

// Older reports whether reported is a valid version lower than minimum.
// Unknown or unparsable versions are never considered older.
func Older(reported, minimum string) bool {
	current := Extract(reported)
	floor := Normalize(minimum)
	if current == "" || !semver.IsValid(floor) {
		return false
	}
	return semver.Compare(current, floor) < 0
}
