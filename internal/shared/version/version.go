// Package version compares agent release strings.
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Normalize adds the "v" prefix semver expects. "1.2.3" becomes "v1.2.3".
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

// HasNewerVersion reports whether latest is a newer release than current.
// Non-semver builds such as "dev" are always considered outdated; an
// invalid latest never is.
func HasNewerVersion(current, latest string) bool {
	if latest == "" {
		return false
	}
	if current == "" || current == "dev" {
		return true
	}

	cur := Normalize(current)
	lat := Normalize(latest)
	if !semver.IsValid(cur) {
		return true
	}
	if !semver.IsValid(lat) {
		return false
	}
	return semver.Compare(cur, lat) < 0
}
