package validator

import (
	"regexp"
	"strings"
)

// slugRegexp defines the valid format for project slugs, profile codes and
// component names: lowercase letters, numbers, underscores and hyphens, 1-64 characters.
var slugRegexp = regexp.MustCompile(`^[a-z0-9_-]{1,64}$`)

// SanitizeSlug trims whitespace and validates the key.
// Returns the sanitized key and a boolean indicating if it's valid.
func SanitizeSlug(key string) (string, bool) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", false
	}
	if !slugRegexp.MatchString(trimmed) {
		return trimmed, false
	}
	return trimmed, true
}

// versionRegexp matches major.minor.patch release versions.
var versionRegexp = regexp.MustCompile(`^\d+\.\d+\.\d+$`)

// ValidateVersion checks a service instance release version.
func ValidateVersion(version string) bool {
	return versionRegexp.MatchString(strings.TrimSpace(version))
}
