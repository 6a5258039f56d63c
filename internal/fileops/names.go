package fileops

import (
	"regexp"
	"strings"
)

var (
	validPackageName = regexp.MustCompile(`^[a-z0-9-_]+$`)
	invalidNameChars = regexp.MustCompile(`[^a-z0-9-_]`)
)

// IsValidPackageName reports whether name is usable as-is for package.json.
func IsValidPackageName(name string) bool {
	return validPackageName.MatchString(name)
}

// ToValidPackageName lowercases name, replaces disallowed characters with
// dashes and trims leading and trailing dashes.
func ToValidPackageName(name string) string {
	s := invalidNameChars.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(s, "-")
}
