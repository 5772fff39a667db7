package common

import "strings"

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// PkgSegments splits a dotted JVM package name ("com.example.model") into its segments.
// Returns nil for the default package.
func PkgSegments(pkgName string) []string {
	if pkgName == "" {
		return nil
	}

	return strings.Split(pkgName, ".")
}
