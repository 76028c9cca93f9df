// Package fileutil provides file and reference classification helpers.
package fileutil

import (
	"os"
	"strings"
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// IsRemoteURL reports whether the reference points at a network resource:
// an explicit http/https URL or a protocol-relative //host/path one.
func IsRemoteURL(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "//")
}

// IsDataURL reports whether the reference is already an inlined data: URI.
func IsDataURL(s string) bool {
	return strings.HasPrefix(s, "data:")
}

// IsMarkdownPath reports whether the path carries a markdown extension.
// Used by the CLI to pick the markdown input mode automatically.
func IsMarkdownPath(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".markdown")
}
