// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import "strings"

// ForTimeout returns a hint for remote fetches that exceeded their budget.
func ForTimeout() string {
	return format("for slow servers, raise --timeout")
}

// ForMissingImage returns a hint for local references that did not resolve.
func ForMissingImage(baseDir string) string {
	return format("paths resolve against " + baseDir + "; use --base-dir to change the root")
}

// ForTooLarge returns a hint for images rejected by the size ceiling.
func ForTooLarge() string {
	return format("raise --max-bytes to inline larger images")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and creating a config in the user config directory.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, "go-imgembed") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
