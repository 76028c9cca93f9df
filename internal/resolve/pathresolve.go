package resolve

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ResolvePath maps a raw local reference to a best-effort absolute filesystem
// path rooted at baseDir. It never fails; the returned path is not guaranteed
// to exist and must still be checked by LoadLocal.
//
// Resolution order:
//  1. file:// URLs are decoded directly to a path; a malformed URL falls
//     through to plain-string handling.
//  2. Percent escapes are decoded (invalid escapes leave the string as-is).
//  3. Any ?query or #fragment suffix is stripped.
//  4. The path is joined to baseDir; if an entry exists at the exact,
//     case-sensitive path it wins.
//  5. Otherwise each segment is matched case-insensitively against the
//     directory listing, falling back to the verbatim segment when nothing
//     matches. This tolerates HTML authored on case-insensitive filesystems
//     (referencing Logo.PNG when the file is logo.png) being processed on a
//     case-sensitive one.
func ResolvePath(raw, baseDir string) string {
	if p, ok := fileURLPath(raw); ok {
		raw = p
	} else {
		raw = percentDecode(raw)
		raw = stripQueryFragment(raw)
	}

	candidate := raw
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(baseDir, candidate)
	}
	candidate = filepath.Clean(candidate)

	// A relative baseDir leaves the candidate relative; the segment walk
	// below needs an absolute root to start from.
	if !filepath.IsAbs(candidate) {
		if abs, err := filepath.Abs(candidate); err == nil {
			candidate = abs
		}
	}

	// Fast path: the exact path exists.
	if _, err := os.Lstat(candidate); err == nil {
		return candidate
	}

	return resolveCaseInsensitive(candidate)
}

// fileURLPath extracts the filesystem path from a file:// URL.
func fileURLPath(raw string) (string, bool) {
	if !strings.HasPrefix(raw, "file://") {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return "", false
	}
	return filepath.FromSlash(u.Path), true
}

// percentDecode reverses URL percent-encoding. Strings with invalid escapes
// are returned unchanged rather than rejected.
func percentDecode(s string) string {
	decoded, err := url.PathUnescape(s)
	if err != nil {
		return s
	}
	return decoded
}

// stripQueryFragment truncates at the earlier of '?' and '#'.
func stripQueryFragment(s string) string {
	cut := len(s)
	if i := strings.IndexByte(s, '?'); i >= 0 && i < cut {
		cut = i
	}
	if i := strings.IndexByte(s, '#'); i >= 0 && i < cut {
		cut = i
	}
	return s[:cut]
}

// resolveCaseInsensitive walks the cleaned absolute candidate path segment by
// segment, matching each segment case-insensitively against the directory
// listing. Unmatched segments are used verbatim, and a missing or unreadable
// directory aborts the walk and returns the candidate unchanged (best
// effort): a later existence check may still fail, which is intentional.
func resolveCaseInsensitive(candidate string) string {
	root := filepath.VolumeName(candidate) + string(filepath.Separator)
	rest := strings.TrimPrefix(candidate, root)
	if rest == "" {
		return candidate
	}

	dir := root
	for _, segment := range strings.Split(rest, string(filepath.Separator)) {
		if segment == "" || segment == "." {
			continue
		}
		if segment == ".." {
			dir = filepath.Dir(dir)
			continue
		}

		entries, err := os.ReadDir(dir)
		if err != nil {
			// Not a directory or unreadable: give up on refinement.
			return candidate
		}
		dir = filepath.Join(dir, matchSegment(entries, segment))
	}
	return dir
}

// matchSegment picks the directory entry matching segment, preferring an
// exact match over a case-insensitive one, falling back to the verbatim
// segment text.
func matchSegment(entries []os.DirEntry, segment string) string {
	folded := ""
	for _, entry := range entries {
		name := entry.Name()
		if name == segment {
			return name
		}
		if folded == "" && strings.EqualFold(name, segment) {
			folded = name
		}
	}
	if folded != "" {
		return folded
	}
	return segment
}
