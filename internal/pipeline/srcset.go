package pipeline

import (
	"context"
	"strings"
)

// srcsetWhitespace is the HTML whitespace set that delimits srcset tokens.
const srcsetWhitespace = " \t\n\r\f"

// rewriteSrcset resolves each candidate of a srcset attribute value,
// rewriting only the URL portion and preserving descriptor tokens verbatim.
//
// This is a best-effort single-descriptor scan, not a full srcset parser:
// a candidate's URL is its maximal non-whitespace run, so the comma inside
// a data: URI stays part of the URL; only a comma trailing that run or
// following the descriptor separates candidates. Candidates whose URL fails
// to resolve keep their text. When at least one candidate changed, the list
// is reassembled with ", "; otherwise the original attribute text is
// returned untouched.
func rewriteSrcset(ctx context.Context, value string, resolver ImageResolver, rep Reporter) (string, bool) {
	var items []string
	touched := false

	rest := value
	for {
		rest = strings.TrimLeft(rest, srcsetWhitespace+",")
		if rest == "" {
			break
		}

		var url string
		if i := strings.IndexAny(rest, srcsetWhitespace); i >= 0 {
			url, rest = rest[:i], rest[i:]
		} else {
			url, rest = rest, ""
		}

		// A comma trailing the URL run is the candidate separator: this
		// candidate has no descriptor and the remainder starts the next one.
		descriptor := ""
		if bare := strings.TrimRight(url, ","); bare != url {
			url = bare
		} else if i := strings.IndexByte(rest, ','); i >= 0 {
			descriptor, rest = strings.TrimSpace(rest[:i]), rest[i+1:]
		} else {
			descriptor, rest = strings.TrimSpace(rest), ""
		}

		item := url
		if descriptor != "" {
			item += " " + descriptor
		}

		replacement, changed, err := resolver.Resolve(ctx, url)
		if err != nil {
			rep.Warn("srcset", url, err)
			items = append(items, item)
			continue
		}
		if changed {
			touched = true
			item = replacement
			if descriptor != "" {
				item += " " + descriptor
			}
		}
		items = append(items, item)
	}

	if !touched {
		return value, false
	}
	return strings.Join(items, ", "), true
}
