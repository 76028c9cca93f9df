package resolve

import "strings"

// FallbackMIME is used when neither the declared content type nor the
// extension identifies the payload.
const FallbackMIME = "application/octet-stream"

// extensionMIME is the fixed extension lookup table. Deliberately not
// mime.TypeByExtension: that consults per-host mime databases and would make
// output vary across machines.
var extensionMIME = map[string]string{
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"ico":  "image/x-icon",
	"svg":  "image/svg+xml",
	"avif": "image/avif",
}

// ClassifyMIME derives the MIME type for a payload.
//
// A declared image/* content type wins over the name hint: servers know what
// they just served, while a URL's trailing extension may be absent, spoofed,
// or irrelevant for dynamically generated images. Local files carry no
// declared type, so for them the extension table is authoritative.
func ClassifyMIME(declared, nameHint string) string {
	if m, ok := declaredImageType(declared); ok {
		return m
	}
	if m, ok := extensionMIME[strings.ToLower(extensionOf(nameHint))]; ok {
		return m
	}
	return FallbackMIME
}

// declaredImageType accepts a Content-Type header value of the form
// image/<token>, case-insensitively, discarding any parameters after ';'.
func declaredImageType(declared string) (string, bool) {
	m := declared
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = m[:i]
	}
	m = strings.TrimSpace(m)
	const prefix = "image/"
	if len(m) > len(prefix) && strings.EqualFold(m[:len(prefix)], prefix) {
		return m, true
	}
	return "", false
}

// extensionOf returns the substring after the last '.', or hint itself when
// it contains none (allowing a bare extension as the hint).
func extensionOf(hint string) string {
	if i := strings.LastIndexByte(hint, '.'); i >= 0 {
		return hint[i+1:]
	}
	return hint
}
