package resolve

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors for resolution failures. All are non-fatal per reference:
// the caller leaves the original attribute text in place and reports the
// failure once.
var (
	// Local failures.
	ErrNotFound = errors.New("image file not found")
	ErrNotFile  = errors.New("path is not a regular file")
	ErrRead     = errors.New("reading image failed")

	// Shared between local reads and remote downloads.
	ErrTooLarge = errors.New("image exceeds size limit")

	// Remote failures.
	ErrRemoteTimeout           = errors.New("remote fetch timed out")
	ErrRedirectLoop            = errors.New("redirect loop detected")
	ErrRedirectMissingLocation = errors.New("redirect without Location header")
	ErrTooManyRedirects        = errors.New("too many redirects")
	ErrHTTPStatus              = errors.New("unexpected HTTP status")
	ErrRemote                  = errors.New("remote fetch failed")
)

// SizeError reports a payload that exceeds the configured byte ceiling.
// For local files and declared Content-Length the size is exact; for a
// streamed download cut off mid-transfer it is the count seen before the
// transfer was aborted.
type SizeError struct {
	Size  int64
	Limit int64
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("image exceeds size limit: %d bytes (limit %d)", e.Size, e.Limit)
}

// Unwrap makes errors.Is(err, ErrTooLarge) succeed.
func (e *SizeError) Unwrap() error {
	return ErrTooLarge
}

// StatusError reports a non-2xx, non-redirect HTTP response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	text := http.StatusText(e.Code)
	if text == "" {
		text = "unknown status"
	}
	return fmt.Sprintf("unexpected HTTP status %d (%s) from %s", e.Code, text, e.URL)
}

// Unwrap makes errors.Is(err, ErrHTTPStatus) succeed.
func (e *StatusError) Unwrap() error {
	return ErrHTTPStatus
}
