package resolve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Fetcher defaults, overridable per instance.
const (
	DefaultTimeout      = 30 * time.Second
	DefaultMaxRedirects = 10
	DefaultUserAgent    = "go-imgembed"
)

// redirectDrainLimit caps how much of a redirect response body is read while
// draining it for connection reuse.
const redirectDrainLimit = 64 << 10

// Fetcher performs capped GET requests for remote image references.
// It follows redirects itself so the visited set, hop budget, and relative
// Location resolution stay under its control.
type Fetcher struct {
	Client       *http.Client
	Timeout      time.Duration
	MaxRedirects int
	UserAgent    string
}

// NewFetcher returns a Fetcher with default limits. The underlying client
// has automatic redirect following disabled; Fetch walks the chain itself.
func NewFetcher() *Fetcher {
	return &Fetcher{
		Client: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		Timeout:      DefaultTimeout,
		MaxRedirects: DefaultMaxRedirects,
		UserAgent:    DefaultUserAgent,
	}
}

// Fetch GETs rawURL and returns its body under the maxBytes ceiling, along
// with the server-declared Content-Type if present.
//
// The timeout is a single wall-clock budget covering the whole redirect
// chain, so a hung server cannot stall the run regardless of how many hops
// it answers promptly. Size is guarded twice: a declared Content-Length
// above the ceiling fails before the body is read, and a streamed body is
// cut off as soon as the accumulated count passes the ceiling, so a server
// that lies about or omits Content-Length cannot force unbounded growth.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string, maxBytes int64) (*Payload, error) {
	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	visited := make(map[string]struct{})
	current := rawURL
	budget := f.MaxRedirects

	for {
		if _, seen := visited[current]; seen {
			return nil, fmt.Errorf("%w: %s", ErrRedirectLoop, current)
		}
		visited[current] = struct{}{}

		resp, err := f.get(ctx, current)
		if err != nil {
			return nil, f.classifyTransportError(ctx, rawURL, err)
		}

		if isRedirect(resp.StatusCode) {
			location := resp.Header.Get("Location")
			drain(resp.Body)
			if location == "" {
				return nil, fmt.Errorf("%w: %s", ErrRedirectMissingLocation, current)
			}
			if budget == 0 {
				return nil, fmt.Errorf("%w: %s", ErrTooManyRedirects, rawURL)
			}
			budget--

			// Resolve against the current URL so relative redirects work.
			next, err := resp.Request.URL.Parse(location)
			if err != nil {
				return nil, fmt.Errorf("%w: invalid Location %q", ErrRemote, location)
			}
			current = next.String()
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			drain(resp.Body)
			return nil, &StatusError{Code: resp.StatusCode, URL: current}
		}

		if resp.ContentLength > maxBytes {
			resp.Body.Close()
			return nil, &SizeError{Size: resp.ContentLength, Limit: maxBytes}
		}

		data, err := readCapped(resp.Body, maxBytes)
		resp.Body.Close()
		if err != nil {
			return nil, f.classifyTransportError(ctx, rawURL, err)
		}
		if data == nil {
			return nil, &SizeError{Size: maxBytes + 1, Limit: maxBytes}
		}

		// Query and fragment would defeat the extension fallback, so the
		// hint keeps only the path part of the final URL.
		return &Payload{
			Data:        data,
			ContentType: resp.Header.Get("Content-Type"),
			NameHint:    stripQueryFragment(current),
		}, nil
	}
}

// get issues a single GET with the fixed header set. Accept-Encoding is
// pinned to identity so the streamed byte count matches the delivered body.
func (f *Fetcher) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Encoding", "identity")
	return f.Client.Do(req)
}

// classifyTransportError separates timeouts from other transport failures.
func (f *Fetcher) classifyTransportError(ctx context.Context, rawURL string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%w after %s: %s", ErrRemoteTimeout, f.Timeout, rawURL)
	}
	return fmt.Errorf("%w: %v", ErrRemote, err)
}

// isRedirect reports whether code is one of the followed 3xx statuses.
func isRedirect(code int) bool {
	switch code {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther,
		http.StatusTemporaryRedirect, http.StatusPermanentRedirect:
		return true
	}
	return false
}

// drain discards a bounded amount of a response body and closes it, keeping
// the connection reusable without buffering redirect payloads.
func drain(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, redirectDrainLimit))
	_ = body.Close()
}

// readCapped accumulates at most maxBytes from r. A body that still has data
// past the cap returns (nil, nil); the over-budget remainder is never
// buffered.
func readCapped(r io.Reader, maxBytes int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, nil
	}
	return data, nil
}
