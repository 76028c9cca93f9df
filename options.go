package imgembed

import (
	"io"
	"net/http"
	"time"

	"github.com/alnah/go-imgembed/internal/resolve"
)

// Default resolution limits.
const (
	// DefaultMaxBytes is the per-image byte ceiling, applied identically to
	// local reads and remote downloads.
	DefaultMaxBytes = 10 << 20

	// DefaultTimeout is the wall-clock budget per remote fetch, covering
	// the whole redirect chain.
	DefaultTimeout = resolve.DefaultTimeout

	// DefaultMaxRedirects is the redirect hop budget per remote fetch.
	DefaultMaxRedirects = resolve.DefaultMaxRedirects
)

// serviceConfig holds resolved option values.
type serviceConfig struct {
	maxBytes     int64
	timeout      time.Duration
	maxRedirects int
	userAgent    string
	client       *http.Client
	logWriter    io.Writer
}

// Option customizes a Service.
type Option func(*serviceConfig)

// WithMaxBytes sets the per-image byte ceiling for local reads and remote
// downloads alike.
func WithMaxBytes(n int64) Option {
	return func(c *serviceConfig) { c.maxBytes = n }
}

// WithTimeout sets the wall-clock budget per remote fetch.
func WithTimeout(d time.Duration) Option {
	return func(c *serviceConfig) { c.timeout = d }
}

// WithMaxRedirects sets the redirect hop budget per remote fetch.
func WithMaxRedirects(n int) Option {
	return func(c *serviceConfig) { c.maxRedirects = n }
}

// WithUserAgent sets the User-Agent header sent on remote fetches.
func WithUserAgent(ua string) Option {
	return func(c *serviceConfig) { c.userAgent = ua }
}

// WithHTTPClient replaces the underlying HTTP client, e.g. to route through
// a proxy or inject a test transport. Automatic redirect following is
// disabled on the client; the service walks redirect chains itself.
func WithHTTPClient(client *http.Client) Option {
	return func(c *serviceConfig) { c.client = client }
}

// WithLogWriter emits warning lines as they occur (typically os.Stderr).
// Without it, warnings are only collected on the Result.
func WithLogWriter(w io.Writer) Option {
	return func(c *serviceConfig) { c.logWriter = w }
}

// validate checks option values, mapping violations to public sentinels.
func (c *serviceConfig) validate() error {
	if c.maxBytes <= 0 {
		return ErrInvalidMaxBytes
	}
	if c.timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.maxRedirects < 0 {
		return ErrInvalidMaxRedirects
	}
	return nil
}
