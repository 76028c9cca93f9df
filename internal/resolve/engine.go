package resolve

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/alnah/go-imgembed/internal/fileutil"
)

// remoteFetcher abstracts the network fetch for testability.
type remoteFetcher interface {
	Fetch(ctx context.Context, rawURL string, maxBytes int64) (*Payload, error)
}

// Compile-time interface implementation check.
var _ remoteFetcher = (*Fetcher)(nil)

// remoteResult is a completed fetch outcome shared by every occurrence of
// the same raw reference within a run. Failures are cached too: a failed
// fetch is reported once and not retried.
type remoteResult struct {
	payload *Payload
	err     error
}

// Engine classifies raw image references and resolves them to data: URIs.
//
// The engine owns a run-scoped remote cache keyed by the exact raw reference
// string (before protocol-relative normalization). Concurrent requests for
// the same key are coalesced into a single transfer whose outcome fans out
// to all waiters. Local references are resolved independently each time:
// filesystem reads are cheap and carry no shared state.
//
// An Engine's lifecycle is one document-processing run; it is safe for
// concurrent use within that run and must not be reused across runs.
type Engine struct {
	baseDir  string
	maxBytes int64
	fetcher  remoteFetcher

	group singleflight.Group
	mu    sync.Mutex
	cache map[string]remoteResult
}

// NewEngine creates an Engine resolving local references against baseDir
// with the given byte ceiling applied to both local reads and downloads.
func NewEngine(baseDir string, maxBytes int64, fetcher remoteFetcher) *Engine {
	return &Engine{
		baseDir:  baseDir,
		maxBytes: maxBytes,
		fetcher:  fetcher,
		cache:    make(map[string]remoteResult),
	}
}

// Resolve returns the replacement for raw. Already-inlined references come
// back unchanged with changed=false and no error. On failure the original
// string is returned unchanged alongside a typed error for diagnostics.
func (e *Engine) Resolve(ctx context.Context, raw string) (replacement string, changed bool, err error) {
	switch {
	case fileutil.IsDataURL(raw):
		return raw, false, nil

	case fileutil.IsRemoteURL(raw):
		payload, err := e.resolveRemote(ctx, raw)
		if err != nil {
			return raw, false, err
		}
		return EncodeDataURL(payload.Data, ClassifyMIME(payload.ContentType, payload.NameHint)), true, nil

	default:
		payload, err := LoadLocal(ResolvePath(raw, e.baseDir), e.maxBytes)
		if err != nil {
			return raw, false, err
		}
		return EncodeDataURL(payload.Data, ClassifyMIME("", payload.NameHint)), true, nil
	}
}

// resolveRemote consults the run cache, coalescing concurrent fetches of the
// same raw reference into one network transfer.
func (e *Engine) resolveRemote(ctx context.Context, raw string) (*Payload, error) {
	e.mu.Lock()
	if r, ok := e.cache[raw]; ok {
		e.mu.Unlock()
		return r.payload, r.err
	}
	e.mu.Unlock()

	v, err, _ := e.group.Do(raw, func() (any, error) {
		payload, err := e.fetcher.Fetch(ctx, normalizeRemoteURL(raw), e.maxBytes)
		e.mu.Lock()
		e.cache[raw] = remoteResult{payload: payload, err: err}
		e.mu.Unlock()
		return payload, err
	})
	if err != nil {
		return nil, err
	}
	return v.(*Payload), nil
}

// normalizeRemoteURL gives protocol-relative references an explicit https
// scheme. The cache stays keyed by the original raw string.
func normalizeRemoteURL(raw string) string {
	if len(raw) >= 2 && raw[0] == '/' && raw[1] == '/' {
		return "https:" + raw
	}
	return raw
}
