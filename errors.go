package imgembed

import "errors"

// Sentinel errors for library operations. Per-reference resolution failures
// are reported as warnings on the Result, never as errors; these cover
// document-level problems only.
var (
	ErrEmptyDocument       = errors.New("document content cannot be empty")
	ErrHTMLRewrite         = errors.New("HTML rewrite failed")
	ErrMarkdownConvert     = errors.New("markdown conversion failed")
	ErrInvalidBaseDir      = errors.New("invalid base directory")
	ErrInvalidMaxBytes     = errors.New("max bytes must be positive")
	ErrInvalidTimeout      = errors.New("timeout must be positive")
	ErrInvalidMaxRedirects = errors.New("max redirects must not be negative")
)
