package imgembed

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/alnah/go-imgembed/internal/diag"
	"github.com/alnah/go-imgembed/internal/pipeline"
	"github.com/alnah/go-imgembed/internal/resolve"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.ImageResolver     = (*resolve.Engine)(nil)
	_ pipeline.Reporter          = (*diag.Sink)(nil)
	_ pipeline.MarkdownConverter = (*pipeline.GoldmarkConverter)(nil)
)

// Service inlines image references in documents. A Service is cheap, safe
// for concurrent use, and reusable; the remote cache and diagnostics are
// scoped to each Inline call, not to the Service.
type Service struct {
	cfg       serviceConfig
	converter pipeline.MarkdownConverter
}

// New creates a Service with default limits. Use options to customize
// behavior (e.g. WithMaxBytes, WithTimeout).
func New(opts ...Option) *Service {
	cfg := serviceConfig{
		maxBytes:     DefaultMaxBytes,
		timeout:      DefaultTimeout,
		maxRedirects: DefaultMaxRedirects,
		userAgent:    resolve.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Service{
		cfg:       cfg,
		converter: pipeline.NewGoldmarkConverter(),
	}
}

// Inline rewrites every image reference in the input document to a data:
// URI. References that cannot be resolved keep their original text and are
// reported as warnings on the Result; only document-level problems (empty
// input, invalid options, unrenderable HTML) return an error.
func (s *Service) Inline(ctx context.Context, input Input) (*Result, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := s.cfg.validate(); err != nil {
		return nil, err
	}

	baseDir, err := resolveBaseDir(input.BaseDir)
	if err != nil {
		return nil, err
	}

	document := input.Document
	if input.Markdown {
		document, err = s.converter.ToHTML(ctx, document)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMarkdownConvert, err)
		}
	}

	engine := resolve.NewEngine(baseDir, s.cfg.maxBytes, s.newFetcher())
	sink := diag.NewSink(s.cfg.logWriter)

	rewritten, err := pipeline.InlineImages(ctx, document, engine, sink)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrHTMLRewrite, err)
	}

	return &Result{
		HTML: rewritten,
		Stats: Stats{
			ImagesInlined:      sink.SrcInlined(),
			SrcsetAttrsTouched: sink.SrcsetTouched(),
		},
		Warnings: sink.Warnings(),
	}, nil
}

// newFetcher builds a remote fetcher from the service configuration.
func (s *Service) newFetcher() *resolve.Fetcher {
	f := resolve.NewFetcher()
	f.Timeout = s.cfg.timeout
	f.MaxRedirects = s.cfg.maxRedirects
	f.UserAgent = s.cfg.userAgent
	if s.cfg.client != nil {
		f.Client = &http.Client{
			Transport: s.cfg.client.Transport,
			Jar:       s.cfg.client.Jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}
	return f
}

// resolveBaseDir makes the base directory absolute, defaulting to the
// current working directory.
func resolveBaseDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseDir, err)
	}
	return abs, nil
}
