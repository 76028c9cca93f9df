// Package diag accumulates per-run inlining diagnostics: warn-once failure
// reporting and success counters.
package diag

import (
	"fmt"
	"io"
	"sync"
)

// Sink records one warning per distinct failing reference (first occurrence
// wins) and counts successful replacements. A Sink's lifecycle is one
// document-processing run. Safe for concurrent use.
type Sink struct {
	mu            sync.Mutex
	out           io.Writer // optional; nil collects without emitting
	seen          map[string]struct{}
	warnings      []string
	srcInlined    int
	srcsetTouched int
}

// NewSink creates a Sink. Warnings are written to out as they occur; a nil
// out collects them silently for later retrieval.
func NewSink(out io.Writer) *Sink {
	return &Sink{out: out, seen: make(map[string]struct{})}
}

// Warn records a resolution failure for the reference ref found at the given
// call site ("src" or "srcset"). Only the first failure per (site, ref) pair
// produces a line; repeats are dropped.
func (s *Sink) Warn(site, ref string, err error) {
	key := site + "\t" + ref

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, dup := s.seen[key]; dup {
		return
	}
	s.seen[key] = struct{}{}

	line := fmt.Sprintf("warning: cannot inline %s %q: %v", site, ref, err)
	s.warnings = append(s.warnings, line)
	if s.out != nil {
		fmt.Fprintln(s.out, line)
	}
}

// AddSrc counts one src reference successfully inlined.
func (s *Sink) AddSrc() {
	s.mu.Lock()
	s.srcInlined++
	s.mu.Unlock()
}

// AddSrcset counts one srcset attribute with at least one changed item.
func (s *Sink) AddSrcset() {
	s.mu.Lock()
	s.srcsetTouched++
	s.mu.Unlock()
}

// SrcInlined returns the number of src references replaced.
func (s *Sink) SrcInlined() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.srcInlined
}

// SrcsetTouched returns the number of srcset attributes changed.
func (s *Sink) SrcsetTouched() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.srcsetTouched
}

// Warnings returns the emitted warning lines in first-occurrence order.
func (s *Sink) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.warnings...)
}

// Summary renders the final per-run counts.
func (s *Sink) Summary() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("inlined %d src reference(s), rewrote %d srcset attribute(s)",
		s.srcInlined, s.srcsetTouched)
}
