// Package pipeline implements the document-side half of image inlining.
//
// It locates img elements and their src/srcset attribute text within an HTML
// document, hands each raw reference to a resolver, and splices the
// replacements back into the document while preserving all other markup.
// The optional markdown input mode converts markdown to a standalone HTML5
// document (via Goldmark) before scanning.
//
// Reference resolution itself (path correction, fetching, size limits,
// MIME classification, data: URI encoding) is handled separately by
// internal/resolve; this package treats the resolver as a collaborator
// behind the ImageResolver interface.
package pipeline
