// Package imgembed rewrites image references in HTML documents so that each
// reference carries its content directly as a base64-encoded data: URI,
// producing a self-contained document.
//
// # Quick Start
//
// Create a service and inline a document:
//
//	svc := imgembed.New()
//	result, err := svc.Inline(ctx, imgembed.Input{
//	    Document: htmlText,
//	    BaseDir:  "/path/to/assets",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("out.html", []byte(result.HTML), 0644)
//
// result.Stats reports how many src references were inlined and how many
// srcset attributes were touched; result.Warnings lists every reference that
// could not be resolved. Each failing reference warns once, and failures
// never abort the run: the original attribute text is left in place.
//
// # Reference Resolution
//
// Local references are resolved against BaseDir with percent-decoding,
// query/fragment stripping, and a case-insensitive fallback for documents
// authored on case-insensitive filesystems. Remote references (http, https,
// or protocol-relative) are fetched with bounded redirects, a per-fetch
// timeout, and a streaming size cap; identical remote references share a
// single transfer per Inline call. A byte ceiling applies identically to
// local reads and downloads.
//
// # Configuration
//
// Use functional options to customize the service:
//
//	svc := imgembed.New(
//	    imgembed.WithMaxBytes(2<<20),
//	    imgembed.WithTimeout(10*time.Second),
//	    imgembed.WithMaxRedirects(5),
//	)
//
// Set Input.Markdown to convert markdown to a standalone HTML5 document
// before inlining.
package imgembed
