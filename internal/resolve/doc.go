// Package resolve implements the image reference resolution engine.
//
// A raw reference string taken from an img src or srcset attribute is
// classified as already-inlined, remote, or local, then resolved to the
// referenced bytes under a size ceiling:
//
//   - Local references go through best-effort path resolution (percent
//     decoding, query/fragment stripping, case-insensitive segment fallback
//     for documents authored on case-insensitive filesystems) followed by a
//     stat-gated file read.
//   - Remote references are fetched with a capped GET (bounded redirects,
//     wall-clock timeout, streamed size cutoff) and de-duplicated per run:
//     identical raw references share a single network transfer.
//
// Successful resolutions are encoded as data: URIs; failures are typed
// sentinel errors the caller can match with errors.Is.
package resolve
