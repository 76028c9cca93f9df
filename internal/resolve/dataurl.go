package resolve

import "encoding/base64"

// EncodeDataURL renders bytes as a self-contained data: URI with the given
// MIME type. Pure and deterministic; it cannot fail.
func EncodeDataURL(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
