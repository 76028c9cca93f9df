package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Payload holds resolved image bytes plus the hints MIME classification
// needs. Bytes are consumed once by encoding and never cached.
type Payload struct {
	Data        []byte
	ContentType string // server-declared type; empty for local files
	NameHint    string // path or URL tail used for extension fallback
}

// LoadLocal reads the file at path under the maxBytes ceiling.
//
// The size gate runs on the stat result before any read, so an oversized
// file costs one syscall, not an allocation.
func LoadLocal(path string, maxBytes int64) (*Payload, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrNotFile, path)
	}
	if info.Size() > maxBytes {
		return nil, &SizeError{Size: info.Size(), Limit: maxBytes}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}
	return &Payload{Data: data, NameHint: path}, nil
}
