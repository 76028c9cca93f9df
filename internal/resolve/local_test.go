package resolve

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadLocal(t *testing.T) {
	t.Parallel()

	t.Run("success carries bytes and name hint", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		content := []byte{0x89, 'P', 'N', 'G'}
		path := filepath.Join(dir, "pic.png")
		if err := os.WriteFile(path, content, 0o644); err != nil {
			t.Fatal(err)
		}

		payload, err := LoadLocal(path, 1024)
		if err != nil {
			t.Fatalf("LoadLocal() error = %v", err)
		}
		if !bytes.Equal(payload.Data, content) {
			t.Errorf("Data = %v, want %v", payload.Data, content)
		}
		if payload.NameHint != path {
			t.Errorf("NameHint = %q, want %q", payload.NameHint, path)
		}
		if payload.ContentType != "" {
			t.Errorf("ContentType = %q, want empty for local file", payload.ContentType)
		}
	})

	t.Run("size exactly at limit succeeds", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "exact.bin")
		if err := os.WriteFile(path, make([]byte, 64), 0o644); err != nil {
			t.Fatal(err)
		}

		if _, err := LoadLocal(path, 64); err != nil {
			t.Errorf("LoadLocal() at exact limit: %v", err)
		}
	})

	t.Run("one byte over limit fails with actual size", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "big.bin")
		if err := os.WriteFile(path, make([]byte, 65), 0o644); err != nil {
			t.Fatal(err)
		}

		_, err := LoadLocal(path, 64)
		if !errors.Is(err, ErrTooLarge) {
			t.Fatalf("LoadLocal() error = %v, want ErrTooLarge", err)
		}
		var sizeErr *SizeError
		if !errors.As(err, &sizeErr) {
			t.Fatalf("error %v is not a *SizeError", err)
		}
		if sizeErr.Size != 65 || sizeErr.Limit != 64 {
			t.Errorf("SizeError = {Size:%d Limit:%d}, want {Size:65 Limit:64}", sizeErr.Size, sizeErr.Limit)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadLocal(filepath.Join(t.TempDir(), "nope.png"), 1024)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("LoadLocal() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("directory is not a file", func(t *testing.T) {
		t.Parallel()
		_, err := LoadLocal(t.TempDir(), 1024)
		if !errors.Is(err, ErrNotFile) {
			t.Errorf("LoadLocal() error = %v, want ErrNotFile", err)
		}
	})
}
