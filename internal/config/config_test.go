package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Input.DefaultDir != "" {
		t.Errorf("Input.DefaultDir = %q, want empty", cfg.Input.DefaultDir)
	}
	if cfg.Input.Markdown {
		t.Error("Input.Markdown = true, want false")
	}
	if cfg.Output.DefaultDir != "" {
		t.Errorf("Output.DefaultDir = %q, want empty", cfg.Output.DefaultDir)
	}
	if cfg.Fetch.MaxBytes != 0 {
		t.Errorf("Fetch.MaxBytes = %d, want 0", cfg.Fetch.MaxBytes)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	t.Run("valid file path", func(t *testing.T) {
		t.Parallel()
		path := writeConfigFile(t, `
input:
  defaultDir: ./docs
  markdown: true
output:
  defaultDir: ./out
fetch:
  maxBytes: 5242880
  timeout: 45s
  maxRedirects: 5
  userAgent: custom-agent
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Input.DefaultDir != "./docs" {
			t.Errorf("Input.DefaultDir = %q", cfg.Input.DefaultDir)
		}
		if !cfg.Input.Markdown {
			t.Error("Input.Markdown = false, want true")
		}
		if cfg.Fetch.MaxBytes != 5242880 {
			t.Errorf("Fetch.MaxBytes = %d", cfg.Fetch.MaxBytes)
		}
		if cfg.Fetch.MaxRedirects != 5 {
			t.Errorf("Fetch.MaxRedirects = %d", cfg.Fetch.MaxRedirects)
		}
		if cfg.Fetch.UserAgent != "custom-agent" {
			t.Errorf("Fetch.UserAgent = %q", cfg.Fetch.UserAgent)
		}
	})

	t.Run("empty name", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("missing file path", func(t *testing.T) {
		t.Parallel()
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		t.Parallel()
		path := writeConfigFile(t, "fetch:\n  maxByte: 10\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("malformed yaml", func(t *testing.T) {
		t.Parallel()
		path := writeConfigFile(t, "fetch: [unclosed\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("negative maxBytes rejected", func(t *testing.T) {
		t.Parallel()
		path := writeConfigFile(t, "fetch:\n  maxBytes: -1\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidFetch) {
			t.Errorf("error = %v, want ErrInvalidFetch", err)
		}
	})

	t.Run("bad timeout rejected", func(t *testing.T) {
		t.Parallel()
		path := writeConfigFile(t, "fetch:\n  timeout: soon\n")

		_, err := LoadConfig(path)
		if !errors.Is(err, ErrInvalidFetch) {
			t.Errorf("error = %v, want ErrInvalidFetch", err)
		}
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "zero config valid",
			mutate: func(*Config) {},
		},
		{
			name:    "input dir too long",
			mutate:  func(c *Config) { c.Input.DefaultDir = strings.Repeat("a", MaxPathLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "user agent too long",
			mutate:  func(c *Config) { c.Fetch.UserAgent = strings.Repeat("a", MaxUserAgentLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "negative redirects",
			mutate:  func(c *Config) { c.Fetch.MaxRedirects = -1 },
			wantErr: ErrInvalidFetch,
		},
		{
			name:    "zero timeout string",
			mutate:  func(c *Config) { c.Fetch.Timeout = "0s" },
			wantErr: ErrInvalidFetch,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestFetchTimeout(t *testing.T) {
	t.Parallel()

	t.Run("empty means default", func(t *testing.T) {
		t.Parallel()
		cfg := DefaultConfig()
		d, err := cfg.FetchTimeout()
		if err != nil || d != 0 {
			t.Errorf("FetchTimeout() = (%v, %v), want (0, nil)", d, err)
		}
	})

	t.Run("parses duration", func(t *testing.T) {
		t.Parallel()
		cfg := &Config{Fetch: FetchConfig{Timeout: "2m30s"}}
		d, err := cfg.FetchTimeout()
		if err != nil {
			t.Fatal(err)
		}
		if want := 2*time.Minute + 30*time.Second; d != want {
			t.Errorf("FetchTimeout() = %v, want %v", d, want)
		}
	})
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	t.Run("writes loadable file", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "imgembed.yaml")

		if err := WriteDefault(path); err != nil {
			t.Fatalf("WriteDefault() error = %v", err)
		}
		if _, err := LoadConfig(path); err != nil {
			t.Errorf("written default does not load back: %v", err)
		}
	})

	t.Run("refuses to overwrite", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "imgembed.yaml")
		if err := os.WriteFile(path, []byte("input: {}\n"), 0o644); err != nil {
			t.Fatal(err)
		}

		if err := WriteDefault(path); err == nil {
			t.Error("WriteDefault() should fail on existing file")
		}
	})
}
