// Package config loads and validates imgembed configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-imgembed/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidFetch    = errors.New("invalid fetch setting")
)

// Field length limits.
const (
	MaxPathLength      = 4096 // Directory paths
	MaxUserAgentLength = 256  // User-Agent header value
	MaxTimeoutLength   = 30   // Duration strings like "45s" or "2m30s"
)

// appConfigDir is the per-user config directory name.
const appConfigDir = "go-imgembed"

// Config holds all configuration for document inlining.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Fetch  FetchConfig  `yaml:"fetch"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
	Markdown   bool   `yaml:"markdown"`   // Treat inputs as markdown regardless of extension
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// FetchConfig defines resolution limits for local reads and remote fetches.
type FetchConfig struct {
	MaxBytes     int64  `yaml:"maxBytes"`     // Byte ceiling per image, local and remote (0 = default)
	Timeout      string `yaml:"timeout"`      // Per-fetch wall clock, e.g. "30s" (empty = default)
	MaxRedirects int    `yaml:"maxRedirects"` // Redirect hop budget per fetch (0 = default)
	UserAgent    string `yaml:"userAgent"`    // User-Agent header (empty = default)
}

// DefaultConfig returns a neutral configuration; zero values defer to the
// library defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks field lengths and fetch limits. Called automatically by
// LoadConfig, but available for consumers who construct Config manually.
func (c *Config) Validate() error {
	if err := validateFieldLength("input.defaultDir", c.Input.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("output.defaultDir", c.Output.DefaultDir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength("fetch.userAgent", c.Fetch.UserAgent, MaxUserAgentLength); err != nil {
		return err
	}
	if err := validateFieldLength("fetch.timeout", c.Fetch.Timeout, MaxTimeoutLength); err != nil {
		return err
	}

	if c.Fetch.MaxBytes < 0 {
		return fmt.Errorf("%w: maxBytes must not be negative, got %d", ErrInvalidFetch, c.Fetch.MaxBytes)
	}
	if c.Fetch.MaxRedirects < 0 {
		return fmt.Errorf("%w: maxRedirects must not be negative, got %d", ErrInvalidFetch, c.Fetch.MaxRedirects)
	}
	if _, err := c.FetchTimeout(); err != nil {
		return err
	}

	return nil
}

// FetchTimeout parses the configured timeout. A zero duration means "use the
// library default".
func (c *Config) FetchTimeout() (time.Duration, error) {
	if c.Fetch.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Fetch.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidFetch, c.Fetch.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidFetch, d)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !strings.ContainsAny(nameOrPath, "/\\") {
		resolved, err := resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
		configPath = resolved
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// WriteDefault writes a default config file at path, failing if one exists.
func WriteDefault(path string) error {
	data, err := yamlutil.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("rendering default config: %w", err)
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) // #nosec G304 -- path is user-provided
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing config file: %w", err)
	}
	return f.Close()
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/go-imgembed/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appConfigDir, name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
