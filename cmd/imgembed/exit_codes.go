package main

import (
	"errors"
	"os"

	imgembed "github.com/alnah/go-imgembed"
	"github.com/alnah/go-imgembed/internal/config"
)

// Exit codes for the imgembed CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, 3=I/O.
// Per-reference inlining failures are warnings and never affect the code.
const (
	ExitSuccess = 0 // Successful run
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidFetch) ||
		errors.Is(err, imgembed.ErrEmptyDocument) ||
		errors.Is(err, imgembed.ErrInvalidBaseDir) ||
		errors.Is(err, imgembed.ErrInvalidMaxBytes) ||
		errors.Is(err, imgembed.ErrInvalidTimeout) ||
		errors.Is(err, imgembed.ErrInvalidMaxRedirects) ||
		errors.Is(err, ErrInvalidWorkerCount) ||
		errors.Is(err, ErrOutputConflict) {
		return ExitUsage
	}

	return ExitGeneral
}
