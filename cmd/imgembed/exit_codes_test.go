package main

import (
	"errors"
	"fmt"
	"os"
	"testing"

	imgembed "github.com/alnah/go-imgembed"
	"github.com/alnah/go-imgembed/internal/config"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: ExitSuccess},
		{name: "generic error", err: errors.New("boom"), want: ExitGeneral},
		{name: "file not found", err: os.ErrNotExist, want: ExitIO},
		{name: "permission denied", err: os.ErrPermission, want: ExitIO},
		{name: "read input", err: ErrReadInput, want: ExitIO},
		{name: "write output", err: ErrWriteOutput, want: ExitIO},
		{name: "config not found", err: config.ErrConfigNotFound, want: ExitUsage},
		{name: "config parse", err: config.ErrConfigParse, want: ExitUsage},
		{name: "invalid fetch setting", err: config.ErrInvalidFetch, want: ExitUsage},
		{name: "empty document", err: imgembed.ErrEmptyDocument, want: ExitUsage},
		{name: "invalid max bytes", err: imgembed.ErrInvalidMaxBytes, want: ExitUsage},
		{name: "invalid worker count", err: ErrInvalidWorkerCount, want: ExitUsage},
		{name: "output conflict", err: ErrOutputConflict, want: ExitUsage},
		{
			name: "wrapped sentinel",
			err:  fmt.Errorf("processing: %w", ErrReadInput),
			want: ExitIO,
		},
		{
			name: "deeply wrapped sentinel",
			err:  fmt.Errorf("outer: %w", fmt.Errorf("inner: %w", config.ErrConfigNotFound)),
			want: ExitUsage,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
