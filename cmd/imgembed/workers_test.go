package main

import (
	"runtime"
	"testing"
)

func TestResolveWorkerCount(t *testing.T) {
	t.Parallel()

	t.Run("explicit value wins", func(t *testing.T) {
		t.Parallel()
		if got := resolveWorkerCount(3); got != 3 {
			t.Errorf("resolveWorkerCount(3) = %d, want 3", got)
		}
	})

	t.Run("explicit value clamped to max", func(t *testing.T) {
		t.Parallel()
		if got := resolveWorkerCount(100); got != maxWorkers {
			t.Errorf("resolveWorkerCount(100) = %d, want %d", got, maxWorkers)
		}
	})

	t.Run("zero falls back to GOMAXPROCS", func(t *testing.T) {
		t.Parallel()
		want := runtime.GOMAXPROCS(0)
		if want > maxWorkers {
			want = maxWorkers
		}
		if got := resolveWorkerCount(0); got != want {
			t.Errorf("resolveWorkerCount(0) = %d, want %d", got, want)
		}
	})

	t.Run("never below one", func(t *testing.T) {
		t.Parallel()
		if got := resolveWorkerCount(0); got < minWorkers {
			t.Errorf("resolveWorkerCount(0) = %d, want >= %d", got, minWorkers)
		}
	})
}
