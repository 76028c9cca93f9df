package main

import "runtime"

// Worker sizing constants.
const (
	// minWorkers ensures at least one file is processed.
	minWorkers = 1

	// maxWorkers caps parallelism; inlining is I/O-bound and more workers
	// mostly add contention on the remote side.
	maxWorkers = 8
)

// resolveWorkerCount determines how many inputs to process in parallel.
// Priority: explicit workers > GOMAXPROCS (automaxprocs-adjusted), clamped.
func resolveWorkerCount(explicit int) int {
	n := explicit
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	if n < minWorkers {
		n = minWorkers
	}
	if n > maxWorkers {
		n = maxWorkers
	}
	return n
}
