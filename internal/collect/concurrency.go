package collect

import "runtime"

// maxWorkers caps the pool so a large catalog cannot open an unbounded
// number of simultaneous connections against one origin.
const maxWorkers = 32

// DefaultWorkers sizes the pool for I/O-bound detail fetches: a multiple of
// the CPU count, clamped to [NumCPU, maxWorkers].
func DefaultWorkers() int {
	numCPU := runtime.NumCPU()

	workers := numCPU * 3
	if workers < numCPU {
		workers = numCPU
	}
	if workers > maxWorkers {
		workers = maxWorkers
	}
	return workers
}
