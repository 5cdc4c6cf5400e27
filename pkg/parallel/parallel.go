// Package parallel provides a fixed worker pool over disjoint index ranges.
package parallel

import (
	"runtime"
	"sync"
)

// ParallelThreshold is the pixel count above which filters split their work
// across workers. Below it the pool overhead outweighs the gain.
const ParallelThreshold = 65_536

// chunk is one half-open index range [Lo, Hi).
type chunk struct {
	lo, hi int
}

// ForEachRange splits [0, n) into per-worker chunks and runs fn on each chunk
// from a pool of workers, then waits for all of them. Chunks are disjoint, so
// fn may write to its slice of the output without locking. workers <= 0 uses
// runtime.NumCPU(). The split is deterministic; results are identical for any
// worker count as long as fn itself is deterministic per index.
func ForEachRange(n, workers int, fn func(lo, hi int)) {
	if n <= 0 {
		return
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > n {
		workers = n
	}
	if workers == 1 {
		fn(0, n)
		return
	}

	jobs := make(chan chunk, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				fn(c.lo, c.hi)
			}
		}()
	}

	size := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += size {
		hi := lo + size
		if hi > n {
			hi = n
		}
		jobs <- chunk{lo: lo, hi: hi}
	}
	close(jobs)

	wg.Wait()
}
