package common

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// GetGrainSize returns a reasonable value to use in ParallelFor
func GetGrainSize(n, minGrainSize, maxGrainSize int) int {
	procs := runtime.GOMAXPROCS(0)
	grainPerProc := n / procs
	if grainPerProc < minGrainSize {
		return minGrainSize
	}
	if grainPerProc > maxGrainSize {
		return maxGrainSize
	}
	return grainPerProc
}

// ParallelFor computes the function f in parallel using chunks of the given
// size. The chunks are independent; no ordering is guaranteed between them.
func ParallelFor(n, grain int, f func(start, end int)) {
	P := runtime.GOMAXPROCS(0)
	idx := uint64(0)
	var wg sync.WaitGroup
	wg.Add(P)
	for p := 0; p < P; p++ {
		go func() {
			for {
				start := int(atomic.AddUint64(&idx, uint64(grain))) - grain
				if start >= n {
					break
				}
				end := start + grain
				if end > n {
					end = n
				}
				f(start, end)
			}
			wg.Done()
		}()
	}
	wg.Wait()
}
