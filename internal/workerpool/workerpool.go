// Package workerpool implements the bounded-parallelism primitive shared by
// the symtypes loader and comparator (spec.md §4.X): a fixed worker count,
// each pulling the next unclaimed item from a single atomic counter rather
// than a per-worker queue, with cooperative cancellation on the first error.
package workerpool

import (
	"sync"
	"sync/atomic"
)

// Run dispatches up to workers goroutines, each repeatedly claiming the next
// unclaimed index in [0, n) via an atomic fetch-and-increment and invoking fn
// on it. On the first error returned by any call to fn, Run signals the rest
// to stop by fast-forwarding the shared counter past n — in-flight items are
// allowed to finish, but no new item is claimed — and returns that first
// error once every worker has exited. workers <= 0 is treated as 1.
func Run(n int, workers int, fn func(idx int) error) error {
	if n <= 0 {
		return nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	var next atomic.Int64
	var once sync.Once
	var firstErr error

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				idx := int(next.Add(1)) - 1
				if idx >= n {
					return
				}
				if err := fn(idx); err != nil {
					once.Do(func() {
						firstErr = err
						// Drain: push the counter past the end so every
						// other worker observes idx >= n on its next claim.
						next.Store(int64(n))
					})
					return
				}
			}
		}()
	}
	wg.Wait()

	return firstErr
}
