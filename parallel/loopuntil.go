// Package parallel contains the concurrency primitives used while training: ForEach,
// LoopUntil, an ordered prediction Hasher and the MoveSet of already tried moves.
package parallel

import (
	"math"
	"sync"
	"sync/atomic"
)

// LoopStopper reports whether the loop was stopped by some other goroutine.
type LoopStopper interface {
	Load() bool
}

// Loop is the number of goroutines LoopUntil runs.
type Loop int

// LoopUntil starts l goroutines which take unique indexes starting from 0 and pass
// them to yield. The loop ends once any yield returns true or the indexes run out.
func (l Loop) LoopUntil(yield func(i uint32, ender LoopStopper) bool) {
	if l <= 0 {
		l = 1
	}
	var (
		i     uint32
		ender atomic.Bool
		wg    sync.WaitGroup
	)

	for n := 0; n < int(l); n++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				if ender.Load() {
					return
				}

				next := atomic.AddUint32(&i, 1)
				if next == math.MaxUint32 {
					ender.Store(true)
					return
				}

				if yield(next-1, &ender) {
					ender.Store(true)
					return
				}
			}
		}()
	}

	wg.Wait()
}
