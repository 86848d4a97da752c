// Package pool provides a bounded-concurrency worker pool for fan-out fetches
package pool

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
)

// CancelFlag is the soft, best-effort cancellation handle for a running
// batch. Setting it does not abort in-flight tasks; pullers stop taking new
// units and results of tasks that finish afterwards are discarded.
type CancelFlag struct {
	set atomic.Bool
}

// Set marks the batch as cancelled.
func (f *CancelFlag) Set() { f.set.Store(true) }

// IsSet reports whether cancellation was requested.
func (f *CancelFlag) IsSet() bool { return f != nil && f.set.Load() }

// Run executes task over units with at most limit tasks in flight, pulling
// from a shared FIFO queue. The limit is clamped to len(units); zero units
// returns an empty slice immediately. A failing or panicking task never stops
// the other pullers: panics are converted to results via recovered. Unless
// the batch is cancelled, the returned slice has exactly one result per unit,
// in no particular order.
func Run[U, R any](ctx context.Context, units []U, limit int, task func(context.Context, U) R, recovered func(U, any) R, cancel *CancelFlag) []R {
	if len(units) == 0 {
		return []R{}
	}
	if limit <= 0 || limit > len(units) {
		limit = len(units)
	}

	var (
		mu      sync.Mutex
		next    int
		results = make([]R, 0, len(units))
		wg      sync.WaitGroup
	)

	puller := func() {
		defer wg.Done()
		for {
			mu.Lock()
			if next >= len(units) || cancel.IsSet() {
				mu.Unlock()
				return
			}
			unit := units[next]
			next++
			mu.Unlock()

			res := runOne(ctx, unit, task, recovered)

			mu.Lock()
			if !cancel.IsSet() {
				results = append(results, res)
			}
			mu.Unlock()
		}
	}

	wg.Add(limit)
	for i := 0; i < limit; i++ {
		go puller()
	}
	wg.Wait()

	return results
}

// runOne invokes task and converts a panic into an error-shaped result so a
// single bad unit cannot take down its puller.
func runOne[U, R any](ctx context.Context, unit U, task func(context.Context, U) R, recovered func(U, any) R) (res R) {
	defer func() {
		if r := recover(); r != nil {
			if recovered != nil {
				res = recovered(unit, r)
			}
		}
	}()
	return task(ctx, unit)
}

// Recovered formats a panic value for inclusion in an error-shaped result.
func Recovered(v any) string {
	return fmt.Sprintf("task panicked: %v", v)
}
