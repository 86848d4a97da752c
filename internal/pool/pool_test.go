package pool

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// TestRunResultCount verifies the one-result-per-unit guarantee across unit
// counts and limits, including limits larger than the unit count.
func TestRunResultCount(t *testing.T) {
	tests := []struct {
		name  string
		units int
		limit int
	}{
		{name: "no units", units: 0, limit: 4},
		{name: "single unit", units: 1, limit: 4},
		{name: "limit smaller than units", units: 20, limit: 3},
		{name: "limit equal to units", units: 5, limit: 5},
		{name: "limit larger than units", units: 3, limit: 100},
		{name: "zero limit clamps to unit count", units: 7, limit: 0},
		{name: "negative limit clamps to unit count", units: 7, limit: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units := make([]int, tt.units)
			for i := range units {
				units[i] = i
			}

			results := Run(context.Background(), units, tt.limit,
				func(_ context.Context, u int) int { return u * 2 },
				func(u int, _ any) int { return -1 },
				nil)

			if len(results) != tt.units {
				t.Errorf("expected %d results, got %d", tt.units, len(results))
			}

			sort.Ints(results)
			for i, r := range results {
				if r != i*2 {
					t.Errorf("result %d: expected %d, got %d", i, i*2, r)
				}
			}
		})
	}
}

// TestRunConcurrencyLimit checks that no more than limit tasks run at once.
func TestRunConcurrencyLimit(t *testing.T) {
	const limit = 3
	var current, peak int64
	var mu sync.Mutex

	units := make([]int, 30)
	Run(context.Background(), units, limit,
		func(_ context.Context, u int) int {
			n := atomic.AddInt64(&current, 1)
			mu.Lock()
			if n > peak {
				peak = n
			}
			mu.Unlock()
			time.Sleep(2 * time.Millisecond)
			atomic.AddInt64(&current, -1)
			return u
		},
		nil, nil)

	if peak > limit {
		t.Errorf("observed %d concurrent tasks, limit was %d", peak, limit)
	}
	if peak == 0 {
		t.Error("no tasks observed running")
	}
}

// TestRunPanicRecovery verifies a panicking unit yields an error-shaped
// result instead of dropping it or killing its puller.
func TestRunPanicRecovery(t *testing.T) {
	units := []int{0, 1, 2, 3, 4}

	results := Run(context.Background(), units, 2,
		func(_ context.Context, u int) string {
			if u == 2 {
				panic("boom")
			}
			return fmt.Sprintf("ok-%d", u)
		},
		func(u int, v any) string {
			return fmt.Sprintf("failed-%d: %s", u, Recovered(v))
		},
		nil)

	if len(results) != len(units) {
		t.Fatalf("expected %d results, got %d", len(units), len(results))
	}

	var failures int
	for _, r := range results {
		if strings.HasPrefix(r, "failed-2") {
			failures++
			if !strings.Contains(r, "task panicked: boom") {
				t.Errorf("recovered result missing panic message: %q", r)
			}
		}
	}
	if failures != 1 {
		t.Errorf("expected exactly 1 recovered result, got %d", failures)
	}
}

// TestRunCancellation verifies a cancelled batch stops taking new units and
// discards late results, so the caller never sees a partial batch as whole.
func TestRunCancellation(t *testing.T) {
	flag := &CancelFlag{}
	var started int64

	units := make([]int, 50)
	results := Run(context.Background(), units, 2,
		func(_ context.Context, u int) int {
			if atomic.AddInt64(&started, 1) == 3 {
				flag.Set()
			}
			return u
		},
		nil, flag)

	if len(results) >= len(units) {
		t.Errorf("cancelled batch returned all %d results", len(results))
	}
	if int(started) >= len(units) {
		t.Error("cancelled batch still started every unit")
	}
}

func TestCancelFlagNilSafe(t *testing.T) {
	var flag *CancelFlag
	if flag.IsSet() {
		t.Error("nil flag reported set")
	}
}
