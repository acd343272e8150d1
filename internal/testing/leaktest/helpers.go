// Package leaktest checks that background loops and workers exit when stopped.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleDelay  = 10 * time.Millisecond
	pollInterval = 10 * time.Millisecond
	// DefaultTimeout bounds how long Check waits for goroutines to exit
	DefaultTimeout = time.Second
)

// GoroutineChecker records the goroutine count at creation and compares against it later
type GoroutineChecker struct {
	before int
	t      testing.TB
}

// NewGoroutineChecker records the current goroutine count
func NewGoroutineChecker(t testing.TB) *GoroutineChecker {
	t.Helper()

	runtime.Gosched()
	time.Sleep(settleDelay)

	return &GoroutineChecker{
		before: runtime.NumGoroutine(),
		t:      t,
	}
}

// Check fails the test when more than tolerance goroutines are still running after
// DefaultTimeout. Stopped timers and tickers may take a moment to unwind, so the count
// is polled instead of sampled once.
func (g *GoroutineChecker) Check(tolerance int) {
	g.t.Helper()

	target := g.before + tolerance
	if n, ok := waitFor(target, DefaultTimeout); !ok {
		g.t.Errorf("goroutine leak: before=%d after=%d leaked=%d (tolerance=%d)",
			g.before, n, n-g.before, tolerance)
	}
}

// CheckNoGoroutineLeak runs fn and fails the test if it leaves goroutines behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	checker := NewGoroutineChecker(t)
	fn()
	checker.Check(0)
}

// WaitForGoroutines waits until at most target goroutines are running
func WaitForGoroutines(t testing.TB, target int, timeout time.Duration) {
	t.Helper()

	if n, ok := waitFor(target, timeout); !ok {
		t.Errorf("timeout waiting for goroutines: current=%d target=%d", n, target)
	}
}

func waitFor(target int, timeout time.Duration) (int, bool) {
	deadline := time.Now().Add(timeout)
	for {
		runtime.Gosched()
		n := runtime.NumGoroutine()
		if n <= target {
			return n, true
		}
		if time.Now().After(deadline) {
			return n, false
		}
		time.Sleep(pollInterval)
	}
}
