package clock

import (
	"sync"
	"time"
)

// Clock is the game's only source of the current time. Calendar decisions such as
// day rollover, time-of-day buckets and seasons use the location of the times it
// returns.
type Clock interface {
	Now() time.Time
	Since(t time.Time) time.Duration
}

// RealClock reads the system clock in a fixed location
type RealClock struct {
	loc *time.Location
}

// NewRealClock returns a clock in the host's local zone
func NewRealClock() *RealClock {
	return &RealClock{loc: time.Local}
}

// NewRealClockIn returns a clock whose calendar follows loc. A nil loc means the
// host's local zone.
func NewRealClockIn(loc *time.Location) *RealClock {
	if loc == nil {
		loc = time.Local
	}
	return &RealClock{loc: loc}
}

// Now returns the current time in the clock's location
func (c *RealClock) Now() time.Time {
	return time.Now().In(c.loc)
}

// Since returns the time elapsed since t
func (c *RealClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Location returns the zone the clock's calendar follows
func (c *RealClock) Location() *time.Location {
	return c.loc
}

// SimulatedClock only moves when told to. It may be set backwards to model a device
// clock change. Safe for concurrent use.
type SimulatedClock struct {
	mu      sync.Mutex
	current time.Time
}

// NewSimulatedClock starts a simulated clock at start
func NewSimulatedClock(start time.Time) *SimulatedClock {
	return &SimulatedClock{current: start}
}

func (c *SimulatedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

func (c *SimulatedClock) Since(t time.Time) time.Duration {
	return c.Now().Sub(t)
}

// Advance moves the clock forward by d
func (c *SimulatedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	c.mu.Unlock()
}

// AdvanceHours moves the clock forward by a fractional number of hours
func (c *SimulatedClock) AdvanceHours(hours float64) {
	c.Advance(HoursToDuration(hours))
}

// Set jumps the clock to t, forwards or backwards
func (c *SimulatedClock) Set(t time.Time) {
	c.mu.Lock()
	c.current = t
	c.mu.Unlock()
}
