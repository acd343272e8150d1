package utils

import (
	"math/rand"
	"sync"
)

// Random is the source of game randomness. Tests substitute a seeded or scripted source.
type Random interface {
	// Float64 returns a value in [0.0, 1.0)
	Float64() float64
	// Intn returns a value in [0, n)
	Intn(n int) int
}

type globalRandom struct{}

func (globalRandom) Float64() float64 {
	return rand.Float64() //nolint:gosec // Game logic randomness, not security critical
}

func (globalRandom) Intn(n int) int {
	return rand.Intn(n) //nolint:gosec // Game logic randomness, not security critical
}

// DefaultRandom uses the process-wide generator
var DefaultRandom Random = globalRandom{}

// SeededRandom is a deterministic, goroutine-safe source
type SeededRandom struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSeededRandom creates a deterministic source
func NewSeededRandom(seed int64) *SeededRandom {
	return &SeededRandom{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // Game logic randomness, not security critical
}

func (s *SeededRandom) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *SeededRandom) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// RandomInt returns a random integer between min and max (inclusive)
func RandomInt(min, max int) int {
	if min > max {
		return min
	}
	return DefaultRandom.Intn(max-min+1) + min
}

// Pick returns a uniformly chosen element, or the zero value for an empty slice
func Pick[T any](r Random, items []T) (T, bool) {
	var zero T
	if len(items) == 0 {
		return zero, false
	}
	return items[r.Intn(len(items))], true
}

// Weighted is an entry of a cumulative probability table, weights in percent
type Weighted[T any] struct {
	Value  T
	Weight float64
}

// PickWeighted performs one cumulative draw over percent weights. Weights need not sum
// to 100; the leftover mass yields ok == false.
func PickWeighted[T any](r Random, table []Weighted[T]) (T, bool) {
	roll := r.Float64() * 100
	cumulative := 0.0
	for _, entry := range table {
		cumulative += entry.Weight
		if roll < cumulative {
			return entry.Value, true
		}
	}
	var zero T
	return zero, false
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
