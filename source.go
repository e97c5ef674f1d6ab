package vose

import (
	"math/rand"
	"sync"
)

// Source supplies the two uniform variates a draw consumes. It is the only
// boundary dependency of sampling; the structure itself holds no generator
// state beyond the default source configured at construction.
//
// *rand.Rand satisfies Source directly.
type Source interface {
	// Intn returns a uniform random int in [0, n). n is always >= 1.
	Intn(n int) int

	// Float64 returns a uniform random float64 in [0.0, 1.0).
	Float64() float64
}

// lockedSource is a mutex-guarded math/rand source. math/rand.Rand is not
// safe for concurrent use, and the default source of a shared VoseAlias may
// be hit from multiple goroutines.
type lockedSource struct {
	mu   sync.Mutex
	rand *rand.Rand
}

// NewSource returns a Source backed by math/rand, seeded with seed. It is
// safe for concurrent use; callers that sample from many goroutines get
// better throughput with one unshared Source per goroutine.
func NewSource(seed int64) Source {
	return &lockedSource{
		rand: rand.New(rand.NewSource(seed)),
	}
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Intn(n)
}

func (s *lockedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rand.Float64()
}
