package testutil

import (
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe and satisfies vose.Source.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns, as a float64, a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Weights generates a random normalized weight vector of length n.
// The entries are positive and sum to exactly the normalized total.
func (r *RNG) Weights(n int) []float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := make([]float64, n)
	sum := 0.0
	for i := range w {
		// Offset keeps entries away from zero so tests also exercise the
		// redistribution loop rather than degenerate all-light inputs.
		w[i] = r.rand.Float64() + 1e-3
		sum += w[i]
	}
	for i := range w {
		w[i] /= sum
	}

	return w
}

// PairSource replays a fixed sequence of (index, uniform) draw pairs.
// It pins exact branch selection of the coin flip in tests.
type PairSource struct {
	Pairs []Pair
	pos   int
}

// Pair is one scripted draw: the uniform index and the uniform real.
type Pair struct {
	I int
	U float64
}

// Intn returns the index of the current pair.
func (s *PairSource) Intn(n int) int {
	return s.Pairs[s.pos%len(s.Pairs)].I % n
}

// Float64 returns the uniform of the current pair and advances.
func (s *PairSource) Float64() float64 {
	u := s.Pairs[s.pos%len(s.Pairs)].U
	s.pos++
	return u
}
