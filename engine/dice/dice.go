// Package dice provides the single uniform random source used by a turn.
// The RNG wraps math/rand with deterministic position tracking so a run
// can be reproduced from its seed and draw count.
package dice

import (
	"math/rand"
	"sync"
)

// RNG is a seeded random source with position tracking. Draws are
// serialized with a mutex: one engine is shared by every connected
// session, and math/rand sources are not safe for concurrent use.
type RNG struct {
	mu   sync.Mutex
	seed int64
	src  *rand.Rand
	pos  int64
}

// New creates a deterministic RNG from a seed.
func New(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

// Roll returns a random integer in [1, sides].
func (r *RNG) Roll(sides int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pos++
	return r.src.Intn(sides) + 1
}

// Intn returns a random integer in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pos++
	return r.src.Intn(n)
}

// Percent returns a random integer in [1, 100].
func (r *RNG) Percent() int {
	return r.Roll(100)
}

// Float64 returns a random float in [0, 1).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pos++
	return r.src.Float64()
}

// Seed returns the seed this RNG was created from.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.pos
}

// Restore creates an RNG and advances it to the given position, reproducing
// the exact state of a previous run.
func Restore(seed int64, position int64) *RNG {
	rng := New(seed)
	for i := int64(0); i < position; i++ {
		rng.src.Int63()
	}
	rng.pos = position
	return rng
}
