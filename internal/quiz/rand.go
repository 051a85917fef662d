package quiz

import "math/rand/v2"

// Rand is the source of every random draw made while building banks,
// distractors and quiz sets. *rand.Rand from math/rand/v2 satisfies it.
// Implementations need not be safe for concurrent use.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// NewRand returns a Rand seeded from the runtime's entropy source.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewSeededRand returns a deterministic Rand for reproducible banks.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// between returns a value in [lo, hi).
func between(r Rand, lo, hi int) int {
	return lo + r.IntN(hi-lo)
}
