package deck

import (
	"math/rand/v2"
)

// RandomSource picks uniformly distributed indices. *rand.Rand from
// math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int // [0, n)
}

type globalRNG struct{}

func (globalRNG) IntN(n int) int { return rand.IntN(n) }

// DefaultRNG returns a source backed by the runtime-seeded global generator.
func DefaultRNG() RandomSource { return globalRNG{} }

// NewSeededRNG returns a reproducible source, used for replays and tests.
func NewSeededRNG(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, 0))
}
