package providers

import (
	"math/rand"
	"sync"
)

// RandomSource abstracts the randomness used for vitals drift, toll-point
// selection and transport unit labels so tests can supply deterministic
// sequences. One source may be shared between dispatch handlers and the
// tick fan-out, so implementations must be safe for concurrent use.
type RandomSource interface {
	// Float64 returns a pseudo-random number in [0.0, 1.0)
	Float64() float64

	// Intn returns a non-negative pseudo-random number in [0, n)
	Intn(n int) int
}

// mathRandSource is the default RandomSource backed by math/rand.
// *rand.Rand itself is not safe for concurrent use, so draws are
// serialized here.
type mathRandSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomSource creates a RandomSource seeded from the given seed
func NewRandomSource(seed int64) RandomSource {
	return &mathRandSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *mathRandSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64()
}

func (s *mathRandSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}
