package common

import (
	"math/rand"
	"sync"
	"time"
)

// RandomSource supplies the entropy consumed by Shuffle.
type RandomSource interface {
	// Returns a uniformly distributed int in [0, n).
	Intn(n int) int
}

type lockedSource struct {
	mutex sync.Mutex
	rng   *rand.Rand
}

// NewRandomSource returns a RandomSource that is safe for concurrent use. A
// seed of 0 seeds from the clock.
func NewRandomSource(seed int64) RandomSource {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &lockedSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *lockedSource) Intn(n int) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.rng.Intn(n)
}

// Shuffle returns a uniform random permutation of in using Fisher-Yates. The
// input slice is left untouched.
func Shuffle[T any](rs RandomSource, in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	for i := len(out) - 1; i > 0; i-- {
		j := rs.Intn(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}
