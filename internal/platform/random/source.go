package random

import "math/rand"

// NewSource returns a deterministic source for seed.
// The returned source is not safe for concurrent use.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
