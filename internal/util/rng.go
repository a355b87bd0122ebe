package util

import "math/rand"

// New returns the random source owned by one match. Seed 0 is remapped so an
// unset seed still yields a reproducible stream.
func New(seed int64) *rand.Rand {
	if seed == 0 {
		seed = 1
	}
	return rand.New(rand.NewSource(seed))
}

// Roll draws once from rng and reports whether the draw fell under percent.
// The draw is consumed even when percent is 0 or 100 so the stream position
// only depends on how many rolls were made.
func Roll(rng *rand.Rand, percent int) bool {
	return rng.Intn(100) < percent
}

func ClampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
