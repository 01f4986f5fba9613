package lighting

import (
	"math/rand/v2"
	"time"
)

/*
Source is the randomness consumed by the lighting generators. *rand.Rand from
math/rand/v2 satisfies it; tests substitute scripted sources to pin outcomes.
*/
type Source interface {
	IntN(n int) int
	Float64() float64
}

// NewSource returns a PCG-backed generator. A zero seed is replaced by the clock.
func NewSource(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// randInt draws uniformly from the inclusive range [lo, hi]. An empty range returns lo.
func randInt(r Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.IntN(hi-lo+1)
}

// scaled truncates fraction*n toward zero.
func scaled(n int, fraction float64) int {
	return int(float64(n) * fraction)
}
