package randutil

import (
	rand "math/rand/v2"
	"time"
)

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// Source is the randomness every game draws on: uniform integer picks and
// uniform permutations. *rand.Rand from math/rand/v2 satisfies it.
type Source interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// New returns a *rand.Rand seeded deterministically from the provided int64.
// The helper centralises how we derive the two 64-bit seeds required by rand/v2
// so that all call sites get reproducible sequences.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// NewFromSeed treats a zero seed as "not set" and seeds from the wall clock,
// matching how the config layer represents an absent seed.
func NewFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return New(seed)
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
