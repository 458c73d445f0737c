// Package randutil centralises RNG construction so every call site derives
// reproducible sequences from a single int64 seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from seed. rand/v2's PCG
// wants two 64-bit seeds; both are derived here so the mapping from seed to
// sequence is identical everywhere.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// HandSeed derives the independent seed for the nth hand of a run, so any
// single hand can be replayed from the run seed and its index alone.
func HandSeed(runSeed int64, hand int) int64 {
	return runSeed + int64(hand)
}

// TimeSeed returns a seed for callers that did not ask for determinism.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}

// mix is a splitmix64 finalizer; it keeps nearby seeds from producing
// correlated PCG streams.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
