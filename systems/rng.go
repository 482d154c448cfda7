package systems

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
)

// Rand is the only source of randomness the simulation uses. *rand.Rand
// satisfies it; tests substitute scripted sequences.
type Rand interface {
	Float64() float64
}

// NewRand returns a deterministic generator for the given seed.
func NewRand(seed int64) *rand.Rand {
	// #nosec G404
	return rand.New(rand.NewPCG(seedWord(seed, "a"), seedWord(seed, "b")))
}

func seedWord(seed int64, salt string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s", seed, salt)))
	return h.Sum64()
}

// chance reports whether a uniform draw falls below p.
func chance(rng Rand, p float64) bool {
	return rng.Float64() < p
}

// Pick returns a uniform index in [0, n).
func Pick(rng Rand, n int) int {
	return min(int(rng.Float64()*float64(n)), n-1)
}
