package game

import (
	"crypto/rand"
	"math/big"
)

// RandomInt returns a uniformly distributed integer in [0, maxExclusive)
// from a cryptographically strong source. Returns 0 when maxExclusive <= 0.
func RandomInt(maxExclusive int) int {
	if maxExclusive <= 0 {
		return 0
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(maxExclusive)))
	if err != nil {
		// crypto/rand only fails when the platform entropy source is broken;
		// a zero index keeps the caller functional.
		return 0
	}
	return int(n.Int64())
}

// Shuffle permutes s in place with a Fisher-Yates walk from the last index
// down to 1. Given a uniform RandomInt every permutation is equally likely.
func Shuffle[T any](s []T) {
	for i := len(s) - 1; i > 0; i-- {
		j := RandomInt(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
