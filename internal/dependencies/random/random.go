package random

import (
	"crypto/rand"
	"math/big"
)

// Random provides random number generation that can be mocked for
// testing. The engine draws starting players and initial counter
// values through this interface so tests can supply deterministic
// sequences.
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// IntBetween returns a random int in [min, max] inclusive
	IntBetween(min, max int) int
}

// CryptoRandom implements Random using crypto/rand
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	max := big.NewInt(int64(n))
	result, err := rand.Int(rand.Reader, max)
	if err != nil {
		// Fall back to 0 on error (should never happen with crypto/rand)
		return 0
	}
	return int(result.Int64())
}

// IntBetween returns a random int in [min, max] inclusive
func (r *CryptoRandom) IntBetween(min, max int) int {
	if max < min {
		return min
	}
	return min + r.Intn(max-min+1)
}
