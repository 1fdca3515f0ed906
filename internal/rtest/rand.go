package rtest

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand/v2"
	"testing"
)

// RandomName returns a short hex string of pseudorandom data,
// derived from a seed based on the test name. Values differ across
// tests but stay reproducible within one.
func RandomName(t testing.TB) string {
	// Sha256 happens to be the right size for the chacha8 seed,
	// so the name length never limits the seed.
	seed := sha256.Sum256([]byte(t.Name()))
	chacha := rand.NewChaCha8(seed)

	buf := make([]byte, 8)
	if _, err := chacha.Read(buf); err != nil {
		panic(err)
	}

	return hex.EncodeToString(buf)
}
