// Package test provides deterministic randomness and fixture primes for the
// test suites. Nothing here is suitable for production keys.
package test

import (
	"io"

	"golang.org/x/crypto/sha3"
)

// NewDeterministicRand returns a reader producing an unbounded pseudo-random
// stream derived from seed via SHAKE-256. Substituting it for crypto/rand
// makes a test reproducible run to run.
//
// The returned reader is not safe for concurrent use; pass a nil pool to
// anything that would fan it out across workers.
func NewDeterministicRand(seed string) io.Reader {
	h := sha3.NewShake256()
	_, _ = h.Write([]byte("tpaillier-test-rand"))
	_, _ = h.Write([]byte(seed))
	return h
}
