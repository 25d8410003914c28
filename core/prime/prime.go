// Package prime generates the safe primes and the derived modulus values
// backing a threshold Paillier key.
package prime

import (
	"errors"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/quorumbyte/tpaillier/core/pool"
	"github.com/quorumbyte/tpaillier/lib/params"
)

var (
	// ErrNotSafePrime is returned when a supplied prime fails validation.
	ErrNotSafePrime = errors.New("prime: not a safe prime")
	// ErrTooSmall is returned when a candidate's bit length is below what was requested.
	ErrTooSmall = errors.New("prime: bit length too small")
)

// The first many small primes, used to quickly sieve out bad candidates
// before running Miller-Rabin.
var smallPrimes = [...]uint64{
	3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59,
	61, 67, 71, 73, 79, 83, 89, 97, 101, 103, 107, 109, 113, 127,
	131, 137, 139, 149, 151, 157, 163, 167, 173, 179, 181, 191,
	193, 197, 199, 211, 223, 227, 229, 233, 239, 241, 251, 257,
	263, 269, 271, 277, 281, 283, 293, 307, 311, 313, 317, 331,
	337, 347, 349, 353, 359, 367, 373, 379, 383, 389, 397, 401,
	409, 419, 421, 431, 433, 439, 443, 449, 457, 461, 463, 467,
	479, 487, 491, 499, 503, 509, 521, 523, 541,
}

// trySafePrime attempts to generate a single safe prime of the given bit
// length, returning nil if the candidate was rejected. Splitting generation
// into independent single-shot attempts is what lets the pool race candidates.
func trySafePrime(rand io.Reader, bits int) *saferith.Nat {
	buf := make([]byte, (bits+7)/8)
	if _, err := io.ReadFull(rand, buf); err != nil {
		return nil
	}

	// Mask the excess high bits so the candidate has exactly `bits` bits,
	// then force the top two bits so that the product of two such primes
	// always reaches the full modulus length, and the low two bits so that
	// p ≡ 3 (mod 4), making q' = (p-1)/2 odd. The second-highest bit lands
	// in the next byte when the bit length is ≡ 1 (mod 8).
	excess := 8*len(buf) - bits
	buf[0] &= 0xFF >> excess
	if excess == 7 {
		buf[0] |= 0x01
		buf[1] |= 0x80
	} else {
		buf[0] |= 0xC0 >> excess
	}
	buf[len(buf)-1] |= 0x03

	p := new(big.Int).SetBytes(buf)
	if p.BitLen() != bits {
		return nil
	}
	// q' = (p - 1) / 2, the Sophie Germain half
	q := new(big.Int).Rsh(p, 1)

	// sieve both halves against small primes before the expensive test
	var r big.Int
	for _, s := range smallPrimes {
		prime := new(big.Int).SetUint64(s)
		if r.Mod(p, prime).Sign() == 0 || r.Mod(q, prime).Sign() == 0 {
			return nil
		}
	}

	if !q.ProbablyPrime(params.PrimeRounds) {
		return nil
	}
	if !p.ProbablyPrime(params.PrimeRounds) {
		return nil
	}

	return new(saferith.Nat).SetBig(p, bits)
}

// SafePrime generates a single safe prime of the given bit length serially.
func SafePrime(rand io.Reader, bits int) *saferith.Nat {
	for {
		if p := trySafePrime(rand, bits); p != nil {
			return p
		}
	}
}

// SafePrimes generates two distinct safe primes of the given bit length,
// racing candidate tests across the pool's workers. The first two accepted
// candidates win; the remaining workers are cancelled and their results
// discarded.
//
// rand must be safe for concurrent use when pl is non-nil; crypto/rand.Reader
// is. A nil pool runs the search serially.
func SafePrimes(rand io.Reader, pl *pool.Pool, bits int) (p, q *saferith.Nat) {
	for {
		results := pl.Search(2, func() interface{} {
			if r := trySafePrime(rand, bits); r != nil {
				return r
			}
			return nil
		})
		p = results[0].(*saferith.Nat)
		q = results[1].(*saferith.Nat)
		if p.Eq(q) != 1 {
			return p, q
		}
	}
}

// Validate checks that p is a safe prime of at least the given bit length.
// It is meant for primes that arrive from outside the generator, e.g. stored
// or fixture primes.
func Validate(p *saferith.Nat, bits int) error {
	pBig := p.Big()
	if pBig.BitLen() < bits {
		return ErrTooSmall
	}
	if !pBig.ProbablyPrime(params.PrimeRounds) {
		return ErrNotSafePrime
	}
	q := new(big.Int).Rsh(pBig, 1)
	if !q.ProbablyPrime(params.PrimeRounds) {
		return ErrNotSafePrime
	}
	return nil
}
