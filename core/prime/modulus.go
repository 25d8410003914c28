package prime

import (
	"errors"
	"io"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/quorumbyte/tpaillier/core/math/arith"
	"github.com/quorumbyte/tpaillier/core/pool"
	"github.com/quorumbyte/tpaillier/lib/params"
)

var (
	// ErrDegenerateModulus is returned when the two primes are equal or close
	// enough that n = p⋅q would be vulnerable to Fermat factoring. The
	// generator retries on it; callers supplying their own primes see it.
	ErrDegenerateModulus = errors.New("prime: degenerate modulus, primes equal or too close")

	// ErrNonInvertibleLambda indicates gcd(λ, n) ≠ 1 during derivation. With
	// two distinct safe primes this cannot happen, so it signals a generation
	// bug rather than a retryable condition.
	ErrNonInvertibleLambda = errors.New("prime: lambda is not invertible mod n")

	// ErrUnequalPrimes is returned when the two primes differ in bit length;
	// the factors of a modulus must share a target bit length.
	ErrUnequalPrimes = errors.New("prime: primes differ in bit length")
)

// SafeModulus carries a modulus n = p⋅q built from safe primes, together with
// every value derived from its factorization that key generation needs.
// It is the secret half of the generator's output; only N and NSquared may be
// published.
type SafeModulus struct {
	// N = p⋅q, with the factorization cached for fast exponentiation
	N *arith.Modulus
	// NSquared = n², the ciphertext modulus
	NSquared *arith.Modulus
	// M = p'⋅q' where p = 2p'+1 and q = 2q'+1
	M *saferith.Modulus
	// NM = n⋅m, the secret sharing modulus
	NM *saferith.Modulus
	// Lambda = lcm(p-1, q-1) = 2⋅p'⋅q'
	Lambda *saferith.Nat
	// Mu = λ⁻¹ (mod n)
	Mu *saferith.Nat

	P, Q *saferith.Nat
}

// NewSafeModulus derives all modulus values from two safe primes of equal bit
// length. It rejects primes of different bit lengths with ErrUnequalPrimes,
// and p = q or |p - q| below the Fermat-distance floor with
// ErrDegenerateModulus.
func NewSafeModulus(p, q *saferith.Nat) (*SafeModulus, error) {
	pBig, qBig := p.Big(), q.Big()
	if pBig.BitLen() != qBig.BitLen() {
		return nil, ErrUnequalPrimes
	}
	dist := new(big.Int).Sub(pBig, qBig)
	dist.Abs(dist)
	minDist := pBig.BitLen() - params.PrimeDistance
	if dist.Sign() == 0 || (minDist > 0 && dist.BitLen() <= minDist) {
		return nil, ErrDegenerateModulus
	}

	n := arith.ModulusFromFactors(p, q)
	nNat := n.Nat()
	nSquaredNat := new(saferith.Nat).Mul(nNat, nNat, -1)
	nSquared := arith.ModulusFromN(saferith.ModulusFromNat(nSquaredNat))

	// p' = (p-1)/2, q' = (q-1)/2
	pHalf := new(saferith.Nat).Rsh(p, 1, -1)
	qHalf := new(saferith.Nat).Rsh(q, 1, -1)
	mNat := new(saferith.Nat).Mul(pHalf, qHalf, -1)
	m := saferith.ModulusFromNat(mNat)
	nm := saferith.ModulusFromNat(new(saferith.Nat).Mul(nNat, mNat, -1))

	// λ = lcm(p-1, q-1) = 2⋅p'⋅q', since gcd(p-1, q-1) = 2
	lambda := new(saferith.Nat).Add(mNat, mNat, -1)
	lambdaRed := new(saferith.Nat).Mod(lambda, n.Modulus)
	if lambdaRed.IsUnit(n.Modulus) != 1 {
		return nil, ErrNonInvertibleLambda
	}
	mu := new(saferith.Nat).ModInverse(lambdaRed, n.Modulus)

	return &SafeModulus{
		N:        n,
		NSquared: nSquared,
		M:        m,
		NM:       nm,
		Lambda:   lambda,
		Mu:       mu,
		P:        p,
		Q:        q,
	}, nil
}

// Generate produces a fresh SafeModulus whose factors are safe primes of
// bits/2 each, retrying until the pair passes the degeneracy checks.
func Generate(rand io.Reader, pl *pool.Pool, bits int) (*SafeModulus, error) {
	for {
		p, q := SafePrimes(rand, pl, bits/2)
		sm, err := NewSafeModulus(p, q)
		if errors.Is(err, ErrDegenerateModulus) {
			continue
		}
		return sm, err
	}
}
