package paillier

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/quorumbyte/tpaillier/core/math/polynomial"
	"github.com/quorumbyte/tpaillier/core/pool"
	"github.com/quorumbyte/tpaillier/core/prime"
	"github.com/quorumbyte/tpaillier/lib/params"
)

// KeyGen deals a fresh threshold key: one public key, l private key shares
// and the dealer's secret key.
//
// The modulus is built from two safe primes of bits/2 each; candidates are
// raced across the pool's workers (a nil pool searches serially). rand must
// be a cryptographically secure source, safe for concurrent use when pl is
// non-nil.
func KeyGen(rand io.Reader, pl *pool.Pool, bits int, tp ThresholdParams) (*PublicKey, []*KeyShare, *SecretKey, error) {
	if err := tp.Validate(); err != nil {
		return nil, nil, nil, err
	}
	if bits < params.MinBitsPaillier {
		return nil, nil, nil, ErrInsecureKeySize
	}

	sm, err := prime.Generate(rand, pl, bits)
	if err != nil {
		return nil, nil, nil, err
	}
	return newKeyPair(rand, sm, tp)
}

// NewKeyPairFromPrimes deals a threshold key over a caller-supplied pair of
// safe primes. Intended for tests and benchmarks working with fixture primes;
// the primes are validated, but no size floor is applied.
func NewKeyPairFromPrimes(rand io.Reader, p, q *saferith.Nat, tp ThresholdParams) (*PublicKey, []*KeyShare, *SecretKey, error) {
	if err := tp.Validate(); err != nil {
		return nil, nil, nil, err
	}
	if err := prime.Validate(p, p.Big().BitLen()); err != nil {
		return nil, nil, nil, err
	}
	if err := prime.Validate(q, q.Big().BitLen()); err != nil {
		return nil, nil, nil, err
	}

	sm, err := prime.NewSafeModulus(p, q)
	if err != nil {
		return nil, nil, nil, err
	}
	return newKeyPair(rand, sm, tp)
}

// newKeyPair derives the secret exponent, shares it, and assembles the three
// outputs from a generated modulus.
func newKeyPair(rand io.Reader, sm *prime.SafeModulus, tp ThresholdParams) (*PublicKey, []*KeyShare, *SecretKey, error) {
	pk := NewPublicKey(sm.N.Modulus, tp)

	// The secret exponent d is fixed by CRT:
	//   d ≡ 1 (mod n), d ≡ 0 (mod m)
	// so d = m ⋅ (m⁻¹ mod n), reduced mod n⋅m.
	mNat := sm.M.Nat()
	mRed := new(saferith.Nat).Mod(mNat, sm.N.Modulus)
	if mRed.IsUnit(sm.N.Modulus) != 1 {
		return nil, nil, nil, prime.ErrNonInvertibleLambda
	}
	mInv := new(saferith.Nat).ModInverse(mRed, sm.N.Modulus)
	d := new(saferith.Nat).Mul(mNat, mInv, -1)
	d.Mod(d, sm.NM)

	// Shamir sharing of d: degree t-1 over ℤ_{n⋅m}, share i gets f(i).
	poly := polynomial.NewPolynomial(rand, int(tp.T)-1, d, sm.NM)
	shares := make([]*KeyShare, tp.L)
	for i := uint32(1); i <= tp.L; i++ {
		shares[i-1] = &KeyShare{
			index:     i,
			share:     poly.Evaluate(i),
			params:    tp,
			keyDigest: pk.digest,
		}
	}

	sk := &SecretKey{
		publicKey: pk,
		n:         sm.N,
		nSquared:  sm.NSquared,
		lambda:    sm.Lambda,
		mu:        sm.Mu,
		d:         d,
	}
	return pk, shares, sk, nil
}
