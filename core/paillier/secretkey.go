package paillier

import (
	"github.com/cronokirby/saferith"
	"github.com/quorumbyte/tpaillier/core/math/arith"
)

// SecretKey is the dealer's view of the key: the undivided private exponent
// together with the factored modulus. It exists only at key generation time;
// once the shares have been handed out, a deployment that wants true
// threshold security must discard it.
type SecretKey struct {
	publicKey *PublicKey
	// n carries the factorization p, q for CRT-split exponentiation
	n *arith.Modulus
	// nSquared = n²
	nSquared *arith.Modulus
	// lambda = lcm(p-1, q-1)
	lambda *saferith.Nat
	// mu = λ⁻¹ (mod n)
	mu *saferith.Nat
	// d ≡ 1 (mod n), d ≡ 0 (mod m), the shared exponent
	d *saferith.Nat
}

// PublicKey returns the public half of the key.
func (sk *SecretKey) PublicKey() *PublicKey { return sk.publicKey }

// Dec decrypts ct directly, without going through shares:
//
//	m = L(c^λ mod n²) ⋅ μ (mod n),  L(x) = (x-1)/n
func (sk *SecretKey) Dec(ct *Ciphertext) (*saferith.Nat, error) {
	if ct == nil || !ct.boundTo(sk.publicKey) {
		return nil, ErrPublicKeyMismatch
	}
	if !sk.publicKey.ValidateCiphertexts(ct) {
		return nil, ErrInvalidCiphertext
	}

	one := new(saferith.Nat).SetUint64(1)
	// r = c^λ (mod n²)
	result := sk.nSquared.Exp(ct.c, sk.lambda)
	// r = (c^λ - 1) / n
	result.Sub(result, one, -1)
	result.Div(result, sk.n.Modulus, -1)
	// m = r ⋅ μ (mod n)
	result.ModMul(result, sk.mu, sk.n.Modulus)
	return result, nil
}
