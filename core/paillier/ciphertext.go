package paillier

import (
	"bytes"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/quorumbyte/tpaillier/core/math/arith"
	"github.com/quorumbyte/tpaillier/core/math/sample"
)

// Ciphertext is a single residue mod n². It is a value: freely copyable,
// without an owner, bound to exactly one public key. The binding is enforced
// through the key digest stamped at encryption time, so that homomorphic
// operations across different keys are rejected instead of silently
// producing garbage.
type Ciphertext struct {
	c         *saferith.Nat
	keyDigest []byte
}

// Nat returns the raw residue mod n².
func (ct *Ciphertext) Nat() *saferith.Nat { return ct.c }

// boundTo reports whether the ciphertext was produced under pk.
func (ct *Ciphertext) boundTo(pk *PublicKey) bool {
	return bytes.Equal(ct.keyDigest, pk.digest)
}

// Add returns the encryption of the sum of the two plaintexts:
//
//	c' = ct ⋅ other (mod n²)
//
// Both ciphertexts must be bound to pk.
func (ct *Ciphertext) Add(pk *PublicKey, other *Ciphertext) (*Ciphertext, error) {
	if !ct.boundTo(pk) || other == nil || !other.boundTo(pk) {
		return nil, ErrPublicKeyMismatch
	}
	if !pk.ValidateCiphertexts(ct, other) {
		return nil, ErrInvalidCiphertext
	}

	c := new(saferith.Nat).ModMul(ct.c, other.c, pk.nSquared.Modulus)
	return &Ciphertext{c: c, keyDigest: pk.digest}, nil
}

// AddPlain returns the encryption of the plaintext sum m(ct) + m:
//
//	c' = ct ⋅ gᵐ (mod n²)
func (ct *Ciphertext) AddPlain(pk *PublicKey, m *saferith.Nat) (*Ciphertext, error) {
	if !ct.boundTo(pk) {
		return nil, ErrPublicKeyMismatch
	}
	if !pk.ValidateCiphertexts(ct) {
		return nil, ErrInvalidCiphertext
	}
	if !arith.IsInIntervalModN(pk.n.Modulus, m) {
		return nil, ErrPlaintextOutOfRange
	}

	// gᵐ = 1 + m⋅n (mod n²)
	gm := new(saferith.Nat).Mul(m, pk.nNat, -1)
	gm.ModAdd(gm, new(saferith.Nat).SetUint64(1), pk.nSquared.Modulus)
	c := new(saferith.Nat).ModMul(ct.c, gm, pk.nSquared.Modulus)
	return &Ciphertext{c: c, keyDigest: pk.digest}, nil
}

// Mul returns the encryption of k ⋅ m(ct) (mod n):
//
//	c' = ctᵏ (mod n²)
func (ct *Ciphertext) Mul(pk *PublicKey, k *saferith.Nat) (*Ciphertext, error) {
	if !ct.boundTo(pk) {
		return nil, ErrPublicKeyMismatch
	}
	if !pk.ValidateCiphertexts(ct) {
		return nil, ErrInvalidCiphertext
	}

	c := pk.nSquared.Exp(ct.c, k)
	return &Ciphertext{c: c, keyDigest: pk.digest}, nil
}

// ReRandomize multiplies the ciphertext by a fresh encryption of zero,
// yielding an unlinkable ciphertext of the same plaintext.
func (ct *Ciphertext) ReRandomize(rand io.Reader, pk *PublicKey) (*Ciphertext, error) {
	if !ct.boundTo(pk) {
		return nil, ErrPublicKeyMismatch
	}
	if !pk.ValidateCiphertexts(ct) {
		return nil, ErrInvalidCiphertext
	}

	nonce := sample.UnitModN(rand, pk.n.Modulus)
	rhoN := pk.nSquared.Exp(nonce, pk.nNat)
	c := new(saferith.Nat).ModMul(ct.c, rhoN, pk.nSquared.Modulus)
	return &Ciphertext{c: c, keyDigest: pk.digest}, nil
}

type ciphertextSerialized struct {
	C         []byte
	KeyDigest []byte
}

func (ct *Ciphertext) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(ciphertextSerialized{
		C:         ct.c.Bytes(),
		KeyDigest: ct.keyDigest,
	})
}

func (ct *Ciphertext) UnmarshalBinary(data []byte) error {
	var cs ciphertextSerialized
	if err := cbor.Unmarshal(data, &cs); err != nil {
		return err
	}
	ct.c = new(saferith.Nat).SetBytes(cs.C)
	ct.keyDigest = cs.KeyDigest
	return nil
}
