package paillier

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
	"github.com/quorumbyte/tpaillier/core/hash"
	"github.com/quorumbyte/tpaillier/core/math/arith"
	"github.com/quorumbyte/tpaillier/core/math/sample"
)

// PublicKey is the public half of a threshold Paillier key. It is shared by
// all parties and never contains secret material; everything beyond n and the
// threshold parameters is a cached precomputation.
type PublicKey struct {
	params ThresholdParams
	// n = p⋅q
	n *arith.Modulus
	// nSquared = n², the ciphertext modulus
	nSquared *arith.Modulus
	// nNat caches n as a Nat for exponents
	nNat *saferith.Nat
	// g = n + 1, the deterministic generator
	g *saferith.Nat
	// delta = l!
	delta *saferith.Nat
	// theta = 4⋅delta² (mod n), the combiner's scaling constant
	theta *saferith.Nat
	// digest identifies this key when binding ciphertexts and shares to it
	digest []byte
}

// NewPublicKey derives a public key, with all cached values, from a modulus
// and threshold parameters. The modulus is not checked here; it is assumed to
// come from key generation or a trusted deserialization.
func NewPublicKey(n *saferith.Modulus, tp ThresholdParams) *PublicKey {
	nMod := arith.ModulusFromN(n)
	nNat := n.Nat()
	nSquaredNat := new(saferith.Nat).Mul(nNat, nNat, -1)
	nSquared := arith.ModulusFromN(saferith.ModulusFromNat(nSquaredNat))

	one := new(saferith.Nat).SetUint64(1)
	g := new(saferith.Nat).Add(nNat, one, -1)

	delta := arith.Factorial(tp.L)
	theta := new(saferith.Nat).ModMul(delta, delta, n)
	theta.ModMul(theta, new(saferith.Nat).SetUint64(4), n)

	return &PublicKey{
		params:   tp,
		n:        nMod,
		nSquared: nSquared,
		nNat:     nNat,
		g:        g,
		delta:    delta,
		theta:    theta,
		digest:   publicKeyDigest(n, tp),
	}
}

func publicKeyDigest(n *saferith.Modulus, tp ThresholdParams) []byte {
	var tl [8]byte
	binary.BigEndian.PutUint32(tl[:4], tp.T)
	binary.BigEndian.PutUint32(tl[4:], tp.L)
	return hash.New("tpaillier-public-key").
		WriteBytes("n", n.Bytes()).
		WriteBytes("tl", tl[:]).
		Sum()
}

// Params returns the threshold parameters the key was dealt with.
func (pk *PublicKey) Params() ThresholdParams { return pk.params }

// N returns the public modulus n.
func (pk *PublicKey) N() *saferith.Modulus { return pk.n.Modulus }

// Delta returns l!.
func (pk *PublicKey) Delta() *saferith.Nat { return pk.delta }

// Theta returns the combiner's scaling constant 4⋅delta² (mod n).
func (pk *PublicKey) Theta() *saferith.Nat { return pk.theta }

// Digest returns the identity digest other values are bound to.
func (pk *PublicKey) Digest() []byte { return pk.digest }

// Equal reports whether two public keys describe the same modulus and quorum.
func (pk *PublicKey) Equal(other *PublicKey) bool {
	return other != nil && bytes.Equal(pk.digest, other.digest)
}

// Enc encrypts m with a fresh nonce sampled from rand, returning the
// ciphertext and the nonce. m must be in [0, n).
func (pk *PublicKey) Enc(rand io.Reader, m *saferith.Nat) (*Ciphertext, *saferith.Nat, error) {
	if !arith.IsInIntervalModN(pk.n.Modulus, m) {
		return nil, nil, ErrPlaintextOutOfRange
	}
	nonce := sample.UnitModN(rand, pk.n.Modulus)
	ct, err := pk.EncWithNonce(m, nonce)
	if err != nil {
		return nil, nil, err
	}
	return ct, nonce, nil
}

// EncWithNonce encrypts m with a caller-chosen nonce:
//
//	c = gᵐ ⋅ nonceⁿ (mod n²)
//
// Since g = n + 1, gᵐ collapses to 1 + m⋅n (mod n²). The nonce must be a
// unit mod n; m must be in [0, n).
func (pk *PublicKey) EncWithNonce(m, nonce *saferith.Nat) (*Ciphertext, error) {
	if !arith.IsInIntervalModN(pk.n.Modulus, m) {
		return nil, ErrPlaintextOutOfRange
	}
	if !arith.IsValidNatModN(pk.n.Modulus, nonce) {
		return nil, ErrNotInvertible
	}

	// gᵐ = 1 + m⋅n (mod n²)
	c := new(saferith.Nat).Mul(m, pk.nNat, -1)
	c.ModAdd(c, new(saferith.Nat).SetUint64(1), pk.nSquared.Modulus)
	// nonceⁿ (mod n²)
	rhoN := pk.nSquared.Exp(nonce, pk.nNat)
	c.ModMul(c, rhoN, pk.nSquared.Modulus)

	return &Ciphertext{c: c, keyDigest: pk.digest}, nil
}

// ValidateCiphertexts checks that every ciphertext is bound to this key and
// carries a unit mod n².
func (pk *PublicKey) ValidateCiphertexts(cts ...*Ciphertext) bool {
	for _, ct := range cts {
		if ct == nil || ct.c == nil {
			return false
		}
		if !bytes.Equal(ct.keyDigest, pk.digest) {
			return false
		}
		if !arith.IsValidNatModN(pk.nSquared.Modulus, ct.c) {
			return false
		}
	}
	return true
}

func (pk *PublicKey) ciphertextDigest(ct *Ciphertext) []byte {
	return hash.New("tpaillier-ciphertext").
		WriteBytes("key", pk.digest).
		WriteBytes("c", ct.c.Bytes()).
		Sum()
}

type publicKeySerialized struct {
	N []byte
	T uint32
	L uint32
}

func (pk *PublicKey) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(publicKeySerialized{
		N: pk.n.Bytes(),
		T: pk.params.T,
		L: pk.params.L,
	})
}

func (pk *PublicKey) UnmarshalBinary(data []byte) error {
	var ps publicKeySerialized
	if err := cbor.Unmarshal(data, &ps); err != nil {
		return err
	}
	tp := ThresholdParams{T: ps.T, L: ps.L}
	if err := tp.Validate(); err != nil {
		return err
	}
	n := new(saferith.Modulus)
	if err := n.UnmarshalBinary(ps.N); err != nil {
		return err
	}
	*pk = *NewPublicKey(n, tp)
	return nil
}
