package paillier

import (
	"bytes"

	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
)

// KeyShare is one party's share of the private decryption exponent: the
// sharing polynomial evaluated at the party's index. It is owned exclusively
// by that party and never leaves it in a secure deployment; moving shares
// confidentially is the caller's burden, this type's contract is correctness.
type KeyShare struct {
	// index identifies the party, in [1, l]
	index uint32
	// share = f(index), the polynomial evaluation mod n⋅m
	share *saferith.Nat
	// params is the quorum the share was dealt under
	params ThresholdParams
	// keyDigest binds the share to the public key it belongs to
	keyDigest []byte
}

// Index returns the party index the share was dealt to, in [1, l].
func (ks *KeyShare) Index() uint32 { return ks.index }

// Params returns the threshold parameters the share was dealt under.
func (ks *KeyShare) Params() ThresholdParams { return ks.params }

// KeyDigest returns the digest of the public key this share was dealt for.
func (ks *KeyShare) KeyDigest() []byte { return ks.keyDigest }

// PartialDecrypt computes this party's decryption share of ct:
//
//	dᵢ = c^(2⋅delta⋅sᵢ) (mod n²)
//
// The 2⋅delta scaling clears the denominators the combiner's Lagrange
// coefficients would otherwise introduce. No coordination with other parties
// is needed; the result carries the ciphertext's digest so the combiner can
// refuse to mix shares across ciphertexts.
func (ks *KeyShare) PartialDecrypt(pk *PublicKey, ct *Ciphertext) (*DecryptionShare, error) {
	if !bytes.Equal(ks.keyDigest, pk.digest) {
		return nil, ErrPublicKeyMismatch
	}
	if ct == nil || !ct.boundTo(pk) {
		return nil, ErrPublicKeyMismatch
	}
	if !pk.ValidateCiphertexts(ct) {
		return nil, ErrInvalidCiphertext
	}

	// e = 2⋅delta⋅sᵢ
	e := new(saferith.Nat).Mul(ks.share, pk.delta, -1)
	e.Add(e, e, -1)

	return &DecryptionShare{
		index:    ks.index,
		value:    pk.nSquared.Exp(ct.c, e),
		ctDigest: pk.ciphertextDigest(ct),
	}, nil
}

type keyShareSerialized struct {
	Index     uint32
	Si        []byte
	T         uint32
	L         uint32
	KeyDigest []byte
}

func (ks *KeyShare) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(keyShareSerialized{
		Index:     ks.index,
		Si:        ks.share.Bytes(),
		T:         ks.params.T,
		L:         ks.params.L,
		KeyDigest: ks.keyDigest,
	})
}

func (ks *KeyShare) UnmarshalBinary(data []byte) error {
	var ss keyShareSerialized
	if err := cbor.Unmarshal(data, &ss); err != nil {
		return err
	}
	tp := ThresholdParams{T: ss.T, L: ss.L}
	if err := tp.Validate(); err != nil {
		return err
	}
	if ss.Index == 0 || ss.Index > tp.L {
		return ErrInvalidShareIndex
	}
	ks.index = ss.Index
	ks.share = new(saferith.Nat).SetBytes(ss.Si)
	ks.params = tp
	ks.keyDigest = ss.KeyDigest
	return nil
}
