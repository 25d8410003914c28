package paillier

import (
	"github.com/cronokirby/saferith"
	"github.com/fxamacker/cbor/v2"
)

// DecryptionShare is one party's partial decryption of one ciphertext.
// It is only useful together with its producing index, and only in a set of
// shares computed from the same ciphertext; the digest lets the combiner
// enforce the latter.
type DecryptionShare struct {
	// index matches the producing KeyShare's index
	index uint32
	// value = c^(2⋅delta⋅sᵢ) (mod n²)
	value *saferith.Nat
	// ctDigest identifies the ciphertext the share was computed from
	ctDigest []byte
}

// Index returns the producing party's index.
func (ds *DecryptionShare) Index() uint32 { return ds.index }

// Value returns the raw share value mod n².
func (ds *DecryptionShare) Value() *saferith.Nat { return ds.value }

type decryptionShareSerialized struct {
	Index    uint32
	Value    []byte
	CtDigest []byte
}

func (ds *DecryptionShare) MarshalBinary() ([]byte, error) {
	return cbor.Marshal(decryptionShareSerialized{
		Index:    ds.index,
		Value:    ds.value.Bytes(),
		CtDigest: ds.ctDigest,
	})
}

func (ds *DecryptionShare) UnmarshalBinary(data []byte) error {
	var ss decryptionShareSerialized
	if err := cbor.Unmarshal(data, &ss); err != nil {
		return err
	}
	if ss.Index == 0 {
		return ErrInvalidShareIndex
	}
	ds.index = ss.Index
	ds.value = new(saferith.Nat).SetBytes(ss.Value)
	ds.ctDigest = ss.CtDigest
	return nil
}
