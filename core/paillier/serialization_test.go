package paillier

import (
	"crypto/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicKeySerialization(t *testing.T) {
	pk, _, _ := toyKey(t, ThresholdParams{T: 2, L: 3})

	data, err := pk.MarshalBinary()
	require.NoError(t, err)

	restored := new(PublicKey)
	require.NoError(t, restored.UnmarshalBinary(data))

	assert.True(t, pk.Equal(restored))
	assert.Equal(t, pk.Params(), restored.Params())

	// the restored key must encrypt values the original's shares can decrypt
	m := new(saferith.Nat).SetUint64(42)
	ct, _, err := restored.Enc(rand.Reader, m)
	require.NoError(t, err)
	assert.True(t, pk.ValidateCiphertexts(ct))
}

func TestPublicKeyUnmarshalRejectsBadParams(t *testing.T) {
	pk, _, _ := toyKey(t, ThresholdParams{T: 2, L: 3})
	pk.params.T = 7 // corrupt before marshalling

	data, err := pk.MarshalBinary()
	require.NoError(t, err)

	restored := new(PublicKey)
	assert.ErrorIs(t, restored.UnmarshalBinary(data), ErrInvalidThresholdConfig)
}

func TestKeyShareSerialization(t *testing.T) {
	pk, shares, _ := toyKey(t, ThresholdParams{T: 2, L: 3})

	data, err := shares[1].MarshalBinary()
	require.NoError(t, err)

	restored := new(KeyShare)
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.Equal(t, shares[1].Index(), restored.Index())
	assert.Equal(t, shares[1].Params(), restored.Params())

	// a share that crossed a process boundary must still decrypt
	m := new(saferith.Nat).SetUint64(42)
	ct, _, err := pk.Enc(rand.Reader, m)
	require.NoError(t, err)

	got := decryptWith(t, pk, ct, shares[0], restored)
	assert.EqualValues(t, 1, got.Eq(m))
}

func TestCiphertextSerialization(t *testing.T) {
	pk, shares, _ := toyKey(t, ThresholdParams{T: 2, L: 3})

	m := new(saferith.Nat).SetUint64(42)
	ct, _, err := pk.Enc(rand.Reader, m)
	require.NoError(t, err)

	data, err := ct.MarshalBinary()
	require.NoError(t, err)

	restored := new(Ciphertext)
	require.NoError(t, restored.UnmarshalBinary(data))
	require.True(t, pk.ValidateCiphertexts(restored))

	got := decryptWith(t, pk, restored, shares[0], shares[2])
	assert.EqualValues(t, 1, got.Eq(m))
}

func TestDecryptionShareSerialization(t *testing.T) {
	pk, shares, _ := toyKey(t, ThresholdParams{T: 2, L: 3})

	m := new(saferith.Nat).SetUint64(42)
	ct, _, err := pk.Enc(rand.Reader, m)
	require.NoError(t, err)

	d1, err := shares[0].PartialDecrypt(pk, ct)
	require.NoError(t, err)
	d2, err := shares[1].PartialDecrypt(pk, ct)
	require.NoError(t, err)

	data, err := d2.MarshalBinary()
	require.NoError(t, err)
	restored := new(DecryptionShare)
	require.NoError(t, restored.UnmarshalBinary(data))
	assert.Equal(t, d2.Index(), restored.Index())

	got, err := pk.Combine(ct, []*DecryptionShare{d1, restored})
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Eq(m))
}

func TestDecryptionShareUnmarshalRejectsZeroIndex(t *testing.T) {
	pk, shares, _ := toyKey(t, ThresholdParams{T: 2, L: 3})

	ct, _, err := pk.Enc(rand.Reader, new(saferith.Nat).SetUint64(42))
	require.NoError(t, err)

	d1, err := shares[0].PartialDecrypt(pk, ct)
	require.NoError(t, err)

	forged := &DecryptionShare{index: 0, value: d1.value, ctDigest: d1.ctDigest}
	data, err := forged.MarshalBinary()
	require.NoError(t, err)

	restored := new(DecryptionShare)
	assert.ErrorIs(t, restored.UnmarshalBinary(data), ErrInvalidShareIndex)
}
