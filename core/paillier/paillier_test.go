package paillier

import (
	"crypto/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/quorumbyte/tpaillier/core/pool"
	"github.com/quorumbyte/tpaillier/core/prime"
	"github.com/quorumbyte/tpaillier/lib/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// toyKey deals a 64-bit test key from the 32-bit fixture primes.
func toyKey(t *testing.T, tp ThresholdParams) (*PublicKey, []*KeyShare, *SecretKey) {
	t.Helper()
	p, q := test.SafePrimes32()
	pk, shares, sk, err := NewKeyPairFromPrimes(rand.Reader, p, q, tp)
	require.NoError(t, err)
	require.Len(t, shares, int(tp.L))
	return pk, shares, sk
}

func decryptWith(t *testing.T, pk *PublicKey, ct *Ciphertext, shares ...*KeyShare) *saferith.Nat {
	t.Helper()
	ds := make([]*DecryptionShare, len(shares))
	for i, ks := range shares {
		var err error
		ds[i], err = ks.PartialDecrypt(pk, ct)
		require.NoError(t, err)
	}
	m, err := pk.Combine(ct, ds)
	require.NoError(t, err)
	return m
}

func TestSingleServerRoundTrip(t *testing.T) {
	pk, shares, _ := toyKey(t, ThresholdParams{T: 1, L: 1})

	m := new(saferith.Nat).SetUint64(5)
	ct, _, err := pk.Enc(rand.Reader, m)
	require.NoError(t, err)

	got := decryptWith(t, pk, ct, shares[0])
	assert.EqualValues(t, 1, got.Eq(m))
}

// The §8-style concrete scenario: a 64-bit toy modulus, t=2, l=3, m=42,
// decrypted by two different quorums.
func TestTwoOfThreeQuorumIndependence(t *testing.T) {
	pk, shares, _ := toyKey(t, ThresholdParams{T: 2, L: 3})

	m := new(saferith.Nat).SetUint64(42)
	ct, _, err := pk.Enc(rand.Reader, m)
	require.NoError(t, err)

	fromParties13 := decryptWith(t, pk, ct, shares[0], shares[2])
	assert.EqualValues(t, 1, fromParties13.Eq(m))

	fromParties23 := decryptWith(t, pk, ct, shares[1], shares[2])
	assert.EqualValues(t, 1, fromParties23.Eq(m))

	fromParties12 := decryptWith(t, pk, ct, shares[0], shares[1])
	assert.EqualValues(t, 1, fromParties12.Eq(m))
}

func TestMoreThanThresholdShares(t *testing.T) {
	pk, shares, _ := toyKey(t, ThresholdParams{T: 2, L: 3})

	m := new(saferith.Nat).SetUint64(123456789)
	ct, _, err := pk.Enc(rand.Reader, m)
	require.NoError(t, err)

	got := decryptWith(t, pk, ct, shares...)
	assert.EqualValues(t, 1, got.Eq(m))
}

func TestFullCommitteeRoundTrip(t *testing.T) {
	pk, shares, _ := toyKey(t, ThresholdParams{T: 3, L: 3})

	m := new(saferith.Nat).SetUint64(10)
	ct, _, err := pk.Enc(rand.Reader, m)
	require.NoError(t, err)

	got := decryptWith(t, pk, ct, shares...)
	assert.EqualValues(t, 1, got.Eq(m))
}

func TestDealerDecrypt(t *testing.T) {
	pk, _, sk := toyKey(t, ThresholdParams{T: 2, L: 3})

	m := new(saferith.Nat).SetUint64(987654321)
	ct, _, err := pk.Enc(rand.Reader, m)
	require.NoError(t, err)

	got, err := sk.Dec(ct)
	require.NoError(t, err)
	assert.EqualValues(t, 1, got.Eq(m))
}

func TestLargerModulusRoundTrip(t *testing.T) {
	p, q := test.SafePrimes128()
	pk, shares, _, err := NewKeyPairFromPrimes(rand.Reader, p, q, ThresholdParams{T: 3, L: 5})
	require.NoError(t, err)

	m := new(saferith.Nat).SetUint64(1 << 40)
	ct, _, err := pk.Enc(rand.Reader, m)
	require.NoError(t, err)

	got := decryptWith(t, pk, ct, shares[1], shares[2], shares[4])
	assert.EqualValues(t, 1, got.Eq(m))
}

func TestDeterministicKeyDealing(t *testing.T) {
	p, q := test.SafePrimes32()
	tp := ThresholdParams{T: 2, L: 3}

	_, sharesA, _, err := NewKeyPairFromPrimes(test.NewDeterministicRand("deal"), p, q, tp)
	require.NoError(t, err)
	_, sharesB, _, err := NewKeyPairFromPrimes(test.NewDeterministicRand("deal"), p, q, tp)
	require.NoError(t, err)

	for i := range sharesA {
		assert.EqualValues(t, 1, sharesA[i].share.Eq(sharesB[i].share))
	}
}

func TestNewKeyPairFromPrimesRejectsMismatchedSizes(t *testing.T) {
	p32, _ := test.SafePrimes32()
	p128, _ := test.SafePrimes128()

	_, _, _, err := NewKeyPairFromPrimes(rand.Reader, p32, p128, ThresholdParams{T: 2, L: 3})
	assert.ErrorIs(t, err, prime.ErrUnequalPrimes)
}

func TestEncryptionIsRandomized(t *testing.T) {
	pk, _, _ := toyKey(t, ThresholdParams{T: 1, L: 1})

	m := new(saferith.Nat).SetUint64(7)
	seen := make(map[string]struct{})
	for i := 0; i < 32; i++ {
		ct, _, err := pk.Enc(rand.Reader, m)
		require.NoError(t, err)
		seen[string(ct.c.Bytes())] = struct{}{}
	}
	assert.Len(t, seen, 32, "repeated encryptions of the same plaintext should differ")
}

func TestConcurrentDecryption(t *testing.T) {
	pk, shares, _ := toyKey(t, ThresholdParams{T: 2, L: 3})

	var g errgroup.Group
	for i := 0; i < 8; i++ {
		i := i
		g.Go(func() error {
			m := new(saferith.Nat).SetUint64(uint64(1000 + i))
			ct, _, err := pk.Enc(rand.Reader, m)
			if err != nil {
				return err
			}
			d1, err := shares[i%3].PartialDecrypt(pk, ct)
			if err != nil {
				return err
			}
			d2, err := shares[(i+1)%3].PartialDecrypt(pk, ct)
			if err != nil {
				return err
			}
			got, err := pk.Combine(ct, []*DecryptionShare{d1, d2})
			if err != nil {
				return err
			}
			if got.Eq(m) != 1 {
				return ErrCiphertextMismatch
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestKeyGenValidation(t *testing.T) {
	for _, tp := range []ThresholdParams{
		{T: 0, L: 3},
		{T: 4, L: 3},
		{T: 1, L: 0},
		{T: 0, L: 0},
	} {
		_, _, _, err := KeyGen(rand.Reader, nil, 2048, tp)
		assert.ErrorIs(t, err, ErrInvalidThresholdConfig, "params %+v", tp)
	}

	_, _, _, err := KeyGen(rand.Reader, nil, 256, ThresholdParams{T: 2, L: 3})
	assert.ErrorIs(t, err, ErrInsecureKeySize)
}

func TestKeyGenLive(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live safe prime search")
	}
	pl := pool.NewPool(0)
	defer pl.TearDown()

	pk, shares, sk, err := KeyGen(rand.Reader, pl, 512, ThresholdParams{T: 2, L: 3})
	require.NoError(t, err)

	m := new(saferith.Nat).SetUint64(42)
	ct, _, err := pk.Enc(rand.Reader, m)
	require.NoError(t, err)

	got := decryptWith(t, pk, ct, shares[0], shares[1])
	assert.EqualValues(t, 1, got.Eq(m))

	direct, err := sk.Dec(ct)
	require.NoError(t, err)
	assert.EqualValues(t, 1, direct.Eq(m))
}
