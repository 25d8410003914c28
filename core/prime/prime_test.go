package prime

import (
	"crypto/rand"
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/quorumbyte/tpaillier/core/pool"
	"github.com/quorumbyte/tpaillier/lib/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateFixtures(t *testing.T) {
	p32, q32 := test.SafePrimes32()
	assert.NoError(t, Validate(p32, 32))
	assert.NoError(t, Validate(q32, 32))

	p128, q128 := test.SafePrimes128()
	assert.NoError(t, Validate(p128, 128))
	assert.NoError(t, Validate(q128, 128))

	p512, q512 := test.SafePrimes512()
	assert.NoError(t, Validate(p512, 512))
	assert.NoError(t, Validate(q512, 512))
}

func TestValidateRejectsComposite(t *testing.T) {
	composite := new(saferith.Nat).SetUint64(4233621563 + 2)
	assert.ErrorIs(t, Validate(composite, 32), ErrNotSafePrime)
}

func TestValidateRejectsNonSafePrime(t *testing.T) {
	// 2^31 - 1 is prime but (p-1)/2 is not
	mersenne := new(saferith.Nat).SetUint64(1<<31 - 1)
	assert.ErrorIs(t, Validate(mersenne, 31), ErrNotSafePrime)
}

func TestValidateRejectsTooSmall(t *testing.T) {
	p, _ := test.SafePrimes32()
	assert.ErrorIs(t, Validate(p, 64), ErrTooSmall)
}

func TestNewSafeModulus(t *testing.T) {
	p, q := test.SafePrimes32()
	sm, err := NewSafeModulus(p, q)
	require.NoError(t, err)

	// n = p⋅q
	n := new(saferith.Nat).Mul(p, q, -1)
	assert.EqualValues(t, 1, sm.N.Nat().Eq(n))

	// λ⋅μ ≡ 1 (mod n)
	prod := new(saferith.Nat).ModMul(sm.Lambda, sm.Mu, sm.N.Modulus)
	assert.EqualValues(t, 1, prod.Eq(new(saferith.Nat).SetUint64(1)))
}

func TestNewSafeModulusRejectsEqualPrimes(t *testing.T) {
	p, _ := test.SafePrimes32()
	_, err := NewSafeModulus(p, p)
	assert.ErrorIs(t, err, ErrDegenerateModulus)
}

func TestNewSafeModulusRejectsUnequalBitLengths(t *testing.T) {
	p32, _ := test.SafePrimes32()
	p128, _ := test.SafePrimes128()

	_, err := NewSafeModulus(p32, p128)
	assert.ErrorIs(t, err, ErrUnequalPrimes)
	_, err = NewSafeModulus(p128, p32)
	assert.ErrorIs(t, err, ErrUnequalPrimes)
}

func TestSafePrimeGeneration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live prime search")
	}
	p := SafePrime(rand.Reader, 128)
	require.NoError(t, Validate(p, 128))
}

// Bit lengths that are not byte-aligned must terminate too: the candidate
// buffer is masked down to the requested length before the top bits are
// forced, including the carry into the second byte at 8k+1 lengths.
func TestSafePrimeNonByteAlignedBitLength(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live prime search")
	}
	for _, bits := range []int{127, 129, 130} {
		p := SafePrime(rand.Reader, bits)
		require.NoError(t, Validate(p, bits), "bits = %d", bits)
		assert.Equal(t, bits, p.Big().BitLen(), "bits = %d", bits)
	}
}

func TestSafePrimesRace(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live prime search")
	}
	pl := pool.NewPool(0)
	defer pl.TearDown()

	p, q := SafePrimes(rand.Reader, pl, 128)
	require.NoError(t, Validate(p, 128))
	require.NoError(t, Validate(q, 128))
	assert.NotEqualValues(t, 1, p.Eq(q))
}

func TestGenerate(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping live prime search")
	}
	pl := pool.NewPool(0)
	defer pl.TearDown()

	sm, err := Generate(rand.Reader, pl, 256)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, sm.N.BitLen(), 255)
}
