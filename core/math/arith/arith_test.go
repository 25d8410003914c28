package arith

import (
	"testing"

	"github.com/cronokirby/saferith"
	"github.com/stretchr/testify/assert"
)

func nat(v uint64) *saferith.Nat {
	return new(saferith.Nat).SetUint64(v)
}

func TestIsValidNatModN(t *testing.T) {
	n := saferith.ModulusFromNat(nat(15))

	assert.True(t, IsValidNatModN(n, nat(1), nat(2), nat(14)))
	assert.False(t, IsValidNatModN(n, nat(0)), "zero is not a unit")
	assert.False(t, IsValidNatModN(n, nat(3)), "3 divides 15")
	assert.False(t, IsValidNatModN(n, nat(15)), "out of range")
	assert.False(t, IsValidNatModN(n, nil))
}

func TestIsInIntervalModN(t *testing.T) {
	n := saferith.ModulusFromNat(nat(15))

	assert.True(t, IsInIntervalModN(n, nat(0), nat(3), nat(14)))
	assert.False(t, IsInIntervalModN(n, nat(15)))
	assert.False(t, IsInIntervalModN(n, nil))
}

func TestGcd(t *testing.T) {
	assert.EqualValues(t, 1, Gcd(nat(12), nat(18)).Eq(nat(6)))
	assert.EqualValues(t, 1, Gcd(nat(17), nat(4)).Eq(nat(1)))
}

func TestFactorial(t *testing.T) {
	assert.EqualValues(t, 1, Factorial(1).Eq(nat(1)))
	assert.EqualValues(t, 1, Factorial(3).Eq(nat(6)))
	assert.EqualValues(t, 1, Factorial(10).Eq(nat(3628800)))
}

func TestExpWithFactorization(t *testing.T) {
	// 35 = 5 ⋅ 7; both paths must agree
	fast := ModulusFromFactors(nat(5), nat(7))
	slow := ModulusFromN(saferith.ModulusFromNat(nat(35)))

	for _, x := range []uint64{1, 2, 3, 12, 34} {
		for _, e := range []uint64{0, 1, 2, 5, 16} {
			got := fast.Exp(nat(x), nat(e))
			want := slow.Exp(nat(x), nat(e))
			assert.EqualValues(t, 1, got.Eq(want), "x=%d e=%d", x, e)
		}
	}
}

func TestExpINegative(t *testing.T) {
	fast := ModulusFromFactors(nat(5), nat(7))

	// 3⁻¹ ≡ 12 (mod 35)
	minusOne := new(saferith.Int).SetNat(nat(1)).Neg(1)
	got := fast.ExpI(nat(3), minusOne)
	assert.EqualValues(t, 1, got.Eq(nat(12)))
}
