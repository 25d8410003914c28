// Package arith provides the modular arithmetic primitives shared by the
// library. All operations take their modulus as an explicit argument; nothing
// in this package keeps ambient modulus state.
package arith

import (
	"math/big"

	"github.com/cronokirby/saferith"
)

// IsValidNatModN checks that ints are all in the range [1, n-1] and are coprime to n.
func IsValidNatModN(n *saferith.Modulus, ints ...*saferith.Nat) bool {
	for _, i := range ints {
		if i == nil {
			return false
		}
		if _, _, lt := i.CmpMod(n); lt != 1 {
			return false
		}
		if i.IsUnit(n) != 1 {
			return false
		}
	}
	return true
}

// IsInIntervalModN checks that ints are all in the range [0, n-1].
func IsInIntervalModN(n *saferith.Modulus, ints ...*saferith.Nat) bool {
	for _, i := range ints {
		if i == nil {
			return false
		}
		if _, _, lt := i.CmpMod(n); lt != 1 {
			return false
		}
	}
	return true
}

// Gcd returns gcd(a, b) computed over big.Int values of a and b.
func Gcd(a, b *saferith.Nat) *saferith.Nat {
	g := new(big.Int).GCD(nil, nil, a.Big(), b.Big())
	return new(saferith.Nat).SetBig(g, g.BitLen())
}

// Factorial returns k! as a Nat.
func Factorial(k uint32) *saferith.Nat {
	f := new(big.Int).MulRange(1, int64(k))
	return new(saferith.Nat).SetBig(f, f.BitLen())
}
