// Package polynomial implements Shamir-style secret sharing polynomials over
// an explicit integer modulus.
package polynomial

import (
	"io"

	"github.com/cronokirby/saferith"
	"github.com/quorumbyte/tpaillier/core/math/sample"
)

// Polynomial represents f(X) = a₀ + a₁⋅X + … + aₜ⋅Xᵗ with coefficients in ℤₘ
// for an explicit modulus m.
type Polynomial struct {
	modulus      *saferith.Modulus
	coefficients []*saferith.Nat
}

// NewPolynomial generates a Polynomial f(X) = secret + a₁⋅X + … + aₜ⋅Xᵗ,
// with coefficients drawn uniformly from ℤₘ, and degree t.
//
// If the constant is nil, it is interpreted as 0.
func NewPolynomial(rand io.Reader, degree int, constant *saferith.Nat, modulus *saferith.Modulus) *Polynomial {
	polynomial := &Polynomial{
		modulus:      modulus,
		coefficients: make([]*saferith.Nat, degree+1),
	}

	if constant == nil {
		constant = new(saferith.Nat)
	}
	polynomial.coefficients[0] = new(saferith.Nat).Mod(constant, modulus)

	for i := 1; i <= degree; i++ {
		polynomial.coefficients[i] = sample.ModN(rand, modulus)
	}

	return polynomial
}

// Evaluate evaluates the polynomial at a given non-zero index.
// We use Horner's method: https://en.wikipedia.org/wiki/Horner%27s_method
func (p *Polynomial) Evaluate(index uint32) *saferith.Nat {
	if index == 0 {
		panic("attempt to leak secret")
	}

	x := new(saferith.Nat).SetUint64(uint64(index))
	result := new(saferith.Nat)
	// reverse order
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		// bₙ₋₁ = bₙ * x + aₙ₋₁
		result.ModMul(result, x, p.modulus)
		result.ModAdd(result, p.coefficients[i], p.modulus)
	}
	return result
}

// Constant returns a copy of the constant coefficient of the polynomial.
func (p *Polynomial) Constant() *saferith.Nat {
	return new(saferith.Nat).SetNat(p.coefficients[0])
}

// Degree is the highest power of the Polynomial.
func (p *Polynomial) Degree() uint32 {
	return uint32(len(p.coefficients)) - 1
}
