// Package sample implements sampling of big integers from an explicit source
// of randomness. Every function takes an io.Reader so that callers can inject
// a deterministic stream in tests; nothing here seeds itself.
package sample

import (
	"fmt"
	"io"

	"github.com/cronokirby/saferith"
)

// ModN samples an element of ℤₙ, uniform in [0, n).
//
// Sampling is done by rejection on the raw bit string, so the result carries
// no modulo bias.
func ModN(rand io.Reader, n *saferith.Modulus) *saferith.Nat {
	bits := n.BitLen()
	buf := make([]byte, (bits+7)/8)
	// mask off the excess high bits so roughly half of all draws are accepted
	mask := byte(0xFF >> (8*len(buf) - bits))
	out := new(saferith.Nat)
	for {
		mustReadBits(rand, buf)
		buf[0] &= mask
		out.SetBytes(buf)
		if _, _, lt := out.CmpMod(n); lt == 1 {
			return out
		}
	}
}

// UnitModN samples a random element of ℤₙ*, i.e. a unit modulo n.
func UnitModN(rand io.Reader, n *saferith.Modulus) *saferith.Nat {
	for {
		u := ModN(rand, n)
		if u.IsUnit(n) == 1 {
			return u
		}
	}
}

// maxIterations is the number of times we try to generate a random value
// before giving up. The probability of this happening with an honest random
// source is negligible.
const maxIterations = 255

var errMaxIterations = fmt.Errorf("sample: failed to generate after %d iterations", maxIterations)

func mustReadBits(rand io.Reader, buf []byte) {
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err == nil {
			return
		}
	}
	panic(errMaxIterations)
}
