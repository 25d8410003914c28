package paillier

import (
	"bytes"
	"math/big"

	"github.com/cronokirby/saferith"
	"github.com/quorumbyte/tpaillier/core/math/arith"
)

// Combine recovers the plaintext of ct from at least t decryption shares.
//
// The shares must come from distinct parties, all computed from ct itself;
// share order is irrelevant. Combination interpolates the sharing polynomial
// at zero in the exponent:
//
//	c' = Π dᵢ^(2⋅λᵢ) (mod n²),   λᵢ = delta ⋅ Π_{j≠i} j/(j-i)
//	m  = L(c') ⋅ theta⁻¹ (mod n),  L(x) = (x-1)/n
//
// The delta = l! factor makes every λᵢ an exact integer.
func (pk *PublicKey) Combine(ct *Ciphertext, shares []*DecryptionShare) (*saferith.Nat, error) {
	if ct == nil || !ct.boundTo(pk) {
		return nil, ErrPublicKeyMismatch
	}
	if !pk.ValidateCiphertexts(ct) {
		return nil, ErrInvalidCiphertext
	}
	if len(shares) < int(pk.params.T) {
		return nil, ErrInsufficientShares
	}

	ctDigest := pk.ciphertextDigest(ct)
	seen := make(map[uint32]struct{}, len(shares))
	indices := make([]int64, len(shares))
	for i, share := range shares {
		if share == nil || share.value == nil {
			return nil, ErrInvalidShareIndex
		}
		if share.index == 0 || share.index > pk.params.L {
			return nil, ErrInvalidShareIndex
		}
		if _, ok := seen[share.index]; ok {
			return nil, ErrDuplicateShareIndex
		}
		seen[share.index] = struct{}{}
		if !bytes.Equal(share.ctDigest, ctDigest) {
			return nil, ErrCiphertextMismatch
		}
		if !arith.IsValidNatModN(pk.nSquared.Modulus, share.value) {
			return nil, ErrNotInvertible
		}
		indices[i] = int64(share.index)
	}

	combined := new(saferith.Nat).SetUint64(1)
	for i, share := range shares {
		e := lagrangeExponent(pk.delta.Big(), indices, i)
		eInt := new(saferith.Int).SetBig(e, e.BitLen()+1)
		combined.ModMul(combined, pk.nSquared.ExpI(share.value, eInt), pk.nSquared.Modulus)
	}

	// m' = L(c') = (c' - 1) / n
	one := new(saferith.Nat).SetUint64(1)
	combined.Sub(combined, one, -1)
	combined.Div(combined, pk.n.Modulus, -1)

	// The exponents above total 4⋅delta²⋅d, so undo theta = 4⋅delta² mod n.
	thetaRed := new(saferith.Nat).Mod(pk.theta, pk.n.Modulus)
	if thetaRed.IsUnit(pk.n.Modulus) != 1 {
		return nil, ErrNotInvertible
	}
	thetaInv := new(saferith.Nat).ModInverse(thetaRed, pk.n.Modulus)
	combined.ModMul(combined, thetaInv, pk.n.Modulus)
	return combined, nil
}

// lagrangeExponent returns 2⋅λᵢ for the share at position i of the
// contributing set, as an exact (possibly negative) integer:
//
//	2⋅λᵢ = 2⋅delta ⋅ Π_{j∈S, j≠i} j / (j - i)
//
// The numerator and denominator are accumulated separately and divided once,
// so no intermediate truncation can occur.
func lagrangeExponent(delta *big.Int, indices []int64, i int) *big.Int {
	num := new(big.Int).Set(delta)
	den := big.NewInt(1)
	for j, idx := range indices {
		if j == i {
			continue
		}
		num.Mul(num, big.NewInt(idx))
		den.Mul(den, big.NewInt(idx-indices[i]))
	}
	// delta = l! guarantees den divides num exactly
	num.Quo(num, den)
	return num.Lsh(num, 1)
}
