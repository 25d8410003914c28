package test

import (
	"math/big"

	"github.com/cronokirby/saferith"
)

// Precomputed safe primes so that tests never pay for a live prime search.
// Each pair shares a bit length and is distinct, so the derived modulus
// passes the degeneracy checks.
const (
	// 32-bit pair: the toy 64-bit modulus used by the small scenarios.
	safePrime32A = "4233621563"
	safePrime32B = "3242254343"

	// 128-bit pair: a 256-bit modulus, still fast but past single-word sizes.
	safePrime128A = "263165019479133735099543120795433897739"
	safePrime128B = "187786517902663931213358800949534115559"

	// 512-bit pair: a realistic 1024-bit modulus for the slower round-trips.
	safePrime512A = "12984343160109409559107559448927579096424373705668183305720640454556860877156655764044576307967558205567355842724010823064038087231720972805850016573363663"
	safePrime512B = "12259962441895930393137514604636200319821066517417293031284078172391342122271798792936079710354683247034373872215293835840938474178478395435998978709652727"
)

func natFromDecimal(s string) *saferith.Nat {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("test: invalid prime fixture")
	}
	return new(saferith.Nat).SetBig(v, v.BitLen())
}

// SafePrimes32 returns the 32-bit fixture pair.
func SafePrimes32() (p, q *saferith.Nat) {
	return natFromDecimal(safePrime32A), natFromDecimal(safePrime32B)
}

// SafePrimes128 returns the 128-bit fixture pair.
func SafePrimes128() (p, q *saferith.Nat) {
	return natFromDecimal(safePrime128A), natFromDecimal(safePrime128B)
}

// SafePrimes512 returns the 512-bit fixture pair.
func SafePrimes512() (p, q *saferith.Nat) {
	return natFromDecimal(safePrime512A), natFromDecimal(safePrime512B)
}
