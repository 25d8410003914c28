// Package params defines the security parameters shared by the whole library.
package params

const (
	// SecParam is the computational security parameter, in bits.
	SecParam = 256
	SecBytes = SecParam / 8

	// BitsSafePrime is the default bit length of each safe prime factor of a
	// Paillier modulus.
	BitsSafePrime = BitsPaillier / 2

	// BitsPaillier is the default bit length of a Paillier modulus n = p⋅q.
	BitsPaillier = 2048

	// MinBitsPaillier is the smallest modulus bit length accepted by key
	// generation. Anything below this is trivially factorable.
	MinBitsPaillier = 512

	// PrimeRounds is the number of Miller-Rabin rounds applied to every prime
	// candidate, bounding the false positive probability below 4⁻⁴⁰ < 2⁻⁸⁰.
	PrimeRounds = 40

	// PrimeDistance bounds how close the two factors of a modulus may be:
	// |p - q| must exceed 2^(BitLen(p) - PrimeDistance), otherwise n is
	// vulnerable to Fermat factoring.
	PrimeDistance = 100

	BytesPaillier   = BitsPaillier / 8
	BytesCiphertext = 2 * BytesPaillier
)
