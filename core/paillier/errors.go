package paillier

import "errors"

var (
	// ErrInvalidThresholdConfig rejects (t, l) outside 1 ≤ t ≤ l.
	ErrInvalidThresholdConfig = errors.New("paillier: invalid threshold configuration")

	// ErrInsecureKeySize rejects modulus bit lengths below params.MinBitsPaillier.
	ErrInsecureKeySize = errors.New("paillier: modulus bit length below the safety floor")

	// ErrPlaintextOutOfRange rejects plaintexts not in [0, n).
	ErrPlaintextOutOfRange = errors.New("paillier: plaintext not in [0, n)")

	// ErrPublicKeyMismatch rejects operations mixing values bound to
	// different public keys.
	ErrPublicKeyMismatch = errors.New("paillier: value is bound to a different public key")

	// ErrInvalidCiphertext rejects ciphertext values that are not units mod n².
	ErrInvalidCiphertext = errors.New("paillier: ciphertext is not a unit mod n²")

	// ErrNotInvertible is returned when a modular inverse is requested for a
	// non-unit.
	ErrNotInvertible = errors.New("paillier: modular inverse of a non-unit")

	// ErrInsufficientShares is returned by the combiner when fewer than t
	// distinct decryption shares are supplied.
	ErrInsufficientShares = errors.New("paillier: fewer decryption shares than the threshold")

	// ErrDuplicateShareIndex is returned by the combiner when two supplied
	// shares carry the same index.
	ErrDuplicateShareIndex = errors.New("paillier: duplicate decryption share index")

	// ErrInvalidShareIndex is returned by the combiner for share indices
	// outside [1, l].
	ErrInvalidShareIndex = errors.New("paillier: decryption share index outside [1, l]")

	// ErrCiphertextMismatch is returned by the combiner when the supplied
	// shares were not all computed from the ciphertext being combined.
	ErrCiphertextMismatch = errors.New("paillier: decryption shares reference a different ciphertext")
)
