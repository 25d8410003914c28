// Package paillier implements a threshold variant of the Paillier
// cryptosystem.
//
// A dealer generates a public key together with l private key shares such
// that any t of the share holders can jointly decrypt a ciphertext, while
// fewer than t learn nothing. Ciphertexts are additively homomorphic:
// multiplying two ciphertexts yields the encryption of the sum of their
// plaintexts, and raising a ciphertext to a scalar multiplies the plaintext.
//
// Every operation is a pure function of its explicit inputs. Randomness is
// always passed in as an io.Reader, and no modulus is ever implicit.
package paillier

// ThresholdParams fixes the decryption quorum of a key: any T of the L share
// holders can decrypt, fewer cannot. Set once at key generation, carried by
// every private share, and checked again by the combiner.
type ThresholdParams struct {
	// T is the number of decryption shares needed to recover a plaintext.
	T uint32
	// L is the total number of key shares dealt.
	L uint32
}

// Validate rejects quorums that cannot work: an empty committee, a zero
// threshold, or a threshold larger than the committee.
func (tp ThresholdParams) Validate() error {
	if tp.T == 0 || tp.L == 0 || tp.T > tp.L {
		return ErrInvalidThresholdConfig
	}
	return nil
}
