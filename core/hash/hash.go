// Package hash computes domain-separated digests used to bind values to each
// other: decryption shares to the ciphertext they were computed from, and
// ciphertexts to the public key they were encrypted under.
package hash

import (
	"encoding/binary"

	"github.com/zeebo/blake3"
)

// DigestLength is the byte length of all digests produced by this package.
const DigestLength = 32

// Hash is a blake3 hasher with domain separation applied to every write.
type Hash struct {
	h *blake3.Hasher
}

// New creates a Hash whose state is initialized with the given domain string.
func New(domain string) *Hash {
	hash := &Hash{h: blake3.New()}
	hash.writeWithFrame("TPAILLIER-BLAKE", []byte(domain))
	return hash
}

// WriteBytes appends data to the hash state under a named domain.
// Each write is framed as `(<domain_size><domain><data_size><data>)` so that
// adjacent writes cannot be confused for one another.
func (hash *Hash) WriteBytes(domain string, data []byte) *Hash {
	hash.writeWithFrame(domain, data)
	return hash
}

func (hash *Hash) writeWithFrame(domain string, data []byte) {
	var sizeBuf [8]byte

	_, _ = hash.h.WriteString("(")
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(domain)))
	_, _ = hash.h.Write(sizeBuf[:])
	_, _ = hash.h.WriteString(domain)
	binary.BigEndian.PutUint64(sizeBuf[:], uint64(len(data)))
	_, _ = hash.h.Write(sizeBuf[:])
	_, _ = hash.h.Write(data)
	_, _ = hash.h.WriteString(")")
}

// Sum returns a digest of length DigestLength over the current state.
func (hash *Hash) Sum() []byte {
	out := make([]byte, DigestLength)
	_, _ = hash.h.Digest().Read(out)
	return out
}
