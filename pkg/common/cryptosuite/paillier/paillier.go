package paillier

import (
	"github.com/cronokirby/saferith"

	core_paillier "github.com/quorumbyte/tpaillier/core/paillier"
	"github.com/quorumbyte/tpaillier/pkg/common/keyopts"
)

// KeyShareManager deals threshold Paillier keys and serves the per-party
// material needed for encryption and partial decryption. Keys are addressed
// by the "id" in opts; shares additionally by "partyid", the decimal party
// index in [1, l].
type KeyShareManager interface {
	// GenerateKey deals a fresh key under the keyID in opts: the public key
	// and one key share per party are persisted, the plain secret key is
	// discarded. Returns the public key.
	GenerateKey(opts keyopts.Options) (*core_paillier.PublicKey, error)

	// ImportPublicKey stores a serialized public key received from a dealer
	// under the keyID in opts.
	ImportPublicKey(data []byte, opts keyopts.Options) (*core_paillier.PublicKey, error)

	// ImportShare stores a serialized key share received from a dealer under
	// the keyID in opts; the party slot is taken from the share itself.
	ImportShare(data []byte, opts keyopts.Options) (*core_paillier.KeyShare, error)

	// PublicKey returns the public key stored under the keyID in opts.
	PublicKey(opts keyopts.Options) (*core_paillier.PublicKey, error)

	// Share returns the key share selected by the (keyID, partyID) in opts.
	Share(opts keyopts.Options) (*core_paillier.KeyShare, error)

	// Encrypt encrypts m under the public key stored for the keyID in opts,
	// returning the ciphertext and the nonce used.
	Encrypt(m *saferith.Nat, opts keyopts.Options) (*core_paillier.Ciphertext, *saferith.Nat, error)

	// PartialDecrypt produces the decryption share of ct for the party
	// selected by opts.
	PartialDecrypt(ct *core_paillier.Ciphertext, opts keyopts.Options) (*core_paillier.DecryptionShare, error)

	// DeleteKey removes the public key and every stored share for the keyID
	// in opts, e.g. after rotating to a freshly dealt key.
	DeleteKey(opts keyopts.Options) error
}
