package keystore

import (
	"github.com/pkg/errors"

	com_keyopts "github.com/quorumbyte/tpaillier/pkg/common/keyopts"
	com_keystore "github.com/quorumbyte/tpaillier/pkg/common/keystore"
	com_vault "github.com/quorumbyte/tpaillier/pkg/common/vault"
)

// InMemoryKeystore stores key material in a vault and resolves it through
// a key-metadata repository, so callers can address keys by (keyID, partyID)
// instead of SKI.
type InMemoryKeystore struct {
	vault com_vault.Vault
	kr    com_keyopts.KeyOpts
}

var _ com_keystore.Keystore = (*InMemoryKeystore)(nil)

func NewInMemoryKeystore(vault com_vault.Vault, kr com_keyopts.KeyOpts) *InMemoryKeystore {
	return &InMemoryKeystore{
		vault: vault,
		kr:    kr,
	}
}

func (ks *InMemoryKeystore) Import(ski string, key []byte, opts com_keyopts.Options) error {
	if err := ks.vault.Import(ski, key); err != nil {
		return errors.WithMessage(err, "keystore: failed to import key to vault")
	}
	if err := ks.kr.Import(ski, opts); err != nil {
		return errors.WithMessage(err, "keystore: failed to import key metadata")
	}
	return nil
}

func (ks *InMemoryKeystore) Get(opts com_keyopts.Options) ([]byte, error) {
	kd, err := ks.kr.Get(opts)
	if err != nil {
		return nil, errors.WithMessage(err, "keystore: failed to resolve key metadata")
	}
	key, err := ks.vault.Get(kd.SKI)
	if err != nil {
		return nil, errors.WithMessage(err, "keystore: failed to get key from vault")
	}
	return key, nil
}

func (ks *InMemoryKeystore) Delete(opts com_keyopts.Options) error {
	kd, err := ks.kr.Get(opts)
	if err != nil {
		return errors.WithMessage(err, "keystore: failed to resolve key metadata")
	}
	if err := ks.vault.Delete(kd.SKI); err != nil {
		return errors.WithMessage(err, "keystore: failed to delete key from vault")
	}
	if err := ks.kr.Delete(opts); err != nil {
		return errors.WithMessage(err, "keystore: failed to delete key metadata")
	}
	return nil
}

func (ks *InMemoryKeystore) DeleteAll(opts com_keyopts.Options) error {
	kds, err := ks.kr.GetAll(opts)
	if err != nil {
		return errors.WithMessage(err, "keystore: failed to resolve key metadata")
	}
	for _, kd := range kds {
		if err := ks.vault.Delete(kd.SKI); err != nil {
			return errors.WithMessage(err, "keystore: failed to delete key from vault")
		}
	}
	if err := ks.kr.DeleteAll(opts); err != nil {
		return errors.WithMessage(err, "keystore: failed to delete key metadata")
	}
	return nil
}
