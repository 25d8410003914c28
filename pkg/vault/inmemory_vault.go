package vault

import (
	"errors"
	"sync"

	com_vault "github.com/quorumbyte/tpaillier/pkg/common/vault"
)

var ErrKeyNotFound = errors.New("vault: key not found")

// InMemoryVault stores serialized key material keyed by SKI. It is safe
// for concurrent use.
type InMemoryVault struct {
	lock sync.RWMutex
	keys map[string][]byte
}

var _ com_vault.Vault = (*InMemoryVault)(nil)

func NewInMemoryVault() *InMemoryVault {
	return &InMemoryVault{
		keys: make(map[string][]byte),
	}
}

func (v *InMemoryVault) Import(ski string, key []byte) error {
	v.lock.Lock()
	defer v.lock.Unlock()

	buf := make([]byte, len(key))
	copy(buf, key)
	v.keys[ski] = buf
	return nil
}

func (v *InMemoryVault) Get(ski string) ([]byte, error) {
	v.lock.RLock()
	defer v.lock.RUnlock()

	key, ok := v.keys[ski]
	if !ok {
		return nil, ErrKeyNotFound
	}
	buf := make([]byte, len(key))
	copy(buf, key)
	return buf, nil
}

func (v *InMemoryVault) Delete(ski string) error {
	v.lock.Lock()
	defer v.lock.Unlock()

	if _, ok := v.keys[ski]; !ok {
		return ErrKeyNotFound
	}
	delete(v.keys, ski)
	return nil
}
