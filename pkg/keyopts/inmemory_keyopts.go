package keyopts

import (
	"errors"
	"sync"

	com_keyopts "github.com/quorumbyte/tpaillier/pkg/common/keyopts"
)

var (
	ErrInvalidParamsPartyID = errors.New("keyopts: invalid partyID")
	ErrInvalidParamsKeyID   = errors.New("keyopts: invalid keyID")
	ErrKeyNotFound          = errors.New("keyopts: key not found")
)

type Keys map[string]*com_keyopts.KeyData

type KeyOpts struct {
	lock sync.RWMutex

	// keys is a map of KeyID to a map of PartyID to key metadata{SKI}.
	keys map[string]Keys
}

var _ com_keyopts.KeyOpts = (*KeyOpts)(nil)

func NewInMemoryKeyOpts() *KeyOpts {
	return &KeyOpts{
		keys: make(map[string]Keys),
	}
}

func ids(opts com_keyopts.Options) (kid, pid string, err error) {
	kid, ok := opts.Get("id")
	if !ok || kid == "" {
		return "", "", ErrInvalidParamsKeyID
	}
	pid, ok = opts.Get("partyid")
	if !ok || pid == "" {
		return "", "", ErrInvalidParamsPartyID
	}
	return kid, pid, nil
}

func (kr *KeyOpts) Import(ski string, opts com_keyopts.Options) error {
	kr.lock.Lock()
	defer kr.lock.Unlock()

	kid, pid, err := ids(opts)
	if err != nil {
		return err
	}

	if _, ok := kr.keys[kid]; !ok {
		kr.keys[kid] = make(Keys)
	}
	kr.keys[kid][pid] = &com_keyopts.KeyData{
		SKI:     ski,
		PartyID: pid,
	}

	return nil
}

func (kr *KeyOpts) Get(opts com_keyopts.Options) (*com_keyopts.KeyData, error) {
	kr.lock.RLock()
	defer kr.lock.RUnlock()

	kid, pid, err := ids(opts)
	if err != nil {
		return nil, err
	}

	ks, ok := kr.keys[kid]
	if !ok {
		return nil, ErrKeyNotFound
	}
	k, ok := ks[pid]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return k, nil
}

func (kr *KeyOpts) GetAll(opts com_keyopts.Options) (map[string]*com_keyopts.KeyData, error) {
	kr.lock.RLock()
	defer kr.lock.RUnlock()

	kid, ok := opts.Get("id")
	if !ok || kid == "" {
		return nil, ErrInvalidParamsKeyID
	}

	ks, ok := kr.keys[kid]
	if !ok {
		return nil, ErrKeyNotFound
	}

	result := make(map[string]*com_keyopts.KeyData, len(ks))
	for partyID, key := range ks {
		result[partyID] = key
	}
	return result, nil
}

func (kr *KeyOpts) Delete(opts com_keyopts.Options) error {
	kr.lock.Lock()
	defer kr.lock.Unlock()

	kid, pid, err := ids(opts)
	if err != nil {
		return err
	}

	ks, ok := kr.keys[kid]
	if !ok {
		return ErrKeyNotFound
	}
	delete(ks, pid)
	return nil
}

func (kr *KeyOpts) DeleteAll(opts com_keyopts.Options) error {
	kr.lock.Lock()
	defer kr.lock.Unlock()

	kid, ok := opts.Get("id")
	if !ok || kid == "" {
		return ErrInvalidParamsKeyID
	}

	delete(kr.keys, kid)
	return nil
}
