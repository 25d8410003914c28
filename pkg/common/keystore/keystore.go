package keystore

import (
	"github.com/quorumbyte/tpaillier/pkg/common/keyopts"
)

// Keystore stores keying material in a vault and its metadata in a key
// repository, addressed either way.
type Keystore interface {
	Import(ski string, key []byte, opts keyopts.Options) error
	Get(opts keyopts.Options) ([]byte, error)
	Delete(opts keyopts.Options) error
	DeleteAll(opts keyopts.Options) error
}
