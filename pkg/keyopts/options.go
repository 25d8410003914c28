package keyopts

import (
	"errors"
	"fmt"
	"strings"

	com_keyopts "github.com/quorumbyte/tpaillier/pkg/common/keyopts"
)

type Options map[string]string

var _ com_keyopts.Options = Options{}

// NewOptions returns an empty Options map.
func NewOptions() Options {
	return make(Options)
}

// Set stores key/value pairs; keys are strings, values are stringified.
// Keys are matched case-insensitively.
func (opts Options) Set(kVs ...interface{}) (com_keyopts.Options, error) {
	if len(kVs)%2 != 0 {
		return nil, errors.New("keyopts: odd number of key/value arguments")
	}

	for i := 0; i < len(kVs); i += 2 {
		key, ok := kVs[i].(string)
		if !ok {
			return nil, errors.New("keyopts: option key must be a string")
		}
		opts[strings.ToLower(key)] = fmt.Sprint(kVs[i+1])
	}

	return opts, nil
}

func (opts Options) Get(key string) (string, bool) {
	val, ok := opts[strings.ToLower(key)]
	return val, ok
}
