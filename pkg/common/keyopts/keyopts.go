package keyopts

// KeyData is the metadata stored for a single key: which party it belongs to
// and the SKI its material is vaulted under.
type KeyData struct {
	PartyID string
	SKI     string
}

// Options selects a key by metadata, e.g. {"id": keyID, "partyid": "2"}.
type Options interface {
	Set(kVs ...interface{}) (Options, error)
	Get(key string) (string, bool)
}

// KeyOpts manages key metadata addressed by (keyID, partyID).
type KeyOpts interface {
	// Import records the SKI of a key under the identifiers in opts.
	Import(ski string, opts Options) error

	// Get returns the metadata of the key selected by opts.
	Get(opts Options) (*KeyData, error)

	// GetAll returns the metadata of every party's key for the keyID in opts.
	GetAll(opts Options) (map[string]*KeyData, error)

	// Delete removes the metadata of the key selected by opts.
	Delete(opts Options) error

	// DeleteAll removes the metadata of every key for the keyID in opts.
	DeleteAll(opts Options) error
}
