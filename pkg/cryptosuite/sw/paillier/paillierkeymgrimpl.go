package paillier

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strconv"

	"github.com/cronokirby/saferith"
	"github.com/pkg/errors"

	core_paillier "github.com/quorumbyte/tpaillier/core/paillier"
	"github.com/quorumbyte/tpaillier/core/pool"
	"github.com/quorumbyte/tpaillier/lib/params"
	cs_paillier "github.com/quorumbyte/tpaillier/pkg/common/cryptosuite/paillier"
	com_keyopts "github.com/quorumbyte/tpaillier/pkg/common/keyopts"
	"github.com/quorumbyte/tpaillier/pkg/common/keystore"
	"github.com/quorumbyte/tpaillier/pkg/keyopts"
)

// publicPartyID is the party slot the dealt public key is stored under;
// parties holding shares are indexed from 1.
const publicPartyID = "0"

var ErrInvalidOpts = errors.New("paillier: opts must carry a key id")

type Config struct {
	// Bits is the bit length of the dealt modulus n; params.BitsPaillier
	// when zero.
	Bits int

	// Params is the (t, l) quorum keys are dealt for.
	Params core_paillier.ThresholdParams
}

// PaillierKeyShareManager is a KeyShareManager backed by a keystore. On the
// dealer it holds every party's share; on a party it holds the public key and
// that party's share only, imported from the dealer.
type PaillierKeyShareManager struct {
	keystore keystore.Keystore
	pl       *pool.Pool
	cfg      Config
}

var _ cs_paillier.KeyShareManager = (*PaillierKeyShareManager)(nil)

func NewPaillierKeyShareManager(store keystore.Keystore, pl *pool.Pool, cfg Config) *PaillierKeyShareManager {
	if cfg.Bits == 0 {
		cfg.Bits = params.BitsPaillier
	}
	return &PaillierKeyShareManager{
		keystore: store,
		pl:       pl,
		cfg:      cfg,
	}
}

// partyOpts rebinds opts to a specific party slot, keeping its key id.
func partyOpts(opts com_keyopts.Options, partyID string) (com_keyopts.Options, error) {
	kid, ok := opts.Get("id")
	if !ok || kid == "" {
		return nil, ErrInvalidOpts
	}
	return keyopts.NewOptions().Set("id", kid, "partyid", partyID)
}

// ski derives the vault identifier for one slot of a dealt key: the public
// key's slot uses index 0, share slots their party index.
func ski(keyDigest []byte, index uint32) string {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], index)

	h := sha256.New()
	h.Write(keyDigest)
	h.Write(buf[:])
	return hex.EncodeToString(h.Sum(nil))
}

func (mgr *PaillierKeyShareManager) GenerateKey(opts com_keyopts.Options) (*core_paillier.PublicKey, error) {
	pkOpts, err := partyOpts(opts, publicPartyID)
	if err != nil {
		return nil, err
	}

	pk, shares, _, err := core_paillier.KeyGen(rand.Reader, mgr.pl, mgr.cfg.Bits, mgr.cfg.Params)
	if err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to generate key")
	}

	pkBytes, err := pk.MarshalBinary()
	if err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to serialize public key")
	}
	if err := mgr.keystore.Import(ski(pk.Digest(), 0), pkBytes, pkOpts); err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to store public key")
	}

	for _, share := range shares {
		sb, err := share.MarshalBinary()
		if err != nil {
			return nil, errors.WithMessage(err, "paillier: failed to serialize key share")
		}
		sOpts, err := partyOpts(opts, strconv.FormatUint(uint64(share.Index()), 10))
		if err != nil {
			return nil, err
		}
		if err := mgr.keystore.Import(ski(pk.Digest(), share.Index()), sb, sOpts); err != nil {
			return nil, errors.WithMessage(err, "paillier: failed to store key share")
		}
	}

	return pk, nil
}

func (mgr *PaillierKeyShareManager) ImportPublicKey(data []byte, opts com_keyopts.Options) (*core_paillier.PublicKey, error) {
	pk := &core_paillier.PublicKey{}
	if err := pk.UnmarshalBinary(data); err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to decode public key")
	}

	pkOpts, err := partyOpts(opts, publicPartyID)
	if err != nil {
		return nil, err
	}
	if err := mgr.keystore.Import(ski(pk.Digest(), 0), data, pkOpts); err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to store public key")
	}

	return pk, nil
}

func (mgr *PaillierKeyShareManager) ImportShare(data []byte, opts com_keyopts.Options) (*core_paillier.KeyShare, error) {
	share := &core_paillier.KeyShare{}
	if err := share.UnmarshalBinary(data); err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to decode key share")
	}

	sOpts, err := partyOpts(opts, strconv.FormatUint(uint64(share.Index()), 10))
	if err != nil {
		return nil, err
	}
	if err := mgr.keystore.Import(ski(share.KeyDigest(), share.Index()), data, sOpts); err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to store key share")
	}

	return share, nil
}

func (mgr *PaillierKeyShareManager) PublicKey(opts com_keyopts.Options) (*core_paillier.PublicKey, error) {
	pkOpts, err := partyOpts(opts, publicPartyID)
	if err != nil {
		return nil, err
	}
	data, err := mgr.keystore.Get(pkOpts)
	if err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to get public key from keystore")
	}

	pk := &core_paillier.PublicKey{}
	if err := pk.UnmarshalBinary(data); err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to decode public key")
	}
	return pk, nil
}

func (mgr *PaillierKeyShareManager) Share(opts com_keyopts.Options) (*core_paillier.KeyShare, error) {
	data, err := mgr.keystore.Get(opts)
	if err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to get key share from keystore")
	}

	share := &core_paillier.KeyShare{}
	if err := share.UnmarshalBinary(data); err != nil {
		return nil, errors.WithMessage(err, "paillier: failed to decode key share")
	}
	return share, nil
}

func (mgr *PaillierKeyShareManager) Encrypt(m *saferith.Nat, opts com_keyopts.Options) (*core_paillier.Ciphertext, *saferith.Nat, error) {
	pk, err := mgr.PublicKey(opts)
	if err != nil {
		return nil, nil, err
	}
	return pk.Enc(rand.Reader, m)
}

func (mgr *PaillierKeyShareManager) PartialDecrypt(ct *core_paillier.Ciphertext, opts com_keyopts.Options) (*core_paillier.DecryptionShare, error) {
	pk, err := mgr.PublicKey(opts)
	if err != nil {
		return nil, err
	}
	share, err := mgr.Share(opts)
	if err != nil {
		return nil, err
	}
	return share.PartialDecrypt(pk, ct)
}

func (mgr *PaillierKeyShareManager) DeleteKey(opts com_keyopts.Options) error {
	if err := mgr.keystore.DeleteAll(opts); err != nil {
		return errors.WithMessage(err, "paillier: failed to delete key material")
	}
	return nil
}
