package keychain

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/deploymenttheory/go-opkeychain/internal/categories"
	"github.com/deploymenttheory/go-opkeychain/internal/crypto"
	"github.com/deploymenttheory/go-opkeychain/internal/interfaces"
	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// cloudKeys is the immutable result of one successful cloud unlock.
type cloudKeys struct {
	master   crypto.KeyPair
	overview crypto.KeyPair
	index    *itemIndex[types.CloudItemRecord]
}

// CloudKeychain is the opdata1 variant: passphrase to super keys, super keys to the
// master and overview keys, master keys to per-item keys.
type CloudKeychain struct {
	stateMachine
	reader interfaces.CloudContainerReader
	opts   options
	keys   *cloudKeys
}

// Ensure CloudKeychain implements the Keychain interface
var _ interfaces.Keychain = (*CloudKeychain)(nil)

// NewCloudKeychain wraps an opened cloud container in a locked key hierarchy.
func NewCloudKeychain(reader interfaces.CloudContainerReader, opts ...Option) *CloudKeychain {
	o := newOptions(opts)
	k := &CloudKeychain{reader: reader, opts: o}
	k.stateMachine.init(o.logger, types.FormatCloud, reader.Path())
	return k
}

// Format returns types.FormatCloud.
func (k *CloudKeychain) Format() types.KeychainFormat { return types.FormatCloud }

// Path returns the container root.
func (k *CloudKeychain) Path() string { return k.reader.Path() }

func (k *CloudKeychain) decryptOptions() []crypto.DecryptOption {
	return []crypto.DecryptOption{crypto.WithIgnoreHMAC(k.opts.ignoreHMAC)}
}

// Unlock derives the super keys, unwraps the master and overview keys, then
// authenticates every item record and decrypts its overview.
func (k *CloudKeychain) Unlock(passphrase []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.discard()
	keys, err := k.unwrapProfile(passphrase)
	if err != nil {
		k.transition(types.StateFailed, err)
		return err
	}

	index, err := k.indexItems(keys.overview)
	if err != nil {
		keys.master.Wipe()
		keys.overview.Wipe()
		k.transition(types.StateFailed, err)
		return err
	}
	keys.index = index
	k.keys = keys
	k.transition(types.StateUnlocked, nil)
	return nil
}

// discard drops the current chain. Must be called with mu held.
func (k *CloudKeychain) discard() {
	k.keys = nil
	if k.state != types.StateLocked {
		k.transition(types.StateLocked, nil)
	}
}

// unwrapProfile must be called with mu held; it moves the machine to KeysDerived.
func (k *CloudKeychain) unwrapProfile(passphrase []byte) (*cloudKeys, error) {
	profile := k.reader.Profile()
	salt, err := base64.StdEncoding.DecodeString(profile.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: profile salt is not base64: %v", types.ErrFormat, err)
	}
	if profile.Iterations < 1 {
		return nil, fmt.Errorf("%w: profile iteration count %d", types.ErrFormat, profile.Iterations)
	}

	super, err := crypto.DeriveCloudSuperKeys(k.opts.backend, string(passphrase), salt, profile.Iterations, types.CloudKeySize)
	if err != nil {
		return nil, err
	}
	defer super.Wipe()
	k.transition(types.StateKeysDerived, nil)

	master, err := crypto.DecryptOpdata1MasterKey([]byte(profile.MasterKey), super, k.decryptOptions()...)
	if errors.Is(err, types.ErrAuthentication) {
		// The master key is the first thing the passphrase authenticates.
		return nil, fmt.Errorf("%w: failed to unwrap master key: %w", types.ErrBadKey, err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to unwrap master key: %w", err)
	}
	overview, err := crypto.DecryptOpdata1MasterKey([]byte(profile.OverviewKey), super, k.decryptOptions()...)
	if err != nil {
		master.Wipe()
		return nil, fmt.Errorf("failed to unwrap overview key: %w", err)
	}
	return &cloudKeys{master: master, overview: overview}, nil
}

// cloudOverview is the decrypted "o" blob of an item record.
type cloudOverview struct {
	Title string `json:"title"`
}

func (k *CloudKeychain) indexItems(overviewKeys crypto.KeyPair) (*itemIndex[types.CloudItemRecord], error) {
	records, err := k.reader.Items()
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	index := newItemIndex[types.CloudItemRecord](len(records))
	for _, record := range records {
		if !k.opts.ignoreHMAC {
			if err := crypto.VerifyRecordHMAC(overviewKeys.MACKey, record.Fields); err != nil {
				return nil, fmt.Errorf("item %s: %w", record.UUID, err)
			}
		}

		plaintext, err := crypto.DecryptOpdata1Item([]byte(record.Overview), overviewKeys, k.decryptOptions()...)
		if err != nil {
			return nil, fmt.Errorf("item %s overview: %w", record.UUID, err)
		}
		var overview cloudOverview
		if err := json.Unmarshal(plaintext, &overview); err != nil {
			return nil, fmt.Errorf("%w: item %s overview is not JSON: %v", types.ErrFormat, record.UUID, err)
		}

		index.add(types.Item{
			UUID:      record.UUID,
			Title:     overview.Title,
			Category:  categories.NameForCode(record.Category),
			TypeCode:  record.Category,
			Format:    types.FormatCloud,
			Trashed:   record.Trashed,
			CreatedAt: unixTime(record.Created),
			UpdatedAt: unixTime(record.Updated),
			Overview:  plaintext,
		}, record)
	}
	return index, nil
}

// Lock discards all key material.
func (k *CloudKeychain) Lock() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.discard()
}

func (k *CloudKeychain) unlockedKeys() (*cloudKeys, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.requireUnlocked(); err != nil {
		return nil, err
	}
	return k.keys, nil
}

// Items lists every item in band order.
func (k *CloudKeychain) Items() ([]types.Item, error) {
	keys, err := k.unlockedKeys()
	if err != nil {
		return nil, err
	}
	return keys.index.items(), nil
}

// Item looks up one item by UUID.
func (k *CloudKeychain) Item(uuid string) (types.Item, error) {
	keys, err := k.unlockedKeys()
	if err != nil {
		return types.Item{}, err
	}
	entry, ok := keys.index.lookup(uuid)
	if !ok {
		return types.Item{}, fmt.Errorf("%w: no item %s", types.ErrLookup, uuid)
	}
	return entry.item, nil
}

// Decrypt unwraps the item key under the master keys and decrypts the data blob.
func (k *CloudKeychain) Decrypt(item types.Item) ([]byte, error) {
	keys, err := k.unlockedKeys()
	if err != nil {
		return nil, err
	}
	entry, ok := keys.index.lookup(item.UUID)
	if !ok {
		return nil, fmt.Errorf("%w: no item %s", types.ErrLookup, item.UUID)
	}
	record := entry.record

	keyBlob, err := base64.StdEncoding.DecodeString(record.Key)
	if err != nil {
		return nil, fmt.Errorf("%w: item %s key is not base64: %v", types.ErrFormat, record.UUID, err)
	}
	itemKeys, err := crypto.DecryptOpdata1Key(keyBlob, keys.master, k.decryptOptions()...)
	if err != nil {
		return nil, fmt.Errorf("item %s key: %w", record.UUID, err)
	}
	defer itemKeys.Wipe()

	plaintext, err := crypto.DecryptOpdata1Item([]byte(record.Data), itemKeys, k.decryptOptions()...)
	if err != nil {
		return nil, fmt.Errorf("item %s data: %w", record.UUID, err)
	}
	return plaintext, nil
}
