package keychain

import (
	"encoding/base64"
	"fmt"
	"sort"

	"github.com/deploymenttheory/go-opkeychain/internal/categories"
	"github.com/deploymenttheory/go-opkeychain/internal/crypto"
	"github.com/deploymenttheory/go-opkeychain/internal/interfaces"
	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// agileKeys is the immutable result of one successful legacy unlock.
type agileKeys struct {
	// level key by key identifier
	byIdentifier map[string][]byte
	levels       map[string]string
	index        *itemIndex[types.AgileItemRecord]
}

// wipe zeroes keys that were never published.
func (k *agileKeys) wipe() {
	if k == nil {
		return
	}
	for _, key := range k.byIdentifier {
		for i := range key {
			key[i] = 0
		}
	}
}

// AgileKeychain is the legacy variant: per-level keys validated against themselves,
// items decrypted directly under their level key.
type AgileKeychain struct {
	stateMachine
	reader interfaces.AgileContainerReader
	opts   options
	keys   *agileKeys
}

// Ensure AgileKeychain implements the Keychain interface
var _ interfaces.Keychain = (*AgileKeychain)(nil)

// NewAgileKeychain wraps an opened legacy container in a locked key hierarchy.
func NewAgileKeychain(reader interfaces.AgileContainerReader, opts ...Option) *AgileKeychain {
	o := newOptions(opts)
	k := &AgileKeychain{reader: reader, opts: o}
	k.stateMachine.init(o.logger, types.FormatAgile, reader.Path())
	return k
}

// Format returns types.FormatAgile.
func (k *AgileKeychain) Format() types.KeychainFormat { return types.FormatAgile }

// Path returns the container root.
func (k *AgileKeychain) Path() string { return k.reader.Path() }

// Unlock unwraps and validates every level key, then indexes the item files.
func (k *AgileKeychain) Unlock(passphrase []byte) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.discard()
	keys, err := k.unwrapLevels(passphrase)
	if err != nil {
		k.transition(types.StateFailed, err)
		return err
	}
	k.transition(types.StateKeysDerived, nil)

	index, err := k.indexItems()
	if err != nil {
		keys.wipe()
		k.transition(types.StateFailed, err)
		return err
	}
	keys.index = index
	k.keys = keys
	k.transition(types.StateUnlocked, nil)
	return nil
}

// discard drops the current chain. Published keys are never zeroed because a
// concurrent Decrypt may still be reading them. Must be called with mu held.
func (k *AgileKeychain) discard() {
	k.keys = nil
	if k.state != types.StateLocked {
		k.transition(types.StateLocked, nil)
	}
}

func (k *AgileKeychain) unwrapLevels(passphrase []byte) (*agileKeys, error) {
	levels := k.reader.Levels()
	names := make([]string, 0, len(levels))
	for level := range levels {
		names = append(names, level)
	}
	sort.Strings(names)

	keys := &agileKeys{
		byIdentifier: make(map[string][]byte, len(levels)),
		levels:       levels,
	}
	for _, level := range names {
		record, err := k.reader.KeyForLevel(level)
		if err != nil {
			keys.wipe()
			return nil, err
		}
		if _, done := keys.byIdentifier[record.Identifier]; done {
			continue
		}

		levelKey, err := unwrapAgileKey(k.opts.backend, record, passphrase)
		if err != nil {
			keys.wipe()
			return nil, fmt.Errorf("failed to unlock level %s: %w", level, err)
		}
		keys.byIdentifier[record.Identifier] = levelKey
		k.logger.Debug().Str("level", level).Str("identifier", record.Identifier).Msg("level key validated")
	}
	return keys, nil
}

func unwrapAgileKey(backend crypto.PBKDF2Backend, record types.AgileKeyRecord, passphrase []byte) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(record.Data)
	if err != nil {
		return nil, fmt.Errorf("%w: key data is not base64: %v", types.ErrFormat, err)
	}
	validation, err := base64.StdEncoding.DecodeString(record.Validation)
	if err != nil {
		return nil, fmt.Errorf("%w: key validation is not base64: %v", types.ErrFormat, err)
	}
	iterations := record.Iterations
	if iterations == 0 {
		iterations = types.DefaultLegacyIterations
	}

	return crypto.UnwrapLevelKey(backend, crypto.LegacyKeyRecord{
		Data:       data,
		Validation: validation,
		Iterations: iterations,
	}, passphrase, types.LegacyKeySize)
}

func (k *AgileKeychain) indexItems() (*itemIndex[types.AgileItemRecord], error) {
	records, err := k.reader.Items()
	if err != nil {
		return nil, fmt.Errorf("failed to load items: %w", err)
	}

	index := newItemIndex[types.AgileItemRecord](len(records))
	for _, record := range records {
		index.add(types.Item{
			UUID:      record.UUID,
			Title:     record.Title,
			Category:  categories.NameForTypeName(record.TypeName),
			TypeCode:  record.TypeName,
			Format:    types.FormatAgile,
			Trashed:   record.Trashed,
			CreatedAt: unixTime(record.CreatedAt),
			UpdatedAt: unixTime(record.UpdatedAt),
		}, record)
	}
	return index, nil
}

// Lock discards all key material.
func (k *AgileKeychain) Lock() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.discard()
}

func (k *AgileKeychain) unlockedKeys() (*agileKeys, error) {
	k.mu.RLock()
	defer k.mu.RUnlock()
	if err := k.requireUnlocked(); err != nil {
		return nil, err
	}
	return k.keys, nil
}

// Items lists every item in file name order.
func (k *AgileKeychain) Items() ([]types.Item, error) {
	keys, err := k.unlockedKeys()
	if err != nil {
		return nil, err
	}
	return keys.index.items(), nil
}

// Item looks up one item by UUID.
func (k *AgileKeychain) Item(uuid string) (types.Item, error) {
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

// Decrypt resolves the item's key by keyID, falling back to its security level, and
// decrypts the payload.
func (k *AgileKeychain) Decrypt(item types.Item) ([]byte, error) {
	keys, err := k.unlockedKeys()
	if err != nil {
		return nil, err
	}
	entry, ok := keys.index.lookup(item.UUID)
	if !ok {
		return nil, fmt.Errorf("%w: no item %s", types.ErrLookup, item.UUID)
	}
	record := entry.record

	identifier, err := keys.resolve(record)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", record.UUID, err)
	}
	levelKey, ok := keys.byIdentifier[identifier]
	if !ok {
		return nil, fmt.Errorf("%w: item %s is encrypted with unknown key %s", types.ErrLookup, record.UUID, identifier)
	}

	data, err := base64.StdEncoding.DecodeString(record.Encrypted)
	if err != nil {
		return nil, fmt.Errorf("%w: item %s payload is not base64: %v", types.ErrFormat, record.UUID, err)
	}
	plaintext, err := crypto.DecryptLeafItem(data, levelKey, types.LegacyKeySize)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", record.UUID, err)
	}
	return plaintext, nil
}

// resolve maps an item to its key identifier: keyID first, then securityLevel.
func (k *agileKeys) resolve(record types.AgileItemRecord) (string, error) {
	if record.KeyID != "" {
		return record.KeyID, nil
	}
	if record.SecurityLevel != "" {
		identifier, ok := k.levels[record.SecurityLevel]
		if !ok {
			return "", fmt.Errorf("%w: unknown security level %q", types.ErrLookup, record.SecurityLevel)
		}
		return identifier, nil
	}
	return "", fmt.Errorf("%w: neither keyID nor securityLevel present", types.ErrLookup)
}
