package interfaces

import (
	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// AgileContainerReader provides access to the files of a legacy .agilekeychain container
type AgileContainerReader interface {
	// Path returns the container root
	Path() string

	// BuildNumber returns the value of config/buildnum and whether the file exists
	BuildNumber() (int, bool)

	// Levels returns the security level to key identifier table
	Levels() map[string]string

	// KeyForLevel returns the single key record the named level maps to
	KeyForLevel(level string) (types.AgileKeyRecord, error)

	// Items reads every *.1password item file
	Items() ([]types.AgileItemRecord, error)
}

// CloudContainerReader provides access to the files of a .cloudkeychain container
type CloudContainerReader interface {
	// Path returns the container root
	Path() string

	// Profile returns the decoded default/profile.js
	Profile() types.CloudProfile

	// Items reads every band file present, in band order
	Items() ([]types.CloudItemRecord, error)
}

// Keychain is an opened container together with its key hierarchy
type Keychain interface {
	// Format returns the container layout
	Format() types.KeychainFormat

	// Path returns the container root
	Path() string

	// Unlock discards any existing key chain and rebuilds it from passphrase
	Unlock(passphrase []byte) error

	// Lock discards all key material
	Lock()

	// State returns the current unlock state
	State() types.KeyState

	// Err returns the error that moved the keychain to StateFailed, if any
	Err() error

	// Items lists every item; requires StateUnlocked
	Items() ([]types.Item, error)

	// Item looks up one item by UUID in any common spelling; requires StateUnlocked
	Item(uuid string) (types.Item, error)

	// Decrypt returns the plaintext payload of item; requires StateUnlocked
	Decrypt(item types.Item) ([]byte, error)
}

// ItemSink receives recovered items
type ItemSink interface {
	// Write stores a batch of recovered items
	Write(items []types.RecoveredItem) error

	// Close flushes and releases the sink
	Close() error
}
