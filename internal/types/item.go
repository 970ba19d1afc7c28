package types

import "time"

// KeyState is the position of a keychain in its unlock state machine.
type KeyState int

const (
	// StateLocked holds no key material.
	StateLocked KeyState = iota

	// StateKeysDerived holds the passphrase-derived keys while the chain below them is
	// being unwrapped and verified.
	StateKeysDerived

	// StateUnlocked holds every key needed to decrypt any item on demand.
	StateUnlocked

	// StateFailed carries the error that stopped the last unlock attempt.
	StateFailed
)

// String returns the human-readable state name.
func (s KeyState) String() string {
	switch s {
	case StateLocked:
		return "locked"
	case StateKeysDerived:
		return "keys-derived"
	case StateUnlocked:
		return "unlocked"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Item is the metadata of one keychain entry. Cloud titles come from the decrypted
// overview, so they are only known once the keychain is unlocked.
type Item struct {
	UUID      string         `json:"uuid" yaml:"uuid"`
	Title     string         `json:"title" yaml:"title"`
	Category  string         `json:"category" yaml:"category"`
	TypeCode  string         `json:"type_code" yaml:"type_code"`
	Format    KeychainFormat `json:"format" yaml:"format"`
	Trashed   bool           `json:"trashed" yaml:"trashed"`
	CreatedAt time.Time      `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt time.Time      `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`

	// Overview is the decrypted cloud overview JSON. Legacy items have none.
	Overview []byte `json:"-" yaml:"-"`
}

// RecoveredItem pairs an item with its decrypted payload or the error that stopped
// decryption. Plaintext and Err are never both set.
type RecoveredItem struct {
	Item      Item
	Plaintext []byte
	Err       error
}
