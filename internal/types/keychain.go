package types

// Keychain formats
// Two mutually incompatible container layouts produced by successive versions of the same product.

// KeychainFormat identifies the on-disk container layout.
type KeychainFormat string

const (
	// FormatAgile is the legacy ".agilekeychain" layout: one key file with a list of
	// level keys plus one loose file per item.
	FormatAgile KeychainFormat = "agilekeychain"

	// FormatCloud is the ".cloudkeychain" layout: one profile file plus up to
	// sixteen band files of opdata1-protected item records.
	FormatCloud KeychainFormat = "cloudkeychain"
)

// KeySize is an AES cipher-strength class expressed in bits.
type KeySize int

const (
	// AES128 is the strength class used by the legacy format.
	AES128 KeySize = 128

	// AES192 is accepted for completeness; no known container writes it.
	AES192 KeySize = 192

	// AES256 is the strength class used by the cloud format.
	AES256 KeySize = 256
)

// Bytes returns the key length in bytes for the strength class, or 0 for an unknown class.
func (k KeySize) Bytes() int {
	switch k {
	case AES128:
		return 16
	case AES192:
		return 24
	case AES256:
		return 32
	default:
		return 0
	}
}

// Valid reports whether k is one of the three AES strength classes.
func (k KeySize) Valid() bool {
	return k.Bytes() != 0
}

// Opdata1 envelope layout
const (
	// Opdata1Magic is the eight byte header of the general envelope.
	Opdata1Magic = "opdata01"

	// Opdata1MagicSize is the size of the magic header in bytes.
	Opdata1MagicSize = 8

	// Opdata1LengthSize is the size of the little-endian plaintext length field.
	Opdata1LengthSize = 8

	// Opdata1IVSize is the size of the CBC initialization vector.
	Opdata1IVSize = 16

	// Opdata1HeaderSize covers magic, length and IV.
	Opdata1HeaderSize = Opdata1MagicSize + Opdata1LengthSize + Opdata1IVSize

	// Opdata1HMACSize is the size of the trailing HMAC-SHA256 tag.
	Opdata1HMACSize = 32

	// Opdata1MinimumSize is header + one cipher block + tag.
	Opdata1MinimumSize = Opdata1HeaderSize + CipherBlockSize + Opdata1HMACSize

	// Opdata1KeyCiphertextSize is the encrypted payload of the fixed key envelope:
	// a 32 byte cipher key followed by a 32 byte MAC key.
	Opdata1KeyCiphertextSize = 64

	// Opdata1KeyBlobSize is iv + ciphertext + tag of the fixed key envelope.
	Opdata1KeyBlobSize = Opdata1IVSize + Opdata1KeyCiphertextSize + Opdata1HMACSize
)

// CipherBlockSize is the AES block size in bytes.
const CipherBlockSize = 16

// Legacy salted blob layout
const (
	// SaltMarker prefixes a salted legacy ciphertext ("Salted__", as written by openssl enc).
	SaltMarker = "Salted__"

	// SaltSize is the length of the salt that follows SaltMarker.
	SaltSize = 8
)

// Key derivation parameters
const (
	// DefaultLegacyIterations is used when a legacy key record omits its iteration count.
	DefaultLegacyIterations = 1000

	// MinimumLegacyIterations is the floor applied to legacy key record iteration counts.
	MinimumLegacyIterations = 1000

	// LegacyKeySize is the strength class of legacy level keys and items.
	LegacyKeySize = AES128

	// CloudKeySize is the strength class of every key in the cloud hierarchy.
	CloudKeySize = AES256
)

// Legacy container version window, read from config/buildnum when present.
const (
	AgileBuildMin = 30000
	AgileBuildMax = 40000
)

// Cloud container framing
const (
	// CloudProfilePrefix precedes the profile JSON object in profile.js.
	CloudProfilePrefix = "var profile="

	// CloudProfileSuffix terminates the profile JSON object.
	CloudProfileSuffix = ";"

	// CloudBandPrefix precedes the band JSON object in band_X.js.
	CloudBandPrefix = "ld("

	// CloudBandSuffix terminates the band JSON object.
	CloudBandSuffix = ");"

	// CloudBandCount is the number of band files, indexed by one hex digit.
	CloudBandCount = 16
)
