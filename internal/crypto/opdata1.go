package crypto

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/binary"
	"fmt"

	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// Opdata1Record is an unpacked general envelope:
//
//	"opdata01" | plaintextLength u64le | iv[16] | ciphertext[N*16] | hmac-sha256[32]
type Opdata1Record struct {
	PlaintextLength uint64
	IV              []byte
	Ciphertext      []byte

	// HMAC is the tag stored in the envelope.
	HMAC []byte

	// Authenticated is everything the tag covers: magic, length, IV and ciphertext.
	Authenticated []byte
}

// DecryptOption adjusts envelope decryption.
type DecryptOption func(*decryptOptions)

type decryptOptions struct {
	ignoreHMAC bool
}

// IgnoreHMAC skips tag verification. It exists only for best-effort forensic recovery
// of corrupt records; the default always verifies.
func IgnoreHMAC() DecryptOption {
	return func(o *decryptOptions) {
		o.ignoreHMAC = true
	}
}

// WithIgnoreHMAC is IgnoreHMAC driven by a flag.
func WithIgnoreHMAC(ignore bool) DecryptOption {
	return func(o *decryptOptions) {
		o.ignoreHMAC = ignore
	}
}

func collectOptions(opts []DecryptOption) decryptOptions {
	var o decryptOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// UnpackOpdata1 splits a general envelope into its fields. A blob that does not start
// with the magic is base64-decoded and checked again. Envelopes shorter than
// types.Opdata1MinimumSize are rejected before any cryptographic work.
func UnpackOpdata1(blob []byte) (*Opdata1Record, error) {
	data := blob
	if !hasOpdata1Magic(data) {
		decoded, err := base64.StdEncoding.DecodeString(string(blob))
		if err != nil {
			return nil, fmt.Errorf("%w: expected opdata1 envelope", types.ErrFormat)
		}
		data = decoded
	}
	if !hasOpdata1Magic(data) {
		return nil, fmt.Errorf("%w: expected opdata1 envelope", types.ErrFormat)
	}
	if len(data) < types.Opdata1MinimumSize {
		return nil, fmt.Errorf("%w: opdata1 envelope needs at least %d bytes, got %d",
			types.ErrFormat, types.Opdata1MinimumSize, len(data))
	}

	tagStart := len(data) - types.Opdata1HMACSize
	offset := types.Opdata1MagicSize
	record := &Opdata1Record{}
	record.PlaintextLength = binary.LittleEndian.Uint64(data[offset : offset+types.Opdata1LengthSize])
	offset += types.Opdata1LengthSize
	record.IV = data[offset : offset+types.Opdata1IVSize]
	offset += types.Opdata1IVSize
	record.Ciphertext = data[offset:tagStart]
	record.HMAC = data[tagStart:]
	record.Authenticated = data[:tagStart]
	return record, nil
}

func hasOpdata1Magic(data []byte) bool {
	return len(data) >= types.Opdata1MagicSize &&
		bytes.Equal(data[:types.Opdata1MagicSize], []byte(types.Opdata1Magic))
}

// verifyHMAC recomputes HMAC-SHA256(macKey, covered) and compares length first, then
// bytes in constant time.
func verifyHMAC(macKey, covered, expected []byte, what string) error {
	mac := hmac.New(sha256.New, macKey)
	mac.Write(covered)
	computed := mac.Sum(nil)
	if len(computed) != len(expected) {
		return fmt.Errorf("%w: %s tag is %d bytes, expected %d",
			types.ErrAuthentication, what, len(expected), len(computed))
	}
	if !hmac.Equal(computed, expected) {
		return fmt.Errorf("%w: HMAC did not match for %s", types.ErrAuthentication, what)
	}
	return nil
}

// DecryptOpdata1Item authenticates and decrypts a general envelope under keys and
// returns the plaintext with the front padding removed.
func DecryptOpdata1Item(blob []byte, keys KeyPair, opts ...DecryptOption) ([]byte, error) {
	o := collectOptions(opts)

	record, err := UnpackOpdata1(blob)
	if err != nil {
		return nil, err
	}
	if !o.ignoreHMAC {
		if err := verifyHMAC(keys.MACKey, record.Authenticated, record.HMAC, "opdata1 record"); err != nil {
			return nil, err
		}
	}

	decrypted, err := DecryptCBC(record.Ciphertext, keys.CipherKey, record.IV)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt opdata1 record: %w", err)
	}
	plaintext, err := FrontUnpad(decrypted, record.PlaintextLength)
	if err != nil {
		return nil, err
	}
	return plaintext, nil
}

// DecryptOpdata1Key authenticates and decrypts the fixed key envelope
//
//	iv[16] | ciphertext[64] | hmac-sha256[32]
//
// and splits the 64 decrypted bytes into an item cipher key and MAC key. There is no
// magic, no length field and no padding.
func DecryptOpdata1Key(blob []byte, keys KeyPair, opts ...DecryptOption) (KeyPair, error) {
	o := collectOptions(opts)

	if len(blob) != types.Opdata1KeyBlobSize {
		return KeyPair{}, fmt.Errorf("%w: opdata1 key envelope must be %d bytes, got %d",
			types.ErrFormat, types.Opdata1KeyBlobSize, len(blob))
	}
	iv := blob[:types.Opdata1IVSize]
	tagStart := types.Opdata1IVSize + types.Opdata1KeyCiphertextSize
	ciphertext := blob[types.Opdata1IVSize:tagStart]

	if !o.ignoreHMAC {
		if err := verifyHMAC(keys.MACKey, blob[:tagStart], blob[tagStart:], "opdata1 key"); err != nil {
			return KeyPair{}, err
		}
	}

	decrypted, err := DecryptCBC(ciphertext, keys.CipherKey, iv)
	if err != nil {
		return KeyPair{}, fmt.Errorf("failed to decrypt opdata1 key: %w", err)
	}
	defer wipe(decrypted)
	return splitKeyPair(decrypted, len(decrypted)/2)
}

// DecryptOpdata1MasterKey decrypts a general envelope holding a bare master or overview
// key, hashes it with SHA-512 and splits the digest into a cipher key and MAC key.
func DecryptOpdata1MasterKey(blob []byte, keys KeyPair, opts ...DecryptOption) (KeyPair, error) {
	bare, err := DecryptOpdata1Item(blob, keys, opts...)
	if err != nil {
		return KeyPair{}, err
	}
	defer wipe(bare)

	digest := sha512.Sum512(bare)
	defer wipe(digest[:])
	return splitKeyPair(digest[:], sha512.Size/2)
}
