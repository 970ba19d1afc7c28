package crypto

import (
	"bytes"
	"crypto/md5"
	"fmt"

	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// SplitSalt separates an optional "Salted__" marker and 8 byte salt from a legacy
// ciphertext. salt is nil when the marker is absent.
func SplitSalt(data []byte) (salt, ciphertext []byte) {
	prefix := len(types.SaltMarker) + types.SaltSize
	if len(data) >= prefix && bytes.HasPrefix(data, []byte(types.SaltMarker)) {
		return data[len(types.SaltMarker):prefix], data[prefix:]
	}
	return nil, data
}

// DecryptSalted is the shared primitive under both legacy operations. With a salt
// marker the cipher key and IV come from the OpenSSL style PBKDF1 stream over
// (key, salt); without one the cipher key is MD5(key) and the IV is all zeros.
// The result is PKCS#5 unpadded.
func DecryptSalted(data, key []byte, keySize types.KeySize) ([]byte, error) {
	if !keySize.Valid() {
		return nil, fmt.Errorf("invalid key size class %d", keySize)
	}

	salt, ciphertext := SplitSalt(data)
	var cipherKey, iv []byte
	if salt != nil {
		cipherKey, iv = OpenSSLKeyIV(key, salt, keySize.Bytes())
	} else {
		digest := md5.Sum(key)
		cipherKey = digest[:]
		iv = make([]byte, types.CipherBlockSize)
	}
	defer wipe(cipherKey)

	decrypted, err := DecryptCBC(ciphertext, cipherKey, iv)
	if err != nil {
		return nil, err
	}
	return PKCS5Unpad(decrypted)
}

// LegacyKeyRecord is the binary input of UnwrapLevelKey.
type LegacyKeyRecord struct {
	// Data is the encrypted level key, optionally salted.
	Data []byte

	// Validation is the level key encrypted under itself.
	Validation []byte

	// Iterations is floored at types.MinimumLegacyIterations.
	Iterations int
}

// UnwrapLevelKey recovers and self-validates one legacy level key. The KEK and IV come
// from PBKDF2-SHA1 over (passphrase, salt, iterations) where salt defaults to eight
// zero bytes. The candidate key must decrypt its own validation record back to
// itself, otherwise the passphrase is wrong and ErrBadKey is returned.
func UnwrapLevelKey(backend PBKDF2Backend, record LegacyKeyRecord, passphrase []byte, keySize types.KeySize) ([]byte, error) {
	if !keySize.Valid() {
		return nil, fmt.Errorf("invalid key size class %d", keySize)
	}
	size := keySize.Bytes()

	salt, ciphertext := SplitSalt(record.Data)
	if salt == nil {
		salt = make([]byte, types.SaltSize)
	}
	iterations := record.Iterations
	if iterations < types.MinimumLegacyIterations {
		iterations = types.MinimumLegacyIterations
	}

	material, err := DeriveKey(backend, passphrase, salt, 2*size, iterations, SHA1)
	if err != nil {
		return nil, fmt.Errorf("failed to derive level key: %w", err)
	}
	defer wipe(material)

	decrypted, err := DecryptCBC(ciphertext, material[:size], material[size:])
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt level key: %w", err)
	}
	candidate, err := PKCS5Unpad(decrypted)
	if err != nil {
		// A wrong passphrase usually surfaces here first.
		return nil, fmt.Errorf("%w: %v", types.ErrBadKey, err)
	}
	if len(candidate) == 0 {
		return nil, fmt.Errorf("%w: level key is empty", types.ErrBadKey)
	}

	validated, err := DecryptSalted(record.Validation, candidate, keySize)
	if err != nil {
		wipe(candidate)
		return nil, fmt.Errorf("%w: validation record did not decrypt: %v", types.ErrBadKey, err)
	}
	if !bytes.Equal(validated, candidate) {
		wipe(candidate)
		return nil, fmt.Errorf("%w: validation did not match", types.ErrBadKey)
	}
	return candidate, nil
}

// DecryptLeafItem decrypts one legacy item payload under a validated level key.
// Legacy items carry no envelope and no per-item HMAC.
func DecryptLeafItem(data, levelKey []byte, keySize types.KeySize) ([]byte, error) {
	plaintext, err := DecryptSalted(data, levelKey, keySize)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt legacy item: %w", err)
	}
	return plaintext, nil
}
