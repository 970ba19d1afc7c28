package crypto

import (
	"fmt"

	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// KeyPair is derived key material: a cipher key and the MAC key that authenticates
// data encrypted under it. Both halves have the length of one strength class.
type KeyPair struct {
	CipherKey []byte
	MACKey    []byte
}

// splitKeyPair splits material at size bytes into a KeyPair. The halves are copies.
func splitKeyPair(material []byte, size int) (KeyPair, error) {
	if len(material) != 2*size {
		return KeyPair{}, fmt.Errorf("%w: expected %d bytes of key material, got %d",
			types.ErrFormat, 2*size, len(material))
	}
	return KeyPair{
		CipherKey: append([]byte(nil), material[:size]...),
		MACKey:    append([]byte(nil), material[size:]...),
	}, nil
}

// Wipe zeroes both halves in place.
func (k KeyPair) Wipe() {
	for i := range k.CipherKey {
		k.CipherKey[i] = 0
	}
	for i := range k.MACKey {
		k.MACKey[i] = 0
	}
}

// DeriveCloudSuperKeys turns a passphrase into the cloud super key pair:
// PBKDF2-SHA512 over (passphrase || 0x00, salt, iterations), 2*keySize bytes split in
// half. The trailing NUL is appended here and nowhere else.
func DeriveCloudSuperKeys(backend PBKDF2Backend, passphrase string, salt []byte, iterations int, keySize types.KeySize) (KeyPair, error) {
	if !keySize.Valid() {
		return KeyPair{}, fmt.Errorf("invalid key size class %d", keySize)
	}
	password := append([]byte(passphrase), 0x00)
	defer wipe(password)

	material, err := DeriveKey(backend, password, salt, 2*keySize.Bytes(), iterations, SHA512)
	if err != nil {
		return KeyPair{}, fmt.Errorf("failed to derive super keys: %w", err)
	}
	defer wipe(material)
	return splitKeyPair(material, keySize.Bytes())
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
