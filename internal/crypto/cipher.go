package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// DecryptCBC performs raw AES-CBC decryption with an explicit key and IV.
// No padding is removed here; the two container formats strip different padding
// conventions after this step.
func DecryptCBC(ciphertext, key, iv []byte) ([]byte, error) {
	if len(ciphertext)%aes.BlockSize != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a multiple of %d",
			types.ErrInvalidCiphertextLength, len(ciphertext), aes.BlockSize)
	}
	if len(iv) != aes.BlockSize {
		return nil, fmt.Errorf("invalid IV length: expected %d bytes, got %d", aes.BlockSize, len(iv))
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create AES cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)
	return plaintext, nil
}
