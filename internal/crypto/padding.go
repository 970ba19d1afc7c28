package crypto

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// PKCS5Pad appends n bytes of value n so the result is a multiple of blockSize.
// A full block is appended when data is already aligned.
func PKCS5Pad(data []byte, blockSize int) ([]byte, error) {
	if blockSize <= 0 || blockSize > 255 {
		return nil, fmt.Errorf("block size must be in [1,255], got %d", blockSize)
	}
	n := blockSize - len(data)%blockSize
	padded := make([]byte, len(data), len(data)+n)
	copy(padded, data)
	for i := 0; i < n; i++ {
		padded = append(padded, byte(n))
	}
	return padded, nil
}

// PKCS5Unpad strips the trailing padding announced by the last byte.
// Empty input is returned unchanged. A pad length of zero or one exceeding the
// buffer is rejected.
func PKCS5Unpad(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return data, nil
	}
	n := int(data[len(data)-1])
	if n == 0 || n > len(data) {
		return nil, fmt.Errorf("%w: pad length %d for %d byte buffer", types.ErrPadding, n, len(data))
	}
	return data[:len(data)-n], nil
}

// FrontPad prepends blockSize - len(data)%blockSize random bytes read from random
// (crypto/rand when nil). The padding carries no length of its own; the plaintext
// length travels out-of-band in the opdata1 header.
func FrontPad(data []byte, blockSize int, random io.Reader) ([]byte, error) {
	if blockSize <= 0 {
		return nil, fmt.Errorf("block size must be positive, got %d", blockSize)
	}
	if random == nil {
		random = rand.Reader
	}
	n := blockSize - len(data)%blockSize
	padded := make([]byte, n+len(data))
	if _, err := io.ReadFull(random, padded[:n]); err != nil {
		return nil, fmt.Errorf("failed to read padding bytes: %w", err)
	}
	copy(padded[n:], data)
	return padded, nil
}

// FrontUnpad returns the trailing plaintextLength bytes of data.
// It performs no integrity check: data must already be authenticated and
// plaintextLength must come from the authenticated header.
func FrontUnpad(data []byte, plaintextLength uint64) ([]byte, error) {
	if plaintextLength > uint64(len(data)) {
		return nil, fmt.Errorf("%w: plaintext length %d exceeds %d decrypted bytes",
			types.ErrFormat, plaintextLength, len(data))
	}
	return data[uint64(len(data))-plaintextLength:], nil
}
