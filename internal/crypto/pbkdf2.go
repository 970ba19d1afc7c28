package crypto

import (
	"crypto/hmac"
	"crypto/sha1"
	"crypto/sha512"
	"fmt"
	"hash"
	"sort"

	"golang.org/x/crypto/pbkdf2"
)

// HashAlgorithm selects the PRF hash of PBKDF2.
type HashAlgorithm string

const (
	SHA1   HashAlgorithm = "sha1"
	SHA512 HashAlgorithm = "sha512"
)

// New returns the hash constructor, or nil for an unsupported algorithm.
func (h HashAlgorithm) New() func() hash.Hash {
	switch h {
	case SHA1:
		return sha1.New
	case SHA512:
		return sha512.New
	default:
		return nil
	}
}

// PBKDF2Backend is one interchangeable RFC 2898 §5.2 implementation. Backends differ
// only in speed; every backend must produce identical bytes.
type PBKDF2Backend interface {
	Name() string
	Key(password, salt []byte, iterations, keyLen int, newHash func() hash.Hash) []byte
}

// Backend names accepted by configuration.
const (
	BackendAuto      = "auto"
	BackendReference = "reference"
	BackendXCrypto   = "xcrypto"
)

// ReferencePBKDF2 computes the XOR chain directly. It is slow but has no
// dependencies and is the yardstick the other backends are tested against.
type ReferencePBKDF2 struct{}

func (ReferencePBKDF2) Name() string { return BackendReference }

// Key implements F = U1 ^ U2 ^ ... ^ Uc with U1 = PRF(password, salt || be32(i)) and
// U(k+1) = PRF(password, Uk), concatenating blocks up to keyLen.
func (ReferencePBKDF2) Key(password, salt []byte, iterations, keyLen int, newHash func() hash.Hash) []byte {
	prf := hmac.New(newHash, password)
	hashLen := prf.Size()
	blockCount := (keyLen + hashLen - 1) / hashLen

	result := make([]byte, 0, blockCount*hashLen)
	u := make([]byte, hashLen)
	t := make([]byte, hashLen)
	for block := 1; block <= blockCount; block++ {
		prf.Reset()
		prf.Write(salt)
		prf.Write([]byte{byte(block >> 24), byte(block >> 16), byte(block >> 8), byte(block)})
		u = prf.Sum(u[:0])
		copy(t, u)

		for i := 1; i < iterations; i++ {
			prf.Reset()
			prf.Write(u)
			u = prf.Sum(u[:0])
			for j := range t {
				t[j] ^= u[j]
			}
		}
		result = append(result, t...)
	}
	return result[:keyLen]
}

// XCryptoPBKDF2 delegates to golang.org/x/crypto/pbkdf2.
type XCryptoPBKDF2 struct{}

func (XCryptoPBKDF2) Name() string { return BackendXCrypto }

func (XCryptoPBKDF2) Key(password, salt []byte, iterations, keyLen int, newHash func() hash.Hash) []byte {
	return pbkdf2.Key(password, salt, iterations, keyLen, newHash)
}

var pbkdf2Backends = map[string]PBKDF2Backend{
	BackendReference: ReferencePBKDF2{},
	BackendXCrypto:   XCryptoPBKDF2{},
}

// DefaultPBKDF2Backend is the backend chosen for "auto".
var DefaultPBKDF2Backend PBKDF2Backend = XCryptoPBKDF2{}

// LookupPBKDF2Backend resolves a configured backend name. The empty string and
// "auto" resolve to DefaultPBKDF2Backend.
func LookupPBKDF2Backend(name string) (PBKDF2Backend, error) {
	if name == "" || name == BackendAuto {
		return DefaultPBKDF2Backend, nil
	}
	backend, ok := pbkdf2Backends[name]
	if !ok {
		return nil, fmt.Errorf("unknown PBKDF2 backend %q (available: %v)", name, PBKDF2BackendNames())
	}
	return backend, nil
}

// PBKDF2BackendNames lists the selectable backends, "auto" first.
func PBKDF2BackendNames() []string {
	names := make([]string, 0, len(pbkdf2Backends))
	for name := range pbkdf2Backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return append([]string{BackendAuto}, names...)
}

// DeriveKey runs PBKDF2 over the given hash algorithm on backend (DefaultPBKDF2Backend
// when nil).
func DeriveKey(backend PBKDF2Backend, password, salt []byte, keyLen, iterations int, algo HashAlgorithm) ([]byte, error) {
	newHash := algo.New()
	if newHash == nil {
		return nil, fmt.Errorf("unsupported PBKDF2 hash %q", algo)
	}
	if iterations < 1 {
		return nil, fmt.Errorf("iteration count must be positive, got %d", iterations)
	}
	if keyLen < 1 {
		return nil, fmt.Errorf("key length must be positive, got %d", keyLen)
	}
	if backend == nil {
		backend = DefaultPBKDF2Backend
	}
	return backend.Key(password, salt, iterations, keyLen, newHash), nil
}
