package crypto

import (
	"crypto/aes"
	"crypto/md5"
	"hash"
)

// PBKDF1 is the streaming key derivation of `openssl enc` (EVP_BytesToKey),
// generalised to any output length by chaining blocks:
//
//	D0 = ""
//	Di = H^rounds(D(i-1) || key || salt)
//	stream = D1 || D2 || ...
//
// Read hands out the next unread bytes of that stream, so a key and then an IV can be
// pulled without committing to the split up front. Strictly it is only PBKDF1 while the
// output fits one digest.
type PBKDF1 struct {
	newHash func() hash.Hash
	rounds  int

	keySalt []byte
	last    []byte
	stream  []byte
	offset  int
}

// PBKDF1Option customises a PBKDF1 stream.
type PBKDF1Option func(*PBKDF1)

// WithPBKDF1Hash replaces the default MD5 hash.
func WithPBKDF1Hash(newHash func() hash.Hash) PBKDF1Option {
	return func(p *PBKDF1) {
		p.newHash = newHash
	}
}

// WithPBKDF1Rounds sets how many times the hash is applied per block. The default
// of 1 differs from the usual PBKDF1 default of 2: it matches openssl's
// EVP_BytesToKey with count=1, which agilekeychain data is encrypted with. Pass 2
// for the two-round variant.
func WithPBKDF1Rounds(rounds int) PBKDF1Option {
	return func(p *PBKDF1) {
		if rounds > 0 {
			p.rounds = rounds
		}
	}
}

// NewPBKDF1 starts a derivation stream. A nil salt defaults to ceil(len(key)/2) zero
// bytes; an empty non-nil salt is used as is.
func NewPBKDF1(key, salt []byte, opts ...PBKDF1Option) *PBKDF1 {
	if salt == nil {
		salt = make([]byte, (len(key)+1)/2)
	}
	p := &PBKDF1{
		newHash: md5.New,
		rounds:  1,
		keySalt: append(append(make([]byte, 0, len(key)+len(salt)), key...), salt...),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Read fills b with the next len(b) bytes of the stream. It never fails.
func (p *PBKDF1) Read(b []byte) (int, error) {
	copy(b, p.Next(len(b)))
	return len(b), nil
}

// Next returns the next n bytes of the stream, extending the chain as needed.
func (p *PBKDF1) Next(n int) []byte {
	for len(p.stream)-p.offset < n {
		p.extend()
	}
	out := make([]byte, n)
	copy(out, p.stream[p.offset:p.offset+n])
	p.offset += n
	return out
}

func (p *PBKDF1) extend() {
	input := append(append([]byte{}, p.last...), p.keySalt...)
	for i := 0; i < p.rounds; i++ {
		h := p.newHash()
		h.Write(input)
		input = h.Sum(nil)
	}
	p.last = input
	p.stream = append(p.stream, input...)
}

// OpenSSLKeyIV derives a keySize byte cipher key followed by a one block IV from a
// single PBKDF1 stream over (key, salt), exactly as `openssl enc -md md5` does.
func OpenSSLKeyIV(key, salt []byte, keySize int) (cipherKey, iv []byte) {
	stream := NewPBKDF1(key, salt)
	cipherKey = stream.Next(keySize)
	iv = stream.Next(aes.BlockSize)
	return cipherKey, iv
}
