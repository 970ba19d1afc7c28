package types

import "errors"

// Error taxonomy shared by every layer. Callers match with errors.Is; producers wrap
// with fmt.Errorf("...: %w", err) to attach context.
var (
	// ErrFormat reports a structurally invalid input: bad magic, undersized envelope,
	// malformed container file.
	ErrFormat = errors.New("format error")

	// ErrAuthentication reports an HMAC mismatch on an envelope or a record.
	ErrAuthentication = errors.New("authentication failed")

	// ErrBadKey reports that a legacy level key failed self-validation, which means
	// the passphrase is wrong.
	ErrBadKey = errors.New("bad key")

	// ErrLookup reports an unresolved key identifier, security level or item.
	ErrLookup = errors.New("lookup failed")

	// ErrPadding reports malformed PKCS#5 padding.
	ErrPadding = errors.New("invalid padding")

	// ErrInvalidCiphertextLength reports ciphertext that is not block aligned.
	ErrInvalidCiphertextLength = errors.New("invalid ciphertext length")

	// ErrLocked reports an item-level call made before the key hierarchy reached Unlocked.
	ErrLocked = errors.New("keychain is locked")

	// ErrUnsupportedFormat reports a path that is neither container layout.
	ErrUnsupportedFormat = errors.New("unsupported keychain format")
)
