// Package crypto composes the primitives of the standard library into the two
// keychain decryption pipelines: padding conventions, raw AES-CBC, the OpenSSL
// style legacy KDF, PBKDF2 with pluggable backends, the opdata1 envelope and the
// whole-record HMAC.
//
// Every function is a pure transformation over in-memory buffers. Nothing in this
// package logs, blocks on I/O or keeps mutable state, so all of it may be called
// from many goroutines at once.
//
// Verification always precedes decryption. No function returns plaintext together
// with a non-nil error.
package crypto
