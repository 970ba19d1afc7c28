package app

import (
	"github.com/deploymenttheory/go-opkeychain/internal/crypto"
	"github.com/deploymenttheory/go-opkeychain/internal/interfaces"
	"github.com/deploymenttheory/go-opkeychain/internal/keychain"
)

// OpenKeychain opens the keychain named by target and unlocks it with the
// context's KDF backend and HMAC settings.
func (c *Context) OpenKeychain(target KeychainTarget) (interfaces.Keychain, error) {
	backend, err := crypto.LookupPBKDF2Backend(c.KDFBackend)
	if err != nil {
		return nil, NewError(ErrCodeInvalidInput, "invalid kdf backend", err)
	}

	kc, err := keychain.Open(target.Path,
		keychain.WithLogger(c.Logger),
		keychain.WithKDFBackend(backend),
		keychain.WithIgnoreHMAC(c.IgnoreHMAC),
	)
	if err != nil {
		return nil, WrapError("failed to open keychain", err)
	}
	if c.IgnoreHMAC {
		c.Logger.Warn().Str("path", target.Path).Msg("HMAC verification disabled")
	}

	c.Progress("Deriving keys...", 10)
	if err := kc.Unlock(target.Passphrase); err != nil {
		return nil, WrapError("failed to unlock keychain", err)
	}
	c.Progress("Unlocked", 30)
	return kc, nil
}
