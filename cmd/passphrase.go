package cmd

import (
	"bytes"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/deploymenttheory/go-opkeychain/internal/config"
	"github.com/deploymenttheory/go-opkeychain/pkg/app"
)

// readPassphrase resolves the master passphrase: --passphrase-file first, then
// OPKC_PASSPHRASE, then a prompt when stdin is a terminal.
func readPassphrase() ([]byte, error) {
	if passphraseFile != "" {
		data, err := os.ReadFile(passphraseFile)
		if err != nil {
			return nil, app.NewError(app.ErrCodeInvalidInput, "failed to read passphrase file", err)
		}
		return bytes.TrimRight(data, "\r\n"), nil
	}

	if env, ok := os.LookupEnv(config.PassphraseEnv); ok && env != "" {
		return []byte(env), nil
	}

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return nil, app.NewError(app.ErrCodeInvalidInput,
			fmt.Sprintf("no passphrase given: use --passphrase-file or %s", config.PassphraseEnv), nil)
	}

	fmt.Fprint(os.Stderr, "Master passphrase: ")
	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return nil, app.NewError(app.ErrCodeInvalidInput, "failed to read passphrase", err)
	}
	return pw, nil
}

// keychainTarget pairs a keychain path with the resolved passphrase
func keychainTarget(path string) (app.KeychainTarget, error) {
	passphrase, err := readPassphrase()
	if err != nil {
		return app.KeychainTarget{}, err
	}
	return app.KeychainTarget{Path: path, Passphrase: passphrase}, nil
}
