// Package keychain turns a passphrase into the layered key material of an exported
// keychain container and decrypts its items on demand.
//
// Each Keychain runs a small state machine:
//
//	Locked -> KeysDerived -> Unlocked
//	   \__________\_________> Failed
//
// Every Unlock discards the previous chain and rebuilds it from scratch. Item calls
// require Unlocked. Once Unlocked the derived keys are immutable, so Decrypt may be
// called from many goroutines at once.
package keychain

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/deploymenttheory/go-opkeychain/internal/crypto"
	"github.com/deploymenttheory/go-opkeychain/internal/interfaces"
	"github.com/deploymenttheory/go-opkeychain/internal/parsers/agile"
	"github.com/deploymenttheory/go-opkeychain/internal/parsers/cloud"
	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// Option customises an opened keychain.
type Option func(*options)

type options struct {
	logger     zerolog.Logger
	backend    crypto.PBKDF2Backend
	ignoreHMAC bool
}

// WithLogger sets the logger used for state transitions. The default discards.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithKDFBackend selects the PBKDF2 implementation. nil keeps the default.
func WithKDFBackend(backend crypto.PBKDF2Backend) Option {
	return func(o *options) {
		if backend != nil {
			o.backend = backend
		}
	}
}

// WithIgnoreHMAC disables envelope and record tag verification on cloud keychains.
// Intended only for best-effort recovery of damaged containers.
func WithIgnoreHMAC(ignore bool) Option {
	return func(o *options) {
		o.ignoreHMAC = ignore
	}
}

func newOptions(opts []Option) options {
	o := options{
		logger:  zerolog.Nop(),
		backend: crypto.DefaultPBKDF2Backend,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// DetectFormat inspects the files under path to decide which layout it uses.
func DetectFormat(path string) (types.KeychainFormat, error) {
	if exists(filepath.Join(path, agile.DataDir, agile.KeysFile)) {
		return types.FormatAgile, nil
	}
	if exists(filepath.Join(path, cloud.ProfileDir, cloud.ProfileFile)) {
		return types.FormatCloud, nil
	}
	return "", fmt.Errorf("%w: %s has neither %s/%s nor %s/%s", types.ErrUnsupportedFormat,
		path, agile.DataDir, agile.KeysFile, cloud.ProfileDir, cloud.ProfileFile)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}

// Open detects the container layout at path and returns a locked Keychain.
func Open(path string, opts ...Option) (interfaces.Keychain, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	switch format {
	case types.FormatAgile:
		reader, err := agile.NewContainerReader(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open keychain: %w", err)
		}
		return NewAgileKeychain(reader, opts...), nil
	case types.FormatCloud:
		reader, err := cloud.NewContainerReader(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open keychain: %w", err)
		}
		return NewCloudKeychain(reader, opts...), nil
	default:
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedFormat, format)
	}
}

// stateMachine holds the unlock state shared by both variants. mu also guards the
// variant's key set, which is replaced wholesale and never mutated in place.
type stateMachine struct {
	mu     sync.RWMutex
	state  types.KeyState
	err    error
	logger zerolog.Logger
}

// init prepares a zero stateMachine in place; it holds a mutex and must not be copied.
func (m *stateMachine) init(logger zerolog.Logger, format types.KeychainFormat, path string) {
	m.state = types.StateLocked
	m.logger = logger.With().Str("format", string(format)).Str("path", path).Logger()
}

// transition must be called with mu held for writing.
func (m *stateMachine) transition(next types.KeyState, err error) {
	previous := m.state
	m.state = next
	m.err = err

	event := m.logger.Debug()
	if next == types.StateFailed {
		event = m.logger.Warn().Err(err)
	}
	event.Str("from", previous.String()).Str("to", next.String()).Msg("keychain state changed")
}

// State returns the current unlock state.
func (m *stateMachine) State() types.KeyState {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Err returns the error that stopped the last unlock attempt.
func (m *stateMachine) Err() error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.err
}

// requireUnlocked must be called with mu held.
func (m *stateMachine) requireUnlocked() error {
	if m.state != types.StateUnlocked {
		return fmt.Errorf("%w: keychain is %s", types.ErrLocked, m.state)
	}
	return nil
}
