package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/deploymenttheory/go-opkeychain/internal/types"
)

// KeychainTarget identifies the keychain a command works on
type KeychainTarget struct {
	Path       string
	Passphrase []byte
}

// Validate ensures the keychain target is usable
func (kt *KeychainTarget) Validate() error {
	if kt.Path == "" {
		return NewError(ErrCodeInvalidInput, "keychain path is required", nil)
	}
	if len(kt.Passphrase) == 0 {
		return NewError(ErrCodeInvalidInput, "passphrase is required", nil)
	}
	return nil
}

// ItemSummary is the non-secret view of an item shared by list and show output
type ItemSummary struct {
	UUID      string    `json:"uuid" yaml:"uuid"`
	Title     string    `json:"title" yaml:"title"`
	Category  string    `json:"category" yaml:"category"`
	TypeCode  string    `json:"type_code" yaml:"type_code"`
	Trashed   bool      `json:"trashed" yaml:"trashed"`
	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// NewItemSummary copies the displayable fields of an item
func NewItemSummary(item types.Item) ItemSummary {
	return ItemSummary{
		UUID:      item.UUID,
		Title:     item.Title,
		Category:  item.Category,
		TypeCode:  item.TypeCode,
		Trashed:   item.Trashed,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// CommonError represents application-level errors
type CommonError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CommonError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *CommonError) Unwrap() error {
	return e.Cause
}

// Common error codes
const (
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeBadPassphrase = "BAD_PASSPHRASE"
	ErrCodeIntegrity     = "INTEGRITY"
	ErrCodeFormat        = "FORMAT"
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeLocked        = "LOCKED"
	ErrCodeTimeout       = "TIMEOUT"
	ErrCodeInternal      = "INTERNAL"
)

// NewError creates a new CommonError
func NewError(code, message string, cause error) *CommonError {
	return &CommonError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapError classifies a core error under a CLI error code. Errors that are already
// a CommonError pass through unchanged.
func WrapError(message string, err error) error {
	if err == nil {
		return nil
	}
	var common *CommonError
	if errors.As(err, &common) {
		return err
	}
	return NewError(ErrorCode(err), message, err)
}

// ErrorCode maps the core error taxonomy to a CLI error code
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, types.ErrBadKey):
		return ErrCodeBadPassphrase
	case errors.Is(err, types.ErrAuthentication),
		errors.Is(err, types.ErrPadding),
		errors.Is(err, types.ErrInvalidCiphertextLength):
		return ErrCodeIntegrity
	case errors.Is(err, types.ErrFormat), errors.Is(err, types.ErrUnsupportedFormat):
		return ErrCodeFormat
	case errors.Is(err, types.ErrLookup):
		return ErrCodeNotFound
	case errors.Is(err, types.ErrLocked):
		return ErrCodeLocked
	case errors.Is(err, context.DeadlineExceeded):
		return ErrCodeTimeout
	default:
		return ErrCodeInternal
	}
}
