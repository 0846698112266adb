package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents the discriminated kind of a failure
type ErrorCode string

const (
	// Key material and encoding errors
	ErrCodeInvalidEncoding ErrorCode = "invalid_encoding"
	ErrCodeInvalidFormat   ErrorCode = "invalid_format"
	ErrCodeMalformedArray  ErrorCode = "malformed_array"

	// Address derivation errors
	ErrCodeSeedTooLong         ErrorCode = "seed_too_long"
	ErrCodeMaxSeedsExceeded    ErrorCode = "max_seeds_exceeded"
	ErrCodeNoValidAddressFound ErrorCode = "no_valid_address_found"
	ErrCodeInvalidSeeds        ErrorCode = "invalid_seeds"

	// Transaction errors
	ErrCodeInsufficientBalance ErrorCode = "insufficient_balance"
	ErrCodeMissingSignature    ErrorCode = "missing_signature"
	ErrCodeInvalidTransaction  ErrorCode = "invalid_transaction"

	// Ledger service errors
	ErrCodeCheckpointExpired   ErrorCode = "checkpoint_expired"
	ErrCodeSubmissionFailed    ErrorCode = "submission_failed"
	ErrCodeLedgerRequestFailed ErrorCode = "ledger_request_failed"

	// Configuration errors
	ErrCodeConfigurationMissing ErrorCode = "configuration_missing"
)

// Error message constants
const (
	ErrMsgInvalidEncoding      = "Text is not valid base-58"
	ErrMsgInvalidFormat        = "Value is not a byte in [0,255]"
	ErrMsgMalformedArray       = "Byte array brackets are unbalanced"
	ErrMsgSeedTooLong          = "Seed exceeds maximum length of %d bytes"
	ErrMsgMaxSeedsExceeded     = "Too many seeds, maximum is %d"
	ErrMsgNoValidAddressFound  = "Unable to find a program address off the curve"
	ErrMsgInvalidSeeds         = "Seeds derive an address on the ed25519 curve"
	ErrMsgInsufficientBalance  = "Balance %d does not cover fee %d"
	ErrMsgMissingSignature     = "Missing signature for %s"
	ErrMsgCheckpointExpired    = "Recent blockhash expired before the transaction landed"
	ErrMsgConfigurationMissing = "Required option %s is not set"
)

// Error is the single error type surfaced by every package of this module
type Error struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	// Name of the missing option for configuration_missing
	Name string `json:"name,omitempty"`
	// Reason reported by the ledger service for submission_failed
	Reason string `json:"reason,omitempty"`

	cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = string(e.Code)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, msg, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, msg)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports a match on error kind, so sentinels below match any error of the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is comparisons
var (
	ErrInvalidEncoding      = &Error{Code: ErrCodeInvalidEncoding}
	ErrInvalidFormat        = &Error{Code: ErrCodeInvalidFormat}
	ErrMalformedArray       = &Error{Code: ErrCodeMalformedArray}
	ErrSeedTooLong          = &Error{Code: ErrCodeSeedTooLong}
	ErrMaxSeedsExceeded     = &Error{Code: ErrCodeMaxSeedsExceeded}
	ErrNoValidAddressFound  = &Error{Code: ErrCodeNoValidAddressFound}
	ErrInvalidSeeds         = &Error{Code: ErrCodeInvalidSeeds}
	ErrInsufficientBalance  = &Error{Code: ErrCodeInsufficientBalance}
	ErrMissingSignature     = &Error{Code: ErrCodeMissingSignature}
	ErrInvalidTransaction   = &Error{Code: ErrCodeInvalidTransaction}
	ErrCheckpointExpired    = &Error{Code: ErrCodeCheckpointExpired}
	ErrSubmissionFailed     = &Error{Code: ErrCodeSubmissionFailed}
	ErrLedgerRequestFailed  = &Error{Code: ErrCodeLedgerRequestFailed}
	ErrConfigurationMissing = &Error{Code: ErrCodeConfigurationMissing}
)

// NewError creates a new Error with a formatted message
func NewError(code ErrorCode, format string, args ...interface{}) error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap attaches a kind and message to an underlying cause
func Wrap(code ErrorCode, cause error, format string, args ...interface{}) error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		cause:   cause,
	}
}

func ConfigurationMissing(name string) error {
	return &Error{
		Code:    ErrCodeConfigurationMissing,
		Message: fmt.Sprintf(ErrMsgConfigurationMissing, name),
		Name:    name,
	}
}

func SubmissionFailed(reason string, cause error) error {
	return &Error{
		Code:    ErrCodeSubmissionFailed,
		Message: "Ledger service rejected the transaction",
		Reason:  reason,
		cause:   cause,
	}
}

func CheckpointExpired(cause error) error {
	return &Error{
		Code:    ErrCodeCheckpointExpired,
		Message: ErrMsgCheckpointExpired,
		cause:   cause,
	}
}

// CodeOf returns the code of the first *Error in the chain, or "" if none
func CodeOf(err error) ErrorCode {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Retryable reports whether a caller may retry with a fresh checkpoint and re-quoted draft
func Retryable(err error) bool {
	switch CodeOf(err) {
	case ErrCodeCheckpointExpired, ErrCodeSubmissionFailed:
		return true
	}
	return false
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
