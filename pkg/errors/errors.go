// Package errors defines the coded errors dtovl returns. Every failure of a
// ledger or command operation carries an ErrorCode that tests and the CLI
// exit-code mapping can rely on, plus details such as the entry name, the
// overlay identifier, the kernel status or a path.
package errors

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a class of failure.
type ErrorCode string

const (
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Ledger entries under the overlay group
	ErrMalformedEntry      ErrorCode = "MALFORMED_ENTRY"
	ErrEntryExists         ErrorCode = "ENTRY_EXISTS"
	ErrDirCreate           ErrorCode = "DIR_CREATE"
	ErrControlFilesMissing ErrorCode = "CONTROL_FILES_MISSING"
	ErrOverlayNotFound     ErrorCode = "OVERLAY_NOT_FOUND"
	ErrNotADirectory       ErrorCode = "NOT_A_DIRECTORY"
	ErrRemovalFailed       ErrorCode = "REMOVAL_FAILED"

	// Handing overlays to the kernel
	ErrBlobNotFound ErrorCode = "BLOB_NOT_FOUND"
	ErrRejected     ErrorCode = "REJECTED"

	// Plain file I/O
	ErrFileAccess ErrorCode = "FILE_ACCESS"
	ErrFileWrite  ErrorCode = "FILE_WRITE"
)

// DtovlError is a coded error with optional details and cause.
type DtovlError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

func (e *DtovlError) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
}

func (e *DtovlError) Unwrap() error {
	return e.Wrapped
}

// Is matches any DtovlError with the same code, so errors.Is can test for a
// class of failure.
func (e *DtovlError) Is(target error) bool {
	var t *DtovlError
	return errors.As(target, &t) && t.Code == e.Code
}

// WithDetail records key on the error and returns it for chaining.
func (e *DtovlError) WithDetail(key string, value interface{}) *DtovlError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func build(cause error, code ErrorCode, message string) *DtovlError {
	return &DtovlError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: cause,
	}
}

// New returns an error with code and message.
func New(code ErrorCode, message string) *DtovlError {
	return build(nil, code, message)
}

// Newf is New with a formatted message.
func Newf(code ErrorCode, format string, args ...interface{}) *DtovlError {
	return build(nil, code, fmt.Sprintf(format, args...))
}

// Wrap attaches code and message to err. It returns nil for a nil err.
func Wrap(err error, code ErrorCode, message string) *DtovlError {
	if err == nil {
		return nil
	}
	return build(err, code, message)
}

// Wrapf is Wrap with a formatted message.
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DtovlError {
	if err == nil {
		return nil
	}
	return build(err, code, fmt.Sprintf(format, args...))
}

// IsErrorCode reports whether err is, or wraps, a DtovlError with code.
func IsErrorCode(err error, code ErrorCode) bool {
	e := asDtovlError(err)
	return e != nil && e.Code == code
}

// GetErrorCode returns the code of the outermost DtovlError in err's chain,
// or ErrUnknown.
func GetErrorCode(err error) ErrorCode {
	if e := asDtovlError(err); e != nil {
		return e.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details of the outermost DtovlError in err's
// chain, or nil.
func GetErrorDetails(err error) map[string]interface{} {
	if e := asDtovlError(err); e != nil {
		return e.Details
	}
	return nil
}

func asDtovlError(err error) *DtovlError {
	var e *DtovlError
	if errors.As(err, &e) {
		return e
	}
	return nil
}
