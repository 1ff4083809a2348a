// Package errors provides structured error types for gfagraph.
//
// Every failure raised while decoding fields, building records or maintaining
// the reference graph carries a machine-readable [Code]. Callers decide
// whether to abort a whole-file parse on the first error or to collect and
// continue; nothing in the library recovers from these errors internally.
//
// # Error Codes
//
// Codes follow the error kinds of the record model:
//   - FORMAT_ERROR: a token is malformed for its declared datatype
//   - FIELD_COUNT: fewer positional tokens than the record requires
//   - UNKNOWN_RECORD_TYPE: unrecognized record-type marker
//   - TYPE_MISMATCH: a value does not validate against its datatype
//   - INCONSISTENCY: conflicting datatypes or record categories
//   - DUPLICATE_NAME: a name is already claimed by a real record
//   - UNSUPPORTED: the operation is forbidden for the record variant
//   - DANGLING_REFERENCE: placeholders remain after the dataset is complete
//
// # Usage
//
//	err := errors.New(errors.ErrCodeFormat, "invalid orientation %q", tok)
//	if errors.Is(err, errors.ErrCodeFormat) {
//	    // Handle malformed input
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeFormat, origErr, "field %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the record model.
const (
	// Decoding and construction errors
	ErrCodeFormat            Code = "FORMAT_ERROR"
	ErrCodeFieldCount        Code = "FIELD_COUNT"
	ErrCodeUnknownRecordType Code = "UNKNOWN_RECORD_TYPE"
	ErrCodeTypeMismatch      Code = "TYPE_MISMATCH"
	ErrCodeValue             Code = "VALUE_ERROR"

	// Consistency errors
	ErrCodeInconsistency     Code = "INCONSISTENCY"
	ErrCodeDuplicateName     Code = "DUPLICATE_NAME"
	ErrCodeDanglingReference Code = "DANGLING_REFERENCE"

	// Caller errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeUnsupported  Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// coder is implemented by typed errors that report their own code.
type coder interface {
	ErrorCode() Code
}

// Is reports whether any error in err's chain carries the given code.
func Is(err error, code Code) bool {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			if e.Code == code {
				return true
			}
		case coder:
			if e.ErrorCode() == code {
				return true
			}
		}
		err = errors.Unwrap(err)
	}
	return false
}

// GetCode extracts the outermost error code from an error, if available.
// Returns empty string if no error in the chain carries a code.
func GetCode(err error) Code {
	for err != nil {
		switch e := err.(type) {
		case *Error:
			return e.Code
		case coder:
			return e.ErrorCode()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// TypeMismatchError reports a value that does not conform to the datatype
// expected for a field.
type TypeMismatchError struct {
	Field    string // Field or tag name; empty when validating a bare value
	Expected string // Expected datatype
	Actual   string // Description of the offending value
	Cause    error  // Shape violation detail (optional)
}

// Error implements the error interface.
func (e *TypeMismatchError) Error() string {
	field := e.Field
	if field == "" {
		field = "<value>"
	}
	msg := fmt.Sprintf("%s: field %s: expected %s, got %s", ErrCodeTypeMismatch, field, e.Expected, e.Actual)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the shape violation detail.
func (e *TypeMismatchError) Unwrap() error { return e.Cause }

// ErrorCode returns the error code for this error type.
func (e *TypeMismatchError) ErrorCode() Code { return ErrCodeTypeMismatch }
