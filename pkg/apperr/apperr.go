// Package apperr is the error taxonomy shared by the normalizer, the billing
// rules and the services. Every error carries a Code that callers branch on
// and a Message that is safe to show to dispatch staff.
package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	CodeValidation Code = "validation"
	CodeMalformed  Code = "malformed_record"
	CodeNotFound   Code = "not_found"
	CodeStore      Code = "store"
	CodeNoOp       Code = "no_op"
)

// Sentinels for errors.Is. They match any *Error carrying the same code.
var (
	ErrValidation = &Error{Code: CodeValidation}
	ErrMalformed  = &Error{Code: CodeMalformed}
	ErrNotFound   = &Error{Code: CodeNotFound}
	ErrStore      = &Error{Code: CodeStore}
	ErrNoOp       = &Error{Code: CodeNoOp}
)

type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && (t.Message == "" || t.Message == e.Message)
}

func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func Wrap(err error, code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

func Validation(format string, args ...interface{}) *Error {
	return New(CodeValidation, format, args...)
}

func Malformed(format string, args ...interface{}) *Error {
	return New(CodeMalformed, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return New(CodeNotFound, format, args...)
}

func NoOp(format string, args ...interface{}) *Error {
	return New(CodeNoOp, format, args...)
}

// Store wraps a backend failure. An err that already carries a code is
// returned unchanged so normalizer and validation errors pass through.
func Store(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return Wrap(err, CodeStore, format, args...)
}

// CodeOf returns the code of the outermost *Error in err's chain, or CodeStore
// for foreign errors.
func CodeOf(err error) Code {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Code
	}
	return CodeStore
}

func HasCode(err error, code Code) bool {
	return err != nil && CodeOf(err) == code
}

// IsUserError reports whether the caller can fix err by changing its input.
func IsUserError(err error) bool {
	switch CodeOf(err) {
	case CodeValidation, CodeNotFound, CodeNoOp:
		return true
	}
	return false
}

// UserMessage renders err for staff, separating bad input from system failure.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ae *Error
	if !errors.As(err, &ae) {
		return "The system could not complete the request. Please try again later."
	}
	switch ae.Code {
	case CodeValidation:
		return "Invalid input: " + ae.Message
	case CodeNotFound:
		return "Not found: " + ae.Message
	case CodeNoOp:
		return "Nothing to do: " + ae.Message
	case CodeMalformed:
		return "The system could not complete the request: the backend returned an unreadable record (" + ae.Message + ")."
	default:
		return "The system could not complete the request: " + ae.Message + "."
	}
}
