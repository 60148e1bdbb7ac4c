// Package apperr carries stable error codes from services to controllers.
// Services attach a Code; controllers switch on CodeOf to pick a status.
package apperr

import "errors"

type Code string

type Error struct {
	code  Code
	cause error
}

func New(c Code) error { return &Error{code: c} }

func Wrap(c Code, cause error) error { return &Error{code: c, cause: cause} }

func (e *Error) Error() string {
	if e.cause != nil {
		return string(e.code) + ": " + e.cause.Error()
	}
	return string(e.code)
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Code() Code { return e.code }

// CodeOf extracts the code, or "" for plain errors (controllers treat those
// as internal).
func CodeOf(err error) Code {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.code
	}
	return ""
}
