package internal

import "fmt"

// ErrorCode defines supported error codes.
type ErrorCode uint

const (
	// ErrorCodeUnknown covers unexpected faults, storage failures included.
	ErrorCodeUnknown ErrorCode = iota
	// ErrorCodeNotFound is used when a record does not exist.
	ErrorCodeNotFound
	// ErrorCodeInvalidArgument indicates user-correctable input.
	ErrorCodeInvalidArgument
	// ErrorCodeDuplicateEmail is used when registering an email already in use.
	ErrorCodeDuplicateEmail
	// ErrorCodeInvalidCredentials covers both unknown email and wrong password.
	ErrorCodeInvalidCredentials
	// ErrorCodeInvalidOrExpiredToken conflates a wrong reset token and an
	// expired one so callers can't tell which case occurred.
	ErrorCodeInvalidOrExpiredToken
	// ErrorCodeUnauthenticated is used when no valid identity was presented.
	ErrorCodeUnauthenticated
	// ErrorCodeForbidden is used when the actor's role does not allow the operation.
	ErrorCodeForbidden
	// ErrorCodeInvalidRole is used when a role outside {admin, user} is requested.
	ErrorCodeInvalidRole
)

// Error represents an error that could be wrapping another error, it includes
// a code for determining what triggered it.
type Error struct {
	orig error
	msg  string
	code ErrorCode
}

// WrapErrorf returns a wrapped error.
func WrapErrorf(orig error, code ErrorCode, format string, a ...interface{}) error {
	return &Error{
		code: code,
		orig: orig,
		msg:  fmt.Sprintf(format, a...),
	}
}

// NewErrorf instantiates a new error.
func NewErrorf(code ErrorCode, format string, a ...interface{}) error {
	return WrapErrorf(nil, code, format, a...)
}

// Error returns the message, when wrapping errors the wrapped error is returned.
func (e *Error) Error() string {
	if e.orig != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.orig)
	}

	return e.msg
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.orig
}

// Code returns the code representing this error.
func (e *Error) Code() ErrorCode {
	return e.code
}
