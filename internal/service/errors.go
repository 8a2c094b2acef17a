package service

import (
	"errors"
	"fmt"
)

// ErrorKind is the discriminated failure kind surfaced to the transport
// layer. Every workflow failure is terminal; nothing in this layer retries.
type ErrorKind int

const (
	KindNotFound ErrorKind = iota + 1
	KindAlreadyUsed
	KindInvalidCredentials
	KindConflict
	KindBadRequest
	KindForbidden
	KindInternal
)

type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func AlreadyUsed(message string) *Error {
	return &Error{Kind: KindAlreadyUsed, Message: message}
}

func InvalidCredentials(message string) *Error {
	return &Error{Kind: KindInvalidCredentials, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func BadRequest(message string) *Error {
	return &Error{Kind: KindBadRequest, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf extracts the error kind, defaulting to KindInternal for anything
// that escaped the workflow layer untyped.
func KindOf(err error) ErrorKind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}
