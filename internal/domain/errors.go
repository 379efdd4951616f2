package domain

import (
	"errors"
	"fmt"
)

// ErrorKind is the failure taxonomy every caller sees.
type ErrorKind string

const (
	// KindInvalidCredentials is a rejected login. The user can correct it.
	KindInvalidCredentials ErrorKind = "invalid_credentials"

	// KindUnauthorized means the token is missing, expired or rejected (HTTP 401).
	KindUnauthorized ErrorKind = "unauthorized"

	// KindInvalidFile is a client-side file validation failure. No request was sent.
	KindInvalidFile ErrorKind = "invalid_file"

	// KindSoftFailure is a response envelope without success:true.
	KindSoftFailure ErrorKind = "soft_failure"

	// KindNetwork covers transport failures and unexpected statuses.
	KindNetwork ErrorKind = "network_error"

	// KindNotFound is a missing remote resource or cart item.
	KindNotFound ErrorKind = "not_found"

	// KindInvalidField is a rejected draft edit.
	KindInvalidField ErrorKind = "invalid_field"

	// KindInternal is anything else (storage failures, bugs).
	KindInternal ErrorKind = "internal"
)

// Error is a classified failure with the operation that produced it.
type Error struct {
	Kind    ErrorKind
	Op      string
	Status  int // HTTP status when the failure came from the remote service
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s [%s]: %s: %v", e.Op, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Op, e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewError(kind ErrorKind, op, message string, err error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Err: err}
}

// KindOf extracts the error kind, defaulting to KindInternal.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the user-facing message of a classified error.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

var (
	ErrEditInProgress   = errors.New("another edit is already in progress")
	ErrNotEditing       = errors.New("no edit in progress")
	ErrNoProfile        = errors.New("profile not loaded")
	ErrNoActiveIdentity = errors.New("no active identity")
)
