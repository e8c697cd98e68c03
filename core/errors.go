package core

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// PermissionDeniedError is returned by mutating data-access operations when
// no valid identity exists, or when the identity's role is insufficient.
type PermissionDeniedError struct {
	Reason string
}

func (err PermissionDeniedError) Error() string {
	return "permission denied: " + err.Reason
}

var (
	ErrNotLoggedIn   = &PermissionDeniedError{Reason: "not logged in"}
	ErrAdminRequired = &PermissionDeniedError{Reason: "admin required"}

	ErrInvalidCredentials = errors.New("invalid credentials")
)

func IsPermissionDenied(err error) bool {
	var pd *PermissionDeniedError
	return errors.As(err, &pd)
}

// RateLimitedError indicates too many failed login attempts for a key within
// the lockout window.
type RateLimitedError struct {
	Key        string
	RetryAfter time.Duration
}

func (err RateLimitedError) Error() string {
	return "too many failed attempts, try again later"
}

func IsRateLimited(err error) bool {
	var rl *RateLimitedError
	return errors.As(err, &rl)
}

// RemoteStoreError wraps a remote record-store failure on a write path,
// preserving the underlying message.
type RemoteStoreError struct {
	Op     string // create | update | delete
	Entity string
	Err    error
}

func NewRemoteStoreError(op, entity string, err error) error {
	return &RemoteStoreError{Op: op, Entity: entity, Err: err}
}

func (err RemoteStoreError) Error() string {
	return fmt.Sprintf("Failed to %s %s: %v", err.Op, err.Entity, err.Err)
}

func (err RemoteStoreError) Unwrap() error { return err.Err }

func IsRemoteStoreError(err error) bool {
	var rs *RemoteStoreError
	return errors.As(err, &rs)
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
