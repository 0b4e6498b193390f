package service

import (
	"errors"
	"fmt"
)

// Reason classifies an expected failure of an account operation.
type Reason string

const (
	ReasonNotFound           Reason = "not_found"
	ReasonConflict           Reason = "conflict"
	ReasonInvalidState       Reason = "invalid_state"
	ReasonInvalidCredentials Reason = "invalid_credentials"
)

// Failure is an expected business-rule outcome of an account operation.
// Errors that are not a *Failure are fatal.
type Failure struct {
	Reason  Reason
	Message string
}

func (f *Failure) Error() string {
	if f.Message == "" {
		return string(f.Reason)
	}

	return f.Message
}

// Is matches any failure with the same reason against a category sentinel
// such as [ErrNotFound], so errors.Is(err, ErrNotFound) works for every
// not-found failure regardless of its message.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	if !ok {
		return false
	}

	return t.Reason == f.Reason && (t.Message == "" || t.Message == f.Message)
}

// Category sentinels for [errors.Is].
var (
	ErrNotFound           = &Failure{Reason: ReasonNotFound}
	ErrConflict           = &Failure{Reason: ReasonConflict}
	ErrInvalidState       = &Failure{Reason: ReasonInvalidState}
	ErrInvalidCredentials = &Failure{Reason: ReasonInvalidCredentials}
)

// AsFailure extracts the expected failure carried by err.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	if errors.As(err, &f) {
		return f, true
	}

	return nil, false
}

func fail(reason Reason, format string, args ...any) *Failure {
	return &Failure{Reason: reason, Message: fmt.Sprintf(format, args...)}
}

func accountNotFound(login string) *Failure {
	return fail(ReasonNotFound, "account %q was not found", login)
}

func loginTaken(login string) *Failure {
	return fail(ReasonConflict, "login %q is already in use", login)
}

func accountRevoked(login string) *Failure {
	return fail(ReasonInvalidState, "account %q is deleted", login)
}

// invalidCredentials never names the login, so a wrong password and an
// unknown login are indistinguishable.
func invalidCredentials() *Failure {
	return fail(ReasonInvalidCredentials, "invalid login or password")
}

var (
	// ErrStoreUnavailable wraps every store failure that is not a
	// business-rule outcome.
	ErrStoreUnavailable = errors.New("account store unavailable")

	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
