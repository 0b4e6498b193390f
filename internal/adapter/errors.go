package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrInvalidState        = errors.New("account is in the wrong state for this operation")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrInvalidCredentials  = errors.New("invalid login or password")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrInternalServerError = errors.New("internal server error")
)
