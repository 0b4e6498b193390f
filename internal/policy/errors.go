package policy

import "errors"

var (
	// ErrUnauthenticated is returned when no principal could be resolved.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrForbidden is returned when the principal may not perform the operation.
	ErrForbidden = errors.New("operation is not permitted")
)
