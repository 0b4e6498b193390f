package validators

import "errors"

var (
	// ErrUnsupportedType is returned for values the validator has no rules for.
	ErrUnsupportedType = errors.New("unsupported type for validation")
	// ErrInvalidInput wraps every rule violation so callers can match it
	// with [errors.Is] regardless of the failing field.
	ErrInvalidInput = errors.New("invalid input")
)
