package store

import "errors"

// Sentinel errors returned by [AccountStore] implementations to signal
// well-known outcomes. Callers should use [errors.Is] to match them.
var (
	// ErrAccountNotFound is returned when no account matches the lookup.
	ErrAccountNotFound = errors.New("account was not found")

	// ErrLoginAlreadyExists is returned when a write would give two accounts
	// the same login under case-insensitive comparison.
	ErrLoginAlreadyExists = errors.New("login already exists")

	// ErrAccountRevoked is returned when a write targets a soft-deleted
	// account that only an active account accepts.
	ErrAccountRevoked = errors.New("account is revoked")

	// ErrAccountNotRevoked is returned when restoring an active account.
	ErrAccountNotRevoked = errors.New("account is not revoked")
)

// Low-level database operation errors. These wrap the driver error when a
// SQL-level operation fails before any domain logic can be applied.
var (
	// ErrBuildingSQLQuery is returned when squirrel cannot render a query.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when an INSERT, UPDATE or DELETE
	// fails for a reason other than a unique violation.
	ErrExecutingStatement = errors.New("failed to execute statement")

	// ErrScanningRows is returned when scanning account rows fails.
	ErrScanningRows = errors.New("failed to scan account rows")

	// ErrUnknownDriver is returned by [NewStorages] for an unsupported
	// driver name.
	ErrUnknownDriver = errors.New("unknown storage driver")
)
