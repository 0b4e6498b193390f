package store

import (
	"context"

	"github.com/MKhiriev/go-user-directory/models"
	"github.com/google/uuid"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// AccountStore persists [models.Account] records.
//
// Logins are compared case-insensitively everywhere. Absent records are
// reported with [ErrAccountNotFound]; any other error is an I/O failure.
type AccountStore interface {
	// FindByID returns the account with the given identifier.
	FindByID(ctx context.Context, id uuid.UUID) (models.Account, error)
	// FindByLogin returns the account holding login, active or revoked.
	FindByLogin(ctx context.Context, login string) (models.Account, error)
	// FindByCredentials returns the active account holding login whose
	// password matches exactly.
	FindByCredentials(ctx context.Context, login, password string) (models.Account, error)
	// ListActive returns every non-revoked account ordered by creation time.
	ListActive(ctx context.Context) ([]models.Account, error)
	// ListOlderThan returns every account, active or revoked, whose age
	// today exceeds age. Accounts without a birthday are excluded.
	ListOlderThan(ctx context.Context, age int) ([]models.Account, error)

	// Insert stores a new account. It returns [ErrLoginAlreadyExists] when
	// any other account holds the same login.
	Insert(ctx context.Context, account models.Account) error
	// Update overwrites the mutable and modification fields of the account
	// identified by account.ID. The revocation pair is never written.
	// It returns [ErrAccountRevoked] if the stored record is revoked and
	// [ErrLoginAlreadyExists] if the new login clashes with another account.
	Update(ctx context.Context, account models.Account) error
	// Delete soft-deletes the account holding login, stamping revocation
	// by the given login, or removes it permanently when hard is set.
	// A soft delete of a revoked account returns [ErrAccountRevoked].
	Delete(ctx context.Context, login, by string, hard bool) error
	// Restore clears the revocation pair. It returns [ErrAccountNotRevoked]
	// if the account is active.
	Restore(ctx context.Context, login string) error
}
