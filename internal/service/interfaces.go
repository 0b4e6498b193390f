package service

import (
	"context"

	"github.com/MKhiriev/go-user-directory/models"
	"github.com/google/uuid"
)

// AccountService orchestrates the account lifecycle. Callers must have
// already resolved the acting principal and passed the authorization gate
// of the operation; the principal reaches the service only as the login
// recorded in provenance fields and the actingAsAdmin flag.
//
// Expected outcomes are returned as *[Failure]; any other error is fatal.
type AccountService interface {
	Create(ctx context.Context, req models.CreateAccountRequest, creatorLogin string) (models.Account, error)
	UpdateInfo(ctx context.Context, req models.UpdateInfoRequest, modifierLogin string) (models.Account, error)
	ChangePassword(ctx context.Context, req models.UpdatePasswordRequest, modifierLogin string, actingAsAdmin bool) (models.Account, error)
	ChangeLogin(ctx context.Context, req models.UpdateLoginRequest, modifierLogin string, actingAsAdmin bool) (models.Account, error)

	ListActive(ctx context.Context) ([]models.Account, error)
	GetByLogin(ctx context.Context, login string) (models.Account, error)
	Authenticate(ctx context.Context, credentials models.Credentials) (models.Account, error)
	ListOlderThan(ctx context.Context, age int) ([]models.Account, error)

	Delete(ctx context.Context, login, deleterLogin string, hardDelete bool) error
	Restore(ctx context.Context, login string) (models.Account, error)
}

// IdentityResolver determines the acting principal from a credential
// bundle. ok is false for a missing bundle or any mismatch; err is set only
// when the store fails.
type IdentityResolver interface {
	Resolve(ctx context.Context, credentials models.Credentials) (principal models.Account, ok bool, err error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// AccountServiceWrapper defines middleware composition for AccountService.
// Implementations wrap an existing AccountService to add behavior such as
// logging or validating.
type AccountServiceWrapper interface {
	Wrap(AccountService) AccountService
}

// IDGenerator mints account identifiers.
type IDGenerator interface {
	Generate() uuid.UUID
}
