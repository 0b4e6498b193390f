package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/models"
)

type identityResolver struct {
	accounts store.AccountStore

	logger *logger.Logger
}

func NewIdentityResolver(accounts store.AccountStore, logger *logger.Logger) IdentityResolver {
	return &identityResolver{
		accounts: accounts,
		logger:   logger,
	}
}

// Resolve matches the login case-insensitively and the password exactly.
// Revoked accounts never resolve.
func (r *identityResolver) Resolve(ctx context.Context, credentials models.Credentials) (models.Account, bool, error) {
	if credentials.Empty() {
		return models.Account{}, false, nil
	}

	account, err := r.accounts.FindByCredentials(ctx, credentials.Login, credentials.Password)
	if errors.Is(err, store.ErrAccountNotFound) {
		return models.Account{}, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*identityResolver.Resolve").Msg("error resolving principal")
		return models.Account{}, false, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}

	return account, true, nil
}
