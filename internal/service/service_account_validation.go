package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-user-directory/internal/validators"
	"github.com/MKhiriev/go-user-directory/models"
)

// AccountValidationService rejects malformed input before it reaches the
// wrapped service. Validation errors wrap [validators.ErrInvalidInput].
type AccountValidationService struct {
	inner     AccountService
	validator validators.Validator
}

func NewAccountValidationService() AccountServiceWrapper {
	return &AccountValidationService{
		validator: validators.NewAccountValidator(),
	}
}

func (v *AccountValidationService) Wrap(wrapped AccountService) AccountService {
	v.inner = wrapped
	return v
}

func (v *AccountValidationService) Create(ctx context.Context, req models.CreateAccountRequest, creatorLogin string) (models.Account, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Account{}, fmt.Errorf("error validating new account: %w", err)
	}

	return v.inner.Create(ctx, req, creatorLogin)
}

func (v *AccountValidationService) UpdateInfo(ctx context.Context, req models.UpdateInfoRequest, modifierLogin string) (models.Account, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Account{}, fmt.Errorf("error validating account info: %w", err)
	}

	return v.inner.UpdateInfo(ctx, req, modifierLogin)
}

func (v *AccountValidationService) ChangePassword(ctx context.Context, req models.UpdatePasswordRequest, modifierLogin string, actingAsAdmin bool) (models.Account, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Account{}, fmt.Errorf("error validating password change: %w", err)
	}

	return v.inner.ChangePassword(ctx, req, modifierLogin, actingAsAdmin)
}

func (v *AccountValidationService) ChangeLogin(ctx context.Context, req models.UpdateLoginRequest, modifierLogin string, actingAsAdmin bool) (models.Account, error) {
	if err := v.validator.Validate(ctx, req); err != nil {
		return models.Account{}, fmt.Errorf("error validating login change: %w", err)
	}

	return v.inner.ChangeLogin(ctx, req, modifierLogin, actingAsAdmin)
}

func (v *AccountValidationService) ListActive(ctx context.Context) ([]models.Account, error) {
	return v.inner.ListActive(ctx)
}

func (v *AccountValidationService) GetByLogin(ctx context.Context, login string) (models.Account, error) {
	return v.inner.GetByLogin(ctx, login)
}

// Authenticate does not validate: malformed credentials must fail the same
// way as wrong ones.
func (v *AccountValidationService) Authenticate(ctx context.Context, credentials models.Credentials) (models.Account, error) {
	return v.inner.Authenticate(ctx, credentials)
}

func (v *AccountValidationService) ListOlderThan(ctx context.Context, age int) ([]models.Account, error) {
	if err := v.validator.Validate(ctx, validators.AgeQuery{Age: age}); err != nil {
		return nil, fmt.Errorf("error validating age: %w", err)
	}

	return v.inner.ListOlderThan(ctx, age)
}

func (v *AccountValidationService) Delete(ctx context.Context, login, deleterLogin string, hardDelete bool) error {
	return v.inner.Delete(ctx, login, deleterLogin, hardDelete)
}

func (v *AccountValidationService) Restore(ctx context.Context, login string) (models.Account, error) {
	return v.inner.Restore(ctx, login)
}
