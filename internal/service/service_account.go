// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/models"
)

type accountService struct {
	accounts store.AccountStore
	resolver IdentityResolver
	ids      IDGenerator
	now      func() time.Time

	logger *logger.Logger
}

// NewAccountService constructs the account lifecycle service. now supplies
// provenance timestamps; nil means time.Now.
func NewAccountService(accounts store.AccountStore, resolver IdentityResolver, ids IDGenerator, now func() time.Time, logger *logger.Logger) AccountService {
	if now == nil {
		now = time.Now
	}

	return &accountService{
		accounts: accounts,
		resolver: resolver,
		ids:      ids,
		now:      now,
		logger:   logger,
	}
}

func (s *accountService) Create(ctx context.Context, req models.CreateAccountRequest, creatorLogin string) (models.Account, error) {
	if _, err := s.findByLogin(ctx, req.Login); err == nil {
		return models.Account{}, loginTaken(req.Login)
	} else if !errors.Is(err, ErrNotFound) {
		return models.Account{}, err
	}

	account := models.Account{
		ID:        s.ids.Generate(),
		Login:     req.Login,
		Password:  req.Password,
		Name:      req.Name,
		Gender:    req.Gender,
		Birthday:  req.Birthday.TimePtr(),
		Admin:     req.Admin,
		CreatedOn: s.now(),
		CreatedBy: creatorLogin,
	}

	if err := s.accounts.Insert(ctx, account); err != nil {
		return models.Account{}, s.storeFailure(ctx, "Create", err, req.Login)
	}
	logger.FromContext(ctx).Info().Str("login", account.Login).Str("by", creatorLogin).Msg("account created")

	return account, nil
}

func (s *accountService) UpdateInfo(ctx context.Context, req models.UpdateInfoRequest, modifierLogin string) (models.Account, error) {
	account, err := s.findByLogin(ctx, req.Login)
	if err != nil {
		return models.Account{}, err
	}
	if account.IsRevoked() {
		return models.Account{}, accountRevoked(account.Login)
	}

	account.Name = req.Name
	account.Gender = req.Gender
	account.Birthday = req.Birthday.TimePtr()

	return s.save(ctx, "UpdateInfo", account, modifierLogin)
}

func (s *accountService) ChangePassword(ctx context.Context, req models.UpdatePasswordRequest, modifierLogin string, actingAsAdmin bool) (models.Account, error) {
	account, err := s.resolveTarget(ctx, req.Login, req.OldPassword, actingAsAdmin)
	if err != nil {
		return models.Account{}, err
	}
	if account.IsRevoked() {
		return models.Account{}, accountRevoked(account.Login)
	}

	account.Password = req.NewPassword

	return s.save(ctx, "ChangePassword", account, modifierLogin)
}

func (s *accountService) ChangeLogin(ctx context.Context, req models.UpdateLoginRequest, modifierLogin string, actingAsAdmin bool) (models.Account, error) {
	account, err := s.resolveTarget(ctx, req.OldLogin, req.Password, actingAsAdmin)
	if err != nil {
		return models.Account{}, err
	}
	if account.IsRevoked() {
		return models.Account{}, accountRevoked(account.Login)
	}

	holder, err := s.findByLogin(ctx, req.NewLogin)
	switch {
	case err == nil && holder.ID != account.ID:
		return models.Account{}, loginTaken(req.NewLogin)
	case err != nil && !errors.Is(err, ErrNotFound):
		return models.Account{}, err
	}

	account.Login = req.NewLogin

	return s.save(ctx, "ChangeLogin", account, modifierLogin)
}

func (s *accountService) ListActive(ctx context.Context) ([]models.Account, error) {
	accounts, err := s.accounts.ListActive(ctx)
	if err != nil {
		return nil, s.storeFailure(ctx, "ListActive", err, "")
	}

	return accounts, nil
}

func (s *accountService) GetByLogin(ctx context.Context, login string) (models.Account, error) {
	return s.findByLogin(ctx, login)
}

func (s *accountService) Authenticate(ctx context.Context, credentials models.Credentials) (models.Account, error) {
	account, ok, err := s.resolver.Resolve(ctx, credentials)
	if err != nil {
		return models.Account{}, err
	}
	if !ok {
		return models.Account{}, invalidCredentials()
	}

	return account, nil
}

func (s *accountService) ListOlderThan(ctx context.Context, age int) ([]models.Account, error) {
	accounts, err := s.accounts.ListOlderThan(ctx, age)
	if err != nil {
		return nil, s.storeFailure(ctx, "ListOlderThan", err, "")
	}

	return accounts, nil
}

func (s *accountService) Delete(ctx context.Context, login, deleterLogin string, hardDelete bool) error {
	account, err := s.findByLogin(ctx, login)
	if err != nil {
		return err
	}
	if !hardDelete && account.IsRevoked() {
		return fail(ReasonInvalidState, "account %q is already deleted", account.Login)
	}

	if err = s.accounts.Delete(ctx, account.Login, deleterLogin, hardDelete); err != nil {
		return s.storeFailure(ctx, "Delete", err, account.Login)
	}
	logger.FromContext(ctx).Info().
		Str("login", account.Login).
		Str("by", deleterLogin).
		Bool("hard", hardDelete).
		Msg("account deleted")

	return nil
}

func (s *accountService) Restore(ctx context.Context, login string) (models.Account, error) {
	account, err := s.findByLogin(ctx, login)
	if err != nil {
		return models.Account{}, err
	}
	if account.IsActive() {
		return models.Account{}, fail(ReasonInvalidState, "account %q is not deleted", account.Login)
	}

	if err = s.accounts.Restore(ctx, account.Login); err != nil {
		return models.Account{}, s.storeFailure(ctx, "Restore", err, account.Login)
	}
	account.ClearRevocation()
	logger.FromContext(ctx).Info().Str("login", account.Login).Msg("account restored")

	return account, nil
}

// resolveTarget finds the account a credential change applies to.
// Administrators address it by login alone; everyone else must prove the
// current password, and any mismatch is reported as invalid credentials.
func (s *accountService) resolveTarget(ctx context.Context, login, password string, actingAsAdmin bool) (models.Account, error) {
	if actingAsAdmin {
		return s.findByLogin(ctx, login)
	}

	account, ok, err := s.resolver.Resolve(ctx, models.Credentials{Login: login, Password: password})
	if err != nil {
		return models.Account{}, err
	}
	if !ok {
		return models.Account{}, invalidCredentials()
	}

	return account, nil
}

func (s *accountService) findByLogin(ctx context.Context, login string) (models.Account, error) {
	account, err := s.accounts.FindByLogin(ctx, login)
	if err != nil {
		return models.Account{}, s.storeFailure(ctx, "FindByLogin", err, login)
	}

	return account, nil
}

// save stamps modification provenance and persists the account.
func (s *accountService) save(ctx context.Context, op string, account models.Account, modifierLogin string) (models.Account, error) {
	account.StampModification(modifierLogin, s.now())

	if err := s.accounts.Update(ctx, account); err != nil {
		return models.Account{}, s.storeFailure(ctx, op, err, account.Login)
	}
	logger.FromContext(ctx).Info().Str("login", account.Login).Str("by", modifierLogin).Str("op", op).Msg("account modified")

	return account, nil
}

// storeFailure maps store sentinels onto expected failures and wraps
// everything else as fatal.
func (s *accountService) storeFailure(ctx context.Context, op string, err error, login string) error {
	switch {
	case errors.Is(err, store.ErrAccountNotFound):
		return accountNotFound(login)
	case errors.Is(err, store.ErrLoginAlreadyExists):
		return loginTaken(login)
	case errors.Is(err, store.ErrAccountRevoked):
		return accountRevoked(login)
	case errors.Is(err, store.ErrAccountNotRevoked):
		return fail(ReasonInvalidState, "account %q is not deleted", login)
	}

	logger.FromContext(ctx).Err(err).Str("func", "*accountService."+op).Msg("account store failure")
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
