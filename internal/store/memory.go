// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/google/uuid"
	"golang.org/x/text/cases"
)

// memoryAccountStore is the in-process implementation of [AccountStore].
//
// All state is guarded by mu. Accounts are keyed by ID; byLogin maps the
// case-folded login to the ID and doubles as the uniqueness index, so the
// uniqueness check and the write always happen under one write lock.
type memoryAccountStore struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]models.Account
	byLogin  map[string]uuid.UUID
	fold     cases.Caser
	now      func() time.Time
	logger   *logger.Logger
}

// NewMemoryAccountStore constructs an empty in-memory [AccountStore].
// now supplies the current time for age computations; nil means time.Now.
func NewMemoryAccountStore(now func() time.Time, logger *logger.Logger) AccountStore {
	if now == nil {
		now = time.Now
	}
	logger.Debug().Msg("creating memory account store")

	return &memoryAccountStore{
		accounts: make(map[uuid.UUID]models.Account),
		byLogin:  make(map[string]uuid.UUID),
		fold:     cases.Fold(),
		now:      now,
		logger:   logger,
	}
}

func (s *memoryAccountStore) key(login string) string {
	return s.fold.String(login)
}

func (s *memoryAccountStore) FindByID(_ context.Context, id uuid.UUID) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}

	return account, nil
}

func (s *memoryAccountStore) FindByLogin(_ context.Context, login string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.findByLogin(login)
}

// findByLogin expects the caller to hold mu.
func (s *memoryAccountStore) findByLogin(login string) (models.Account, error) {
	id, ok := s.byLogin[s.key(login)]
	if !ok {
		return models.Account{}, ErrAccountNotFound
	}

	return s.accounts[id], nil
}

func (s *memoryAccountStore) FindByCredentials(_ context.Context, login, password string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, err := s.findByLogin(login)
	if err != nil {
		return models.Account{}, err
	}
	if account.IsRevoked() || account.Password != password {
		return models.Account{}, ErrAccountNotFound
	}

	return account, nil
}

func (s *memoryAccountStore) ListActive(_ context.Context) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := make([]models.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		if account.IsActive() {
			active = append(active, account)
		}
	}
	sortByCreation(active)

	return active, nil
}

func (s *memoryAccountStore) ListOlderThan(_ context.Context, age int) ([]models.Account, error) {
	today := s.now().UTC()

	s.mu.RLock()
	defer s.mu.RUnlock()

	older := make([]models.Account, 0)
	for _, account := range s.accounts {
		if account.OlderThan(age, today) {
			older = append(older, account)
		}
	}
	sortByCreation(older)

	return older, nil
}

func (s *memoryAccountStore) Insert(ctx context.Context, account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := s.key(account.Login)
	if _, taken := s.byLogin[key]; taken {
		return ErrLoginAlreadyExists
	}

	s.accounts[account.ID] = account
	s.byLogin[key] = account.ID
	logger.FromContext(ctx).Debug().Str("func", "*memoryAccountStore.Insert").Str("login", account.Login).Msg("account inserted")

	return nil
}

func (s *memoryAccountStore) Update(ctx context.Context, account models.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[account.ID]
	if !ok {
		return ErrAccountNotFound
	}
	if stored.IsRevoked() {
		return ErrAccountRevoked
	}

	oldKey, newKey := s.key(stored.Login), s.key(account.Login)
	if oldKey != newKey {
		if _, taken := s.byLogin[newKey]; taken {
			return ErrLoginAlreadyExists
		}
		delete(s.byLogin, oldKey)
		s.byLogin[newKey] = account.ID
	}

	stored.Login = account.Login
	stored.Password = account.Password
	stored.Name = account.Name
	stored.Gender = account.Gender
	stored.Birthday = account.Birthday
	stored.Admin = account.Admin
	stored.ModifiedOn = account.ModifiedOn
	stored.ModifiedBy = account.ModifiedBy
	s.accounts[account.ID] = stored
	logger.FromContext(ctx).Debug().Str("func", "*memoryAccountStore.Update").Str("login", stored.Login).Msg("account updated")

	return nil
}

func (s *memoryAccountStore) Delete(ctx context.Context, login, by string, hard bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.findByLogin(login)
	if err != nil {
		return err
	}

	if hard {
		delete(s.accounts, account.ID)
		delete(s.byLogin, s.key(account.Login))
		logger.FromContext(ctx).Debug().Str("func", "*memoryAccountStore.Delete").Str("login", account.Login).Msg("account removed")
		return nil
	}

	if account.IsRevoked() {
		return ErrAccountRevoked
	}
	account.StampRevocation(by, s.now())
	s.accounts[account.ID] = account

	return nil
}

func (s *memoryAccountStore) Restore(_ context.Context, login string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, err := s.findByLogin(login)
	if err != nil {
		return err
	}
	if account.IsActive() {
		return ErrAccountNotRevoked
	}

	account.ClearRevocation()
	s.accounts[account.ID] = account

	return nil
}

func sortByCreation(accounts []models.Account) {
	slices.SortStableFunc(accounts, func(a, b models.Account) int {
		if c := a.CreatedOn.Compare(b.CreatedOn); c != 0 {
			return c
		}
		return slices.Compare(a.ID[:], b.ID[:])
	})
}
