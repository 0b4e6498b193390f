// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the Go client of the user directory REST API.
//
// [DirectoryClient] covers every route. Non-2xx responses are mapped back
// to the sentinel errors of errors.go so callers can use [errors.Is]
// without knowing HTTP status codes (e.g. [ErrConflict] for 409,
// [ErrInvalidState] for a 400 carrying the invalid_state code).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-user-directory/models"
)

// DirectoryClient talks to a user directory server on behalf of one
// principal.
type DirectoryClient interface {
	// SetCredentials stores the Basic credentials attached to every gated
	// request. An empty login clears them.
	SetCredentials(login, password string)

	// SetLanguage sets the Accept-Language sent with every request, which
	// selects the language of gender labels in returned views.
	SetLanguage(lang string)

	Version(ctx context.Context) (string, error)
	Authenticate(ctx context.Context, credentials models.Credentials) (models.AccountFullView, error)

	Create(ctx context.Context, req models.CreateAccountRequest) (models.AccountFullView, error)
	UpdateInfo(ctx context.Context, req models.UpdateInfoRequest) (models.AccountFullView, error)
	ChangePassword(ctx context.Context, req models.UpdatePasswordRequest) (models.AccountFullView, error)
	ChangeLogin(ctx context.Context, req models.UpdateLoginRequest) (models.AccountFullView, error)

	ListActive(ctx context.Context) ([]models.AccountView, error)
	GetByLogin(ctx context.Context, login string) (models.AccountFullView, error)
	ListOlderThan(ctx context.Context, age int) ([]models.AccountView, error)

	Delete(ctx context.Context, login string, hardDelete bool) error
	Restore(ctx context.Context, login string) (models.AccountFullView, error)
}
