package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
)

// SeedAdministrator creates the bootstrap administrator unless an account
// with its login already exists. The administrator is recorded as its own
// creator.
func SeedAdministrator(ctx context.Context, accounts AccountService, admin config.Admin, log *logger.Logger) error {
	name := admin.Name
	if name == "" {
		name = admin.Login
	}

	_, err := accounts.Create(ctx, models.CreateAccountRequest{
		Login:    admin.Login,
		Password: admin.Password,
		Name:     name,
		Gender:   models.GenderUnspecified,
		Admin:    true,
	}, admin.Login)

	switch {
	case err == nil:
		log.Info().Str("login", admin.Login).Msg("bootstrap administrator created")
		return nil
	case errors.Is(err, ErrConflict):
		log.Debug().Str("login", admin.Login).Msg("bootstrap administrator already exists")
		return nil
	default:
		return fmt.Errorf("error seeding administrator: %w", err)
	}
}
