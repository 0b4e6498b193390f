package service

import (
	"context"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
)

// AccountLoggingService records the outcome and duration of every call to
// the wrapped service. Expected failures are logged at warn level and fatal
// errors at error level.
type AccountLoggingService struct {
	inner AccountService
}

func NewAccountLoggingService() AccountServiceWrapper {
	return &AccountLoggingService{}
}

func (l *AccountLoggingService) Wrap(wrapped AccountService) AccountService {
	l.inner = wrapped
	return l
}

func (l *AccountLoggingService) log(ctx context.Context, op string, start time.Time, err error) {
	log := logger.FromContext(ctx)

	switch _, expected := AsFailure(err); {
	case err == nil:
		log.Debug().Str("op", op).Dur("took", time.Since(start)).Msg("account operation succeeded")
	case expected:
		log.Warn().Str("op", op).Err(err).Dur("took", time.Since(start)).Msg("account operation rejected")
	default:
		log.Error().Str("op", op).Err(err).Dur("took", time.Since(start)).Msg("account operation failed")
	}
}

func (l *AccountLoggingService) Create(ctx context.Context, req models.CreateAccountRequest, creatorLogin string) (account models.Account, err error) {
	defer func(start time.Time) { l.log(ctx, "create", start, err) }(time.Now())
	return l.inner.Create(ctx, req, creatorLogin)
}

func (l *AccountLoggingService) UpdateInfo(ctx context.Context, req models.UpdateInfoRequest, modifierLogin string) (account models.Account, err error) {
	defer func(start time.Time) { l.log(ctx, "update-info", start, err) }(time.Now())
	return l.inner.UpdateInfo(ctx, req, modifierLogin)
}

func (l *AccountLoggingService) ChangePassword(ctx context.Context, req models.UpdatePasswordRequest, modifierLogin string, actingAsAdmin bool) (account models.Account, err error) {
	defer func(start time.Time) { l.log(ctx, "change-password", start, err) }(time.Now())
	return l.inner.ChangePassword(ctx, req, modifierLogin, actingAsAdmin)
}

func (l *AccountLoggingService) ChangeLogin(ctx context.Context, req models.UpdateLoginRequest, modifierLogin string, actingAsAdmin bool) (account models.Account, err error) {
	defer func(start time.Time) { l.log(ctx, "change-login", start, err) }(time.Now())
	return l.inner.ChangeLogin(ctx, req, modifierLogin, actingAsAdmin)
}

func (l *AccountLoggingService) ListActive(ctx context.Context) (accounts []models.Account, err error) {
	defer func(start time.Time) { l.log(ctx, "list-active", start, err) }(time.Now())
	return l.inner.ListActive(ctx)
}

func (l *AccountLoggingService) GetByLogin(ctx context.Context, login string) (account models.Account, err error) {
	defer func(start time.Time) { l.log(ctx, "get-by-login", start, err) }(time.Now())
	return l.inner.GetByLogin(ctx, login)
}

func (l *AccountLoggingService) Authenticate(ctx context.Context, credentials models.Credentials) (account models.Account, err error) {
	defer func(start time.Time) { l.log(ctx, "authenticate", start, err) }(time.Now())
	return l.inner.Authenticate(ctx, credentials)
}

func (l *AccountLoggingService) ListOlderThan(ctx context.Context, age int) (accounts []models.Account, err error) {
	defer func(start time.Time) { l.log(ctx, "list-older-than", start, err) }(time.Now())
	return l.inner.ListOlderThan(ctx, age)
}

func (l *AccountLoggingService) Delete(ctx context.Context, login, deleterLogin string, hardDelete bool) (err error) {
	defer func(start time.Time) { l.log(ctx, "delete", start, err) }(time.Now())
	return l.inner.Delete(ctx, login, deleterLogin, hardDelete)
}

func (l *AccountLoggingService) Restore(ctx context.Context, login string) (account models.Account, err error) {
	defer func(start time.Time) { l.log(ctx, "restore", start, err) }(time.Now())
	return l.inner.Restore(ctx, login)
}
