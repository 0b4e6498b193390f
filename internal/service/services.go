package service

import (
	"time"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/internal/store"
	"github.com/MKhiriev/go-user-directory/internal/utils"
	"github.com/MKhiriev/go-user-directory/models"
)

type Services struct {
	AccountService   AccountService
	IdentityResolver IdentityResolver
	AppInfoService   AppInfoService
}

// NewServices wires the services over storages. The account service is
// decorated as validation → logging → core.
func NewServices(storages *store.Storages, cfg config.App, build models.AppBuildInfo, now func() time.Time, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg, build, logger)
	if err != nil {
		return nil, err
	}

	resolver := NewIdentityResolver(storages.AccountStore, logger)

	var accountService AccountService = NewAccountService(storages.AccountStore, resolver, utils.NewUUIDGenerator(), now, logger)
	accountService = NewAccountLoggingService().Wrap(accountService)
	accountService = NewAccountValidationService().Wrap(accountService)

	return &Services{
		AccountService:   accountService,
		IdentityResolver: resolver,
		AppInfoService:   appInfoService,
	}, nil
}
