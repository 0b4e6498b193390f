package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
)

// Storages bundles the stores used by the service layer together with
// the connection that backs them, if any.
type Storages struct {
	AccountStore AccountStore

	db *DB
}

// NewStorages opens the store selected by cfg.Driver. SQL drivers are
// connected and migrated before the store is returned.
func NewStorages(ctx context.Context, cfg config.DB, now func() time.Time, log *logger.Logger) (*Storages, error) {
	switch cfg.Driver {
	case config.DriverMemory, "":
		return &Storages{AccountStore: NewMemoryAccountStore(now, log)}, nil
	case config.DriverPostgres, config.DriverSQLite:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}

	connect := NewConnectPostgres
	if cfg.Driver == config.DriverSQLite {
		connect = NewConnectSQLite
	}

	db, err := connect(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err = db.Migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Storages{
		AccountStore: NewAccountRepository(db, now, log),
		db:           db,
	}, nil
}

// Close releases the database connection. It is a no-op for the memory store.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}

	return s.db.Close()
}
