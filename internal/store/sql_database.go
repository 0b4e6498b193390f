package store

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/avast/retry-go"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/migrations"
)

// ErrorClassificator inspects driver errors of one SQL dialect.
type ErrorClassificator interface {
	// Classify reports whether the failed operation may be retried.
	Classify(err error) ErrorClassification
	// IsUniqueViolation reports whether err is a unique constraint violation.
	IsUniqueViolation(err error) bool
}

// Defaults for reads that fail with a [Retryable] error: up to three
// retries, backing off from 100ms.
const (
	defaultRetryAttempts = 4
	defaultRetryDelay    = 100 * time.Millisecond
)

// DB is a SQL connection bound to its dialect.
type DB struct {
	*sql.DB
	dialect            string
	errorClassificator ErrorClassificator
	retryAttempts      uint
	retryDelay         time.Duration
	logger             *logger.Logger
}

// Migrate applies the embedded schema migrations of the connection's dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.dialect)
}

// builder returns a squirrel statement builder using the placeholder
// format of the dialect.
func (db *DB) builder() sq.StatementBuilderType {
	if db.dialect == config.DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}

	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// retry runs fn until it succeeds, fails with a non-retryable error, the
// attempts are exhausted, or ctx is done. The last error of fn is returned.
func (db *DB) retry(ctx context.Context, fn func() error) error {
	attempts := db.retryAttempts
	if attempts == 0 {
		attempts = 1
	}

	return retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(db.retryDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return db.errorClassificator.Classify(err) == Retryable
		}),
		retry.OnRetry(func(n uint, err error) {
			logger.FromContext(ctx).Warn().Err(err).Uint("attempt", n+1).Msg("retrying database operation")
		}),
	)
}
