package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/google/uuid"
)

// accountRepository is the SQL-backed implementation of [AccountStore]
// shared by the postgres and sqlite dialects.
//
// Login uniqueness is enforced by a unique index on LOWER(login); a
// violation reported by the driver becomes [ErrLoginAlreadyExists].
type accountRepository struct {
	db     *DB
	now    func() time.Time
	logger *logger.Logger
}

// NewAccountRepository constructs an [AccountStore] backed by db.
// now supplies the current time for revocation stamps and age
// computations; nil means time.Now.
func NewAccountRepository(db *DB, now func() time.Time, logger *logger.Logger) AccountStore {
	if now == nil {
		now = time.Now
	}
	logger.Debug().Str("dialect", db.dialect).Msg("creating account repository")

	return &accountRepository{
		db:     db,
		now:    now,
		logger: logger,
	}
}

func (r *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (models.Account, error) {
	return r.findOne(ctx, "*accountRepository.FindByID", idEquals(id.String()))
}

func (r *accountRepository) FindByLogin(ctx context.Context, login string) (models.Account, error) {
	return r.findOne(ctx, "*accountRepository.FindByLogin", loginEquals(login))
}

func (r *accountRepository) FindByCredentials(ctx context.Context, login, password string) (models.Account, error) {
	return r.findOne(ctx, "*accountRepository.FindByCredentials",
		loginEquals(login),
		sq.Eq{"password": password},
		sq.Eq{"revoked_on": nil},
	)
}

func (r *accountRepository) ListActive(ctx context.Context) ([]models.Account, error) {
	query, args, err := buildListActiveQuery(r.db.builder())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.query(ctx, "*accountRepository.ListActive", query, args)
}

// ListOlderThan narrows the scan in SQL to accounts born on or before the
// day after today minus age+1 years, then applies the exact month/day rule.
func (r *accountRepository) ListOlderThan(ctx context.Context, age int) ([]models.Account, error) {
	today := r.now().UTC()
	midnight := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := midnight.AddDate(-(age + 1), 0, 1)

	query, args, err := buildListBornBeforeQuery(r.db.builder(), cutoff)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	candidates, err := r.query(ctx, "*accountRepository.ListOlderThan", query, args)
	if err != nil {
		return nil, err
	}

	older := make([]models.Account, 0, len(candidates))
	for _, account := range candidates {
		if account.OlderThan(age, today) {
			older = append(older, account)
		}
	}

	return older, nil
}

func (r *accountRepository) Insert(ctx context.Context, account models.Account) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertAccountQuery(r.db.builder(), account)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return ErrLoginAlreadyExists
		}
		log.Err(err).Str("func", "*accountRepository.Insert").Msg("error inserting account")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (r *accountRepository) Update(ctx context.Context, account models.Account) error {
	query, args, err := buildUpdateAccountQuery(r.db.builder(), account)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return withTx(ctx, r.db.DB, func(ctx context.Context, tx DBTX) error {
		matched, err := r.exec(ctx, tx, "*accountRepository.Update", query, args)
		if err != nil || matched {
			return err
		}

		return r.explainMiss(ctx, tx, idEquals(account.ID.String()), ErrAccountRevoked)
	})
}

func (r *accountRepository) Delete(ctx context.Context, login, by string, hard bool) error {
	if hard {
		query, args, err := buildDeleteAccountQuery(r.db.builder(), login)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		matched, err := r.exec(ctx, r.db, "*accountRepository.Delete", query, args)
		if err != nil {
			return err
		}
		if !matched {
			return ErrAccountNotFound
		}
		return nil
	}

	query, args, err := buildRevokeAccountQuery(r.db.builder(), login, by, r.now())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return withTx(ctx, r.db.DB, func(ctx context.Context, tx DBTX) error {
		matched, err := r.exec(ctx, tx, "*accountRepository.Delete", query, args)
		if err != nil || matched {
			return err
		}

		return r.explainMiss(ctx, tx, loginEquals(login), ErrAccountRevoked)
	})
}

func (r *accountRepository) Restore(ctx context.Context, login string) error {
	query, args, err := buildRestoreAccountQuery(r.db.builder(), login)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return withTx(ctx, r.db.DB, func(ctx context.Context, tx DBTX) error {
		matched, err := r.exec(ctx, tx, "*accountRepository.Restore", query, args)
		if err != nil || matched {
			return err
		}

		return r.explainMiss(ctx, tx, loginEquals(login), ErrAccountNotRevoked)
	})
}

// exec runs a DML statement and reports whether it matched a row.
func (r *accountRepository) exec(ctx context.Context, db DBTX, fn, query string, args []any) (bool, error) {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		if r.db.errorClassificator.IsUniqueViolation(err) {
			return false, ErrLoginAlreadyExists
		}
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error executing statement")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n > 0, nil
}

// explainMiss tells apart a statement that matched nothing because the
// record is absent from one that was filtered out by its revocation state.
func (r *accountRepository) explainMiss(ctx context.Context, tx DBTX, where sq.Sqlizer, stateErr error) error {
	query, args, err := buildRevokedStateQuery(r.db.builder(), where)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var revokedOn sql.NullTime
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&revokedOn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAccountNotFound
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return stateErr
}

func (r *accountRepository) findOne(ctx context.Context, fn string, where ...sq.Sqlizer) (models.Account, error) {
	query, args, err := buildSelectAccountQuery(r.db.builder(), where...)
	if err != nil {
		return models.Account{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	accounts, err := r.query(ctx, fn, query, args)
	if err != nil {
		return models.Account{}, err
	}
	if len(accounts) == 0 {
		return models.Account{}, ErrAccountNotFound
	}

	return accounts[0], nil
}

func (r *accountRepository) query(ctx context.Context, fn, query string, args []any) ([]models.Account, error) {
	var accounts []models.Account

	err := r.db.retry(ctx, func() error {
		rows, err := r.db.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		defer rows.Close()

		accounts = accounts[:0]
		for rows.Next() {
			account, err := scanAccount(rows)
			if err != nil {
				return fmt.Errorf("%w: %w", ErrScanningRows, err)
			}
			accounts = append(accounts, account)
		}
		if err = rows.Err(); err != nil {
			return fmt.Errorf("%w: %w", ErrScanningRows, err)
		}

		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", fn).Msg("error querying accounts")
		return nil, err
	}

	if accounts == nil {
		accounts = []models.Account{}
	}

	return accounts, nil
}

func scanAccount(rows *sql.Rows) (models.Account, error) {
	var (
		account                models.Account
		gender                 int
		birthday, modOn, revOn sql.NullTime
		modBy, revBy           sql.NullString
	)

	if err := rows.Scan(
		&account.ID,
		&account.Login,
		&account.Password,
		&account.Name,
		&gender,
		&birthday,
		&account.Admin,
		&account.CreatedOn,
		&account.CreatedBy,
		&modOn,
		&modBy,
		&revOn,
		&revBy,
	); err != nil {
		return models.Account{}, err
	}

	account.Gender = models.Gender(gender)
	account.CreatedOn = account.CreatedOn.UTC()
	account.Birthday = timePtr(birthday)
	account.ModifiedOn = timePtr(modOn)
	account.ModifiedBy = stringPtr(modBy)
	account.RevokedOn = timePtr(revOn)
	account.RevokedBy = stringPtr(revBy)

	return account, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time.UTC()
	return &v
}

func stringPtr(s sql.NullString) *string {
	if !s.Valid {
		return nil
	}
	return &s.String
}
