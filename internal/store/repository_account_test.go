package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/MKhiriev/go-user-directory/models"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAccountRepo(t *testing.T) (*accountRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	l := logger.Nop()
	repo := &accountRepository{
		db: &DB{
			DB:                 db,
			dialect:            config.DriverPostgres,
			errorClassificator: NewPostgresErrorClassifier(),
			logger:             l,
		},
		now:    func() time.Time { return fixedNow },
		logger: l,
	}
	return repo, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func accountRows(accounts ...models.Account) *sqlmock.Rows {
	rows := sqlmock.NewRows(accountColumns)
	for _, a := range accounts {
		var birthday, modOn, revOn, modBy, revBy driver.Value
		if a.Birthday != nil {
			birthday = *a.Birthday
		}
		if a.ModifiedOn != nil {
			modOn, modBy = *a.ModifiedOn, *a.ModifiedBy
		}
		if a.RevokedOn != nil {
			revOn, revBy = *a.RevokedOn, *a.RevokedBy
		}
		rows.AddRow(a.ID.String(), a.Login, a.Password, a.Name, int64(a.Gender), birthday,
			a.Admin, a.CreatedOn, a.CreatedBy, modOn, modBy, revOn, revBy)
	}
	return rows
}

var anyAccountArgs = func() []driver.Value {
	args := make([]driver.Value, len(accountColumns))
	for i := range args {
		args[i] = sqlmock.AnyArg()
	}
	return args
}()

// ─────────────────────────────────────────────────────────────
// reads
// ─────────────────────────────────────────────────────────────

func TestAccountRepository_FindByLogin_Success(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	bob := newAccount("Bob", fixedNow)
	bob.Birthday = date(1990, time.May, 1)
	bob.StampRevocation("alice", fixedNow)

	mock.ExpectQuery(regexp.QuoteMeta("FROM accounts WHERE LOWER(login) = LOWER($1)")).
		WithArgs("bob").
		WillReturnRows(accountRows(bob))

	got, err := repo.FindByLogin(context.Background(), "bob")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)
	assert.Equal(t, "Bob", got.Login)
	assert.Equal(t, bob.Birthday, got.Birthday)
	assert.Nil(t, got.ModifiedOn)
	require.NotNil(t, got.RevokedBy)
	assert.Equal(t, "alice", *got.RevokedBy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_FindByLogin_NotFound(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("FROM accounts").WillReturnRows(sqlmock.NewRows(accountColumns))

	_, err := repo.FindByLogin(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountRepository_FindByID(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	bob := newAccount("bob", fixedNow)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
		WithArgs(bob.ID.String()).
		WillReturnRows(accountRows(bob))

	got, err := repo.FindByID(context.Background(), bob.ID)
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)
}

func TestAccountRepository_FindByCredentials(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE LOWER(login) = LOWER($1) AND password = $2 AND revoked_on IS NULL")).
		WithArgs("bob", "wrong").
		WillReturnRows(sqlmock.NewRows(accountColumns))

	_, err := repo.FindByCredentials(context.Background(), "bob", "wrong")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestAccountRepository_Query_NonRetryableError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	repo.db.retryAttempts = 3

	mock.ExpectQuery("FROM accounts").WillReturnError(pgError(pgerrcode.UndefinedTable))

	_, err := repo.ListActive(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Query_RetriesTransientError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	repo.db.retryAttempts = 3

	bob := newAccount("bob", fixedNow)
	mock.ExpectQuery("FROM accounts").WillReturnError(pgError(pgerrcode.ConnectionFailure))
	mock.ExpectQuery("FROM accounts").WillReturnRows(accountRows(bob))

	got, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "bob", got[0].Login)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Query_GivesUpAfterRetries(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	repo.db.retryAttempts = 2

	mock.ExpectQuery("FROM accounts").WillReturnError(pgError(pgerrcode.DeadlockDetected))
	mock.ExpectQuery("FROM accounts").WillReturnError(pgError(pgerrcode.DeadlockDetected))

	_, err := repo.ListActive(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Query_ZeroAttemptsRunsOnce(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery("FROM accounts").WillReturnError(pgError(pgerrcode.ConnectionFailure))

	_, err := repo.ListActive(context.Background())
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Query_StopsRetryingWhenContextDone(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	repo.db.retryAttempts = 3
	repo.db.retryDelay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	mock.ExpectQuery("FROM accounts").WillReturnError(pgError(pgerrcode.ConnectionFailure))

	start := time.Now()
	_, err := repo.ListActive(ctx)

	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Minute)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_ListActive_Empty(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE revoked_on IS NULL ORDER BY created_on ASC")).
		WillReturnRows(sqlmock.NewRows(accountColumns))

	got, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAccountRepository_ListOlderThan_ExactBoundary(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	// today is 2024-03-15; the prefilter admits 1993-03-16
	today := newAccount("today", fixedNow)
	today.Birthday = date(1993, time.March, 15)
	tomorrow := newAccount("tomorrow", fixedNow)
	tomorrow.Birthday = date(1993, time.March, 16)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE birthday IS NOT NULL AND birthday <= $1")).
		WithArgs(time.Date(1993, time.March, 16, 0, 0, 0, 0, time.UTC)).
		WillReturnRows(accountRows(today, tomorrow))

	got, err := repo.ListOlderThan(context.Background(), 30)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "today", got[0].Login)
}

// ─────────────────────────────────────────────────────────────
// writes
// ─────────────────────────────────────────────────────────────

func TestAccountRepository_Insert(t *testing.T) {
	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "success"},
		{name: "unique violation", execErr: pgError(pgerrcode.UniqueViolation), wantErr: ErrLoginAlreadyExists},
		{name: "network error", execErr: errors.New("db network error"), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestAccountRepo(t)

			exp := mock.ExpectExec(regexp.QuoteMeta("INSERT INTO accounts")).WithArgs(anyAccountArgs...)
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err := repo.Insert(context.Background(), newAccount("bob", fixedNow))
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_Update_Success(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	bob := newAccount("bob", fixedNow)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Update(context.Background(), bob))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update_Miss(t *testing.T) {
	tests := []struct {
		name    string
		state   *sqlmock.Rows
		wantErr error
	}{
		{
			name:    "record revoked",
			state:   sqlmock.NewRows([]string{"revoked_on"}).AddRow(fixedNow),
			wantErr: ErrAccountRevoked,
		},
		{
			name:    "record absent",
			state:   sqlmock.NewRows([]string{"revoked_on"}),
			wantErr: ErrAccountNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestAccountRepo(t)
			bob := newAccount("bob", fixedNow)

			mock.ExpectBegin()
			mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET")).WillReturnResult(sqlmock.NewResult(0, 0))
			mock.ExpectQuery(regexp.QuoteMeta("SELECT revoked_on FROM accounts WHERE id = $1")).
				WithArgs(bob.ID.String()).
				WillReturnRows(tt.state)
			mock.ExpectRollback()

			err := repo.Update(context.Background(), bob)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestAccountRepository_Update_LoginClash(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET")).WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	err := repo.Update(context.Background(), newAccount("alice", fixedNow))
	assert.ErrorIs(t, err, ErrLoginAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Update_BeginError(t *testing.T) {
	repo, mock := newTestAccountRepo(t)
	mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	err := repo.Update(context.Background(), newAccount("bob", fixedNow))
	assert.ErrorIs(t, err, sql.ErrConnDone)
}

func TestAccountRepository_SoftDelete(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("UPDATE accounts SET revoked_on = $1, revoked_by = $2 WHERE LOWER(login) = LOWER($3) AND revoked_on IS NULL")).
		WithArgs(fixedNow, "alice", "bob").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), "bob", "alice", false))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_SoftDelete_AlreadyRevoked(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE accounts SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT revoked_on FROM accounts").
		WillReturnRows(sqlmock.NewRows([]string{"revoked_on"}).AddRow(fixedNow))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), "bob", "alice", false)
	assert.ErrorIs(t, err, ErrAccountRevoked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_HardDelete(t *testing.T) {
	repo, mock := newTestAccountRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM accounts WHERE LOWER(login) = LOWER($1)")).
		WithArgs("bob").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM accounts")).
		WithArgs("bob").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "bob", "alice", true))
	assert.ErrorIs(t, repo.Delete(context.Background(), "bob", "alice", true), ErrAccountNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAccountRepository_Restore(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("revoked_on IS NOT NULL")).
			WithArgs(nil, nil, "bob").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Restore(context.Background(), "bob"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("active account", func(t *testing.T) {
		repo, mock := newTestAccountRepo(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE accounts SET").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery("SELECT revoked_on FROM accounts").
			WillReturnRows(sqlmock.NewRows([]string{"revoked_on"}).AddRow(nil))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Restore(context.Background(), "bob"), ErrAccountNotRevoked)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestNewAccountRepository_DefaultsClock(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewAccountRepository(&DB{DB: db, dialect: config.DriverSQLite}, nil, logger.Nop())
	require.NotNil(t, repo.(*accountRepository).now)
}
