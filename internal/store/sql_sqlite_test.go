package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/MKhiriev/go-user-directory/internal/config"
	"github.com/MKhiriev/go-user-directory/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteStore opens a migrated sqlite database in a temp directory.
func newSQLiteStore(t *testing.T) AccountStore {
	t.Helper()
	ctx := context.Background()

	cfg := config.DB{Driver: config.DriverSQLite, DSN: filepath.Join(t.TempDir(), "accounts.db")}
	storages, err := NewStorages(ctx, cfg, func() time.Time { return fixedNow }, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	return storages.AccountStore
}

func TestSQLiteStore_Lifecycle(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	bob := newAccount("Bob", fixedNow)
	bob.Birthday = date(1993, time.March, 15)
	require.NoError(t, s.Insert(ctx, bob))

	assert.ErrorIs(t, s.Insert(ctx, newAccount("BOB", fixedNow)), ErrLoginAlreadyExists)

	got, err := s.FindByLogin(ctx, "bob")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)
	require.NotNil(t, got.Birthday)
	assert.True(t, bob.Birthday.Equal(*got.Birthday))

	_, err = s.FindByCredentials(ctx, "BOB", "pass1")
	require.NoError(t, err)

	got.Login = "robert"
	got.StampModification("Admin", fixedNow)
	require.NoError(t, s.Update(ctx, got))

	_, err = s.FindByLogin(ctx, "bob")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	require.NoError(t, s.Delete(ctx, "robert", "Admin", false))
	assert.ErrorIs(t, s.Delete(ctx, "robert", "Admin", false), ErrAccountRevoked)
	assert.ErrorIs(t, s.Update(ctx, got), ErrAccountRevoked)

	_, err = s.FindByCredentials(ctx, "robert", "pass1")
	assert.ErrorIs(t, err, ErrAccountNotFound)

	active, err := s.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, active)

	older, err := s.ListOlderThan(ctx, 30)
	require.NoError(t, err)
	require.Len(t, older, 1)
	assert.Equal(t, "robert", older[0].Login)

	require.NoError(t, s.Restore(ctx, "robert"))
	assert.ErrorIs(t, s.Restore(ctx, "robert"), ErrAccountNotRevoked)

	require.NoError(t, s.Delete(ctx, "robert", "Admin", true))
	_, err = s.FindByID(ctx, bob.ID)
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestSQLiteStore_ListOlderThan_Boundary(t *testing.T) {
	ctx := context.Background()
	s := newSQLiteStore(t)

	today := newAccount("today", fixedNow)
	today.Birthday = date(1993, time.March, 15)
	tomorrow := newAccount("tomorrow", fixedNow.Add(time.Second))
	tomorrow.Birthday = date(1993, time.March, 16)
	require.NoError(t, s.Insert(ctx, today))
	require.NoError(t, s.Insert(ctx, tomorrow))

	older, err := s.ListOlderThan(ctx, 30)
	require.NoError(t, err)
	require.Len(t, older, 1)
	assert.Equal(t, "today", older[0].Login)
}
