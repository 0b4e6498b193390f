package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-user-directory/models"
)

var accountsTable = models.Account{}.TableName()

// accountColumns is the column order shared by every SELECT and INSERT of
// the accounts table. scanAccount reads in the same order.
var accountColumns = []string{
	"id",
	"login",
	"password",
	"name",
	"gender",
	"birthday",
	"admin",
	"created_on",
	"created_by",
	"modified_on",
	"modified_by",
	"revoked_on",
	"revoked_by",
}

func loginEquals(login string) sq.Sqlizer {
	return sq.Expr("LOWER(login) = LOWER(?)", login)
}

// idEquals compares against the textual form; squirrel would expand the
// [16]byte array of uuid.UUID into an IN list.
func idEquals(id string) sq.Sqlizer {
	return sq.Eq{"id": id}
}

func buildSelectAccountQuery(b sq.StatementBuilderType, where ...sq.Sqlizer) (string, []any, error) {
	query := b.Select(accountColumns...).From(accountsTable)
	for _, pred := range where {
		query = query.Where(pred)
	}

	return query.ToSql()
}

func buildListActiveQuery(b sq.StatementBuilderType) (string, []any, error) {
	return b.Select(accountColumns...).
		From(accountsTable).
		Where(sq.Eq{"revoked_on": nil}).
		OrderBy("created_on ASC", "id ASC").
		ToSql()
}

// buildListBornBeforeQuery selects accounts born on or before cutoff, a
// superset of the accounts older than any age mapped onto it.
func buildListBornBeforeQuery(b sq.StatementBuilderType, cutoff time.Time) (string, []any, error) {
	return b.Select(accountColumns...).
		From(accountsTable).
		Where(sq.NotEq{"birthday": nil}).
		Where(sq.LtOrEq{"birthday": cutoff}).
		OrderBy("created_on ASC", "id ASC").
		ToSql()
}

func buildInsertAccountQuery(b sq.StatementBuilderType, a models.Account) (string, []any, error) {
	return b.Insert(accountsTable).
		Columns(accountColumns...).
		Values(
			a.ID.String(),
			a.Login,
			a.Password,
			a.Name,
			int(a.Gender),
			a.Birthday,
			a.Admin,
			a.CreatedOn,
			a.CreatedBy,
			a.ModifiedOn,
			a.ModifiedBy,
			a.RevokedOn,
			a.RevokedBy,
		).
		ToSql()
}

// buildUpdateAccountQuery never touches the revocation pair and only
// matches active records.
func buildUpdateAccountQuery(b sq.StatementBuilderType, a models.Account) (string, []any, error) {
	return b.Update(accountsTable).
		SetMap(map[string]any{
			"login":       a.Login,
			"password":    a.Password,
			"name":        a.Name,
			"gender":      int(a.Gender),
			"birthday":    a.Birthday,
			"admin":       a.Admin,
			"modified_on": a.ModifiedOn,
			"modified_by": a.ModifiedBy,
		}).
		Where(idEquals(a.ID.String())).
		Where(sq.Eq{"revoked_on": nil}).
		ToSql()
}

func buildRevokeAccountQuery(b sq.StatementBuilderType, login, by string, at time.Time) (string, []any, error) {
	return b.Update(accountsTable).
		Set("revoked_on", at).
		Set("revoked_by", by).
		Where(loginEquals(login)).
		Where(sq.Eq{"revoked_on": nil}).
		ToSql()
}

func buildRestoreAccountQuery(b sq.StatementBuilderType, login string) (string, []any, error) {
	return b.Update(accountsTable).
		Set("revoked_on", nil).
		Set("revoked_by", nil).
		Where(loginEquals(login)).
		Where(sq.NotEq{"revoked_on": nil}).
		ToSql()
}

func buildDeleteAccountQuery(b sq.StatementBuilderType, login string) (string, []any, error) {
	return b.Delete(accountsTable).
		Where(loginEquals(login)).
		ToSql()
}

func buildRevokedStateQuery(b sq.StatementBuilderType, where sq.Sqlizer) (string, []any, error) {
	return b.Select("revoked_on").
		From(accountsTable).
		Where(where).
		ToSql()
}
