package database

import (
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

const pgForeignKeyViolation = "23503"

// IsForeignKeyViolation reports whether err is a rejected reference, e.g. an
// order line pointing at a menu item that does not exist.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgForeignKeyViolation
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_FOREIGNKEY
	}
	return strings.Contains(strings.ToLower(err.Error()), "foreign key constraint failed")
}

func IsNoRows(err error) bool { return errors.Is(err, sql.ErrNoRows) }
