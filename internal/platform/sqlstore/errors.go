package sqlstore

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/blog-api/internal/store"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// PostgreSQL error codes
const (
	pgUniqueViolationCode     = "23505"
	pgForeignKeyViolationCode = "23503"
	pgCheckViolationCode      = "23514"
	pgNotNullViolationCode    = "23502"
	pgStringTooLongCode       = "22001"
)

// MySQL server error numbers
const (
	mysqlDuplicateEntry    = 1062
	mysqlBadNull           = 1048
	mysqlNoReferencedRow   = 1452
	mysqlDataTooLong       = 1406
	mysqlCheckConstraint   = 3819
	mysqlNoDefaultForField = 1364
)

// mapPostgresError maps a pgx error to an appropriate store error.
// The original error is kept in the chain for logging.
func mapPostgresError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return mapCommonError(err)
	}

	switch pgErr.Code {
	case pgUniqueViolationCode:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case pgForeignKeyViolationCode, pgCheckViolationCode, pgNotNullViolationCode, pgStringTooLongCode:
		return fmt.Errorf("%w: constraint %q: %v", store.ErrInvalidEntity, pgErr.ConstraintName, err)
	}
	return err
}

// mapMySQLError maps a go-sql-driver/mysql error to an appropriate store error.
func mapMySQLError(err error) error {
	if err == nil {
		return nil
	}

	var myErr *mysql.MySQLError
	if !errors.As(err, &myErr) {
		return mapCommonError(err)
	}

	switch myErr.Number {
	case mysqlDuplicateEntry:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case mysqlBadNull, mysqlNoReferencedRow, mysqlDataTooLong, mysqlCheckConstraint, mysqlNoDefaultForField:
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	return err
}

// mapSQLiteError maps a modernc.org/sqlite error to an appropriate store error.
// Extended result codes are used, so the primary code is in the low byte.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}

	var liteErr *sqlite.Error
	if !errors.As(err, &liteErr) {
		return mapCommonError(err)
	}

	switch liteErr.Code() {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return fmt.Errorf("%w: %v", store.ErrDuplicate, err)
	case sqlite3.SQLITE_CONSTRAINT_CHECK, sqlite3.SQLITE_CONSTRAINT_NOTNULL, sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	if liteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT {
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}
	return err
}

func mapCommonError(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %v", store.ErrNotFound, err)
	}
	return err
}

// checkRowsAffected returns notFound when result reports zero affected rows.
// It is used for UPDATE and DELETE, where no affected rows means the target
// record does not exist.
func checkRowsAffected(result sql.Result, notFound error) error {
	if result == nil {
		return fmt.Errorf("nil result provided to checkRowsAffected")
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return notFound
	}
	return nil
}
