package sqlstore

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/phrazzld/blog-api/internal/config"
)

// Dialect captures what differs between the supported SQL backends.
type Dialect interface {
	// Name is the dialect name, also the migrations subdirectory.
	Name() string

	// DriverName is the database/sql driver to open.
	DriverName() string

	// GooseDialect is the dialect name understood by goose.
	GooseDialect() string

	// Rebind rewrites '?' placeholders into the backend's syntax.
	Rebind(query string) string

	// SupportsReturning reports whether INSERT ... RETURNING id is available.
	// Otherwise the generated ID is read with sql.Result.LastInsertId.
	SupportsReturning() bool

	// MapError translates a driver error into store sentinels. Errors without
	// a specific mapping are returned unchanged.
	MapError(err error) error
}

// DialectFor returns the Dialect for a configured driver name.
func DialectFor(driver string) (Dialect, error) {
	switch driver {
	case config.DriverPostgres:
		return postgresDialect{}, nil
	case config.DriverSQLite:
		return sqliteDialect{}, nil
	case config.DriverMySQL:
		return mysqlDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported SQL driver %q", driver)
	}
}

type postgresDialect struct{}

func (postgresDialect) Name() string             { return config.DriverPostgres }
func (postgresDialect) DriverName() string       { return "pgx" }
func (postgresDialect) GooseDialect() string     { return "postgres" }
func (postgresDialect) SupportsReturning() bool  { return true }
func (postgresDialect) MapError(err error) error { return mapPostgresError(err) }

// Rebind numbers placeholders: "a = ? AND b = ?" becomes "a = $1 AND b = $2".
// Queries in this package never contain a literal '?'.
func (postgresDialect) Rebind(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)

	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

type sqliteDialect struct{}

func (sqliteDialect) Name() string               { return config.DriverSQLite }
func (sqliteDialect) DriverName() string         { return "sqlite" }
func (sqliteDialect) GooseDialect() string       { return "sqlite3" }
func (sqliteDialect) Rebind(query string) string { return query }
func (sqliteDialect) SupportsReturning() bool    { return false }
func (sqliteDialect) MapError(err error) error   { return mapSQLiteError(err) }

type mysqlDialect struct{}

func (mysqlDialect) Name() string               { return config.DriverMySQL }
func (mysqlDialect) DriverName() string         { return "mysql" }
func (mysqlDialect) GooseDialect() string       { return "mysql" }
func (mysqlDialect) Rebind(query string) string { return query }
func (mysqlDialect) SupportsReturning() bool    { return false }
func (mysqlDialect) MapError(err error) error   { return mapMySQLError(err) }
