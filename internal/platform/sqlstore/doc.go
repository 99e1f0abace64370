// Package sqlstore implements store.PostStore on top of database/sql.
//
// A single PostStore serves PostgreSQL (jackc/pgx), SQLite (modernc.org/sqlite)
// and MySQL (go-sql-driver/mysql). The differences between the three
// backends are confined to a Dialect: placeholder syntax, how a generated ID
// is read back, driver error mapping, and which embedded goose migrations
// create the schema.
package sqlstore
