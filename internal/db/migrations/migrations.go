// Package migrations contains dialect-aware Go database migrations. The
// schema cannot be expressed as a single cross-database SQL statement
// because autoincrement primary keys differ by driver (INTEGER PRIMARY KEY
// AUTOINCREMENT for SQLite, BIGINT AUTO_INCREMENT for MySQL, BIGSERIAL for
// PostgreSQL).
package migrations

// dialect is set by the parent db package before migrations are applied.
var dialect string

// SetDialect configures the SQL dialect for Go migrations.
// Must be called before goose.Up. Valid values: "sqlite3", "postgres", "mysql".
func SetDialect(d string) {
	dialect = d
}
