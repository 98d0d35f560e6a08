package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
)

// Dialect selects the DDL flavour for the notes table. Queries themselves
// are portable between the supported drivers.
type Dialect string

const (
	// DialectSQLite targets SQLite/SQLCipher.
	DialectSQLite Dialect = "sqlite"

	// DialectMySQL targets MySQL 8 / MariaDB with InnoDB.
	DialectMySQL Dialect = "mysql"
)

// AUTOINCREMENT (rather than a bare rowid alias) keeps SQLite from reusing
// the id of the most recently deleted row.
var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS notes (
		id      INTEGER PRIMARY KEY AUTOINCREMENT,
		title   TEXT NOT NULL,
		content TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS ix_notes_title ON notes (title)`,
}

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS notes (
		id      BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		title   TEXT NOT NULL,
		content TEXT NOT NULL,
		INDEX ix_notes_title (title(191))
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

func (d Dialect) schema() ([]string, error) {
	switch d {
	case DialectSQLite:
		return sqliteSchema, nil
	case DialectMySQL:
		return mysqlSchema, nil
	default:
		return nil, fmt.Errorf("unsupported sql dialect %q", d)
	}
}

// Migrate creates the notes table and its index if they do not exist yet.
func Migrate(ctx context.Context, db *sql.DB, d Dialect) error {
	stmts, err := d.schema()
	if err != nil {
		return err
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying %s schema: %w", d, err)
		}
	}

	return nil
}
