package sqlstore

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"
	sqlite3 "github.com/mutecomm/go-sqlcipher/v4"
)

// sqliteDriverName is the SQLCipher driver registered with per-connection pragmas.
const sqliteDriverName = "sqlite3_notekeeper"

// sqliteBusyTimeoutMS makes concurrent writers wait for the lock instead of
// failing with SQLITE_BUSY.
const sqliteBusyTimeoutMS = 5000

func init() {
	sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			if _, err := conn.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", sqliteBusyTimeoutMS), nil); err != nil {
				return fmt.Errorf("setting busy_timeout: %w", err)
			}
			return nil
		},
	})
}

// openSQLite opens a SQLite database file. A non-empty key enables SQLCipher
// page encryption via the _pragma_key DSN parameter.
func openSQLite(dsn, key string) (*sql.DB, error) {
	if err := ensureSQLiteDir(dsn); err != nil {
		return nil, err
	}

	if key != "" {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn = dsn + sep + "_pragma_key=" + url.QueryEscape(key)
	}

	db, err := sql.Open(sqliteDriverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	return db, nil
}

// ensureSQLiteDir creates the parent directory of a file-backed database,
// since sqlite creates the file but not missing directories.
func ensureSQLiteDir(dsn string) error {
	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	if path == "" || path == ":memory:" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("creating sqlite directory: %w", err)
	}

	return nil
}

// openMySQL parses the DSN and opens a pool through a connector, forcing
// utf8mb4 so note text is stored without loss.
func openMySQL(dsn string) (*sql.DB, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parsing mysql dsn: %w", err)
	}

	if cfg.Params == nil {
		cfg.Params = make(map[string]string)
	}
	cfg.Params["charset"] = "utf8mb4"

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating mysql connector: %w", err)
	}

	return sql.OpenDB(connector), nil
}
