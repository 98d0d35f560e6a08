// Package sqlstore provides a NoteStore backed by a relational notes table,
// using SQLite (optionally SQLCipher-encrypted) or MySQL.
package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jsamuelsen/notekeeper/internal/domain"
	"github.com/jsamuelsen/notekeeper/internal/ports"
)

// ServiceName identifies the store in health results and unavailable errors.
const ServiceName = "note-store"

const (
	defaultPingTimeout  = 5 * time.Second
	defaultRetryBackoff = time.Second
)

const (
	queryList   = `SELECT id, title, content FROM notes ORDER BY id`
	queryGet    = `SELECT id, title, content FROM notes WHERE id = ?`
	queryInsert = `INSERT INTO notes (title, content) VALUES (?, ?)`
	queryUpdate = `UPDATE notes SET title = ?, content = ? WHERE id = ?`
	queryDelete = `DELETE FROM notes WHERE id = ?`
)

var (
	_ ports.NoteStore     = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// Config holds connection settings for Open.
type Config struct {
	// Driver is DialectSQLite or DialectMySQL.
	Driver Dialect

	// DSN is a file path / file: URI for sqlite or a go-sql-driver DSN for mysql.
	DSN string

	// EncryptionKey enables SQLCipher encryption. SQLite only.
	EncryptionKey string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	// ConnectRetries is the number of extra ping attempts after the first one fails.
	ConnectRetries int
	RetryBackoff   time.Duration

	// Logger receives connection retry warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

// Store is a NoteStore over database/sql.
//
// Mutations are serialized by mu and each runs in its own transaction.
// SQLite allows a single writer anyway; for MySQL this keeps the
// read-then-write sequences in Update and Delete from interleaving.
type Store struct {
	db      *sql.DB
	dialect Dialect
	mu      sync.Mutex
}

// New wraps an already opened database. The schema must exist.
func New(db *sql.DB, dialect Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

// Open connects to the configured database, waits for it to answer a ping,
// applies pool settings, and migrates the schema.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		db  *sql.DB
		err error
	)

	switch cfg.Driver {
	case DialectSQLite:
		db, err = openSQLite(cfg.DSN, cfg.EncryptionKey)
	case DialectMySQL:
		if cfg.EncryptionKey != "" {
			return nil, errors.New("encryption key is only supported by the sqlite driver")
		}
		db, err = openMySQL(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}

	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := pingWithRetry(ctx, db, cfg, logger); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := Migrate(ctx, db, cfg.Driver); err != nil {
		_ = db.Close()
		return nil, err
	}

	return New(db, cfg.Driver), nil
}

func pingWithRetry(ctx context.Context, db *sql.DB, cfg Config, logger *slog.Logger) error {
	backoff := cfg.RetryBackoff
	if backoff <= 0 {
		backoff = defaultRetryBackoff
	}

	attempts := max(cfg.ConnectRetries, 0) + 1

	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, defaultPingTimeout)
		err = db.PingContext(pingCtx)
		cancel()

		if err == nil {
			return nil
		}

		if attempt == attempts {
			break
		}

		logger.Warn("database not reachable, retrying",
			slog.String("driver", string(cfg.Driver)),
			slog.Int("attempt", attempt),
			slog.Duration("backoff", backoff),
			slog.String("error", err.Error()),
		)

		select {
		case <-ctx.Done():
			return fmt.Errorf("connecting to %s database: %w", cfg.Driver, ctx.Err())
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("connecting to %s database after %d attempts: %w", cfg.Driver, attempts, err)
}

// List returns all notes ordered by id, which is insertion order.
func (s *Store) List(ctx context.Context) ([]domain.Note, error) {
	rows, err := s.db.QueryContext(ctx, queryList)
	if err != nil {
		return nil, unavailable("listing notes", err)
	}
	defer rows.Close()

	notes := make([]domain.Note, 0)
	for rows.Next() {
		var n domain.Note
		if err := rows.Scan(&n.ID, &n.Title, &n.Content); err != nil {
			return nil, unavailable("reading note row", err)
		}
		notes = append(notes, n)
	}

	if err := rows.Err(); err != nil {
		return nil, unavailable("listing notes", err)
	}

	return notes, nil
}

// Get returns the note with the given id.
func (s *Store) Get(ctx context.Context, id int64) (domain.Note, error) {
	return getNote(ctx, s.db, id)
}

// Create inserts a note and returns it with the id the database assigned.
func (s *Store) Create(ctx context.Context, in domain.NoteInput) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Note{}, unavailable("beginning transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, queryInsert, in.Title, in.Content)
	if err != nil {
		return domain.Note{}, unavailable("inserting note", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Note{}, unavailable("reading inserted id", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Note{}, unavailable("committing insert", err)
	}

	return domain.Note{ID: id, Title: in.Title, Content: in.Content}, nil
}

// Update replaces title and content of an existing note.
//
// The row is looked up first because MySQL reports zero affected rows when
// the new values equal the old ones, which would be indistinguishable from
// a missing note.
func (s *Store) Update(ctx context.Context, id int64, in domain.NoteInput) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Note{}, unavailable("beginning transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := getNote(ctx, tx, id); err != nil {
		return domain.Note{}, err
	}

	if _, err := tx.ExecContext(ctx, queryUpdate, in.Title, in.Content, id); err != nil {
		return domain.Note{}, unavailable("updating note", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Note{}, unavailable("committing update", err)
	}

	return domain.Note{ID: id, Title: in.Title, Content: in.Content}, nil
}

// Delete removes the note and returns the row as it was before removal.
func (s *Store) Delete(ctx context.Context, id int64) (domain.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Note{}, unavailable("beginning transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	note, err := getNote(ctx, tx, id)
	if err != nil {
		return domain.Note{}, err
	}

	if _, err := tx.ExecContext(ctx, queryDelete, id); err != nil {
		return domain.Note{}, unavailable("deleting note", err)
	}

	if err := tx.Commit(); err != nil {
		return domain.Note{}, unavailable("committing delete", err)
	}

	return note, nil
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return ServiceName
}

// Check implements ports.HealthChecker by pinging the database.
func (s *Store) Check(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return unavailable("ping failed", err)
	}

	return nil
}

// DB exposes the connection pool, e.g. for pool statistics.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

// queryRower is satisfied by both *sql.DB and *sql.Tx.
type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getNote(ctx context.Context, q queryRower, id int64) (domain.Note, error) {
	var n domain.Note

	err := q.QueryRowContext(ctx, queryGet, id).Scan(&n.ID, &n.Title, &n.Content)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Note{}, domain.NoteNotFound(id)
	}

	if err != nil {
		return domain.Note{}, unavailable("reading note", err)
	}

	return n, nil
}

// unavailable wraps a driver failure. An expired or canceled request
// context says nothing about the store's health and is passed through.
func unavailable(reason string, err error) error {
	if domain.IsCanceled(err) {
		return fmt.Errorf("%s: %w", reason, err)
	}

	return domain.NewUnavailableError(ServiceName, reason, err)
}
