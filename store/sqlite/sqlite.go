/*
Package sqlite provides a SQLite-backed implementation of history.Store.

PURPOSE:
  Persists history entries in SQLite. The default deployment opens the
  database at ":memory:": calculation history is session-scoped and is not
  meant to survive a process restart. A file path works too and is handy
  during development.

APPEND-ONLY ENFORCEMENT:
  - No UPDATE statements on history_entries
  - The only DELETE is session-scoped Purge, issued when a session dies

ORDERING:
  The seq column (AUTOINCREMENT) records commit order; List reads
  ORDER BY seq DESC so callers always see newest first, independent of
  CreatedAt clock resolution.

WAL MODE:
  Opened with WAL journaling, same as any concurrent-reader SQLite setup:
  readers don't block the single writer.

IN-MEMORY POOLING:
  ":memory:" databases are per-connection in SQLite. New caps the
  database/sql pool at one connection for that path; otherwise the pool
  would hand concurrent requests fresh, schemaless databases.

USAGE:
  st, err := sqlite.New(":memory:")
  if err != nil {
      log.Fatal(err)
  }
  defer st.Close()
  ledger := history.NewLedger(st, sessionID)

SEE ALSO:
  - history/store.go: Interface definition
  - history/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/calc-engine/engine"
	"github.com/warp/calc-engine/history"
)

// Store implements history.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a SQLite store at the given path. Use ":memory:" for an
// in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// A plain ":memory:" database exists per connection: database/sql pools
	// connections, and each new one would see a fresh, empty database with
	// no schema. Pin the pool to a single connection so every caller shares
	// the one database that migrate() ran on.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- History entries (append-only; seq fixes commit order)
	CREATE TABLE IF NOT EXISTS history_entries (
		seq        INTEGER PRIMARY KEY AUTOINCREMENT,
		id         TEXT NOT NULL UNIQUE,
		session_id TEXT NOT NULL,
		expression TEXT NOT NULL,
		result     TEXT NOT NULL,
		operation  TEXT NOT NULL,
		operand    TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_session
		ON history_entries(session_id, seq DESC);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// history.Store IMPLEMENTATION
// =============================================================================

func (s *Store) Append(ctx context.Context, sessionID string, e history.Entry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history_entries (id, session_id, expression, result, operation, operand, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.ID, sessionID, e.Expression, e.Result, string(e.Operation), e.Operand,
		e.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context, sessionID string) ([]history.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, expression, result, operation, operand, created_at
		FROM history_entries
		WHERE session_id = ?
		ORDER BY seq DESC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("listing history entries: %w", err)
	}
	defer rows.Close()

	var entries []history.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *Store) Latest(ctx context.Context, sessionID string) (*history.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, expression, result, operation, operand, created_at
		FROM history_entries
		WHERE session_id = ?
		ORDER BY seq DESC
		LIMIT 1`, sessionID)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) Get(ctx context.Context, sessionID, entryID string) (*history.Entry, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, expression, result, operation, operand, created_at
		FROM history_entries
		WHERE session_id = ? AND id = ?`, sessionID, entryID)

	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, history.ErrEntryNotFound
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *Store) Purge(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM history_entries WHERE session_id = ?`, sessionID)
	if err != nil {
		return fmt.Errorf("purging session history: %w", err)
	}
	return nil
}

// =============================================================================
// SCAN HELPERS
// =============================================================================

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (history.Entry, error) {
	var e history.Entry
	var op, createdAt string
	if err := row.Scan(&e.ID, &e.Expression, &e.Result, &op, &e.Operand, &createdAt); err != nil {
		return history.Entry{}, err
	}
	e.Operation = engine.Operator(op)

	t, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return history.Entry{}, fmt.Errorf("parsing created_at: %w", err)
	}
	e.CreatedAt = t
	return e, nil
}
