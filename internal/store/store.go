package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the SQLite connection and provides access to repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection keeps pragmas and in-memory databases consistent.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Terms returns a TermStore backed by this database.
func (s *Store) Terms() *SQLiteTermStore {
	return &SQLiteTermStore{db: s.db}
}

// History returns a HistoryRepo backed by this database.
func (s *Store) History() HistoryRepo {
	return &historyRepo{db: s.db}
}

// applyPragmas configures SQLite for single-user use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS terms (
		topic   TEXT    NOT NULL,
		line_no INTEGER NOT NULL,
		record  TEXT    NOT NULL,
		PRIMARY KEY (topic, line_no)
	)`,
	`CREATE TABLE IF NOT EXISTS practice_sessions (
		session_id TEXT    PRIMARY KEY,
		topic      TEXT    NOT NULL,
		started_at INTEGER NOT NULL,
		ended_at   INTEGER NOT NULL,
		questions  INTEGER NOT NULL,
		correct    INTEGER NOT NULL,
		end_phase  TEXT    NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS answer_events (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id     TEXT    NOT NULL,
		topic          TEXT    NOT NULL,
		keyword        TEXT    NOT NULL,
		correct_letter TEXT    NOT NULL,
		answer         TEXT    NOT NULL,
		correct        INTEGER NOT NULL,
		answered_at    INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS answer_events_topic ON answer_events (topic)`,
}

func migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DataDir resolves the application data directory:
// 1. $XDG_DATA_HOME/glossary
// 2. ~/.local/share/glossary
func DataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "glossary"), nil
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return ensureDir(path)
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
