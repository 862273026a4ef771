package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database. It lives exactly as long as
// the Store, so the journal resets when the process exits.
const MemoryDSN = ":memory:"

// Store holds the SQLite-backed event journal.
type Store struct {
	db   *sql.DB
	repo *eventRepo
}

// Open connects to the SQLite database at dsn, applies pragmas and creates
// the journal tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// An in-memory database belongs to the connection that created it, so
	// the pool is pinned to a single connection that is never recycled.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	ctx := context.Background()
	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	seq, err := newSequenceCounter(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, repo: &eventRepo{db: db, seq: seq, now: time.Now}}, nil
}

// OpenMemory opens an empty in-memory Store.
func OpenMemory() (*Store, error) {
	return Open(MemoryDSN)
}

// EventRepo returns the EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return s.repo
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database. An in-memory journal is discarded.
func (s *Store) Close() error {
	return s.db.Close()
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}
