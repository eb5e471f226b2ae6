// Package sqlite provides a SQLite-backed freshness store.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation
// that requires no CGO, enabling easy cross-compilation. The store keeps
// one row per content item recording when it was last modified; the
// ranker reads it to compute the recency signal.
//
// By default, the database is stored at ~/.beacon/data/freshness.db.
// All operations are thread-safe through SQLite's WAL-mode locking.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/beacon-labs/beacon-cli/internal/core/ports/driven"
)

// Ensure FreshnessStore implements the interface.
var _ driven.FreshnessStore = (*FreshnessStore)(nil)

// schema is the single-table layout. Timestamps are stored as Unix
// seconds so comparisons stay free of timezone parsing.
const schema = `
CREATE TABLE IF NOT EXISTS freshness (
	id          TEXT PRIMARY KEY,
	modified_at INTEGER NOT NULL
)`

// FreshnessStore persists last-modified timestamps for content items.
type FreshnessStore struct {
	db   *sql.DB
	path string
}

// NewFreshnessStore opens (or creates) the freshness database in the
// given data directory. If dataDir is empty, defaults to ~/.beacon/data.
func NewFreshnessStore(dataDir string) (*FreshnessStore, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".beacon", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "freshness.db")

	// Open database with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating freshness table: %w", err)
	}

	return &FreshnessStore{
		db:   db,
		path: dbPath,
	}, nil
}

// Touch records (or updates) the last-modified time for an item.
func (s *FreshnessStore) Touch(ctx context.Context, id string, modifiedAt time.Time) error {
	if id == "" {
		return fmt.Errorf("freshness: id is required")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO freshness (id, modified_at)
		VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET
			modified_at = excluded.modified_at
	`, id, modifiedAt.UTC().Unix())

	if err != nil {
		return fmt.Errorf("saving freshness: %w", err)
	}
	return nil
}

// ModifiedAt returns the recorded timestamp for an item. The second
// return reports whether a record exists; an unknown item is not an
// error.
func (s *FreshnessStore) ModifiedAt(ctx context.Context, id string) (time.Time, bool, error) {
	var unix int64
	err := s.db.QueryRowContext(ctx,
		"SELECT modified_at FROM freshness WHERE id = ?", id).Scan(&unix)
	if err == sql.ErrNoRows {
		return time.Time{}, false, nil
	}
	if err != nil {
		return time.Time{}, false, fmt.Errorf("querying freshness: %w", err)
	}

	return time.Unix(unix, 0).UTC(), true, nil
}

// Path returns the database file path.
func (s *FreshnessStore) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *FreshnessStore) Close() error {
	return s.db.Close()
}
