// Package history persists the list of visited directories. Entries are
// de-duplicated by path, move to the front on revisit, and the list is
// trimmed to a configured cap.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"quickswitch/internal/errors"
)

// Entry is one visited directory.
type Entry struct {
	Path       string
	Visits     int
	LastVisit  time.Time
	FirstVisit time.Time
}

// Store is a sqlite-backed history list.
type Store struct {
	db    *sql.DB
	limit int
}

// NewStore opens (or creates) the history database at path. limit bounds
// the number of retained entries.
func NewStore(path string, limit int) (*Store, error) {
	if limit < 1 {
		limit = 100
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.WrapKind(err, errors.PersistenceFailure, "open history database")
	}
	return &Store{db: db, limit: limit}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Init creates the schema if it does not exist.
func (s *Store) Init(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS visits (
  path TEXT PRIMARY KEY,
  visit_count INTEGER NOT NULL DEFAULT 1,
  first_visit TEXT NOT NULL,
  last_visit TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visits_last_visit ON visits(last_visit DESC);
`
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return errors.WrapKind(err, errors.PersistenceFailure, "create history schema")
	}
	return nil
}

// Record notes a visit to path. A revisit bumps the visit count and
// moves the entry to the front; the list is then trimmed to the cap.
func (s *Store) Record(ctx context.Context, path string) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(ctx, `
INSERT INTO visits (path, visit_count, first_visit, last_visit)
VALUES (?, 1, ?, ?)
ON CONFLICT(path) DO UPDATE SET
  visit_count=visit_count+1,
  last_visit=excluded.last_visit
`, path, now, now)
	if err != nil {
		return errors.WrapKindf(err, errors.PersistenceFailure, "record visit %s", path)
	}

	return s.trim(ctx)
}

// trim drops the oldest entries beyond the cap.
func (s *Store) trim(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
DELETE FROM visits WHERE path NOT IN (
  SELECT path FROM visits ORDER BY last_visit DESC LIMIT ?
)
`, s.limit)
	if err != nil {
		return errors.WrapKind(err, errors.PersistenceFailure, "trim history")
	}
	return nil
}

// List returns history entries, most recent first. Entries whose
// directory no longer exists are filtered out of the result but kept in
// the database, so a temporarily unmounted path is not forgotten.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT path, visit_count, first_visit, last_visit
FROM visits
ORDER BY last_visit DESC
LIMIT ?
`, s.limit)
	if err != nil {
		return nil, errors.WrapKind(err, errors.PersistenceFailure, "query history")
	}
	defer rows.Close()

	entries := make([]Entry, 0, s.limit)
	for rows.Next() {
		var e Entry
		var first, last string
		if err := rows.Scan(&e.Path, &e.Visits, &first, &last); err != nil {
			return nil, errors.WrapKind(err, errors.PersistenceFailure, "scan history row")
		}
		e.FirstVisit, _ = time.Parse(time.RFC3339Nano, first)
		e.LastVisit, _ = time.Parse(time.RFC3339Nano, last)

		if info, err := os.Stat(e.Path); err != nil || !info.IsDir() {
			continue
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.WrapKind(err, errors.PersistenceFailure, "history rows iteration")
	}
	return entries, nil
}

// Remove deletes path from the history.
func (s *Store) Remove(ctx context.Context, path string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM visits WHERE path = ?`, path); err != nil {
		return errors.WrapKindf(err, errors.PersistenceFailure, "remove history entry %s", path)
	}
	return nil
}

// Open is the convenience constructor used at startup: it opens the
// store and initializes the schema. A corrupt database file is moved
// aside and replaced with a fresh one rather than blocking the UI.
func Open(ctx context.Context, path string, limit int) (*Store, error) {
	store, err := NewStore(path, limit)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		backup := fmt.Sprintf("%s.corrupt-%d", path, time.Now().Unix())
		if renameErr := os.Rename(path, backup); renameErr != nil {
			return nil, err
		}
		store, err = NewStore(path, limit)
		if err != nil {
			return nil, err
		}
		if err := store.Init(ctx); err != nil {
			_ = store.Close()
			return nil, err
		}
	}
	return store, nil
}
