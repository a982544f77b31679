// Package sqlite implements a cache store on an embedded SQLite database.
package sqlite

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"

	"go.trai.ch/fcache/internal/core/domain"
	"go.trai.ch/zerr"

	// Register the pure-Go "sqlite" driver.
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS projects (
	project TEXT PRIMARY KEY
);
CREATE TABLE IF NOT EXISTS files (
	project TEXT NOT NULL,
	path    TEXT NOT NULL,
	marker  INTEGER NOT NULL,
	PRIMARY KEY (project, path)
);
CREATE TABLE IF NOT EXISTS runs (
	project  TEXT PRIMARY KEY,
	last_run INTEGER NOT NULL
);`

// Store implements ports.CacheStore on SQLite.
// A snapshot exists once it was saved, even when it holds no files.
type Store struct {
	db *sql.DB
}

// NewStore opens (and creates if needed) the database file at path.
func NewStore(path string) (*Store, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", path)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", path)
	}
	// One writer per project is assumed; a single connection keeps SQLite locking trivial.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", path)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreOpenFailed.Error()), "path", path)
	}

	return &Store{db: db}, nil
}

// Load retrieves the snapshot of key.
func (s *Store) Load(key domain.ProjectKey) (domain.Snapshot, bool, error) {
	var project string
	err := s.db.QueryRow("SELECT project FROM projects WHERE project = ?", key.String()).Scan(&project)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	rows, err := s.db.Query("SELECT path, marker FROM files WHERE project = ?", key.String())
	if err != nil {
		return nil, false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	defer func() {
		_ = rows.Close()
	}()

	snapshot := domain.Snapshot{}
	for rows.Next() {
		var (
			path   string
			marker int64
		)
		if err := rows.Scan(&path, &marker); err != nil {
			return nil, false, zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error())
		}
		snapshot[path] = marker
	}
	if err := rows.Err(); err != nil {
		return nil, false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return snapshot, true, nil
}

// Save replaces the snapshot of key in a single transaction.
func (s *Store) Save(key domain.ProjectKey, snapshot domain.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.Exec("INSERT OR IGNORE INTO projects (project) VALUES (?)", key.String()); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	if _, err := tx.Exec("DELETE FROM files WHERE project = ?", key.String()); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}

	stmt, err := tx.Prepare("INSERT INTO files (project, path, marker) VALUES (?, ?, ?)")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	defer func() {
		_ = stmt.Close()
	}()

	for path, marker := range snapshot {
		if _, err := stmt.Exec(key.String(), path, marker); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "file", path)
		}
	}

	if err := tx.Commit(); err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

// LoadLastRun retrieves the last-run timestamp of key.
func (s *Store) LoadLastRun(key domain.ProjectKey) (int64, bool, error) {
	var ts int64
	err := s.db.QueryRow("SELECT last_run FROM runs WHERE project = ?", key.String()).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}
	return ts, true, nil
}

// SaveLastRun stores the last-run timestamp of key.
func (s *Store) SaveLastRun(key domain.ProjectKey, ts int64) error {
	_, err := s.db.Exec(
		"INSERT INTO runs (project, last_run) VALUES (?, ?) "+
			"ON CONFLICT(project) DO UPDATE SET last_run = excluded.last_run",
		key.String(), ts,
	)
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreWriteFailed.Error())
	}
	return nil
}

// Delete removes every record of the given keys in a single transaction.
func (s *Store) Delete(keys ...domain.ProjectKey) error {
	tx, err := s.db.Begin()
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreDeleteFailed.Error())
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, key := range keys {
		for _, table := range []string{"files", "projects", "runs"} {
			//nolint:gosec // table names come from the fixed list above
			if _, err := tx.Exec("DELETE FROM "+table+" WHERE project = ?", key.String()); err != nil {
				return zerr.With(zerr.Wrap(err, domain.ErrStoreDeleteFailed.Error()), "project_key", key.String())
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return zerr.Wrap(err, domain.ErrStoreDeleteFailed.Error())
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
