// Package cas implements the file-backed cache store.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/fcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// Store implements ports.CacheStore with one JSON file per project and record kind.
type Store struct {
	dir string
	mu  sync.RWMutex
}

type runRecord struct {
	LastRun int64 `json:"last_run"`
}

// NewStore creates a Store rooted at dir, creating the directory layout if needed.
func NewStore(dir string) (*Store, error) {
	s := &Store{dir: filepath.Clean(dir)}
	for _, sub := range []string{domain.SnapshotDirName, domain.RunDirName} {
		if err := os.MkdirAll(filepath.Join(s.dir, sub), domain.DirPerm); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", s.dir)
		}
	}
	return s, nil
}

// Dir returns the store directory.
func (s *Store) Dir() string {
	return s.dir
}

// Load retrieves the snapshot of key.
func (s *Store) Load(key domain.ProjectKey) (domain.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var snapshot domain.Snapshot
	ok, err := readJSON(domain.SnapshotPath(s.dir, key), &snapshot)
	if err != nil || !ok {
		return nil, false, err
	}
	if snapshot == nil {
		snapshot = domain.Snapshot{}
	}
	return snapshot, true, nil
}

// Save stores the snapshot of key.
func (s *Store) Save(key domain.ProjectKey, snapshot domain.Snapshot) error {
	if snapshot == nil {
		snapshot = domain.Snapshot{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(domain.SnapshotPath(s.dir, key), snapshot)
}

// LoadLastRun retrieves the last-run timestamp of key.
func (s *Store) LoadLastRun(key domain.ProjectKey) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var rec runRecord
	ok, err := readJSON(domain.RunPath(s.dir, key), &rec)
	if err != nil || !ok {
		return 0, false, err
	}
	return rec.LastRun, true, nil
}

// SaveLastRun stores the last-run timestamp of key.
func (s *Store) SaveLastRun(key domain.ProjectKey, ts int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return writeJSON(domain.RunPath(s.dir, key), runRecord{LastRun: ts})
}

// Delete removes the snapshot and last-run files of every key.
func (s *Store) Delete(keys ...domain.ProjectKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs error
	for _, key := range keys {
		for _, path := range []string{domain.SnapshotPath(s.dir, key), domain.RunPath(s.dir, key)} {
			if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
				errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrStoreDeleteFailed.Error()), "path", path))
			}
		}
	}
	return errs
}

// Close is a no-op; the store keeps no open handles.
func (s *Store) Close() error {
	return nil
}

func readJSON(path string, target any) (bool, error) {
	//nolint:gosec // Path is constructed from the store directory and a hex key
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", path)
	}

	if err := json.Unmarshal(data, target); err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", path)
	}
	return true, nil
}

// writeJSON replaces path through a temporary file and a rename so readers never see a partial file.
func writeJSON(path string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", path)
	}
	return nil
}
