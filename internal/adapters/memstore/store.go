// Package memstore implements an in-process cache store.
package memstore

import (
	"sync"

	"go.trai.ch/fcache/internal/core/domain"
)

// Store implements ports.CacheStore in memory. Snapshots are copied on the way in and out.
type Store struct {
	mu        sync.RWMutex
	snapshots map[domain.ProjectKey]domain.Snapshot
	runs      map[domain.ProjectKey]int64
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		snapshots: make(map[domain.ProjectKey]domain.Snapshot),
		runs:      make(map[domain.ProjectKey]int64),
	}
}

// Load returns a copy of the snapshot of key.
func (s *Store) Load(key domain.ProjectKey) (domain.Snapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot, ok := s.snapshots[key]
	if !ok {
		return nil, false, nil
	}
	return snapshot.Clone(), true, nil
}

// Save stores a copy of snapshot under key.
func (s *Store) Save(key domain.ProjectKey, snapshot domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshots[key] = snapshot.Clone()
	return nil
}

// LoadLastRun returns the last-run timestamp of key.
func (s *Store) LoadLastRun(key domain.ProjectKey) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ts, ok := s.runs[key]
	return ts, ok, nil
}

// SaveLastRun stores the last-run timestamp of key.
func (s *Store) SaveLastRun(key domain.ProjectKey, ts int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.runs[key] = ts
	return nil
}

// Delete removes every record of the given keys.
func (s *Store) Delete(keys ...domain.ProjectKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range keys {
		delete(s.snapshots, key)
		delete(s.runs, key)
	}
	return nil
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}
