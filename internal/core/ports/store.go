// Package ports defines the core interfaces for the application.
package ports

import "go.trai.ch/fcache/internal/core/domain"

// CacheStore persists file cache snapshots and last-run records, partitioned by project key.
// Every call is individually atomic; callers do not compose calls into transactions.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type CacheStore interface {
	// Load returns the persisted snapshot of key.
	// The boolean is false when no snapshot exists.
	Load(key domain.ProjectKey) (domain.Snapshot, bool, error)

	// Save replaces the persisted snapshot of key.
	Save(key domain.ProjectKey, snapshot domain.Snapshot) error

	// LoadLastRun returns the last-run timestamp of key in epoch seconds.
	// The boolean is false when no record exists.
	LoadLastRun(key domain.ProjectKey) (int64, bool, error)

	// SaveLastRun replaces the last-run timestamp of key.
	SaveLastRun(key domain.ProjectKey, ts int64) error

	// Delete removes the snapshot and the last-run record of every key.
	// Missing records are not an error.
	Delete(keys ...domain.ProjectKey) error

	// Close releases resources held by the store.
	Close() error
}

// StoreOpener opens the cache store described by a store configuration.
type StoreOpener interface {
	// Open returns a ready store. The caller must Close it.
	Open(cfg domain.StoreConfig) (CacheStore, error)
}
