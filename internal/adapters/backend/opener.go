// Package backend selects and opens the configured cache store.
package backend

import (
	"os"

	"go.trai.ch/fcache/internal/adapters/cas"
	"go.trai.ch/fcache/internal/adapters/memstore"
	"go.trai.ch/fcache/internal/adapters/sqlite"
	"go.trai.ch/fcache/internal/core/domain"
	"go.trai.ch/fcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Opener implements ports.StoreOpener.
type Opener struct {
	userCacheDir func() (string, error)
	memory       *memstore.Store
}

// NewOpener creates an Opener that resolves the default store path from the user cache directory.
func NewOpener() *Opener {
	return &Opener{
		userCacheDir: os.UserCacheDir,
		memory:       memstore.NewStore(),
	}
}

// Open returns the store selected by cfg. The memory backend returns the same
// process-wide store on every call.
func (o *Opener) Open(cfg domain.StoreConfig) (ports.CacheStore, error) {
	backend := cfg.Backend
	if backend == "" {
		backend = domain.BackendFile
	}

	switch backend {
	case domain.BackendMemory:
		return o.memory, nil
	case domain.BackendFile:
		dir, err := o.resolveDir(cfg.Path)
		if err != nil {
			return nil, err
		}
		return cas.NewStore(dir)
	case domain.BackendSQLite:
		dir, err := o.resolveDir(cfg.Path)
		if err != nil {
			return nil, err
		}
		return sqlite.NewStore(domain.SQLitePath(dir))
	default:
		return nil, zerr.With(domain.ErrUnknownStoreBackend, "backend", string(backend))
	}
}

func (o *Opener) resolveDir(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	cacheDir, err := o.userCacheDir()
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrStoreOpenFailed.Error())
	}
	return domain.DefaultStorePath(cacheDir), nil
}
