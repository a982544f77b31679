// Package filecache implements the persistent per-project file change cache.
package filecache

import (
	"maps"
	"slices"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/fcache/internal/core/domain"
	"go.trai.ch/fcache/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	msgClockRollback = "It seems like you went back in time - your system time is behind " +
		"the last recorded run time on this project. The cache will be flushed and rebuilt."
	msgFlushed       = "The file cache was successfully flushed."
	msgLastRunFailed = "Could not read the last run time of this project, assuming a first run."
	msgLoadFailed    = "Could not read the file cache of this project, starting with an empty cache."
)

// Engine holds the file cache of one project for the duration of one run.
// It is not safe for concurrent use.
type Engine struct {
	store    ports.CacheStore
	key      domain.ProjectKey
	now      int64
	snapshot domain.Snapshot
	changed  map[string]struct{}
	events   []domain.Event
}

// New opens the file cache of the project rooted at root.
//
// The current time is captured once and used for the whole run. If the clock is behind
// the last recorded run, or flush is set, the persisted cache is deleted and the engine
// starts empty. A failing delete is returned; failing reads are absorbed and reported
// through Events.
func New(store ports.CacheStore, clock clockwork.Clock, root string, flush bool) (*Engine, error) {
	e := &Engine{
		store:   store,
		key:     domain.DeriveProjectKey(root),
		now:     clock.Now().Unix(),
		changed: make(map[string]struct{}),
	}

	consistent, err := IsClockConsistent(store, e.key, e.now)
	if err != nil {
		e.emit(domain.EventLoadFailed, msgLastRunFailed, err)
	}
	if !consistent {
		e.emit(domain.EventClockRollback, msgClockRollback, nil)
		flush = true
	}

	if flush {
		if err := store.Delete(e.key); err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrCacheFlushFailed.Error()), "project_key", e.key.String())
		}
		e.snapshot = domain.Snapshot{}
		e.emit(domain.EventFlushed, msgFlushed, nil)
		return e, nil
	}

	e.snapshot = e.load()
	return e, nil
}

func (e *Engine) load() domain.Snapshot {
	snapshot, ok, err := e.store.Load(e.key)
	if err != nil {
		e.emit(domain.EventLoadFailed, msgLoadFailed, err)
		return domain.Snapshot{}
	}
	if !ok || snapshot == nil {
		return domain.Snapshot{}
	}
	return snapshot
}

func (e *Engine) emit(kind domain.EventKind, msg string, err error) {
	e.events = append(e.events, domain.Event{
		Kind:    kind,
		Key:     e.key,
		Message: msg,
		Err:     err,
	})
}

// Key returns the project key.
func (e *Engine) Key() domain.ProjectKey {
	return e.key
}

// Now returns the run time captured when the engine was opened, in epoch seconds.
func (e *Engine) Now() int64 {
	return e.now
}

// Events returns the signals recorded so far, oldest first.
func (e *Engine) Events() []domain.Event {
	return slices.Clone(e.events)
}

// TrackNewFiles starts tracking paths with the Unconfirmed marker,
// overwriting any marker they already had.
func (e *Engine) TrackNewFiles(paths ...string) {
	for _, path := range paths {
		e.snapshot[path] = domain.Unconfirmed
	}
}

// AddToChangedFiles records paths as changed during this run.
// The snapshot is not touched until Write.
func (e *Engine) AddToChangedFiles(paths ...string) {
	for _, path := range paths {
		e.changed[path] = struct{}{}
	}
}

// Changed returns the paths recorded as changed since the last Write, sorted.
func (e *Engine) Changed() []string {
	return slices.Sorted(maps.Keys(e.changed))
}

// LastCache returns a copy of the current snapshot, including entries added during this run.
func (e *Engine) LastCache() domain.Snapshot {
	return e.snapshot.Clone()
}

// Write reconciles the snapshot and persists it together with the run time.
//
// An Unconfirmed file, or a file not reported as changed, advances to the run time.
// A changed file keeps its old marker so that the next run still sees it as stale.
// The changed set is cleared only after both records were saved.
func (e *Engine) Write() error {
	for path, marker := range e.snapshot {
		if _, changed := e.changed[path]; marker == domain.Unconfirmed || !changed {
			e.snapshot[path] = e.now
		}
	}

	if err := e.store.Save(e.key, e.snapshot); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "project_key", e.key.String())
	}
	if err := e.store.SaveLastRun(e.key, e.now); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrCacheWriteFailed.Error()), "project_key", e.key.String())
	}

	clear(e.changed)
	return nil
}
