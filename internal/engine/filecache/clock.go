package filecache

import (
	"go.trai.ch/fcache/internal/core/domain"
	"go.trai.ch/fcache/internal/core/ports"
)

// IsClockConsistent reports whether now is not earlier than the last recorded run of key.
// A project without a last-run record is consistent. A read error is returned together
// with true so callers can degrade to first-run behavior.
func IsClockConsistent(store ports.CacheStore, key domain.ProjectKey, now int64) (bool, error) {
	last, ok, err := store.LoadLastRun(key)
	if err != nil {
		return true, err
	}
	if !ok {
		return true, nil
	}
	return now >= last, nil
}
