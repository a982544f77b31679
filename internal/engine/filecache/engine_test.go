package filecache_test

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/fcache/internal/adapters/memstore"
	"go.trai.ch/fcache/internal/core/domain"
	"go.trai.ch/fcache/internal/core/ports/mocks"
	"go.trai.ch/fcache/internal/engine/filecache"
	"go.uber.org/mock/gomock"
)

const projectRoot = "/work/project"

var t0 = time.Unix(1_700_000_000, 0)

func eventKinds(events []domain.Event) []domain.EventKind {
	kinds := make([]domain.EventKind, 0, len(events))
	for _, ev := range events {
		kinds = append(kinds, ev.Kind)
	}
	return kinds
}

func TestEngine_FlushClearsState(t *testing.T) {
	store := memstore.NewStore()
	key := domain.DeriveProjectKey(projectRoot)
	require.NoError(t, store.Save(key, domain.Snapshot{"old.c": 42}))
	require.NoError(t, store.SaveLastRun(key, 42))

	e, err := filecache.New(store, clockwork.NewFakeClockAt(t0), projectRoot, true)
	require.NoError(t, err)

	assert.Empty(t, e.LastCache())
	assert.Equal(t, []domain.EventKind{domain.EventFlushed}, eventKinds(e.Events()))

	_, ok, err := store.Load(key)
	require.NoError(t, err)
	assert.False(t, ok, "flush must delete the persisted snapshot")

	_, ok, err = store.LoadLastRun(key)
	require.NoError(t, err)
	assert.False(t, ok, "flush must delete the last run record")
}

func TestEngine_TrackNewFilesUsesSentinel(t *testing.T) {
	e, err := filecache.New(memstore.NewStore(), clockwork.NewFakeClockAt(t0), projectRoot, true)
	require.NoError(t, err)

	e.TrackNewFiles("a.c", "b.c")

	cache := e.LastCache()
	assert.Equal(t, domain.Unconfirmed, cache["a.c"])
	assert.Equal(t, domain.Unconfirmed, cache["b.c"])
}

func TestEngine_TrackNewFilesOverwritesMarker(t *testing.T) {
	store := memstore.NewStore()
	require.NoError(t, store.Save(domain.DeriveProjectKey(projectRoot), domain.Snapshot{"a.c": 10}))

	e, err := filecache.New(store, clockwork.NewFakeClockAt(t0), projectRoot, false)
	require.NoError(t, err)
	require.Equal(t, int64(10), e.LastCache()["a.c"])

	e.TrackNewFiles("a.c", "a.c")
	assert.Equal(t, domain.Unconfirmed, e.LastCache()["a.c"])
}

func TestEngine_WriteAdvancesUnchangedFiles(t *testing.T) {
	store := memstore.NewStore()
	key := domain.DeriveProjectKey(projectRoot)
	earlier := t0.Add(-time.Hour).Unix()
	require.NoError(t, store.Save(key, domain.Snapshot{"old.c": earlier}))

	e, err := filecache.New(store, clockwork.NewFakeClockAt(t0), projectRoot, false)
	require.NoError(t, err)
	e.TrackNewFiles("new.c")

	require.NoError(t, e.Write())

	cache := e.LastCache()
	assert.Equal(t, t0.Unix(), cache["old.c"])
	assert.Equal(t, t0.Unix(), cache["new.c"])
	assert.Greater(t, cache["old.c"], earlier)

	persisted, ok, err := store.Load(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, cache, persisted)

	lastRun, ok, err := store.LoadLastRun(key)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, t0.Unix(), lastRun)
}

func TestEngine_WriteFreezesChangedFiles(t *testing.T) {
	store := memstore.NewStore()
	key := domain.DeriveProjectKey(projectRoot)
	marker := t0.Add(-time.Minute).Unix()
	require.NoError(t, store.Save(key, domain.Snapshot{"a.c": marker, "b.c": marker}))

	e, err := filecache.New(store, clockwork.NewFakeClockAt(t0), projectRoot, false)
	require.NoError(t, err)

	e.AddToChangedFiles("a.c")
	assert.Equal(t, marker, e.LastCache()["a.c"], "marking changed must not touch the snapshot")

	require.NoError(t, e.Write())

	cache := e.LastCache()
	assert.Equal(t, marker, cache["a.c"])
	assert.Equal(t, t0.Unix(), cache["b.c"])
}

func TestEngine_SentinelWinsOverChanged(t *testing.T) {
	e, err := filecache.New(memstore.NewStore(), clockwork.NewFakeClockAt(t0), projectRoot, true)
	require.NoError(t, err)

	e.TrackNewFiles("a.c")
	e.AddToChangedFiles("a.c")
	require.NoError(t, e.Write())

	assert.Equal(t, t0.Unix(), e.LastCache()["a.c"])
}

func TestEngine_ChangedPathsOutsideSnapshotAreIgnored(t *testing.T) {
	e, err := filecache.New(memstore.NewStore(), clockwork.NewFakeClockAt(t0), projectRoot, true)
	require.NoError(t, err)

	e.AddToChangedFiles("ghost.c")
	require.NoError(t, e.Write())

	assert.NotContains(t, e.LastCache(), "ghost.c")
}

func TestEngine_WriteClearsChangedSet(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	e, err := filecache.New(memstore.NewStore(), clock, projectRoot, true)
	require.NoError(t, err)

	e.TrackNewFiles("a.c")
	require.NoError(t, e.Write())

	e.AddToChangedFiles("b.c", "a.c", "a.c")
	assert.Equal(t, []string{"a.c", "b.c"}, e.Changed())

	require.NoError(t, e.Write())
	assert.Empty(t, e.Changed())
}

func TestEngine_RunTimeIsCapturedOnce(t *testing.T) {
	clock := clockwork.NewFakeClockAt(t0)
	e, err := filecache.New(memstore.NewStore(), clock, projectRoot, true)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	e.TrackNewFiles("a.c")
	require.NoError(t, e.Write())

	assert.Equal(t, t0.Unix(), e.Now())
	assert.Equal(t, t0.Unix(), e.LastCache()["a.c"])
}

func TestEngine_LastCacheDoesNotAlias(t *testing.T) {
	e, err := filecache.New(memstore.NewStore(), clockwork.NewFakeClockAt(t0), projectRoot, true)
	require.NoError(t, err)
	e.TrackNewFiles("a.c")

	cache := e.LastCache()
	cache["a.c"] = 7
	cache["z.c"] = 7

	assert.Equal(t, domain.Snapshot{"a.c": domain.Unconfirmed}, e.LastCache())
}

func TestEngine_RoundTripAcrossInstances(t *testing.T) {
	store := memstore.NewStore()
	clock := clockwork.NewFakeClockAt(t0)

	a, err := filecache.New(store, clock, projectRoot, true)
	require.NoError(t, err)
	a.TrackNewFiles("a.c", "b.c")
	require.NoError(t, a.Write())

	clock.Advance(time.Second)

	b, err := filecache.New(store, clock, projectRoot, false)
	require.NoError(t, err)
	assert.Equal(t, a.LastCache(), b.LastCache())
	assert.Empty(t, b.Events())
}

func TestEngine_ClockRollbackForcesFlush(t *testing.T) {
	store := memstore.NewStore()
	key := domain.DeriveProjectKey(projectRoot)
	require.NoError(t, store.Save(key, domain.Snapshot{"a.c": t0.Unix()}))
	require.NoError(t, store.SaveLastRun(key, t0.Add(time.Hour).Unix()))

	e, err := filecache.New(store, clockwork.NewFakeClockAt(t0), projectRoot, false)
	require.NoError(t, err)

	assert.Empty(t, e.LastCache())
	assert.Equal(t,
		[]domain.EventKind{domain.EventClockRollback, domain.EventFlushed},
		eventKinds(e.Events()),
	)
	assert.True(t, e.Events()[0].Kind.IsWarning())
	assert.Equal(t, key, e.Events()[0].Key)

	_, ok, err := store.Load(key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestEngine_DifferentRootsDoNotShareState(t *testing.T) {
	store := memstore.NewStore()
	clock := clockwork.NewFakeClockAt(t0)

	a, err := filecache.New(store, clock, "/project/a", true)
	require.NoError(t, err)
	a.TrackNewFiles("a.c")
	require.NoError(t, a.Write())

	b, err := filecache.New(store, clock, "/project/b", false)
	require.NoError(t, err)
	assert.Empty(t, b.LastCache())
}

// Mirrors a full two-run session: bootstrap, one changed file, then a later reopen.
func TestEngine_Scenario(t *testing.T) {
	store := memstore.NewStore()
	clock := clockwork.NewFakeClockAt(t0)
	const root = "P"

	first, err := filecache.New(store, clock, root, true)
	require.NoError(t, err)
	first.TrackNewFiles("a.c", "b.c")
	require.NoError(t, first.Write())

	persisted, ok, err := store.Load(domain.DeriveProjectKey(root))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, domain.Snapshot{"a.c": t0.Unix(), "b.c": t0.Unix()}, persisted)

	clock.Advance(time.Second)
	t1 := clock.Now().Unix()

	second, err := filecache.New(store, clock, root, false)
	require.NoError(t, err)
	old := second.LastCache()
	assert.Equal(t, t0.Unix(), old["a.c"])
	second.AddToChangedFiles("a.c")
	require.NoError(t, second.Write())

	third, err := filecache.New(store, clock, root, false)
	require.NoError(t, err)
	latest := third.LastCache()
	assert.Equal(t, old["a.c"], latest["a.c"])
	assert.Equal(t, t1, latest["b.c"])
	assert.Greater(t, latest["b.c"], old["b.c"])
}

func TestEngine_LoadFailureDegradesToEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCacheStore(ctrl)
	key := domain.DeriveProjectKey(projectRoot)
	loadErr := errors.New("corrupt snapshot")

	store.EXPECT().LoadLastRun(key).Return(int64(0), false, nil)
	store.EXPECT().Load(key).Return(nil, false, loadErr)

	e, err := filecache.New(store, clockwork.NewFakeClockAt(t0), projectRoot, false)
	require.NoError(t, err)

	assert.Empty(t, e.LastCache())
	events := e.Events()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventLoadFailed, events[0].Kind)
	assert.ErrorIs(t, events[0].Err, loadErr)
}

func TestEngine_LastRunFailureAssumesConsistent(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCacheStore(ctrl)
	key := domain.DeriveProjectKey(projectRoot)

	store.EXPECT().LoadLastRun(key).Return(int64(0), false, errors.New("unreadable"))
	store.EXPECT().Load(key).Return(domain.Snapshot{"a.c": 5}, true, nil)

	e, err := filecache.New(store, clockwork.NewFakeClockAt(t0), projectRoot, false)
	require.NoError(t, err)

	assert.Equal(t, domain.Snapshot{"a.c": 5}, e.LastCache())
	assert.Equal(t, []domain.EventKind{domain.EventLoadFailed}, eventKinds(e.Events()))
}

func TestEngine_FlushFailureIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockCacheStore(ctrl)
	key := domain.DeriveProjectKey(projectRoot)
	deleteErr := errors.New("permission denied")

	store.EXPECT().LoadLastRun(key).Return(int64(0), false, nil)
	store.EXPECT().Delete(key).Return(deleteErr)

	e, err := filecache.New(store, clockwork.NewFakeClockAt(t0), projectRoot, true)
	require.Error(t, err)
	assert.Nil(t, e)
	assert.ErrorIs(t, err, deleteErr)
	assert.ErrorContains(t, err, domain.ErrCacheFlushFailed.Error())
}

func TestEngine_WriteFailureIsReturned(t *testing.T) {
	tests := []struct {
		name  string
		setup func(store *mocks.MockCacheStore, key domain.ProjectKey, cause error)
	}{
		{
			name: "snapshot save fails",
			setup: func(store *mocks.MockCacheStore, key domain.ProjectKey, cause error) {
				store.EXPECT().Save(key, gomock.Any()).Return(cause)
			},
		},
		{
			name: "last run save fails",
			setup: func(store *mocks.MockCacheStore, key domain.ProjectKey, cause error) {
				store.EXPECT().Save(key, gomock.Any()).Return(nil)
				store.EXPECT().SaveLastRun(key, t0.Unix()).Return(cause)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			store := mocks.NewMockCacheStore(ctrl)
			key := domain.DeriveProjectKey(projectRoot)
			cause := errors.New("disk full")

			store.EXPECT().LoadLastRun(key).Return(int64(0), false, nil)
			store.EXPECT().Load(key).Return(domain.Snapshot{"a.c": 1}, true, nil)
			tt.setup(store, key, cause)

			e, err := filecache.New(store, clockwork.NewFakeClockAt(t0), projectRoot, false)
			require.NoError(t, err)
			e.AddToChangedFiles("a.c")

			err = e.Write()
			require.Error(t, err)
			assert.ErrorIs(t, err, cause)
			assert.ErrorContains(t, err, domain.ErrCacheWriteFailed.Error())
			assert.Equal(t, []string{"a.c"}, e.Changed(), "changed set must survive a failed write")
		})
	}
}
