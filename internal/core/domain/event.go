package domain

// EventKind classifies a signal emitted by the file cache engine.
type EventKind uint8

const (
	// EventFlushed reports that the persisted cache of a project was discarded.
	EventFlushed EventKind = iota + 1
	// EventClockRollback reports that the system clock is behind the last recorded run.
	EventClockRollback
	// EventLoadFailed reports that a store read failed and the engine fell back to an empty state.
	EventLoadFailed
)

// String returns the name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventFlushed:
		return "flushed"
	case EventClockRollback:
		return "clock_rollback"
	case EventLoadFailed:
		return "load_failed"
	default:
		return "unknown"
	}
}

// IsWarning reports whether the event should be surfaced as a warning.
func (k EventKind) IsWarning() bool {
	return k == EventClockRollback || k == EventLoadFailed
}

// Event is a structured signal produced while opening or writing a file cache.
// The host decides how to surface it.
type Event struct {
	Kind    EventKind
	Key     ProjectKey
	Message string
	// Err is the absorbed cause, set for EventLoadFailed.
	Err error
}
