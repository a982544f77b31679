package domain

import (
	"maps"
	"slices"
)

// Unconfirmed is the marker of a file that is tracked but was never confirmed unchanged.
const Unconfirmed int64 = -1

// Snapshot maps a file path to its marker: either Unconfirmed or the epoch second
// at which the file was last known to be unchanged.
type Snapshot map[string]int64

// Clone returns an independent copy of the snapshot. A nil snapshot clones to an empty one.
func (s Snapshot) Clone() Snapshot {
	if s == nil {
		return Snapshot{}
	}
	return maps.Clone(s)
}

// Paths returns the tracked paths in lexical order.
func (s Snapshot) Paths() []string {
	return slices.Sorted(maps.Keys(s))
}

// IsUnconfirmed reports whether path is tracked with the Unconfirmed marker.
func (s Snapshot) IsUnconfirmed(path string) bool {
	marker, ok := s[path]
	return ok && marker == Unconfirmed
}
