package domain

// FileState is the classification of a project file against a cache snapshot.
type FileState uint8

const (
	// FileUnchanged means the file is tracked and was last modified before its marker.
	FileUnchanged FileState = iota
	// FileNew means the file is not tracked yet.
	FileNew
	// FileChanged means the file was modified at or after its marker, or was never confirmed.
	FileChanged
	// FileRemoved means the file is tracked but no longer exists on disk.
	FileRemoved
)

// String returns the name of the state.
func (s FileState) String() string {
	switch s {
	case FileUnchanged:
		return "unchanged"
	case FileNew:
		return "new"
	case FileChanged:
		return "changed"
	case FileRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// FileStatus is the result of checking one file against a snapshot.
type FileStatus struct {
	Path string
	// ModTime is the file modification time in epoch seconds, zero for removed files.
	ModTime int64
	State   FileState
}

// Classify returns the state of a file with modification time modTime against snapshot.
// A file is changed when its marker is Unconfirmed or not older than modTime.
// Markers have one-second resolution, so an edit in the second a run was
// confirmed counts as changed.
func Classify(snapshot Snapshot, path string, modTime int64) FileState {
	marker, ok := snapshot[path]
	switch {
	case !ok:
		return FileNew
	case marker == Unconfirmed, modTime >= marker:
		return FileChanged
	default:
		return FileUnchanged
	}
}

// FilterPaths returns the paths of the statuses in the given state, preserving order.
func FilterPaths(statuses []FileStatus, state FileState) []string {
	var paths []string
	for _, st := range statuses {
		if st.State == state {
			paths = append(paths, st.Path)
		}
	}
	return paths
}
