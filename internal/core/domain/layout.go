package domain

import "path/filepath"

const (
	// AppDirName is the name of the fcache directory inside the user cache directory.
	AppDirName = "fcache"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = ".fcache.yaml"

	// SnapshotDirName is the directory holding one snapshot file per project.
	SnapshotDirName = "snapshots"

	// RunDirName is the directory holding one last-run record per project.
	RunDirName = "runs"

	// SQLiteFileName is the name of the SQLite database file.
	SQLiteFileName = "fcache.db"

	// GitignoreFileName is the name of the git ignore file read by the scanner.
	GitignoreFileName = ".gitignore"

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// DefaultStorePath returns the default store directory below the user cache directory.
func DefaultStorePath(userCacheDir string) string {
	return filepath.Join(userCacheDir, AppDirName)
}

// SnapshotPath returns the snapshot file of key inside the store directory.
func SnapshotPath(storeDir string, key ProjectKey) string {
	return filepath.Join(storeDir, SnapshotDirName, key.String()+".json")
}

// RunPath returns the last-run record file of key inside the store directory.
func RunPath(storeDir string, key ProjectKey) string {
	return filepath.Join(storeDir, RunDirName, key.String()+".json")
}

// SQLitePath returns the database file inside the store directory.
func SQLitePath(storeDir string) string {
	return filepath.Join(storeDir, SQLiteFileName)
}
