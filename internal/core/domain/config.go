package domain

// StoreBackend names a cache store implementation.
type StoreBackend string

const (
	// BackendFile stores snapshots as JSON files, one per project.
	BackendFile StoreBackend = "file"
	// BackendSQLite stores snapshots in an embedded SQLite database.
	BackendSQLite StoreBackend = "sqlite"
	// BackendMemory keeps snapshots in process memory only.
	BackendMemory StoreBackend = "memory"
)

// Valid reports whether b is a known backend.
func (b StoreBackend) Valid() bool {
	switch b {
	case BackendFile, BackendSQLite, BackendMemory:
		return true
	default:
		return false
	}
}

// StoreConfig selects and locates the cache store.
type StoreConfig struct {
	Backend StoreBackend
	// Path is the store directory. Empty means the default location.
	Path string
}

// Config is the resolved configuration of a project.
type Config struct {
	Store StoreConfig
	// Ignore holds glob patterns matched against file and directory base names.
	Ignore []string
	// Gitignore enables matching against the project's .gitignore.
	Gitignore bool
}

// DefaultConfig returns the configuration used when a project has no config file.
func DefaultConfig() Config {
	return Config{
		Store:     StoreConfig{Backend: BackendFile},
		Gitignore: true,
	}
}
