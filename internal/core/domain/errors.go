package domain

import "go.trai.ch/zerr"

var (
	// ErrStoreCreateFailed is returned when the store directory cannot be created.
	ErrStoreCreateFailed = zerr.New("failed to create cache store directory")

	// ErrStoreOpenFailed is returned when the cache store cannot be opened.
	ErrStoreOpenFailed = zerr.New("failed to open cache store")

	// ErrStoreReadFailed is returned when a snapshot or last-run record cannot be read.
	ErrStoreReadFailed = zerr.New("failed to read cache store")

	// ErrStoreUnmarshalFailed is returned when persisted cache data cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal cache data")

	// ErrStoreMarshalFailed is returned when cache data cannot be encoded.
	ErrStoreMarshalFailed = zerr.New("failed to marshal cache data")

	// ErrStoreWriteFailed is returned when a snapshot or last-run record cannot be written.
	ErrStoreWriteFailed = zerr.New("failed to write cache store")

	// ErrStoreDeleteFailed is returned when persisted records cannot be removed.
	ErrStoreDeleteFailed = zerr.New("failed to delete cache records")

	// ErrUnknownStoreBackend is returned when the configured store backend is not supported.
	ErrUnknownStoreBackend = zerr.New("unknown store backend, expected 'file', 'sqlite' or 'memory'")

	// ErrCacheFlushFailed is returned when a forced flush cannot remove the persisted cache.
	ErrCacheFlushFailed = zerr.New("failed to flush file cache")

	// ErrCacheWriteFailed is returned when the reconciled snapshot cannot be persisted.
	ErrCacheWriteFailed = zerr.New("failed to write file cache")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrInvalidIgnorePattern is returned when an ignore glob is malformed.
	ErrInvalidIgnorePattern = zerr.New("invalid ignore pattern")

	// ErrFailedToGetRoot is returned when the project root path cannot be determined.
	ErrFailedToGetRoot = zerr.New("failed to get absolute path of project root")

	// ErrRootNotDirectory is returned when the project root is not a directory.
	ErrRootNotDirectory = zerr.New("project root is not a directory")

	// ErrGitignoreReadFailed is returned when the project's .gitignore cannot be read.
	ErrGitignoreReadFailed = zerr.New("failed to read .gitignore")

	// ErrScanFailed is returned when the project tree cannot be scanned.
	ErrScanFailed = zerr.New("failed to scan project files")

	// ErrPathStatFailed is returned when stating a path fails.
	ErrPathStatFailed = zerr.New("failed to stat path")
)
