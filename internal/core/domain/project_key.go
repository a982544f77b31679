package domain

import (
	"crypto/md5" //nolint:gosec // identity digest, not a security boundary
	"encoding/hex"
)

// ProjectKey identifies a project inside a cache store.
// It is derived from the project root path and is the sole partition key of the store.
type ProjectKey string

// DeriveProjectKey returns the MD5 hex digest of the UTF-8 bytes of root.
// Byte-identical roots always yield the same key; no normalization is applied.
func DeriveProjectKey(root string) ProjectKey {
	//nolint:gosec // see import
	sum := md5.Sum([]byte(root))
	return ProjectKey(hex.EncodeToString(sum[:]))
}

// String returns the key as a plain string.
func (k ProjectKey) String() string {
	return string(k)
}
