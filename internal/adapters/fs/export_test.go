package fs

import iofs "io/fs"

// NewWalkerWithWalkDir returns a Walker that traverses with walkDir instead of filepath.WalkDir.
func NewWalkerWithWalkDir(walkDir func(root string, fn iofs.WalkDirFunc) error) *Walker {
	return &Walker{walkDir: walkDir}
}
