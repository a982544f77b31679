package backend

// NewOpenerWithCacheDir returns an Opener whose default store path lives below dir.
func NewOpenerWithCacheDir(dir string) *Opener {
	o := NewOpener()
	o.userCacheDir = func() (string, error) { return dir, nil }
	return o
}
