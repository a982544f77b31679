// Package fs provides file system adapters for walking and scanning project files.
package fs

import (
	"errors"
	"io/fs"
	"iter"
	"path/filepath"
)

// errSkipFile signals that a single file must not be yielded.
var errSkipFile = errors.New("skip file")

// IgnoreMatcher decides whether a path relative to the walk root is excluded.
type IgnoreMatcher interface {
	ShouldIgnore(relativePath string, isDir bool) bool
}

// WalkOptions controls which entries a walk yields.
type WalkOptions struct {
	// Ignores holds glob patterns matched against base names.
	Ignores []string
	// Matcher excludes paths relative to the root, typically from a .gitignore.
	Matcher IgnoreMatcher
	// SkipPaths holds absolute directories that are never entered.
	SkipPaths []string
}

// Walker provides file walking functionality.
type Walker struct {
	walkDir func(root string, fn fs.WalkDirFunc) error
}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{walkDir: filepath.WalkDir}
}

// WalkFiles yields all regular files below root, skipping .git, .jj and ignored entries.
// Yielded paths start with root. A walk error ends the sequence with a final
// ("", err) pair; files after the failing entry are never yielded.
func (w *Walker) WalkFiles(root string, opts WalkOptions) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		err := w.walkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}

			if path != root {
				switch skip := w.shouldSkip(root, path, d, opts); {
				case errors.Is(skip, errSkipFile):
					return nil
				case skip != nil:
					return skip
				}
			}

			if d.IsDir() {
				return nil
			}

			if !yield(path, nil) {
				return filepath.SkipAll
			}

			return nil
		})
		if err != nil {
			yield("", err)
		}
	}
}

// shouldSkip returns filepath.SkipDir for excluded directories, errSkipFile for excluded files
// and nil otherwise.
func (w *Walker) shouldSkip(root, path string, d fs.DirEntry, opts WalkOptions) error {
	name := d.Name()
	isDir := d.IsDir()

	skip := func() error {
		if isDir {
			return filepath.SkipDir
		}
		return errSkipFile
	}

	if isDir && (name == ".git" || name == ".jj") {
		return filepath.SkipDir
	}

	if isDir {
		for _, p := range opts.SkipPaths {
			if path == p {
				return filepath.SkipDir
			}
		}
	}

	for _, ignore := range opts.Ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			return skip()
		}
	}

	if opts.Matcher != nil {
		rel, err := filepath.Rel(root, path)
		if err == nil && opts.Matcher.ShouldIgnore(rel, isDir) {
			return skip()
		}
	}

	return nil
}
