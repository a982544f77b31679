package fs

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"go.trai.ch/fcache/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Scanner implements ports.Scanner by walking the project and comparing modification
// times with the snapshot markers.
type Scanner struct {
	walker *Walker
}

// NewScanner creates a new Scanner.
func NewScanner(walker *Walker) *Scanner {
	return &Scanner{walker: walker}
}

// Scan classifies every file below root against snapshot.
// Snapshot keys are absolute, cleaned paths.
func (s *Scanner) Scan(
	ctx context.Context,
	root string,
	cfg domain.Config,
	snapshot domain.Snapshot,
) ([]domain.FileStatus, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrScanFailed.Error()), "root", root)
	}
	if !info.IsDir() {
		return nil, zerr.With(domain.ErrRootNotDirectory, "root", root)
	}

	opts, err := s.walkOptions(root, cfg)
	if err != nil {
		return nil, err
	}

	var paths []string
	for path, err := range s.walker.WalkFiles(root, opts) {
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrScanFailed.Error()), "root", root)
		}
		paths = append(paths, path)
	}

	statuses, err := s.stat(ctx, paths, snapshot)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		seen[path] = struct{}{}
	}
	statuses = append(statuses, removed(root, snapshot, seen)...)

	slices.SortFunc(statuses, func(a, b domain.FileStatus) int {
		return strings.Compare(a.Path, b.Path)
	})
	return statuses, nil
}

func (s *Scanner) walkOptions(root string, cfg domain.Config) (WalkOptions, error) {
	for _, pattern := range cfg.Ignore {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return WalkOptions{}, zerr.With(domain.ErrInvalidIgnorePattern, "pattern", pattern)
		}
	}

	opts := WalkOptions{Ignores: cfg.Ignore}
	if cfg.Store.Path != "" {
		if storeDir, err := filepath.Abs(cfg.Store.Path); err == nil {
			opts.SkipPaths = append(opts.SkipPaths, storeDir)
		}
	}

	if cfg.Gitignore {
		matcher, err := NewGitignoreMatcher(root)
		if err != nil {
			return WalkOptions{}, err
		}
		opts.Matcher = matcher
	}
	return opts, nil
}

// stat fetches modification times concurrently. Files that vanish during the scan are dropped.
func (s *Scanner) stat(ctx context.Context, paths []string, snapshot domain.Snapshot) ([]domain.FileStatus, error) {
	results := make([]*domain.FileStatus, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			info, err := os.Stat(path)
			if err != nil {
				if errors.Is(err, fs.ErrNotExist) {
					return nil
				}
				return zerr.With(zerr.Wrap(err, domain.ErrPathStatFailed.Error()), "path", path)
			}
			if info.IsDir() {
				return nil
			}

			modTime := info.ModTime().Unix()
			results[i] = &domain.FileStatus{
				Path:    path,
				ModTime: modTime,
				State:   domain.Classify(snapshot, path, modTime),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	statuses := make([]domain.FileStatus, 0, len(results))
	for _, st := range results {
		if st != nil {
			statuses = append(statuses, *st)
		}
	}
	return statuses, nil
}

// removed reports tracked files below root that no longer exist.
// Tracked files that still exist but were not walked (newly ignored) are left out.
func removed(root string, snapshot domain.Snapshot, seen map[string]struct{}) []domain.FileStatus {
	var out []domain.FileStatus
	prefix := root + string(filepath.Separator)
	for _, path := range snapshot.Paths() {
		if _, ok := seen[path]; ok {
			continue
		}
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		if _, err := os.Lstat(path); errors.Is(err, fs.ErrNotExist) {
			out = append(out, domain.FileStatus{Path: path, State: domain.FileRemoved})
		}
	}
	return out
}
