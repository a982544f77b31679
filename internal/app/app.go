// Package app implements the application layer for fcache.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"
	"go.trai.ch/fcache/internal/core/domain"
	"go.trai.ch/fcache/internal/core/ports"
	"go.trai.ch/fcache/internal/engine/filecache"
	"go.trai.ch/fcache/internal/ui/report"
	"go.trai.ch/zerr"
)

// App runs the fcache use-cases against the configured store.
type App struct {
	configLoader ports.ConfigLoader
	opener       ports.StoreOpener
	scanner      ports.Scanner
	clock        clockwork.Clock
	logger       ports.Logger
	out          io.Writer
}

// New creates a new App instance writing reports to stdout.
func New(
	loader ports.ConfigLoader,
	opener ports.StoreOpener,
	scanner ports.Scanner,
	clock clockwork.Clock,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		opener:       opener,
		scanner:      scanner,
		clock:        clock,
		logger:       log,
		out:          os.Stdout,
	}
}

// WithOutput sets the writer reports are rendered to.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// StoreOptions overrides the store section of the project configuration.
type StoreOptions struct {
	Backend string
	Path    string
}

// StatusOptions configuration for the Status method.
type StatusOptions struct {
	Root          string
	Flush         bool
	ShowUnchanged bool
	Store         StoreOptions
}

// CommitOptions configuration for the Commit method.
type CommitOptions struct {
	Root  string
	Flush bool
	// Pending lists files the caller did not finish processing. Their markers are
	// kept so the next run reports them again. Relative paths are resolved
	// against Root.
	Pending []string
	Store   StoreOptions
}

// ShowOptions configuration for the Show method.
type ShowOptions struct {
	Root  string
	Store StoreOptions
}

// FlushOptions configuration for the Flush method.
type FlushOptions struct {
	Roots []string
	Store StoreOptions
}

// Status reports which files changed since the last commit without persisting anything.
// With Flush set the project is compared against an empty cache, previewing a flushed
// commit; the persisted cache is left alone.
func (a *App) Status(ctx context.Context, opts StatusOptions) error {
	return a.withProject(opts.Root, opts.Store, func(p project) error {
		eng, err := a.openEngine(p, false)
		if err != nil {
			return err
		}

		snapshot := eng.LastCache()
		if opts.Flush {
			snapshot = domain.Snapshot{}
		}

		statuses, err := a.scanner.Scan(ctx, p.root, p.cfg, snapshot)
		if err != nil {
			return err
		}

		return report.New(a.out).Status(p.root, statuses, opts.ShowUnchanged)
	})
}

// Commit scans the project, tracks new files, and persists the cache. Every file
// is confirmed at the run time except the pending ones, which keep their marker.
func (a *App) Commit(ctx context.Context, opts CommitOptions) error {
	return a.withProject(opts.Root, opts.Store, func(p project) error {
		eng, err := a.openEngine(p, opts.Flush)
		if err != nil {
			return err
		}

		statuses, err := a.scanner.Scan(ctx, p.root, p.cfg, eng.LastCache())
		if err != nil {
			return err
		}

		eng.TrackNewFiles(domain.FilterPaths(statuses, domain.FileNew)...)
		eng.AddToChangedFiles(pendingPaths(p.root, opts.Pending)...)

		if err := eng.Write(); err != nil {
			return err
		}

		summary := report.Summarize(statuses)
		a.logger.Info(fmt.Sprintf("committed %s (%s)", p.root, summary))
		return nil
	})
}

// Show prints the persisted cache of a project.
func (a *App) Show(_ context.Context, opts ShowOptions) error {
	return a.withProject(opts.Root, opts.Store, func(p project) error {
		eng, err := a.openEngine(p, false)
		if err != nil {
			return err
		}
		return report.New(a.out).Snapshot(p.root, eng.LastCache())
	})
}

// Flush deletes the persisted cache of every given root. Without roots the
// current directory is flushed. Roots sharing a store are deleted together.
func (a *App) Flush(_ context.Context, opts FlushOptions) error {
	roots := opts.Roots
	if len(roots) == 0 {
		roots = []string{""}
	}

	groups := make(map[domain.StoreConfig][]domain.ProjectKey)
	var order []domain.StoreConfig
	for _, r := range roots {
		p, err := a.resolveProject(r, opts.Store)
		if err != nil {
			return err
		}
		if _, ok := groups[p.cfg.Store]; !ok {
			order = append(order, p.cfg.Store)
		}
		groups[p.cfg.Store] = append(groups[p.cfg.Store], domain.DeriveProjectKey(p.root))
	}

	for _, storeCfg := range order {
		keys := groups[storeCfg]
		if err := a.deleteKeys(storeCfg, keys); err != nil {
			return err
		}
		for _, key := range keys {
			a.logger.Info(fmt.Sprintf("flushed file cache %s", key))
		}
	}

	return nil
}

func (a *App) deleteKeys(storeCfg domain.StoreConfig, keys []domain.ProjectKey) (err error) {
	store, err := a.opener.Open(storeCfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, store.Close())
	}()

	if delErr := store.Delete(keys...); delErr != nil {
		return zerr.Wrap(delErr, domain.ErrCacheFlushFailed.Error())
	}
	return nil
}

// project is a resolved project root with its effective configuration and open store.
type project struct {
	root  string
	cfg   domain.Config
	store ports.CacheStore
}

// withProject resolves root, opens its store, and runs fn. The store is closed afterwards.
func (a *App) withProject(root string, overrides StoreOptions, fn func(project) error) (err error) {
	p, err := a.resolveProject(root, overrides)
	if err != nil {
		return err
	}

	p.store, err = a.opener.Open(p.cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, p.store.Close())
	}()

	return fn(p)
}

func (a *App) resolveProject(root string, overrides StoreOptions) (project, error) {
	abs, err := absRoot(root)
	if err != nil {
		return project{}, err
	}

	cfg, err := a.configLoader.Load(abs)
	if err != nil {
		return project{}, zerr.Wrap(err, "failed to load configuration")
	}

	if overrides.Backend != "" {
		backend := domain.StoreBackend(overrides.Backend)
		if !backend.Valid() {
			return project{}, zerr.With(domain.ErrUnknownStoreBackend, "backend", overrides.Backend)
		}
		cfg.Store.Backend = backend
	}
	if overrides.Path != "" {
		path, err := filepath.Abs(overrides.Path)
		if err != nil {
			return project{}, zerr.Wrap(err, domain.ErrStoreOpenFailed.Error())
		}
		cfg.Store.Path = path
	}

	return project{root: abs, cfg: cfg}, nil
}

func (a *App) openEngine(p project, flush bool) (*filecache.Engine, error) {
	eng, err := filecache.New(p.store, a.clock, p.root, flush)
	if err != nil {
		return nil, err
	}
	a.logEvents(eng.Events())
	return eng, nil
}

func (a *App) logEvents(events []domain.Event) {
	for _, ev := range events {
		if ev.Kind.IsWarning() {
			a.logger.Warn(ev.Message)
			continue
		}
		a.logger.Info(ev.Message)
	}
}

// pendingPaths returns paths as absolute, cleaned paths. Relative paths are
// joined to root.
func pendingPaths(root string, paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		out = append(out, filepath.Clean(path))
	}
	return out
}

// absRoot returns root as an absolute, cleaned path. An empty root means the
// current working directory.
func absRoot(root string) (string, error) {
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
		}
		return wd, nil
	}

	abs, err := filepath.Abs(root)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrFailedToGetRoot.Error()), "root", root)
	}
	return abs, nil
}
