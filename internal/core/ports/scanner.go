package ports

import (
	"context"

	"go.trai.ch/fcache/internal/core/domain"
)

// Scanner checks the files of a project against a cache snapshot.
//
//go:generate mockgen -source=scanner.go -destination=mocks/mock_scanner.go -package=mocks
type Scanner interface {
	// Scan walks root and classifies every file against snapshot.
	// Tracked files missing from disk are reported as domain.FileRemoved.
	// The result is sorted by path.
	Scan(ctx context.Context, root string, cfg domain.Config, snapshot domain.Snapshot) ([]domain.FileStatus, error)
}
