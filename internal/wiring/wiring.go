// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/fcache/internal/adapters/backend"
	_ "go.trai.ch/fcache/internal/adapters/config"
	_ "go.trai.ch/fcache/internal/adapters/fs"
	_ "go.trai.ch/fcache/internal/adapters/logger"
	// Register app and engine nodes.
	_ "go.trai.ch/fcache/internal/app"
	_ "go.trai.ch/fcache/internal/engine/filecache"
)
