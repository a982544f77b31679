// Package config provides the configuration loader for fcache.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/fcache/internal/core/domain"
	"go.trai.ch/fcache/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// SupportedVersion is the configuration file version understood by the loader.
const SupportedVersion = "1"

// Loader implements ports.ConfigLoader using a YAML file in the project root.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads .fcache.yaml from root. A missing file yields domain.DefaultConfig().
// A relative store path is resolved against root.
func (l *Loader) Load(root string) (domain.Config, error) {
	cfg := domain.DefaultConfig()
	configPath := filepath.Join(root, domain.ConfigFileName)

	var file Configfile
	found, err := readAndUnmarshalYAML(configPath, &file)
	if err != nil {
		return domain.Config{}, err
	}
	if !found {
		return cfg, nil
	}

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("unsupported version %q in %s, reading it as version %s",
			file.Version, domain.ConfigFileName, SupportedVersion))
	}

	if file.Store.Backend != "" {
		backend := domain.StoreBackend(file.Store.Backend)
		if !backend.Valid() {
			err := zerr.With(domain.ErrUnknownStoreBackend, "backend", file.Store.Backend)
			return domain.Config{}, zerr.With(err, "config_path", configPath)
		}
		cfg.Store.Backend = backend
	}

	if file.Store.Path != "" {
		cfg.Store.Path = resolvePath(root, file.Store.Path)
	}

	cfg.Ignore = file.Ignore
	if file.Gitignore != nil {
		cfg.Gitignore = *file.Gitignore
	}

	return cfg, nil
}

func resolvePath(root, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(root, path)
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
// It reports false when the file does not exist.
func readAndUnmarshalYAML[T any](configPath string, target *T) (bool, error) {
	// #nosec G304 -- configPath is the project root joined with a fixed name
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "config_path", configPath)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return false, zerr.With(zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error()), "config_path", configPath)
	}

	return true, nil
}
