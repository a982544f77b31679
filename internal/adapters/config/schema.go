package config

// Configfile represents the structure of the .fcache.yaml configuration file.
type Configfile struct {
	Version   string   `yaml:"version"`
	Store     StoreDTO `yaml:"store"`
	Ignore    []string `yaml:"ignore"`
	Gitignore *bool    `yaml:"gitignore"`
}

// StoreDTO represents the store section of the configuration.
type StoreDTO struct {
	Backend string `yaml:"backend"`
	Path    string `yaml:"path"`
}
