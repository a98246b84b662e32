package app

import "errors"

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// CratePath points at an ro-crate-metadata.json file or a crate
	// directory containing one.
	CratePath string
	// OutputPath is where the build plan JSON is written. Empty means
	// standard output.
	OutputPath string
	// CatalogPath optionally overrides the embedded base-image catalog.
	CatalogPath string

	LogFormat string
	LogLevel  string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.CratePath == "" {
		return nil, errors.New("CratePath is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
