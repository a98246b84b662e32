package config

import "context"

// Loader is the interface for a format-specific catalog loader.
type Loader interface {
	// Load reads the catalog from the given path and translates it into
	// the format-agnostic model. An empty path loads the embedded default
	// catalog.
	Load(ctx context.Context, path string) (*Catalog, error)
}
