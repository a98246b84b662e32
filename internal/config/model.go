package config

import "strings"

// Catalog is the unified, format-agnostic representation of the base-image
// catalog. It is immutable once loaded.
type Catalog struct {
	// Default names the OS used when a crate declares no OS requirement.
	Default OSDefault
	// Images maps normalized distribution names to their image sets.
	Images map[string]*Image
}

// OSDefault is the documented default operating system.
type OSDefault struct {
	Distribution string
	Version      string
}

// Image is the catalog entry for one distribution.
type Image struct {
	// Distribution is the normalized distribution name.
	Distribution string
	// DefaultVersion is used when a requirement names the distribution
	// without a version.
	DefaultVersion string
	// Refs maps each supported version to its fully evaluated image
	// reference.
	Refs map[string]string
	// Versions preserves the declared version order for display.
	Versions []string
}

// Resolve maps a (distribution, version) pair to a base image reference.
// An empty version selects the distribution's default version. The second
// return value is false when the pair is not in the catalog.
func (c *Catalog) Resolve(distribution, version string) (string, bool) {
	img, ok := c.Images[strings.ToLower(strings.TrimSpace(distribution))]
	if !ok {
		return "", false
	}
	if version == "" {
		version = img.DefaultVersion
	}
	ref, ok := img.Refs[version]
	return ref, ok
}
