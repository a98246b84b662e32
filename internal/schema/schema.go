package schema

import "github.com/hashicorp/hcl/v2"

// DefaultOS represents the `default_os` block of a catalog file.
type DefaultOS struct {
	Distribution string `hcl:"distribution"`
	Version      string `hcl:"version"`
}

// Image represents an `image` block: the supported versions of one
// distribution and the template producing their image references. The `ref`
// attribute stays an expression so the loader can evaluate it once per
// version with `version` and `distribution` variables in scope.
type Image struct {
	Distribution   string         `hcl:"distribution,label"`
	Versions       []string       `hcl:"versions"`
	DefaultVersion string         `hcl:"default_version,optional"`
	Ref            hcl.Expression `hcl:"ref"`
}

// CatalogConfig represents the top-level structure of a catalog file.
type CatalogConfig struct {
	DefaultOS *DefaultOS `hcl:"default_os,block"`
	Images    []*Image   `hcl:"image,block"`
	Body      hcl.Body   `hcl:",remain"`
}
