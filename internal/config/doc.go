// Package config defines the format-agnostic model of the base-image
// catalog, along with the Loader interface for reading it from a
// configuration source. The catalog is the fixed, documented mapping from
// (distribution, version) pairs to container base image references, plus
// the documented default OS applied when a crate declares none. The
// concrete HCL implementation lives in the internal/hcl package.
package config
