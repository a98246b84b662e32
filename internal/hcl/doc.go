// Package hcl implements the config.Loader interface for HCL catalog files.
// It parses a catalog document against the internal/schema structs,
// evaluates each image's `ref` template once per supported version, and
// translates the result into the format-agnostic config.Catalog model. A
// default catalog is embedded in the binary.
package hcl
