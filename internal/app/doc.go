// Package app wires the crateplan pipeline together: it owns the logger,
// loads the base-image catalog, and runs the loader -> classifier ->
// reconciler -> generator stages over a single crate.
package app
