// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package rocrate parses an RO-Crate metadata document (JSON-LD) into a
// resolved entity graph.
//
// # Why an arena instead of nested objects
//
// RO-Crate entities reference each other by identifier, not by nesting, and
// those references may be cyclic. The graph is therefore stored as an
// explicit arena: a map from identifier to entity, with every reference kept
// symbolic as an `@id` string. Nothing is ever inlined, so a cyclic crate
// cannot cause unbounded recursion anywhere downstream.
//
// # Shape of the input
//
// The loader expects the flattened form every RO-Crate uses in practice: a
// JSON object with an `@context` (string, list, or object) and a flat
// `@graph` list of node objects, each carrying an `@id` and usually a
// `@type`. The crate's root dataset is found through the metadata
// descriptor (the `ro-crate-metadata.json` node, whose `about` property
// names the root) with the conventional `./` identifier as a fallback.
//
// # Permissiveness
//
// Crates in the wild are heterogeneous. The loader fails only for the two
// contracted conditions - a document that is not parseable structured data
// (MalformedDocumentError) and a crate with no root dataset
// (MissingRootEntityError). Everything else degrades to a Warning: nodes
// without a usable `@id` are skipped, duplicate definitions merge with the
// last declaration winning per property.
package rocrate
