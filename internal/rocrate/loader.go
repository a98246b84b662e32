// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package rocrate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/specialistvlad/crateplan/internal/ctxlog"
)

const (
	// descriptorName is the well-known identifier of the crate's metadata
	// descriptor entity.
	descriptorName = "ro-crate-metadata.json"
	// rootConvention is the conventional identifier of the root dataset.
	rootConvention = "./"
)

// Loader parses RO-Crate metadata documents into entity graphs.
type Loader struct{}

// NewLoader returns a Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses the raw bytes of an ro-crate-metadata.json document into a
// resolved entity graph. It has no side effects beyond the returned graph
// and warnings.
func (l *Loader) Load(ctx context.Context, data []byte) (*Graph, []Warning, error) {
	logger := ctxlog.FromContext(ctx)

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, nil, &MalformedDocumentError{Reason: "document is not a JSON object", Err: err}
	}

	if _, ok := doc["@context"]; !ok {
		return nil, nil, &MalformedDocumentError{Reason: "document has no @context"}
	}

	rawGraph, ok := doc["@graph"]
	if !ok {
		return nil, nil, &MalformedDocumentError{Reason: "document has no @graph"}
	}

	var rawNodes []map[string]json.RawMessage
	if err := json.Unmarshal(rawGraph, &rawNodes); err != nil {
		return nil, nil, &MalformedDocumentError{Reason: "@graph is not a list of node objects", Err: err}
	}

	g := &Graph{entities: make(map[string]*Entity, len(rawNodes))}
	var warnings []Warning

	for i, raw := range rawNodes {
		id, ok := nodeID(raw)
		if !ok {
			warnings = append(warnings, Warning{
				Code:    "skipped-node",
				Message: fmt.Sprintf("node at @graph index %d has no usable @id", i),
			})
			continue
		}

		entity, exists := g.entities[id]
		if !exists {
			entity = &Entity{ID: id, Props: make(map[string][]Value)}
			g.entities[id] = entity
			g.order = append(g.order, id)
		}

		// Repeated definitions merge property-wise; the last declaration of
		// a property wins, first declaration position is kept.
		for key, rawVal := range raw {
			switch key {
			case "@id":
				// already handled
			case "@type":
				entity.Types = decodeTypes(rawVal)
			default:
				entity.Props[key] = decodeValues(rawVal)
			}
		}
	}

	rootID, err := findRoot(g)
	if err != nil {
		return nil, nil, err
	}
	g.RootID = rootID

	logger.Debug("Crate graph loaded.",
		"entity_count", g.Len(),
		"root_id", g.RootID,
		"warning_count", len(warnings),
	)
	return g, warnings, nil
}

// nodeID extracts the node's @id. A missing, empty, or non-string @id makes
// the node unusable.
func nodeID(raw map[string]json.RawMessage) (string, bool) {
	rawID, ok := raw["@id"]
	if !ok {
		return "", false
	}
	var id string
	if err := json.Unmarshal(rawID, &id); err != nil || id == "" {
		return "", false
	}
	return id, true
}

// decodeTypes normalizes a `@type` value, which may be a single string or a
// list of strings.
func decodeTypes(raw json.RawMessage) []string {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return []string{single}
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	return nil
}

// decodeValues normalizes a property value to a flat list of Values. A JSON
// object whose only key is "@id" becomes a symbolic reference; scalars are
// rendered as strings; lists flatten one level.
func decodeValues(raw json.RawMessage) []Value {
	var anyVal any
	if err := json.Unmarshal(raw, &anyVal); err != nil {
		return nil
	}
	return flattenValue(anyVal)
}

func flattenValue(v any) []Value {
	switch val := v.(type) {
	case []any:
		var out []Value
		for _, item := range val {
			out = append(out, flattenValue(item)...)
		}
		return out
	case map[string]any:
		if ref, ok := refTarget(val); ok {
			return []Value{{Ref: ref}}
		}
		// A non-reference object has no scalar rendering worth keeping;
		// RO-Crate flattens nested objects into graph nodes of their own.
		return nil
	case string:
		return []Value{{Str: val}}
	case bool:
		return []Value{{Str: fmt.Sprintf("%t", val)}}
	case float64:
		return []Value{{Str: trimFloat(val)}}
	case nil:
		return nil
	default:
		return []Value{{Str: fmt.Sprintf("%v", val)}}
	}
}

// refTarget reports whether the object is a pure reference: {"@id": "..."}.
func refTarget(obj map[string]any) (string, bool) {
	if len(obj) != 1 {
		return "", false
	}
	id, ok := obj["@id"].(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// trimFloat renders a JSON number without a spurious trailing ".0" for
// integral values.
func trimFloat(f float64) string {
	s := fmt.Sprintf("%v", f)
	return strings.TrimSuffix(s, ".0")
}

// findRoot locates the crate's root dataset: first through the metadata
// descriptor's `about` reference, then by the conventional "./" identifier.
func findRoot(g *Graph) (string, error) {
	for _, id := range g.order {
		if id != descriptorName && !strings.HasSuffix(id, "/"+descriptorName) {
			continue
		}
		entity := g.entities[id]
		for _, about := range entity.Refs("about") {
			if _, ok := g.entities[about]; ok {
				return about, nil
			}
			return "", &MissingRootEntityError{About: about}
		}
	}
	if _, ok := g.entities[rootConvention]; ok {
		return rootConvention, nil
	}
	return "", &MissingRootEntityError{}
}
