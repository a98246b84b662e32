// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package rocrate

// Value is one normalized property value: either a scalar rendered as a
// string, or a symbolic reference to another entity's identifier.
type Value struct {
	// Ref holds the target entity identifier when the value is a reference.
	Ref string
	// Str holds the scalar rendering when the value is not a reference.
	Str string
}

// IsRef reports whether v is a reference to another entity.
func (v Value) IsRef() bool {
	return v.Ref != ""
}

// Entity is a single node of the crate graph.
type Entity struct {
	// ID is the entity's `@id`, unique within the crate.
	ID string
	// Types holds the entity's declared `@type` values.
	Types []string
	// Props maps every other declared property to its normalized values.
	Props map[string][]Value
}

// HasType reports whether the entity declares the given type.
func (e *Entity) HasType(name string) bool {
	for _, t := range e.Types {
		if t == name {
			return true
		}
	}
	return false
}

// First returns the first value declared for the given property.
func (e *Entity) First(key string) (Value, bool) {
	vs := e.Props[key]
	if len(vs) == 0 {
		return Value{}, false
	}
	return vs[0], true
}

// FirstString returns the first scalar value declared for the given
// property, or "" when the property is absent or holds only references.
func (e *Entity) FirstString(key string) string {
	for _, v := range e.Props[key] {
		if !v.IsRef() {
			return v.Str
		}
	}
	return ""
}

// Strings returns every scalar value declared for the given property.
func (e *Entity) Strings(key string) []string {
	var out []string
	for _, v := range e.Props[key] {
		if !v.IsRef() {
			out = append(out, v.Str)
		}
	}
	return out
}

// Refs returns every reference declared for the given property.
func (e *Entity) Refs(key string) []string {
	var out []string
	for _, v := range e.Props[key] {
		if v.IsRef() {
			out = append(out, v.Ref)
		}
	}
	return out
}

// Graph is the resolved, de-referenced entity graph of one crate. It is
// immutable after Load returns.
type Graph struct {
	entities map[string]*Entity
	order    []string

	// RootID is the identifier of the crate's root dataset entity.
	RootID string
}

// Entity retrieves an entity by its identifier.
func (g *Graph) Entity(id string) (*Entity, bool) {
	e, ok := g.entities[id]
	return e, ok
}

// Root returns the crate's root dataset entity.
func (g *Graph) Root() *Entity {
	return g.entities[g.RootID]
}

// Entities returns all entities in first-declaration order.
func (g *Graph) Entities() []*Entity {
	out := make([]*Entity, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.entities[id])
	}
	return out
}

// Len returns the number of entities in the graph.
func (g *Graph) Len() int {
	return len(g.entities)
}
