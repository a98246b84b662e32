// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/specialistvlad/crateplan/internal/ctxlog"
	"github.com/specialistvlad/crateplan/internal/rocrate"
	"github.com/specialistvlad/crateplan/internal/semver"
)

// RequirementKind distinguishes software requirements from OS requirements.
type RequirementKind int

const (
	SoftwareRequirement RequirementKind = iota
	OSRequirement
)

// Requirement is a candidate dependency extracted from one entity. Names and
// constraints are raw as declared; normalization happens in reconciliation.
type Requirement struct {
	// Name is the declared dependency name. For OS requirements this is the
	// distribution name.
	Name string
	// Constraint is the declared version constraint text ("" means any).
	// For OS requirements this is the declared version.
	Constraint string
	Kind       RequirementKind
	// EntityID identifies the entity that declared the requirement.
	EntityID string
}

// Edge records that requirement Before must be installed before After. Both
// sides are raw requirement names.
type Edge struct {
	Before string
	After  string
}

// Classification is the classifier's complete output for one crate.
type Classification struct {
	// Kinds maps every entity id to its semantic role.
	Kinds map[string]Kind
	// Candidates are the extracted requirement candidates, in graph order.
	Candidates []Requirement
	// Prereqs are the explicit prerequisite relationships between
	// requirement names discovered among entities.
	Prereqs []Edge
	// Warnings are non-fatal findings. The classifier never hard-fails.
	Warnings []rocrate.Warning
}

// requirementProps are the properties through which an entity declares its
// software dependencies.
var requirementProps = []string{
	"softwareRequirements",
	"softwareDependencies",
	"requirements",
}

// Classify walks the resolved graph, tags each entity with a semantic role
// and opportunistically extracts requirement candidates.
func Classify(ctx context.Context, g *rocrate.Graph) *Classification {
	logger := ctxlog.FromContext(ctx)

	cls := &Classification{Kinds: make(map[string]Kind, g.Len())}
	for _, entity := range g.Entities() {
		cls.Kinds[entity.ID] = kindOf(entity.Types)
	}

	for _, entity := range g.Entities() {
		switch cls.Kinds[entity.ID] {
		case KindSoftware:
			cls.addSoftware(g, entity)
		case KindRuntime:
			cls.addRuntime(entity)
		case KindOperatingSystem:
			cls.addOSEntity(entity)
		}
		// A declared operatingSystem string is accepted on any entity, the
		// root dataset being the common carrier.
		cls.addOSStrings(entity)
	}

	logger.Debug("Crate classified.",
		"entity_count", g.Len(),
		"candidate_count", len(cls.Candidates),
		"prereq_count", len(cls.Prereqs),
		"warning_count", len(cls.Warnings),
	)
	return cls
}

// addSoftware emits the entity's own requirement plus one candidate per
// declared dependency, wiring prerequisite edges along the way.
func (c *Classification) addSoftware(g *rocrate.Graph, entity *rocrate.Entity) {
	name := entityName(entity)
	c.addCandidate(Requirement{
		Name:       name,
		Constraint: entityVersion(entity),
		Kind:       SoftwareRequirement,
		EntityID:   entity.ID,
	})

	for _, prop := range requirementProps {
		for _, v := range entity.Props[prop] {
			if v.IsRef() {
				c.addReferencedRequirement(g, entity, name, v.Ref)
				continue
			}
			depName, constraint := splitInlineRequirement(v.Str)
			if depName == "" {
				continue
			}
			c.addCandidate(Requirement{
				Name:       depName,
				Constraint: constraint,
				Kind:       SoftwareRequirement,
				EntityID:   entity.ID,
			})
			c.Prereqs = append(c.Prereqs, Edge{Before: depName, After: name})
		}
	}
}

// addReferencedRequirement handles a dependency declared as an entity
// reference. The referenced entity contributes its own candidate through its
// own classification pass; here only the prerequisite edge is recorded.
func (c *Classification) addReferencedRequirement(g *rocrate.Graph, from *rocrate.Entity, fromName, ref string) {
	target, ok := g.Entity(ref)
	if !ok {
		c.Warnings = append(c.Warnings, rocrate.Warning{
			Code:     "dangling-requirement",
			EntityID: from.ID,
			Message:  fmt.Sprintf("requirement references %q, which is not in the graph", ref),
		})
		return
	}
	switch kindOf(target.Types) {
	case KindSoftware, KindRuntime:
		c.Prereqs = append(c.Prereqs, Edge{Before: entityName(target), After: fromName})
	}
}

// addRuntime emits a language/runtime entity's identity-as-version
// requirement. Runtimes install like any other software.
func (c *Classification) addRuntime(entity *rocrate.Entity) {
	c.addCandidate(Requirement{
		Name:       entityName(entity),
		Constraint: entityVersion(entity),
		Kind:       SoftwareRequirement,
		EntityID:   entity.ID,
	})
}

// addOSEntity emits an operating-system entity's name/version pair.
func (c *Classification) addOSEntity(entity *rocrate.Entity) {
	name := entityName(entity)
	version := entity.FirstString("version")
	if version == "" {
		// Tolerate "Ubuntu 20.04" packed into the name.
		name, version = splitOSString(name)
	}
	c.Candidates = append(c.Candidates, Requirement{
		Name:       name,
		Constraint: version,
		Kind:       OSRequirement,
		EntityID:   entity.ID,
	})
}

// addOSStrings emits OS candidates for scalar `operatingSystem` values, e.g.
// "Ubuntu 20.04". References resolve through the target entity's own pass.
func (c *Classification) addOSStrings(entity *rocrate.Entity) {
	for _, s := range entity.Strings("operatingSystem") {
		name, version := splitOSString(s)
		if name == "" {
			continue
		}
		c.Candidates = append(c.Candidates, Requirement{
			Name:       name,
			Constraint: version,
			Kind:       OSRequirement,
			EntityID:   entity.ID,
		})
	}
}

// addCandidate records a software candidate, degrading an unparseable
// constraint to any-version with a warning rather than failing.
func (c *Classification) addCandidate(r Requirement) {
	if r.Constraint != "" {
		if _, err := semver.ParseRange(r.Constraint); err != nil {
			c.Warnings = append(c.Warnings, rocrate.Warning{
				Code:     "degraded-version",
				EntityID: r.EntityID,
				Message:  fmt.Sprintf("version %q of %q is not parseable, falling back to any-version", r.Constraint, r.Name),
			})
			r.Constraint = ""
		}
	}
	c.Candidates = append(c.Candidates, r)
}

// entityName returns the entity's declared name, falling back to its
// identifier with any fragment marker stripped.
func entityName(e *rocrate.Entity) string {
	if name := e.FirstString("name"); name != "" {
		return name
	}
	return strings.TrimPrefix(e.ID, "#")
}

// entityVersion returns the entity's declared version, preferring the
// schema.org softwareVersion property.
func entityVersion(e *rocrate.Entity) string {
	if v := e.FirstString("softwareVersion"); v != "" {
		return v
	}
	return e.FirstString("version")
}

// splitInlineRequirement splits "numpy>=1.20" or "numpy 1.20" into a name
// and a constraint. A bare name yields an empty (any) constraint.
func splitInlineRequirement(s string) (string, string) {
	s = strings.TrimSpace(s)
	idx := strings.IndexAny(s, " \t><=^~")
	if idx < 0 {
		return s, ""
	}
	return strings.TrimSpace(s[:idx]), strings.TrimSpace(s[idx:])
}

// splitOSString splits "Ubuntu 20.04" into distribution and version. A bare
// distribution yields an empty version.
func splitOSString(s string) (string, string) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return fields[0], ""
	default:
		return fields[0], strings.Join(fields[1:], " ")
	}
}
