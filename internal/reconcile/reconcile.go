// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file is the reconciliation engine: it collapses the classifier's raw
// requirement candidates into one consistent set. Candidates sharing a
// normalized name form a conflict group; every group resolves to exactly one
// constraint (the intersection of its members) or to a reported error -
// never zero constraints, never several.

package reconcile

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/specialistvlad/crateplan/internal/classify"
	"github.com/specialistvlad/crateplan/internal/ctxlog"
	"github.com/specialistvlad/crateplan/internal/rocrate"
	"github.com/specialistvlad/crateplan/internal/semver"
)

// Options carries reconciliation policy.
type Options struct {
	// DefaultDistribution and DefaultVersion name the documented base OS
	// used when the crate declares no OS requirement at all.
	DefaultDistribution string
	DefaultVersion      string
}

// OS is the single resolved operating system requirement.
type OS struct {
	// Distribution is the normalized distribution name.
	Distribution string
	// Version is the most specific declared version, "" when only the
	// distribution was named.
	Version string
	// Defaulted is true when no OS was declared and the documented default
	// was applied.
	Defaulted bool
	// EntityIDs names the declaring entities.
	EntityIDs []string
}

// Software is one resolved software requirement.
type Software struct {
	// Name is the normalized dependency name.
	Name string
	// Constraint is the resolved version range, the intersection of every
	// declaration in the conflict group.
	Constraint semver.Range
	// EntityIDs names the declaring entities.
	EntityIDs []string
}

// Resolved is the reconciler's output: an unordered resolved requirement
// set. Ordering is the build plan generator's responsibility.
type Resolved struct {
	OS       OS
	Software map[string]Software
	// Prereqs are the prerequisite edges rewritten onto normalized names.
	Prereqs []classify.Edge
	// Warnings are non-fatal findings, e.g. the defaulted OS.
	Warnings []rocrate.Warning
}

// ecosystemPrefixes are packaging-ecosystem markers stripped during name
// normalization so that equivalent declarations collapse together.
var ecosystemPrefixes = []string{"pip:", "apt:", "npm:", "conda:", "deb:"}

// Normalize maps a declared dependency name to its canonical form.
func Normalize(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	for _, prefix := range ecosystemPrefixes {
		if strings.HasPrefix(n, prefix) {
			n = strings.TrimSpace(strings.TrimPrefix(n, prefix))
			break
		}
	}
	return n
}

// Reconcile aggregates, deduplicates and conflict-resolves the classified
// requirement candidates into one consistent requirement set.
func Reconcile(ctx context.Context, cls *classify.Classification, opts Options) (*Resolved, error) {
	logger := ctxlog.FromContext(ctx)

	out := &Resolved{Software: make(map[string]Software)}

	if err := out.resolveSoftware(cls.Candidates); err != nil {
		return nil, err
	}
	if err := out.resolveOS(cls.Candidates, opts); err != nil {
		return nil, err
	}
	out.rewritePrereqs(cls.Prereqs)

	logger.Debug("Requirements reconciled.",
		"software_count", len(out.Software),
		"os", out.OS.Distribution,
		"os_defaulted", out.OS.Defaulted,
	)
	return out, nil
}

// resolveSoftware partitions software candidates into conflict groups by
// normalized name and intersects each group's constraints.
func (r *Resolved) resolveSoftware(candidates []classify.Requirement) error {
	type group struct {
		constraint   semver.Range
		declarations []Declaration
		entityIDs    []string
	}
	groups := make(map[string]*group)
	var names []string

	for _, cand := range candidates {
		if cand.Kind != classify.SoftwareRequirement {
			continue
		}
		name := Normalize(cand.Name)
		if name == "" {
			continue
		}

		grp, ok := groups[name]
		if !ok {
			grp = &group{constraint: semver.Any()}
			groups[name] = grp
			names = append(names, name)
		}
		grp.declarations = append(grp.declarations, Declaration{
			EntityID:   cand.EntityID,
			Constraint: cand.Constraint,
		})
		grp.entityIDs = appendUnique(grp.entityIDs, cand.EntityID)

		rng, err := semver.ParseRange(cand.Constraint)
		if err != nil {
			// The classifier degrades unparseable versions before they get
			// here; a raw caller's bad constraint degrades the same way.
			r.Warnings = append(r.Warnings, rocrate.Warning{
				Code:     "degraded-version",
				EntityID: cand.EntityID,
				Message:  fmt.Sprintf("constraint %q of %q is not parseable, falling back to any-version", cand.Constraint, name),
			})
			rng = semver.Any()
		}

		next, ok := grp.constraint.Intersect(rng)
		if !ok {
			return &UnsatisfiableRequirementError{
				Name:         name,
				Declarations: grp.declarations,
			}
		}
		grp.constraint = next
	}

	// Deterministic map fill order is irrelevant for correctness, but keep
	// entity id lists stable for error and log output.
	sort.Strings(names)
	for _, name := range names {
		grp := groups[name]
		r.Software[name] = Software{
			Name:       name,
			Constraint: grp.constraint,
			EntityIDs:  grp.entityIDs,
		}
	}
	return nil
}

// resolveOS reduces the OS candidates to at most one requirement, applying
// the documented default when none is declared.
func (r *Resolved) resolveOS(candidates []classify.Requirement, opts Options) error {
	var (
		declarations []Declaration
		distribution string
		version      string
		entityIDs    []string
	)

	for _, cand := range candidates {
		if cand.Kind != classify.OSRequirement {
			continue
		}
		dist := Normalize(cand.Name)
		if dist == "" {
			continue
		}
		decl := Declaration{
			EntityID:   cand.EntityID,
			Constraint: strings.TrimSpace(strings.TrimSpace(cand.Name) + " " + cand.Constraint),
		}
		declarations = append(declarations, decl)

		if distribution == "" {
			distribution = dist
			version = strings.TrimSpace(cand.Constraint)
			entityIDs = appendUnique(entityIDs, cand.EntityID)
			continue
		}
		if dist != distribution {
			return &ConflictingOSRequirementError{Declarations: declarations}
		}
		merged, ok := mergeOSVersions(version, strings.TrimSpace(cand.Constraint))
		if !ok {
			return &ConflictingOSRequirementError{Declarations: declarations}
		}
		version = merged
		entityIDs = appendUnique(entityIDs, cand.EntityID)
	}

	if distribution == "" {
		r.OS = OS{
			Distribution: Normalize(opts.DefaultDistribution),
			Version:      opts.DefaultVersion,
			Defaulted:    true,
		}
		r.Warnings = append(r.Warnings, rocrate.Warning{
			Code: "defaulted-os",
			Message: fmt.Sprintf("no OS requirement declared, defaulting to %s %s",
				r.OS.Distribution, r.OS.Version),
		})
		return nil
	}

	r.OS = OS{Distribution: distribution, Version: version, EntityIDs: entityIDs}
	return nil
}

// mergeOSVersions merges two declared versions of the same distribution.
// Versions are compatible when one is a dot-component prefix of the other;
// the merge resolves to the more specific. An empty version is compatible
// with anything.
func mergeOSVersions(a, b string) (string, bool) {
	if a == "" {
		return b, true
	}
	if b == "" {
		return a, true
	}
	av := strings.Split(a, ".")
	bv := strings.Split(b, ".")
	short, long, result := av, bv, b
	if len(av) > len(bv) {
		short, long, result = bv, av, a
	}
	for i := range short {
		if short[i] != long[i] {
			return "", false
		}
	}
	return result, true
}

// rewritePrereqs maps prerequisite edges onto normalized names, dropping
// self-edges, duplicates, and edges whose endpoints did not survive
// reconciliation.
func (r *Resolved) rewritePrereqs(edges []classify.Edge) {
	seen := make(map[classify.Edge]bool, len(edges))
	for _, e := range edges {
		norm := classify.Edge{Before: Normalize(e.Before), After: Normalize(e.After)}
		if norm.Before == norm.After || seen[norm] {
			continue
		}
		if _, ok := r.Software[norm.Before]; !ok {
			continue
		}
		if _, ok := r.Software[norm.After]; !ok {
			continue
		}
		seen[norm] = true
		r.Prereqs = append(r.Prereqs, norm)
	}
}

func appendUnique(list []string, s string) []string {
	for _, existing := range list {
		if existing == s {
			return list
		}
	}
	return append(list, s)
}
