// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package reconcile

import (
	"fmt"
	"strings"
)

// Declaration identifies one requirement declaration for error reporting.
type Declaration struct {
	EntityID   string
	Constraint string
}

func (d Declaration) String() string {
	if d.Constraint == "" {
		return fmt.Sprintf("%s (any)", d.EntityID)
	}
	return fmt.Sprintf("%s (%s)", d.EntityID, d.Constraint)
}

// UnsatisfiableRequirementError reports a conflict group whose declared
// constraints have an empty intersection. Silently picking one declaration
// would make the build non-reproducible, so this is a hard failure.
type UnsatisfiableRequirementError struct {
	Name         string
	Declarations []Declaration
}

func (e *UnsatisfiableRequirementError) Error() string {
	return fmt.Sprintf("unsatisfiable requirement %q: conflicting declarations %s",
		e.Name, joinDeclarations(e.Declarations))
}

// Kind returns the error taxonomy name.
func (e *UnsatisfiableRequirementError) Kind() string {
	return "UnsatisfiableRequirement"
}

// EntityIDs returns the identifiers of the offending entities.
func (e *UnsatisfiableRequirementError) EntityIDs() []string {
	return declarationIDs(e.Declarations)
}

// ConflictingOSRequirementError reports mutually incompatible operating
// system declarations: either two different distributions, or two
// incompatible versions of the same distribution.
type ConflictingOSRequirementError struct {
	Declarations []Declaration
}

func (e *ConflictingOSRequirementError) Error() string {
	return fmt.Sprintf("conflicting OS requirements: %s", joinDeclarations(e.Declarations))
}

// Kind returns the error taxonomy name.
func (e *ConflictingOSRequirementError) Kind() string {
	return "ConflictingOSRequirement"
}

// EntityIDs returns the identifiers of the offending entities.
func (e *ConflictingOSRequirementError) EntityIDs() []string {
	return declarationIDs(e.Declarations)
}

func joinDeclarations(ds []Declaration) string {
	parts := make([]string, 0, len(ds))
	for _, d := range ds {
		parts = append(parts, d.String())
	}
	return strings.Join(parts, ", ")
}

func declarationIDs(ds []Declaration) []string {
	seen := make(map[string]bool, len(ds))
	var out []string
	for _, d := range ds {
		if !seen[d.EntityID] {
			seen[d.EntityID] = true
			out = append(out, d.EntityID)
		}
	}
	return out
}
