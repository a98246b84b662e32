// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package plan

import (
	"fmt"
	"strings"
)

// UnsupportedBaseOSError reports a resolved OS requirement with no entry in
// the base-image catalog.
type UnsupportedBaseOSError struct {
	Distribution string
	Version      string
}

func (e *UnsupportedBaseOSError) Error() string {
	if e.Version == "" {
		return fmt.Sprintf("unsupported base OS: %q is not in the image catalog", e.Distribution)
	}
	return fmt.Sprintf("unsupported base OS: %q version %q is not in the image catalog", e.Distribution, e.Version)
}

// Kind returns the error taxonomy name.
func (e *UnsupportedBaseOSError) Kind() string {
	return "UnsupportedBaseOS"
}

// CyclicDependencyError reports a prerequisite cycle among software
// requirements. Members holds the normalized names of one complete cycle.
type CyclicDependencyError struct {
	Members []string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("cyclic dependency among requirements: %s", strings.Join(e.Members, " -> "))
}

// Kind returns the error taxonomy name.
func (e *CyclicDependencyError) Kind() string {
	return "CyclicDependency"
}
