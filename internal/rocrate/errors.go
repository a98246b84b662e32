// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package rocrate

import "fmt"

// MalformedDocumentError reports a document that cannot be parsed as a
// structured RO-Crate metadata document.
type MalformedDocumentError struct {
	Reason string
	Err    error
}

func (e *MalformedDocumentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed document: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed document: %s", e.Reason)
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}

// Kind returns the error taxonomy name.
func (e *MalformedDocumentError) Kind() string {
	return "MalformedDocument"
}

// MissingRootEntityError reports a crate whose root dataset entity could not
// be located, neither through the metadata descriptor nor through the
// conventional "./" identifier.
type MissingRootEntityError struct {
	// About is the identifier the metadata descriptor pointed at, when a
	// descriptor was present but its target entity is absent.
	About string
}

func (e *MissingRootEntityError) Error() string {
	if e.About != "" {
		return fmt.Sprintf("missing root entity: metadata descriptor points at %q, which is not in the graph", e.About)
	}
	return "missing root entity: no metadata descriptor and no \"./\" dataset in the graph"
}

// Kind returns the error taxonomy name.
func (e *MissingRootEntityError) Kind() string {
	return "MissingRootEntity"
}

// Warning is a non-fatal finding collected while processing a crate. The
// pipeline surfaces warnings alongside a successful result; they never fail
// a run.
type Warning struct {
	// Code is a short stable identifier, e.g. "skipped-node".
	Code string
	// EntityID names the entity the warning is about, when known.
	EntityID string
	// Message is the human-readable description.
	Message string
}

func (w Warning) String() string {
	if w.EntityID != "" {
		return fmt.Sprintf("%s (%s): %s", w.Code, w.EntityID, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}
