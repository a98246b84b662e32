// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package plan

import (
	"encoding/json"
	"io"
)

// StepKind discriminates the build step records.
type StepKind string

const (
	StepBaseImage StepKind = "base-image"
	StepInstall   StepKind = "install"
)

// Step is one ordered build instruction, serialized as a flat record:
// {"step":"base-image","image":...} or
// {"step":"install","name":...,"constraint":...}.
type Step struct {
	Step       StepKind `json:"step"`
	Image      string   `json:"image,omitempty"`
	Name       string   `json:"name,omitempty"`
	Constraint string   `json:"constraint,omitempty"`
}

// Plan is the complete, immutable build plan: the selected base image plus
// the ordered step sequence. Steps[0] is always the base-image selection.
type Plan struct {
	BaseImage string
	Steps     []Step
}

// MarshalJSON renders the plan as the ordered array of step records the
// downstream build-file renderer consumes.
func (p *Plan) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Steps)
}

// Encode writes the plan as indented JSON. The output is byte-identical for
// identical plans.
func (p *Plan) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(p)
}
