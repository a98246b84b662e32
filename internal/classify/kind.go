// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package classify

// Kind is the semantic role assigned to a crate entity. The numeric order
// is the classification precedence: when an entity carries several types,
// the highest kind wins.
type Kind int

const (
	KindOther Kind = iota
	KindDataset
	KindSourceCode
	KindSoftware
	KindRuntime
	KindOperatingSystem
)

func (k Kind) String() string {
	switch k {
	case KindOperatingSystem:
		return "operating-system"
	case KindRuntime:
		return "runtime"
	case KindSoftware:
		return "software"
	case KindSourceCode:
		return "source-code"
	case KindDataset:
		return "dataset"
	default:
		return "other"
	}
}

// typeKinds maps the declared `@type` vocabulary onto kinds. Unlisted types
// contribute nothing; the crate vocabulary is open-ended and unrecognized
// types are never an error.
var typeKinds = map[string]Kind{
	"OperatingSystem":       KindOperatingSystem,
	"ComputerLanguage":      KindRuntime,
	"ProgrammingLanguage":   KindRuntime,
	"SoftwareApplication":   KindSoftware,
	"SoftwareSourceCode":    KindSourceCode,
	"ComputationalWorkflow": KindSourceCode,
	"Dataset":               KindDataset,
	"File":                  KindDataset,
	"MediaObject":           KindDataset,
}

// kindOf selects the most specific role among the declared types.
func kindOf(types []string) Kind {
	kind := KindOther
	for _, t := range types {
		if k, ok := typeKinds[t]; ok && k > kind {
			kind = k
		}
	}
	return kind
}
