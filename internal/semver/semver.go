// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package semver

import (
	"fmt"

	mm "github.com/Masterminds/semver/v3"
)

// Version is a semantic version.
//
// This is a thin wrapper around github.com/Masterminds/semver/v3. Partial
// versions ("3", "20.04") are accepted and zero-padded.
type Version struct {
	v *mm.Version
}

func ParseVersion(raw string) (Version, error) {
	v, err := mm.NewVersion(raw)
	if err != nil {
		return Version{}, fmt.Errorf("semver: parse version %q: %w", raw, err)
	}
	return Version{v: v}, nil
}

func MustParseVersion(raw string) Version {
	v, err := ParseVersion(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v is the zero Version (no parsed value).
func (v Version) IsZero() bool {
	return v.v == nil
}

// String returns the normalized form, e.g. "1.2.0" for input "1.2".
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// Compare compares a and b, returning:
// -1 if a < b
//
//	0 if a == b
//	1 if a > b
func Compare(a, b Version) int {
	if a.v == nil && b.v == nil {
		return 0
	}
	if a.v == nil {
		return -1
	}
	if b.v == nil {
		return 1
	}
	return a.v.Compare(b.v)
}

// nextMajor returns the smallest version strictly above every release with
// v's major component, e.g. 1.4.2 -> 2.0.0.
func nextMajor(v Version) Version {
	return Version{v: mm.New(v.v.Major()+1, 0, 0, "", "")}
}

// nextMinor returns the smallest version strictly above every release with
// v's major.minor components, e.g. 1.4.2 -> 1.5.0.
func nextMinor(v Version) Version {
	return Version{v: mm.New(v.v.Major(), v.v.Minor()+1, 0, "", "")}
}
