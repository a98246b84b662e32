// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// This file implements a closed interval algebra over versions. A Range is a
// pair of optional bounds; conjunction of declared constraints reduces to
// intersection of intervals, so conflicting declarations surface as an empty
// intersection instead of one declaration silently winning.

package semver

import (
	"fmt"
	"strings"
)

// Bound is one endpoint of a Range.
type Bound struct {
	Version   Version
	Inclusive bool
}

// Range is a contiguous version interval. A nil bound means unbounded on
// that side. The zero value is the full range (any version).
type Range struct {
	Lower *Bound
	Upper *Bound
}

// Any returns the unbounded range.
func Any() Range {
	return Range{}
}

// Exact returns the range containing only v.
func Exact(v Version) Range {
	return Range{
		Lower: &Bound{Version: v, Inclusive: true},
		Upper: &Bound{Version: v, Inclusive: true},
	}
}

// IsAny reports whether r is unbounded on both sides.
func (r Range) IsAny() bool {
	return r.Lower == nil && r.Upper == nil
}

// IsExact reports whether r contains exactly one version.
func (r Range) IsExact() bool {
	return r.Lower != nil && r.Upper != nil &&
		r.Lower.Inclusive && r.Upper.Inclusive &&
		Compare(r.Lower.Version, r.Upper.Version) == 0
}

// Contains reports whether v lies within r.
func (r Range) Contains(v Version) bool {
	if r.Lower != nil {
		c := Compare(v, r.Lower.Version)
		if c < 0 || (c == 0 && !r.Lower.Inclusive) {
			return false
		}
	}
	if r.Upper != nil {
		c := Compare(v, r.Upper.Version)
		if c > 0 || (c == 0 && !r.Upper.Inclusive) {
			return false
		}
	}
	return true
}

// Intersect returns the overlap of r and o. ok is false when the two ranges
// have no version in common.
func (r Range) Intersect(o Range) (Range, bool) {
	out := Range{
		Lower: tighterLower(r.Lower, o.Lower),
		Upper: tighterUpper(r.Upper, o.Upper),
	}
	if out.Lower != nil && out.Upper != nil {
		c := Compare(out.Lower.Version, out.Upper.Version)
		if c > 0 {
			return Range{}, false
		}
		if c == 0 && (!out.Lower.Inclusive || !out.Upper.Inclusive) {
			return Range{}, false
		}
	}
	return out, true
}

// tighterLower picks the more restrictive of two lower bounds: the higher
// version, or on a tie the exclusive one.
func tighterLower(a, b *Bound) *Bound {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	switch c := Compare(a.Version, b.Version); {
	case c > 0:
		return a
	case c < 0:
		return b
	case !a.Inclusive:
		return a
	default:
		return b
	}
}

// tighterUpper picks the more restrictive of two upper bounds: the lower
// version, or on a tie the exclusive one.
func tighterUpper(a, b *Bound) *Bound {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	switch c := Compare(a.Version, b.Version); {
	case c < 0:
		return a
	case c > 0:
		return b
	case !a.Inclusive:
		return a
	default:
		return b
	}
}

// String renders r in canonical, Masterminds-parseable form: "*" for the
// full range, "=1.2.3" for an exact pin, otherwise the conjunction of its
// bounds, e.g. ">=1.2.0, <2.0.0".
func (r Range) String() string {
	if r.IsAny() {
		return "*"
	}
	if r.IsExact() {
		return "=" + r.Lower.Version.String()
	}
	var parts []string
	if r.Lower != nil {
		op := ">"
		if r.Lower.Inclusive {
			op = ">="
		}
		parts = append(parts, op+r.Lower.Version.String())
	}
	if r.Upper != nil {
		op := "<"
		if r.Upper.Inclusive {
			op = "<="
		}
		parts = append(parts, op+r.Upper.Version.String())
	}
	return strings.Join(parts, ", ")
}

// ParseRange parses a constraint expression into a Range. Supported forms,
// separated by commas and/or whitespace and combined by conjunction:
//
//	""  "*"  "any"        any version
//	"1.2.3"  "=1.2.3"  "==1.2.3"   exact
//	">=1.2"  ">1.2"  "<=2.0"  "<2.0"  half-open bounds
//	"^1.2.3"              [1.2.3, 2.0.0)
//	"~1.2.3"              [1.2.3, 1.3.0)
func ParseRange(raw string) (Range, error) {
	s := strings.TrimSpace(raw)
	if s == "" || s == "*" || strings.EqualFold(s, "any") {
		return Any(), nil
	}

	out := Any()
	for _, tok := range splitConstraint(s) {
		part, err := parseSimple(tok)
		if err != nil {
			return Range{}, err
		}
		next, ok := out.Intersect(part)
		if !ok {
			return Range{}, fmt.Errorf("semver: constraint %q is self-contradictory", raw)
		}
		out = next
	}
	return out, nil
}

// splitConstraint breaks a constraint expression into simple tokens.
func splitConstraint(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}

// parseSimple parses a single operator-prefixed token.
func parseSimple(tok string) (Range, error) {
	op := ""
	rest := tok
	for _, candidate := range []string{">=", "<=", "==", "^", "~", ">", "<", "="} {
		if strings.HasPrefix(tok, candidate) {
			op = candidate
			rest = strings.TrimSpace(tok[len(candidate):])
			break
		}
	}

	v, err := ParseVersion(rest)
	if err != nil {
		return Range{}, err
	}

	switch op {
	case "", "=", "==":
		return Exact(v), nil
	case ">=":
		return Range{Lower: &Bound{Version: v, Inclusive: true}}, nil
	case ">":
		return Range{Lower: &Bound{Version: v}}, nil
	case "<=":
		return Range{Upper: &Bound{Version: v, Inclusive: true}}, nil
	case "<":
		return Range{Upper: &Bound{Version: v}}, nil
	case "^":
		upper := nextMajor(v)
		// Caret on a 0.x version only permits patch-level drift.
		if v.v.Major() == 0 {
			upper = nextMinor(v)
		}
		return Range{
			Lower: &Bound{Version: v, Inclusive: true},
			Upper: &Bound{Version: upper},
		}, nil
	case "~":
		return Range{
			Lower: &Bound{Version: v, Inclusive: true},
			Upper: &Bound{Version: nextMinor(v)},
		}, nil
	default:
		return Range{}, fmt.Errorf("semver: unsupported operator %q in %q", op, tok)
	}
}
