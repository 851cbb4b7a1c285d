package valchain

import (
	"slices"
	"strconv"
	"strings"
)

// Violation is one node of the violation tree: a named leaf carrying error
// messages or a named branch carrying child violations.
//
// Nodes are immutable once built. Use FromErrors/FromViolations (or their
// indexed variants) to construct them; the accessors return copies.
type Violation struct {
	field      string
	index      int // -1 unless built by an indexed constructor
	errors     []string
	violations []Violation
}

// FromErrors builds a leaf node. It is only called with a non-empty errors
// slice; an empty slice yields a zero Violation that IsZero reports.
// A non-empty node needs a field name; an empty one panics with a *ConfigError.
func FromErrors(field string, errors []string) Violation {
	if len(errors) == 0 {
		return Violation{}
	}
	mustName("FromErrors", field)
	return Violation{field: field, index: -1, errors: slices.Clone(errors)}
}

// FromViolations builds a branch node from child violations.
func FromViolations(field string, children []Violation) Violation {
	if len(children) == 0 {
		return Violation{}
	}
	mustName("FromViolations", field)
	return Violation{field: field, index: -1, violations: slices.Clone(children)}
}

// FromIndexedErrors builds a leaf tagged with the position of the failing
// element inside a list.
func FromIndexedErrors(field string, idx int, errors []string) Violation {
	v := FromErrors(field, errors)
	if !v.IsZero() {
		v.index = idx
	}
	return v
}

// FromIndexedViolations builds a branch tagged with an element position.
func FromIndexedViolations(field string, idx int, children []Violation) Violation {
	v := FromViolations(field, children)
	if !v.IsZero() {
		v.index = idx
	}
	return v
}

// Field returns the attribute or sub-object name.
func (v Violation) Field() string { return v.field }

// Index returns the element position and true for indexed nodes.
func (v Violation) Index() (int, bool) {
	if v.index < 0 || v.IsZero() {
		return 0, false
	}
	return v.index, true
}

// Errors returns the leaf messages (nil for branches).
func (v Violation) Errors() []string { return slices.Clone(v.errors) }

// Violations returns the child nodes (nil for leaves).
func (v Violation) Violations() []Violation { return slices.Clone(v.violations) }

// IsLeaf reports whether the node carries error messages.
func (v Violation) IsLeaf() bool { return len(v.errors) > 0 }

// IsBranch reports whether the node carries child violations.
func (v Violation) IsBranch() bool { return len(v.violations) > 0 }

// IsZero reports whether v is the zero value (never produced by a failed check).
func (v Violation) IsZero() bool { return len(v.errors) == 0 && len(v.violations) == 0 }

// Equal compares two nodes structurally: name, index, variant and contents.
func (v Violation) Equal(o Violation) bool {
	if v.field != o.field || v.IsZero() != o.IsZero() {
		return false
	}
	if v.IsZero() {
		return true
	}
	vi, vok := v.Index()
	oi, ook := o.Index()
	if vok != ook || vi != oi {
		return false
	}
	if !slices.Equal(v.errors, o.errors) {
		return false
	}
	return slices.EqualFunc(v.violations, o.violations, Violation.Equal)
}

// String renders the node in a compact form, e.g. addr{city[required]}.
// Indexed nodes carry a #position suffix: items#1[must be odd].
func (v Violation) String() string {
	b := &strings.Builder{}
	v.writeTo(b)
	return b.String()
}

func (v Violation) writeTo(b *strings.Builder) {
	b.WriteString(v.field)
	if i, ok := v.Index(); ok {
		b.WriteByte('#')
		b.WriteString(strconv.Itoa(i))
	}
	if v.IsLeaf() {
		b.WriteByte('[')
		b.WriteString(strings.Join(v.errors, "; "))
		b.WriteByte(']')
		return
	}
	b.WriteByte('{')
	for i, c := range v.violations {
		if i > 0 {
			b.WriteString(", ")
		}
		c.writeTo(b)
	}
	b.WriteByte('}')
}

// Walk visits every node depth-first in declaration order. The callback
// receives the chain of ancestor nodes (root first) and the node itself.
// Returning false stops descent into that node's children.
func Walk(vs []Violation, fn func(parents []Violation, v Violation) bool) {
	walk(nil, vs, fn)
}

func walk(parents, vs []Violation, fn func([]Violation, Violation) bool) {
	for _, v := range vs {
		if !fn(parents, v) {
			continue
		}
		if v.IsBranch() {
			walk(append(slices.Clone(parents), v), v.violations, fn)
		}
	}
}

// EqualViolations compares two violation sequences structurally.
func EqualViolations(a, b []Violation) bool {
	return slices.EqualFunc(a, b, Violation.Equal)
}
