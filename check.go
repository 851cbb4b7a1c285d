package valchain

import (
	"cmp"
	"maps"
	"slices"
)

// check is the type-erased form shared by every check kind: eval projects the
// attribute and, only when it is present, evaluates it into a (possibly zero)
// violation.
type check[T any] struct {
	name string
	eval func(root T) (v Violation, present bool)
}

// Check is a field-level check built from a Projection. Pass it to
// ValidateField (absent attribute is a violation) or ValidateOptional
// (absent attribute is skipped).
type Check[T any] struct{ check[T] }

// ListCheck runs one constraint set against every element of a slice
// attribute. Pass it to ValidateList or ValidateListOptional.
type ListCheck[T any] struct{ check[T] }

// MapCheck runs one constraint set against every entry of a map attribute.
// Pass it to ValidateMap or ValidateMapOptional.
type MapCheck[T any] struct{ check[T] }

// NestCheck validates an attribute with its own Validator and keeps the
// resulting sub-tree. Pass it to Nest or NestOptional.
type NestCheck[T any] struct{ check[T] }

// Name returns the field name the check reports under.
func (c check[T]) Name() string { return c.name }

// Reporter is implemented by anything that exposes accumulated violations,
// most notably *Validator[T] and caller types embedding it.
type Reporter interface {
	Violations() []Violation
}

// Entry is one key/value pair of a map attribute as seen by EachEntry.
type Entry[K comparable, V any] struct {
	Key   K
	Value V
}

// Is checks the attribute with a predicate and a fixed failure message.
func (p Projection[T, U]) Is(pred func(U) bool, msg string) Check[T] {
	return p.Errors(Constraint[U]{Check: pred, Message: msg}.Errors)
}

// Satisfies checks the attribute against ready-made predicate/message pairs.
func (p Projection[T, U]) Satisfies(rules ...Constraint[U]) Check[T] {
	return p.Constraints(func(c *Constraints[U]) { c.Use(rules...) })
}

// Errors checks the attribute with a function returning zero or more messages.
func (p Projection[T, U]) Errors(fn func(U) []string) Check[T] {
	return Check[T]{leafCheck(p, func() func(U) []string { return fn })}
}

// Constraints checks the attribute against every constraint registered by cfg.
// cfg runs once per evaluation of the check.
func (p Projection[T, U]) Constraints(cfg func(*Constraints[U])) Check[T] {
	return Check[T]{leafCheck(p, func() func(U) []string { return buildConstraints(cfg) })}
}

// Nest validates the attribute with the validator returned by factory. The
// factory is only called for present attributes.
func (p Projection[T, U]) Nest(factory func(U) Reporter) NestCheck[T] {
	name, get := p.name, p.get
	return NestCheck[T]{check[T]{name: name, eval: func(root T) (Violation, bool) {
		u, ok := get(root)
		if !ok {
			return Violation{}, false
		}
		if factory == nil {
			return Violation{}, true
		}
		sub := factory(u)
		if sub == nil || isNil(sub) {
			return Violation{}, true
		}
		return FromViolations(name, sub.Violations()), true
	}}}
}

// Each runs the constraints registered by cfg against every element of a
// slice attribute. Messages are concatenated in element order, then
// constraint order, into a single leaf; element positions are not kept.
func Each[T, E any](p Projection[T, []E], cfg func(*Constraints[E])) ListCheck[T] {
	name, get := p.name, p.get
	return ListCheck[T]{check[T]{name: name, eval: func(root T) (Violation, bool) {
		items, ok := get(root)
		if !ok {
			return Violation{}, false
		}
		eval := buildConstraints(cfg)
		var errs []string
		for _, it := range items {
			errs = append(errs, eval(it)...)
		}
		return FromErrors(name, errs), true
	}}}
}

// EachIndexed is like Each but keeps element positions: failing elements
// become index-tagged leaves under one branch named after the field.
func EachIndexed[T, E any](p Projection[T, []E], cfg func(*Constraints[E])) ListCheck[T] {
	name, get := p.name, p.get
	return ListCheck[T]{check[T]{name: name, eval: func(root T) (Violation, bool) {
		items, ok := get(root)
		if !ok {
			return Violation{}, false
		}
		eval := buildConstraints(cfg)
		var children []Violation
		for i, it := range items {
			if errs := eval(it); len(errs) > 0 {
				children = append(children, FromIndexedErrors(name, i, errs))
			}
		}
		return FromViolations(name, children), true
	}}}
}

// EachEntry runs the constraints registered by cfg against every entry of a
// map attribute, visiting keys in ascending order. Messages are flattened the
// same way as Each. Use EachEntryFunc for keys that are not cmp.Ordered.
func EachEntry[T any, K cmp.Ordered, V any](p Projection[T, map[K]V], cfg func(*Constraints[Entry[K, V]])) MapCheck[T] {
	return EachEntryFunc(p, cmp.Compare[K], cfg)
}

// EachEntryFunc is EachEntry for any comparable key type (structs, bools,
// arrays). Keys are visited in the order defined by compare; a nil compare
// visits them in map iteration order, which is not deterministic.
func EachEntryFunc[T any, K comparable, V any](p Projection[T, map[K]V], compare func(a, b K) int, cfg func(*Constraints[Entry[K, V]])) MapCheck[T] {
	name, get := p.name, p.get
	return MapCheck[T]{check[T]{name: name, eval: func(root T) (Violation, bool) {
		m, ok := get(root)
		if !ok {
			return Violation{}, false
		}
		eval := buildConstraints(cfg)
		var errs []string
		keys := slices.Collect(maps.Keys(m))
		if compare != nil {
			slices.SortFunc(keys, compare)
		}
		for _, k := range keys {
			errs = append(errs, eval(Entry[K, V]{Key: k, Value: m[k]})...)
		}
		return FromErrors(name, errs), true
	}}}
}

func leafCheck[T, U any](p Projection[T, U], build func() func(U) []string) check[T] {
	name, get := p.name, p.get
	return check[T]{name: name, eval: func(root T) (Violation, bool) {
		u, ok := get(root)
		if !ok {
			return Violation{}, false
		}
		fn := build()
		if fn == nil {
			return Violation{}, true
		}
		return FromErrors(name, fn(u)), true
	}}
}
