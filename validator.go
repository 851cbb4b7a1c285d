package valchain

import (
	"slices"

	"github.com/reoring/valchain/i18n"
)

// Options configures a Validator.
type Options struct {
	// NotNullMessage replaces the message recorded when a required attribute
	// is absent. Empty means the translated default for CodeRequired.
	NotNullMessage string
}

// Validator is a single validation pass over one root value. Combinators
// append at most one violation each, in call order, and always return the
// validator so calls can be chained; Resolve ends the chain.
//
// A Validator is owned by one goroutine for the duration of a pass. The
// checks passed to it are plain values and can be shared freely.
//
// Types that specialise a validator embed *Validator[T] and add methods that
// return their own type:
//
//	type UserValidator struct{ *valchain.Validator[User] }
//
//	func (v UserValidator) Adult() UserValidator {
//		v.ValidateField(age.Is(func(a int) bool { return a >= 18 }, "must be an adult"))
//		return v
//	}
type Validator[T any] struct {
	value      T
	violations []Violation
	opt        Options
}

// New opens a validator over value. It returns a *ConfigError wrapping
// ErrInvalidRoot when value is nil.
func New[T any](value T, opt ...Options) (*Validator[T], error) {
	if isNil(value) {
		return nil, invalidRoot("New")
	}
	v := &Validator[T]{value: value}
	if len(opt) > 0 {
		v.opt = opt[len(opt)-1]
	}
	return v, nil
}

// Of is like New but panics with the *ConfigError instead of returning it.
func Of[T any](value T, opt ...Options) *Validator[T] {
	if isNil(value) {
		panic(invalidRoot("Of"))
	}
	v, _ := New(value, opt...)
	return v
}

// Validate runs pred directly on the root value and records msg under name
// when it returns false. It panics with a *ConfigError when name is empty.
func (v *Validator[T]) Validate(name string, pred func(T) bool, msg string) *Validator[T] {
	mustName("Validate", name)
	if !pred(v.value) {
		v.add(FromErrors(name, []string{msg}))
	}
	return v
}

// ValidateField runs a field check; an absent attribute is recorded as a
// required-field violation and the check itself is not evaluated.
func (v *Validator[T]) ValidateField(c Check[T]) *Validator[T] { return v.required(c.check) }

// ValidateOptional runs a field check only when the attribute is present.
func (v *Validator[T]) ValidateOptional(c Check[T]) *Validator[T] { return v.optional(c.check) }

// ValidateList runs a list check; an absent slice is a required-field violation.
func (v *Validator[T]) ValidateList(c ListCheck[T]) *Validator[T] { return v.required(c.check) }

// ValidateListOptional runs a list check only when the slice is present.
func (v *Validator[T]) ValidateListOptional(c ListCheck[T]) *Validator[T] {
	return v.optional(c.check)
}

// ValidateMap runs a map check; an absent map is a required-field violation.
func (v *Validator[T]) ValidateMap(c MapCheck[T]) *Validator[T] { return v.required(c.check) }

// ValidateMapOptional runs a map check only when the map is present.
func (v *Validator[T]) ValidateMapOptional(c MapCheck[T]) *Validator[T] {
	return v.optional(c.check)
}

// Nest validates an attribute with a sub-validator and records its
// violations as one branch, keeping the sub-tree's shape. An absent attribute
// is a required-field violation.
func (v *Validator[T]) Nest(c NestCheck[T]) *Validator[T] { return v.required(c.check) }

// NestOptional is like Nest but skips absent attributes.
func (v *Validator[T]) NestOptional(c NestCheck[T]) *Validator[T] { return v.optional(c.check) }

// Violations returns a copy of the violations accumulated so far.
func (v *Validator[T]) Violations() []Violation { return slices.Clone(v.violations) }

// HasViolations reports whether any check failed.
func (v *Validator[T]) HasViolations() bool { return len(v.violations) > 0 }

// Value returns the root value under validation.
func (v *Validator[T]) Value() T { return v.value }

// Err returns nil when no check failed and a *ValidationError otherwise.
func (v *Validator[T]) Err() error {
	if len(v.violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: v.Violations()}
}

// Resolve ends the chain: it returns the root value unchanged when every
// check passed, or the zero value and a *ValidationError carrying the whole
// violation tree.
func (v *Validator[T]) Resolve() (T, error) {
	if err := v.Err(); err != nil {
		var zero T
		return zero, err
	}
	return v.value, nil
}

// MustResolve is like Resolve but panics with the *ValidationError.
func (v *Validator[T]) MustResolve() T {
	val, err := v.Resolve()
	if err != nil {
		panic(err)
	}
	return val
}

func (v *Validator[T]) required(c check[T]) *Validator[T] {
	viol, present := c.eval(v.value)
	if !present {
		viol = FromErrors(c.name, []string{v.notNullMessage()})
	}
	v.add(viol)
	return v
}

func (v *Validator[T]) optional(c check[T]) *Validator[T] {
	if viol, present := c.eval(v.value); present {
		v.add(viol)
	}
	return v
}

func (v *Validator[T]) add(viol Violation) {
	if viol.IsZero() {
		return
	}
	v.violations = append(v.violations, viol)
}

func (v *Validator[T]) notNullMessage() string {
	if v.opt.NotNullMessage != "" {
		return v.opt.NotNullMessage
	}
	return NotNullMessage()
}

// NotNullMessage returns the default message recorded for absent required
// attributes in the current i18n language.
func NotNullMessage() string { return i18n.T(CodeRequired, nil) }
