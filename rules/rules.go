// Package rules provides ready-made predicate/message pairs for common
// numeric, length and size checks, plus combinators to compose them.
//
// Every factory takes an optional custom message; without one the message
// comes from the i18n translator active when the rule is built.
//
//	valchain.Of(u).
//		ValidateField(name.Satisfies(rules.NotBlank(), rules.MaxLen(64))).
//		ValidateField(age.Satisfies(rules.Between(18, 130)))
package rules

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/reoring/valchain"
	"github.com/reoring/valchain/i18n"
)

// Message codes used to look up default messages.
const (
	CodeNotEmpty    = "not_empty"
	CodeNotBlank    = "not_blank"
	CodeIsNull      = "is_null"
	CodeTooSmall    = "too_small"
	CodeTooBig      = "too_big"
	CodeTooShort    = "too_short"
	CodeTooLong     = "too_long"
	CodeSize        = "size"
	CodeBetween     = "between"
	CodePattern     = "pattern"
	CodeInvalidEnum = "invalid_enum"
)

// Numeric is the constraint for numeric bound checks.
type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Rule is an alias for a predicate/message pair.
type Rule[U any] = valchain.Constraint[U]

// Min checks v >= min.
func Min[N Numeric](min N, msg ...string) Rule[N] {
	return Rule[N]{
		Check:   func(v N) bool { return v >= min },
		Message: message(msg, CodeTooSmall, "min", min),
	}
}

// Max checks v <= max.
func Max[N Numeric](max N, msg ...string) Rule[N] {
	return Rule[N]{
		Check:   func(v N) bool { return v <= max },
		Message: message(msg, CodeTooBig, "max", max),
	}
}

// Between checks min <= v <= max.
func Between[N Numeric](min, max N, msg ...string) Rule[N] {
	return Rule[N]{
		Check:   func(v N) bool { return v >= min && v <= max },
		Message: message(msg, CodeBetween, "min", min, "max", max),
	}
}

// MinLen checks that a string has at least n characters (runes).
func MinLen(n int, msg ...string) Rule[string] {
	return Rule[string]{
		Check:   func(s string) bool { return utf8.RuneCountInString(s) >= n },
		Message: message(msg, CodeTooShort, "min", n),
	}
}

// MaxLen checks that a string has at most n characters (runes).
func MaxLen(n int, msg ...string) Rule[string] {
	return Rule[string]{
		Check:   func(s string) bool { return utf8.RuneCountInString(s) <= n },
		Message: message(msg, CodeTooLong, "max", n),
	}
}

// Size checks that a string's character count lies within [min, max].
func Size(min, max int, msg ...string) Rule[string] {
	return Rule[string]{
		Check:   func(s string) bool { return inRange(utf8.RuneCountInString(s), min, max) },
		Message: message(msg, CodeSize, "min", min, "max", max),
	}
}

// SizeSlice checks that a slice's length lies within [min, max].
func SizeSlice[E any](min, max int, msg ...string) Rule[[]E] {
	return Rule[[]E]{
		Check:   func(s []E) bool { return inRange(len(s), min, max) },
		Message: message(msg, CodeSize, "min", min, "max", max),
	}
}

// SizeMap checks that a map's length lies within [min, max].
func SizeMap[K comparable, V any](min, max int, msg ...string) Rule[map[K]V] {
	return Rule[map[K]V]{
		Check:   func(m map[K]V) bool { return inRange(len(m), min, max) },
		Message: message(msg, CodeSize, "min", min, "max", max),
	}
}

// MinItems checks that a slice has at least n elements.
func MinItems[E any](n int, msg ...string) Rule[[]E] {
	return Rule[[]E]{
		Check:   func(s []E) bool { return len(s) >= n },
		Message: message(msg, CodeTooShort, "min", n),
	}
}

// MaxItems checks that a slice has at most n elements.
func MaxItems[E any](n int, msg ...string) Rule[[]E] {
	return Rule[[]E]{
		Check:   func(s []E) bool { return len(s) <= n },
		Message: message(msg, CodeTooLong, "max", n),
	}
}

// NotEmpty checks that a string is not "".
func NotEmpty(msg ...string) Rule[string] {
	return Rule[string]{
		Check:   func(s string) bool { return s != "" },
		Message: message(msg, CodeNotEmpty),
	}
}

// NotBlank checks that a string contains something besides whitespace.
func NotBlank(msg ...string) Rule[string] {
	return Rule[string]{
		Check:   func(s string) bool { return strings.TrimSpace(s) != "" },
		Message: message(msg, CodeNotBlank),
	}
}

// Pattern checks that a string matches re.
func Pattern(re *regexp.Regexp, msg ...string) Rule[string] {
	return Rule[string]{
		Check:   re.MatchString,
		Message: message(msg, CodePattern, "pattern", re.String()),
	}
}

// OneOf checks that the value is one of allowed.
func OneOf[U comparable](allowed []U, msg ...string) Rule[U] {
	allowed = slices.Clone(allowed)
	parts := make([]string, len(allowed))
	for i, a := range allowed {
		parts[i] = fmt.Sprint(a)
	}
	return Rule[U]{
		Check:   func(v U) bool { return slices.Contains(allowed, v) },
		Message: message(msg, CodeInvalidEnum, "values", strings.Join(parts, ", ")),
	}
}

// NotNull returns the required-field message when v is absent.
func NotNull[U any](v U, msg ...string) []string {
	if !valchain.IsAbsent(v) {
		return nil
	}
	if len(msg) > 0 {
		return []string{msg[0]}
	}
	return []string{valchain.NotNullMessage()}
}

// IsNull returns a message when v is present.
func IsNull[U any](v U, msg ...string) []string {
	if valchain.IsAbsent(v) {
		return nil
	}
	return []string{message(msg, CodeIsNull)}
}

// ---------- Rule combinators ----------

// And runs every rule and concatenates the messages of the failing ones.
func And[U any](rules ...Rule[U]) func(U) []string {
	return func(v U) []string {
		var out []string
		for _, r := range rules {
			out = append(out, r.Errors(v)...)
		}
		return out
	}
}

// Or succeeds if any rule passes. When all fail it returns the messages of the
// first rule.
func Or[U any](rules ...Rule[U]) func(U) []string {
	return func(v U) []string {
		var first []string
		for _, r := range rules {
			if r.Check == nil {
				continue
			}
			errs := r.Errors(v)
			if len(errs) == 0 {
				return nil
			}
			if first == nil {
				first = errs
			}
		}
		return first
	}
}

// When runs rules only if cond holds for the value.
func When[U any](cond func(U) bool, rules ...Rule[U]) func(U) []string {
	and := And(rules...)
	return func(v U) []string {
		if cond != nil && !cond(v) {
			return nil
		}
		return and(v)
	}
}

// ------- helpers -------

func inRange(n, min, max int) bool { return n >= min && n <= max }

// message returns the caller's custom message, or the translated default for
// code with kv placeholders substituted.
func message(custom []string, code string, kv ...any) string {
	if len(custom) > 0 {
		return custom[0]
	}
	var data map[string]string
	if len(kv) > 0 {
		data = make(map[string]string, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			data[fmt.Sprint(kv[i])] = fmt.Sprint(kv[i+1])
		}
	}
	return i18n.T(code, data)
}
