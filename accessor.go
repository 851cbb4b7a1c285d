package valchain

import (
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"
)

// NormalizeName applies the getter convention to an accessor identifier:
// "get"/"Get" followed by at least one character loses the prefix and the next
// character is lower-cased (GetAge -> age, getAge -> age). Anything else is
// returned unchanged, including a bare "get".
func NormalizeName(ident string) string {
	const prefixLen = 3
	if len(ident) <= prefixLen {
		return ident
	}
	if !strings.HasPrefix(ident, "get") && !strings.HasPrefix(ident, "Get") {
		return ident
	}
	r, size := utf8.DecodeRuneInString(ident[prefixLen:])
	return string(unicode.ToLower(r)) + ident[prefixLen+size:]
}

// Accessors is a registry pairing accessor functions with their declared
// identifiers, keyed by function identity. It backs the implicit-name
// projection constructors (Get, GetPtr, GetOpt).
//
// Only plain named functions and method expressions carry a stable identity;
// function literals are rejected because every closure built from the same
// literal shares one code pointer.
//
// Literals are recognised by their runtime symbol name, so the rule follows
// the compiler's naming rather than the declaration:
//   - a package-level var holding a literal (var f = func(u User) int {...})
//     is rejected even though it is only ever built once;
//   - a bound method value (u.GetAge) is accepted, and every value bound from
//     the same method shares the identity of its wrapper.
//
// Prefer method expressions (User.GetAge) or named functions, and use the
// explicit-name constructors (Field, FieldPtr, FieldOpt) for anything else.
//
// The zero value is not usable; create registries with NewAccessors.
type Accessors struct {
	mu    sync.RWMutex
	names map[uintptr]string
}

// NewAccessors creates an empty registry.
func NewAccessors() *Accessors {
	return &Accessors{names: map[uintptr]string{}}
}

var defaultAccessors = NewAccessors()

// DefaultAccessors returns the process-wide registry used by Get/GetPtr/GetOpt.
func DefaultAccessors() *Accessors { return defaultAccessors }

// RegisterAccessor registers fn under ident in the default registry.
func RegisterAccessor(ident string, fn any) error { return defaultAccessors.Register(ident, fn) }

// ResolveName resolves the field name of fn through the default registry.
func ResolveName(fn any) (string, error) { return defaultAccessors.Resolve(fn) }

// closureName matches runtime names of function literals, e.g.
// "example.com/pkg.TestX.func1" or "example.com/pkg.init.func2.3".
var closureName = regexp.MustCompile(`\.func\d+(\.\d+)*$`)

// Register records ident as the identifier of fn. Registering the same
// function twice replaces the identifier.
func (a *Accessors) Register(ident string, fn any) error {
	if ident == "" {
		return unresolvable("Register", "empty identifier")
	}
	pc, err := funcIdentity("Register", fn)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.names[pc] = ident
	a.mu.Unlock()
	return nil
}

// MustRegister is like Register but panics on error. It returns the registry
// so registrations can be chained in package-level var blocks.
func (a *Accessors) MustRegister(ident string, fn any) *Accessors {
	if err := a.Register(ident, fn); err != nil {
		panic(err)
	}
	return a
}

// Resolve returns the normalized field name registered for fn.
func (a *Accessors) Resolve(fn any) (string, error) {
	pc, err := funcIdentity("Resolve", fn)
	if err != nil {
		return "", err
	}
	a.mu.RLock()
	ident, ok := a.names[pc]
	a.mu.RUnlock()
	if !ok {
		return "", unresolvable("Resolve", fmt.Sprintf("accessor %s is not registered; pass an explicit field name", funcName(pc)))
	}
	return NormalizeName(ident), nil
}

func funcIdentity(op string, fn any) (uintptr, error) {
	if fn == nil {
		return 0, unresolvable(op, "nil accessor")
	}
	rv := reflect.ValueOf(fn)
	if rv.Kind() != reflect.Func || rv.IsNil() {
		return 0, unresolvable(op, fmt.Sprintf("accessor must be a function, got %T", fn))
	}
	pc := rv.Pointer()
	if closureName.MatchString(funcName(pc)) {
		return 0, unresolvable(op, "function literals carry no stable identity; register a named function or method expression")
	}
	return pc, nil
}

func funcName(pc uintptr) string {
	if f := runtime.FuncForPC(pc); f != nil {
		return f.Name()
	}
	return "<unknown>"
}

// FieldNameOf returns the report name for a top-level field of S selected by selector.
// Example: FieldNameOf[OrderItem](func(i *OrderItem) *string { return &i.SKU }) -> "sku".
func FieldNameOf[S any, F any](selector func(*S) *F) (string, error) {
	if selector == nil {
		return "", unresolvable("FieldNameOf", "selector must not be nil")
	}
	var zero S
	rv := reflect.ValueOf(&zero).Elem()
	if rv.Kind() != reflect.Struct {
		return "", unresolvable("FieldNameOf", fmt.Sprintf("%T is not a struct", zero))
	}
	fp := reflect.ValueOf(selector(&zero)).Pointer()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := rv.Field(i)
		if fv.CanAddr() && fv.Addr().Pointer() == fp {
			name := ResolveStructKey(sf)
			if name == "" || name == "-" {
				return "", unresolvable("FieldNameOf", "selected field is disabled")
			}
			return name, nil
		}
	}
	return "", unresolvable("FieldNameOf", "selector must return address of a top-level field")
}
