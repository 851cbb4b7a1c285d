package valchain

// Projection pairs a pure accessor from the root value T to an attribute U
// with the field name used in violation reports.
//
// A projection reports whether the attribute is present. Field treats nil
// pointers, maps, slices, interfaces, funcs and chans as absent; FieldPtr
// dereferences a pointer attribute; FieldOpt uses the comma-ok optional form.
// Checks built from a projection never see an absent attribute.
type Projection[T, U any] struct {
	name string
	get  func(T) (U, bool)
}

// Name returns the report name of the projected field.
func (p Projection[T, U]) Name() string { return p.name }

// Apply projects the attribute from root.
func (p Projection[T, U]) Apply(root T) (U, bool) { return p.get(root) }

// Field builds a total projection with an explicit name.
func Field[T, U any](name string, get func(T) U) Projection[T, U] {
	mustName("Field", name)
	mustFunc("Field", get == nil)
	return Projection[T, U]{name: name, get: func(t T) (U, bool) {
		u := get(t)
		return u, !isNil(u)
	}}
}

// FieldPtr builds a total projection over a pointer attribute; checks receive
// the pointed-to value and a nil pointer is absent.
func FieldPtr[T, U any](name string, get func(T) *U) Projection[T, U] {
	mustName("FieldPtr", name)
	mustFunc("FieldPtr", get == nil)
	return Projection[T, U]{name: name, get: derefGetter(get)}
}

// FieldOpt builds an optional projection: get reports presence directly.
func FieldOpt[T, U any](name string, get func(T) (U, bool)) Projection[T, U] {
	mustName("FieldOpt", name)
	mustFunc("FieldOpt", get == nil)
	return Projection[T, U]{name: name, get: get}
}

// Get builds a total projection whose name is resolved from the default
// accessor registry (see RegisterAccessor). It panics with a *ConfigError
// wrapping ErrUnresolvableAccessor when get is not registered.
func Get[T, U any](get func(T) U) Projection[T, U] {
	return GetFrom(defaultAccessors, get)
}

// GetPtr is the implicit-name variant of FieldPtr.
func GetPtr[T, U any](get func(T) *U) Projection[T, U] {
	return GetPtrFrom(defaultAccessors, get)
}

// GetOpt is the implicit-name variant of FieldOpt.
func GetOpt[T, U any](get func(T) (U, bool)) Projection[T, U] {
	return GetOptFrom(defaultAccessors, get)
}

// GetFrom is Get against a caller-owned registry.
func GetFrom[T, U any](reg *Accessors, get func(T) U) Projection[T, U] {
	return Field(mustResolve(reg, get), get)
}

// GetPtrFrom is GetPtr against a caller-owned registry.
func GetPtrFrom[T, U any](reg *Accessors, get func(T) *U) Projection[T, U] {
	return FieldPtr(mustResolve(reg, get), get)
}

// GetOptFrom is GetOpt against a caller-owned registry.
func GetOptFrom[T, U any](reg *Accessors, get func(T) (U, bool)) Projection[T, U] {
	return FieldOpt(mustResolve(reg, get), get)
}

// FieldOf builds a projection for a top-level struct field of T, naming it
// after the field's struct tag (valchain name > json > Go name).
// The selector must return the address of a top-level field, e.g.:
//
//	FieldOf(func(u *User) *string { return &u.Email })
//
// This guarantees compile-time errors if the field is renamed/removed.
func FieldOf[T, F any](selector func(*T) *F) Projection[T, F] {
	name, err := FieldNameOf(selector)
	if err != nil {
		panic(err)
	}
	return Field(name, func(t T) F { return *selector(&t) })
}

// Optional converts any projection into one whose absence is decided by
// present in addition to the underlying projection, e.g. zero-value strings.
func (p Projection[T, U]) Optional(present func(U) bool) Projection[T, U] {
	get := p.get
	return Projection[T, U]{name: p.name, get: func(t T) (U, bool) {
		u, ok := get(t)
		if !ok || !present(u) {
			var zero U
			return zero, false
		}
		return u, true
	}}
}

// Rename returns a copy of p reported under name.
func (p Projection[T, U]) Rename(name string) Projection[T, U] {
	mustName("Rename", name)
	return Projection[T, U]{name: name, get: p.get}
}

func derefGetter[T, U any](get func(T) *U) func(T) (U, bool) {
	return func(t T) (U, bool) {
		ptr := get(t)
		if ptr == nil {
			var zero U
			return zero, false
		}
		return *ptr, true
	}
}

func mustResolve(reg *Accessors, fn any) string {
	if reg == nil {
		reg = defaultAccessors
	}
	name, err := reg.Resolve(fn)
	if err != nil {
		panic(err)
	}
	return name
}

func mustName(op, name string) {
	if name == "" {
		panic(unresolvable(op, "field name must not be empty"))
	}
}

func mustFunc(op string, isNilFunc bool) {
	if isNilFunc {
		panic(unresolvable(op, "accessor must not be nil"))
	}
}
