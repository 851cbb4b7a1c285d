package valchain

import (
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct field's
// external name used in violation reports.
// Priority: valchain:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("valchain"); gt != "" {
		parts := strings.Split(gt, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 && i > 0 {
			return jt[:i]
		} else if i < 0 {
			return jt
		}
	}
	return sf.Name
}

// isNil reports whether v is absent: an untyped nil or a nil pointer, map,
// slice, interface, func or chan. Struct and scalar values are never absent.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

// IsAbsent reports whether v counts as a missing attribute under the
// required/optional policies: nil, or a nil pointer, map, slice, interface,
// func or chan.
func IsAbsent(v any) bool { return isNil(v) }
