// Package valchain provides fluent, accumulating validation of in-memory values.
//
// A Validator is opened over one root value and every chained combinator
// evaluates one check, appending at most one Violation. Checks never abort the
// chain; Resolve ends it and returns either the root value unchanged or a
// *ValidationError carrying the whole violation tree in declaration order.
//
//   - Projections (Field, FieldPtr, FieldOpt, FieldOf, Get...) pair an accessor
//     with the field name used in reports.
//   - Required combinators (ValidateField, ValidateList, ValidateMap, Nest)
//     record absent attributes as violations without running the check;
//     optional combinators skip them.
//   - Nest keeps a sub-validator's violations as one branch of the tree.
//   - Violations serialize to JSON and YAML and flatten to JSON Pointer Issues.
//
// Design policy:
//   - Check kinds are distinct types so a list check cannot be passed where a
//     map check is expected.
//   - Programmer errors (nil root, unresolvable accessor names) are raised as
//     *ConfigError at the offending call and never become violations.
//   - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	age := valchain.Field("age", func(u User) int { return u.Age })
//	addr := valchain.FieldPtr("address", func(u User) *Address { return u.Address })
//
//	u, err := valchain.Of(user).
//		ValidateField(age.Is(func(a int) bool { return a >= 18 }, "must be adult")).
//		Nest(addr.Nest(func(a Address) valchain.Reporter { return validateAddress(a) })).
//		Resolve()
package valchain
