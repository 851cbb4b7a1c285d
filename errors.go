package valchain

import (
	"errors"
	"fmt"
	"strings"
)

// Violation codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired    = "required"    // projected attribute was nil/absent under a required combinator
	CodePredicate   = "predicate"   // a boolean check returned false
	CodeConstraints = "constraints" // registered or function checks produced messages
	CodeNested      = "nested"      // a sub-validator reported violations
	// Configuration errors, never accumulated.
	CodeUnresolvableAccessor = "unresolvable_accessor"
	CodeInvalidRoot          = "invalid_root"
)

var (
	// ErrValidation matches every *ValidationError through errors.Is.
	ErrValidation = errors.New("valchain: validation failed")
	// ErrInvalidRoot is raised when a validator is opened over a nil root.
	ErrInvalidRoot = errors.New("valchain: validator opened over a nil value")
	// ErrUnresolvableAccessor is raised when no field name can be derived for an
	// accessor used without an explicit name.
	ErrUnresolvableAccessor = errors.New("valchain: accessor name cannot be resolved")
)

// ValidationError carries the accumulated violation tree of a failed chain.
// It is produced only by the terminal operations of a Validator.
type ValidationError struct {
	Violations []Violation
}

// Error summarizes the first few violations.
func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return ErrValidation.Error()
	}
	const maxShown = 3
	b := &strings.Builder{}
	b.WriteString("validation failed: ")
	n := len(e.Violations)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		b.WriteString(e.Violations[i].String())
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is reports ErrValidation identity so callers can branch with errors.Is.
func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// Issues flattens the tree into JSON Pointer addressed issues.
func (e *ValidationError) Issues() Issues {
	if e == nil {
		return nil
	}
	return Flatten(e.Violations)
}

// AsValidationError extracts a *ValidationError using errors.As internally.
func AsValidationError(err error) (*ValidationError, bool) {
	if err == nil {
		return nil, false
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// ConfigError reports a programmer error detected while composing a chain:
// a nil root or an accessor whose name cannot be resolved. These are raised at
// the offending call and never become violations.
type ConfigError struct {
	Code   string // CodeInvalidRoot or CodeUnresolvableAccessor.
	Op     string // Operation that raised the error, e.g. "Of" or "Get".
	Detail string
	Err    error // Sentinel: ErrInvalidRoot or ErrUnresolvableAccessor.
}

func (e *ConfigError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("valchain.%s: %s", e.Op, e.Err)
	}
	return fmt.Sprintf("valchain.%s: %s: %s", e.Op, e.Err, e.Detail)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func invalidRoot(op string) *ConfigError {
	return &ConfigError{Code: CodeInvalidRoot, Op: op, Err: ErrInvalidRoot}
}

func unresolvable(op, detail string) *ConfigError {
	return &ConfigError{Code: CodeUnresolvableAccessor, Op: op, Detail: detail, Err: ErrUnresolvableAccessor}
}
