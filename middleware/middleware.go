// Package middleware binds JSON request bodies at HTTP boundaries: it decodes
// the body, runs a validation chain over it and either stores the validated
// value in the request context or answers with the violation report.
//
// Framework adapters live in the echo and gin sub-modules; this package works
// with net/http directly.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"

	"github.com/reoring/valchain"
)

// ValidateFunc is a complete validation chain over a decoded body, typically
// a function ending in Validator.Resolve.
type ValidateFunc[T any] func(T) (T, error)

// Options controls decoding at the boundary.
type Options struct {
	// AllowDuplicateKeys disables the duplicate-key scan performed before
	// decoding. Duplicate keys are rejected by default.
	AllowDuplicateKeys bool
	// MaxBytes limits the body size; 0 means 1 MiB.
	MaxBytes int64
}

const defaultMaxBytes = 1 << 20

// DecodeError reports a body that could not be decoded into the target type.
// It is answered with 400 Bad Request.
type DecodeError struct {
	Issues valchain.Issues
	Err    error
}

func (e *DecodeError) Error() string {
	if len(e.Issues) > 0 {
		return "decode body: " + e.Issues.Error()
	}
	return "decode body: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ctxKeyValidated is a typed context key for storing a validated T.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyValidated[T any] struct{}

// ContextWithValidated attaches a validated value to the context.
func ContextWithValidated[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyValidated[T]{}, v)
}

// ValidatedFromContext retrieves a validated value from the context.
func ValidatedFromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyValidated[T]{}).(T)
	return v, ok
}

// Decode reads a JSON body into T.
func Decode[T any](body io.Reader, opt Options) (T, error) {
	var zero T
	limit := opt.MaxBytes
	if limit <= 0 {
		limit = defaultMaxBytes
	}
	data, err := io.ReadAll(io.LimitReader(body, limit+1))
	if err != nil {
		return zero, &DecodeError{Err: err}
	}
	if int64(len(data)) > limit {
		return zero, &DecodeError{Err: fmt.Errorf("body exceeds %d bytes", limit)}
	}
	if !opt.AllowDuplicateKeys {
		iss, err := valchain.DetectDuplicateKeys(data)
		if err != nil {
			return zero, &DecodeError{Err: err}
		}
		if len(iss) > 0 {
			return zero, &DecodeError{Issues: iss, Err: valchain.ErrDuplicateKey}
		}
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return zero, &DecodeError{Err: err}
	}
	return v, nil
}

// Bind decodes body, validates it and returns a context carrying the
// validated value.
func Bind[T any](ctx context.Context, body io.Reader, validate ValidateFunc[T], opt Options) (context.Context, T, error) {
	v, err := Decode[T](body, opt)
	if err != nil {
		return ctx, v, err
	}
	if validate != nil {
		if v, err = validate(v); err != nil {
			return ctx, v, err
		}
	}
	return ContextWithValidated(ctx, v), v, nil
}

// StatusOf maps a Bind error to an HTTP status: 400 for undecodable bodies,
// 422 for validation failures and 500 otherwise.
func StatusOf(err error) int {
	var de *DecodeError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &de):
		return http.StatusBadRequest
	case errors.Is(err, valchain.ErrValidation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ErrorPayload shapes a Bind error for JSON responses. Validation failures
// carry both the violation tree and its flattened issues.
func ErrorPayload(err error) map[string]any {
	if ve, ok := valchain.AsValidationError(err); ok {
		return map[string]any{"violations": ve.Violations, "issues": ve.Issues()}
	}
	var de *DecodeError
	if errors.As(err, &de) && len(de.Issues) > 0 {
		return map[string]any{"error": de.Err.Error(), "issues": de.Issues}
	}
	return map[string]any{"error": err.Error()}
}

// WriteError writes the payload of err with its status code.
func WriteError(w http.ResponseWriter, err error) {
	body, mErr := json.Marshal(ErrorPayload(err))
	if mErr != nil {
		http.Error(w, mErr.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusOf(err))
	_, _ = w.Write(body)
}

// Handler validates the JSON body of each request before calling next. The
// validated value is available to next through ValidatedFromContext.
func Handler[T any](validate ValidateFunc[T], next http.Handler, opt ...Options) http.Handler {
	var o Options
	if len(opt) > 0 {
		o = opt[0]
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, _, err := Bind(r.Context(), r.Body, validate, o)
		if err != nil {
			WriteError(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
