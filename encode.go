package valchain

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// ErrMalformedViolation is returned when decoding a node that is neither a
// leaf nor a branch, or that has no field name.
var ErrMalformedViolation = errors.New("valchain: malformed violation")

// violationWire is the serialized shape of a node:
//
//	{"field": "addr", "violations": [{"field": "city", "errors": ["required"]}]}
//
// Exactly one of errors and violations is set. index only appears on
// index-tagged nodes.
type violationWire struct {
	Field      string          `json:"field" yaml:"field"`
	Index      *int            `json:"index,omitempty" yaml:"index,omitempty"`
	Errors     []string        `json:"errors,omitempty" yaml:"errors,omitempty"`
	Violations []violationWire `json:"violations,omitempty" yaml:"violations,omitempty"`
}

func toWire(v Violation) violationWire {
	w := violationWire{Field: v.field, Errors: v.errors}
	if i, ok := v.Index(); ok {
		w.Index = &i
	}
	if len(v.violations) > 0 {
		w.Violations = make([]violationWire, len(v.violations))
		for i, c := range v.violations {
			w.Violations[i] = toWire(c)
		}
	}
	return w
}

func fromWire(w violationWire, path PathRef) (Violation, error) {
	here := path.Field(w.Field)
	if w.Field == "" {
		return Violation{}, fmt.Errorf("%w at %s: empty field", ErrMalformedViolation, path.Pointer())
	}
	switch {
	case len(w.Errors) > 0 && len(w.Violations) > 0:
		return Violation{}, fmt.Errorf("%w at %s: both errors and violations set", ErrMalformedViolation, here.Pointer())
	case len(w.Errors) > 0:
		if w.Index != nil {
			return FromIndexedErrors(w.Field, *w.Index, w.Errors), nil
		}
		return FromErrors(w.Field, w.Errors), nil
	case len(w.Violations) > 0:
		children := make([]Violation, len(w.Violations))
		for i, cw := range w.Violations {
			c, err := fromWire(cw, here)
			if err != nil {
				return Violation{}, err
			}
			children[i] = c
		}
		if w.Index != nil {
			return FromIndexedViolations(w.Field, *w.Index, children), nil
		}
		return FromViolations(w.Field, children), nil
	default:
		return Violation{}, fmt.Errorf("%w at %s: neither errors nor violations set", ErrMalformedViolation, here.Pointer())
	}
}

// MarshalJSON implements json.Marshaler.
func (v Violation) MarshalJSON() ([]byte, error) { return json.Marshal(toWire(v)) }

// UnmarshalJSON implements json.Unmarshaler.
func (v *Violation) UnmarshalJSON(data []byte) error {
	var w violationWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	out, err := fromWire(w, Root())
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (v Violation) MarshalYAML() (any, error) { return toWire(v), nil }

// UnmarshalYAML implements yaml.Unmarshaler.
func (v *Violation) UnmarshalYAML(node *yaml.Node) error {
	var w violationWire
	if err := node.Decode(&w); err != nil {
		return err
	}
	out, err := fromWire(w, Root())
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// Report is the error body produced from a failed validation:
//
//	{"violations": [...]}
type Report struct {
	Violations []Violation `json:"violations" yaml:"violations"`
}

// MarshalJSON renders the error as a Report.
func (e *ValidationError) MarshalJSON() ([]byte, error) {
	return json.Marshal(Report{Violations: e.Violations})
}

// MarshalReport encodes violations as a JSON Report.
func MarshalReport(vs []Violation) ([]byte, error) {
	if vs == nil {
		vs = []Violation{}
	}
	return json.Marshal(Report{Violations: vs})
}

// UnmarshalReport decodes a JSON Report.
func UnmarshalReport(data []byte) ([]Violation, error) {
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return r.Violations, nil
}

// MarshalReportYAML encodes violations as a YAML Report.
func MarshalReportYAML(vs []Violation) ([]byte, error) {
	if vs == nil {
		vs = []Violation{}
	}
	return yaml.Marshal(Report{Violations: vs})
}

// UnmarshalReportYAML decodes a YAML Report.
func UnmarshalReportYAML(data []byte) ([]Violation, error) {
	var r Report
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, err
	}
	return r.Violations, nil
}
