// Package jsonschema describes the serialized violation report as a JSON
// Schema document, so clients of an HTTP API can validate error bodies.
package jsonschema

import (
	json "github.com/goccy/go-json"
)

// Draft is the dialect emitted by ReportSchema.
const Draft = "https://json-schema.org/draft/2020-12/schema"

// Schema is a minimal JSON Schema representation used for export.
type Schema struct {
	// Core
	Dialect     string             `json:"$schema,omitempty"`
	ID          string             `json:"$id,omitempty"`
	Ref         string             `json:"$ref,omitempty"`
	Defs        map[string]*Schema `json:"$defs,omitempty"`
	Title       string             `json:"title,omitempty"`
	Description string             `json:"description,omitempty"`
	Type        string             `json:"type,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// String / number
	MinLength *int `json:"minLength,omitempty"`
	Minimum   *int `json:"minimum,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// Union
	OneOf []*Schema `json:"oneOf,omitempty"`
}

func intPtr(n int) *int { return &n }

// ViolationSchema is the recursive schema of one violation node: a leaf with
// "errors" or a branch with "violations", never both.
func ViolationSchema() *Schema {
	self := &Schema{Ref: "#/$defs/violation"}
	base := func(required string, extra *Schema) *Schema {
		return &Schema{
			Type: "object",
			Properties: map[string]*Schema{
				"field": {Type: "string", MinLength: intPtr(1)},
				"index": {Type: "integer", Minimum: intPtr(0)},
				required: extra,
			},
			Required:             []string{"field", required},
			AdditionalProperties: false,
		}
	}
	return &Schema{
		Description: "A leaf carrying error messages or a branch carrying child violations.",
		OneOf: []*Schema{
			base("errors", &Schema{Type: "array", Items: &Schema{Type: "string"}, MinItems: intPtr(1)}),
			base("violations", &Schema{Type: "array", Items: self, MinItems: intPtr(1)}),
		},
	}
}

// ReportSchema returns the schema of the {"violations": [...]} report body.
func ReportSchema() *Schema {
	return &Schema{
		Dialect: Draft,
		Title:   "Violation report",
		Type:    "object",
		Properties: map[string]*Schema{
			"violations": {Type: "array", Items: &Schema{Ref: "#/$defs/violation"}},
		},
		Required:             []string{"violations"},
		AdditionalProperties: false,
		Defs:                 map[string]*Schema{"violation": ViolationSchema()},
	}
}

// IssuesSchema returns the schema of a flattened issue list.
func IssuesSchema() *Schema {
	return &Schema{
		Dialect: Draft,
		Title:   "Violation issues",
		Type:    "array",
		Items: &Schema{
			Type: "object",
			Properties: map[string]*Schema{
				"path":    {Type: "string", Description: "JSON Pointer of the offending attribute"},
				"message": {Type: "string"},
			},
			Required:             []string{"path", "message"},
			AdditionalProperties: false,
		},
	}
}

// Marshal renders s as indented JSON.
func Marshal(s *Schema) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
