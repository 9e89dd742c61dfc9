package jsonschema

// Schema is a serializable draft-07 structural schema representation. The
// vocabulary deliberately stops at draft-07 because that is the newest
// dialect the structural evaluator understands; in particular, local
// definitions live under "definitions" rather than "$defs".
type Schema struct {
	// Core
	SchemaURI string `json:"$schema,omitempty"`
	ID        string `json:"$id,omitempty"`
	Ref       string `json:"$ref,omitempty"`
	Type      string `json:"type,omitempty"`
	Format    string `json:"format,omitempty"`
	Default   any    `json:"default,omitempty"`
	Enum      []any  `json:"enum,omitempty"`
	Const     any    `json:"const,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	Required             []string           `json:"required,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`

	// Array
	Items    *Schema `json:"items,omitempty"`
	MinItems *int    `json:"minItems,omitempty"`
	MaxItems *int    `json:"maxItems,omitempty"`

	// String
	MinLength *int `json:"minLength,omitempty"`

	// Composition
	AnyOf []*Schema `json:"anyOf,omitempty"`
	AllOf []*Schema `json:"allOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
	If    *Schema   `json:"if,omitempty"`
	Then  *Schema   `json:"then,omitempty"`
	Else  *Schema   `json:"else,omitempty"`

	// Definitions holds the local definitions table. Values may be *Schema or
	// arbitrary schema documents (map[string]any) embedded from a component
	// registry; both serialize identically.
	Definitions map[string]any `json:"definitions,omitempty"`
}
