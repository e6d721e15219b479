package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind identifies the type of value a schema node describes.
type Kind string

const (
	KindString  Kind = "string"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindObject  Kind = "object"
	KindArray   Kind = "array"
)

// Schema is an immutable node in a parameter schema tree. Nodes are built
// once via the constructors in this package and may be shared freely across
// tools and invocations.
type Schema struct {
	kind        Kind
	description string
	enum        []any      // string and number kinds only
	items       *Schema    // array kind only
	props       []Property // object kind only, in definition order
}

// Property is a named member of an object schema.
type Property struct {
	Name     string
	Schema   *Schema
	Required bool
}

// Sentinel errors for schema validation.
var (
	// ErrNilItems is returned when an array has no element schema.
	ErrNilItems = errors.New("schema: array requires an element schema")

	// ErrNilProperty is returned when an object property has no schema.
	ErrNilProperty = errors.New("schema: property requires a schema")

	// ErrDuplicateProperty is returned when an object declares the same
	// property name twice.
	ErrDuplicateProperty = errors.New("schema: duplicate property")
)

// ValidationError represents a schema validation failure.
type ValidationError struct {
	Field   string // The property name (for objects)
	Message string // Human-readable error message
	Err     error  // Underlying error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema: field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("schema: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Kind returns the node's kind.
func (s *Schema) Kind() Kind { return s.kind }

// Description returns the human-readable description shown to the model.
func (s *Schema) Description() string { return s.description }

// Enum returns the permitted values for string and number kinds, or nil when
// the value is unrestricted.
func (s *Schema) Enum() []any {
	if len(s.enum) == 0 {
		return nil
	}
	return append([]any(nil), s.enum...)
}

// Items returns the element schema of an array node, or nil for other kinds.
func (s *Schema) Items() *Schema { return s.items }

// Properties returns an object's properties in definition order, or nil for
// other kinds.
func (s *Schema) Properties() []Property {
	if len(s.props) == 0 {
		return nil
	}
	return append([]Property(nil), s.props...)
}

// Property looks up an object property by name.
func (s *Schema) Property(name string) (Property, bool) {
	for _, p := range s.props {
		if p.Name == name {
			return p, true
		}
	}
	return Property{}, false
}

// Validate checks the schema tree for internal consistency.
func (s *Schema) Validate() error {
	switch s.kind {
	case KindArray:
		if s.items == nil {
			return &ValidationError{
				Message: "array requires an element schema",
				Err:     ErrNilItems,
			}
		}
		if err := s.items.Validate(); err != nil {
			return &ValidationError{
				Message: fmt.Sprintf("invalid items schema: %v", err),
				Err:     err,
			}
		}

	case KindObject:
		seen := make(map[string]bool, len(s.props))
		for _, p := range s.props {
			if p.Schema == nil {
				return &ValidationError{
					Field:   p.Name,
					Message: "property requires a schema",
					Err:     ErrNilProperty,
				}
			}
			if seen[p.Name] {
				return &ValidationError{
					Field:   p.Name,
					Message: "duplicate property",
					Err:     ErrDuplicateProperty,
				}
			}
			seen[p.Name] = true
			if err := p.Schema.Validate(); err != nil {
				return &ValidationError{
					Field:   p.Name,
					Message: err.Error(),
					Err:     err,
				}
			}
		}
	}
	return nil
}

// JSON validates the tree and serializes it as a JSON Schema fragment for
// advertising to a provider.
func (s *Schema) JSON() (json.RawMessage, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(s)
}

// MarshalJSON renders the schema as JSON Schema. Object properties are
// emitted in definition order, which encoding/json maps cannot guarantee.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"type":"` + string(s.kind) + `"`)

	if s.description != "" {
		desc, err := json.Marshal(s.description)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"description":`)
		buf.Write(desc)
	}

	if len(s.enum) > 0 {
		enum, err := json.Marshal(s.enum)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"enum":`)
		buf.Write(enum)
	}

	switch s.kind {
	case KindArray:
		if s.items == nil {
			return nil, &ValidationError{Message: "array requires an element schema", Err: ErrNilItems}
		}
		items, err := json.Marshal(s.items)
		if err != nil {
			return nil, err
		}
		buf.WriteString(`,"items":`)
		buf.Write(items)

	case KindObject:
		buf.WriteString(`,"properties":{`)
		required := make([]string, 0, len(s.props))
		for i, p := range s.props {
			if p.Schema == nil {
				return nil, &ValidationError{Field: p.Name, Message: "property requires a schema", Err: ErrNilProperty}
			}
			if i > 0 {
				buf.WriteByte(',')
			}
			name, err := json.Marshal(p.Name)
			if err != nil {
				return nil, err
			}
			child, err := json.Marshal(p.Schema)
			if err != nil {
				return nil, err
			}
			buf.Write(name)
			buf.WriteByte(':')
			buf.Write(child)
			if p.Required {
				required = append(required, p.Name)
			}
		}
		buf.WriteByte('}')
		if len(required) > 0 {
			req, err := json.Marshal(required)
			if err != nil {
				return nil, err
			}
			buf.WriteString(`,"required":`)
			buf.Write(req)
		}
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
