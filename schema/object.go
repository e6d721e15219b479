package schema

// Object creates a builder for an object schema. Properties keep their
// definition order, which makes the serialized form deterministic.
func Object(description string) *ObjectBuilder {
	return &ObjectBuilder{description: description}
}

// ObjectBuilder constructs object schemas.
type ObjectBuilder struct {
	description string
	props       []Property
}

// Property adds a required property.
func (b *ObjectBuilder) Property(name string, s *Schema) *ObjectBuilder {
	b.props = append(b.props, Property{Name: name, Schema: s, Required: true})
	return b
}

// OptionalProperty adds a property the caller may omit.
func (b *ObjectBuilder) OptionalProperty(name string, s *Schema) *ObjectBuilder {
	b.props = append(b.props, Property{Name: name, Schema: s, Required: false})
	return b
}

// Build validates the object tree and returns an immutable schema.
// Duplicate property names and nil property schemas are build errors.
func (b *ObjectBuilder) Build() (*Schema, error) {
	s := &Schema{
		kind:        KindObject,
		description: b.description,
		props:       append([]Property(nil), b.props...),
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustBuild is like Build but panics on error.
func (b *ObjectBuilder) MustBuild() *Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
