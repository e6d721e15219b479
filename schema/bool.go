package schema

// Boolean creates a boolean schema.
func Boolean(description string) *Schema {
	return &Schema{kind: KindBoolean, description: description}
}
