package schema

// Array creates an array schema whose elements conform to items. A nil
// items schema is reported by Validate and by any enclosing Build.
func Array(description string, items *Schema) *Schema {
	return &Schema{kind: KindArray, description: description, items: items}
}
