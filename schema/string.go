package schema

// String creates a string schema. Optional enum values restrict the
// permitted strings; with none, any string is accepted.
func String(description string, enumValues ...string) *Schema {
	s := &Schema{kind: KindString, description: description}
	for _, v := range enumValues {
		s.enum = append(s.enum, v)
	}
	return s
}
