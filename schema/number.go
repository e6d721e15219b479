package schema

// Number creates a numeric schema. JSON numbers decode as float64, so a
// single kind covers integers and floats. Optional enum values restrict the
// permitted numbers.
func Number(description string, enumValues ...float64) *Schema {
	s := &Schema{kind: KindNumber, description: description}
	for _, v := range enumValues {
		s.enum = append(s.enum, v)
	}
	return s
}
