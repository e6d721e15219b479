// Package schema provides declarative parameter schemas for AI tools.
//
// A schema is an immutable tree describing the shape of a tool's arguments:
// string, number, and boolean leaves (optionally restricted to enum values),
// arrays, and objects with ordered, required-or-optional properties. The
// same tree serves two masters: serialized as JSON Schema it tells the model
// what arguments to produce, and at invocation time the tool package walks
// it to extract and type-check those arguments.
//
// # Basic Usage
//
// Primitives are constructed directly; objects through a builder:
//
//	params := schema.Object("Weather forecast request").
//		Property("location", schema.String("City name")).
//		OptionalProperty("unit", schema.String("Temperature unit", "celsius", "fahrenheit")).
//		OptionalProperty("days", schema.Number("Number of days")).
//		MustBuild()
//
// Property marks a field required; OptionalProperty leaves it optional.
// Properties are serialized in definition order.
//
// # Nested Structures
//
//	params := schema.Object("Create a user").
//		Property("user", schema.Object("The user record").
//			Property("name", schema.String("Full name")).
//			OptionalProperty("age", schema.Number("Age in years")).
//			MustBuild()).
//		OptionalProperty("tags", schema.Array("Labels to attach", schema.String(""))).
//		MustBuild()
//
// # Validation
//
// Build reports duplicate property names, nil property schemas, and arrays
// without an element schema:
//
//	_, err := schema.Object("bad").
//		Property("x", schema.String("")).
//		Property("x", schema.Boolean("")).
//		Build()
//	// err wraps ErrDuplicateProperty
//
// # Serialization
//
// JSON renders a standard JSON Schema fragment for provider advertising:
//
//	raw, err := params.JSON()
//	// {"type":"object","description":...,"properties":{...},"required":[...]}
package schema
