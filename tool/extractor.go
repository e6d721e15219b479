package tool

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/im-vedant/llm4s/schema"
)

// Extractor provides typed, schema-checked access to a tool call's decoded
// arguments. All type narrowing from the model's untyped JSON payload happens
// here; handlers never touch the raw payload directly.
//
// Every accessor verifies three things: that a required field is present,
// that the runtime value matches the kind the schema declares, and that an
// enum-restricted value is among the permitted ones. Failures are returned
// as typed error values; the extractor never panics and never mutates the
// payload.
type Extractor struct {
	schema *schema.Schema
	data   map[string]any
}

// NewExtractor decodes a raw JSON arguments payload against an object schema.
// An empty payload decodes to an empty object. A payload that is not a JSON
// object is rejected with [InvalidArgumentsError].
func NewExtractor(s *schema.Schema, rawJSON string) (*Extractor, error) {
	if s == nil || s.Kind() != schema.KindObject {
		return nil, fmt.Errorf("tool: extractor requires an object schema")
	}

	data := map[string]any{}
	if trimmed := strings.TrimSpace(rawJSON); trimmed != "" {
		if err := json.Unmarshal([]byte(trimmed), &data); err != nil {
			return nil, &InvalidArgumentsError{Err: err}
		}
	}

	return &Extractor{schema: s, data: data}, nil
}

// Raw returns a shallow copy of the decoded arguments object, for handlers
// that forward the whole payload elsewhere.
func (e *Extractor) Raw() map[string]any {
	out := make(map[string]any, len(e.data))
	for k, v := range e.data {
		out[k] = v
	}
	return out
}

// Has reports whether a value is present at the given dotted path.
func (e *Extractor) Has(path string) bool {
	_, present, _, err := e.resolve(path)
	return err == nil && present
}

// String returns the string at the given dotted path.
// A required absent field yields [MissingFieldError]; an optional absent
// field yields "" with no error.
func (e *Extractor) String(path string) (string, error) {
	val, present, prop, err := e.resolve(path)
	if err != nil {
		return "", err
	}
	if !present {
		if prop.Required {
			return "", &MissingFieldError{Field: path}
		}
		return "", nil
	}
	return e.stringValue(path, prop.Schema, val)
}

// StringOr returns the string at the given path, or def when the field is
// absent. Type and enum violations are still errors.
func (e *Extractor) StringOr(path, def string) (string, error) {
	val, present, prop, err := e.resolve(path)
	if err != nil {
		return "", err
	}
	if !present {
		return def, nil
	}
	return e.stringValue(path, prop.Schema, val)
}

// Number returns the number at the given dotted path. JSON numbers decode as
// float64, so a single accessor covers integers and floats.
func (e *Extractor) Number(path string) (float64, error) {
	val, present, prop, err := e.resolve(path)
	if err != nil {
		return 0, err
	}
	if !present {
		if prop.Required {
			return 0, &MissingFieldError{Field: path}
		}
		return 0, nil
	}
	return e.numberValue(path, prop.Schema, val)
}

// NumberOr returns the number at the given path, or def when the field is
// absent.
func (e *Extractor) NumberOr(path string, def float64) (float64, error) {
	val, present, prop, err := e.resolve(path)
	if err != nil {
		return 0, err
	}
	if !present {
		return def, nil
	}
	return e.numberValue(path, prop.Schema, val)
}

// Boolean returns the boolean at the given dotted path.
func (e *Extractor) Boolean(path string) (bool, error) {
	val, present, prop, err := e.resolve(path)
	if err != nil {
		return false, err
	}
	if !present {
		if prop.Required {
			return false, &MissingFieldError{Field: path}
		}
		return false, nil
	}
	return e.booleanValue(path, val)
}

// BooleanOr returns the boolean at the given path, or def when the field is
// absent.
func (e *Extractor) BooleanOr(path string, def bool) (bool, error) {
	val, present, _, err := e.resolve(path)
	if err != nil {
		return false, err
	}
	if !present {
		return def, nil
	}
	return e.booleanValue(path, val)
}

// Object returns the nested object at the given dotted path.
func (e *Extractor) Object(path string) (map[string]any, error) {
	val, present, prop, err := e.resolve(path)
	if err != nil {
		return nil, err
	}
	if !present {
		if prop.Required {
			return nil, &MissingFieldError{Field: path}
		}
		return nil, nil
	}
	obj, ok := val.(map[string]any)
	if !ok {
		return nil, &TypeMismatchError{Field: path, Expected: "object", Actual: kindOf(val)}
	}
	return obj, nil
}

// Array returns the array at the given dotted path.
func (e *Extractor) Array(path string) ([]any, error) {
	val, present, prop, err := e.resolve(path)
	if err != nil {
		return nil, err
	}
	if !present {
		if prop.Required {
			return nil, &MissingFieldError{Field: path}
		}
		return nil, nil
	}
	arr, ok := val.([]any)
	if !ok {
		return nil, &TypeMismatchError{Field: path, Expected: "array", Actual: kindOf(val)}
	}
	return arr, nil
}

// Validate eagerly checks the whole payload against the schema: required
// fields, value types, and enum membership, recursing into nested objects and
// arrays. Payload fields the schema does not declare are tolerated.
func (e *Extractor) Validate() error {
	return validateObject(e.schema, e.data, "")
}

// resolve walks a dotted path through the schema and payload in parallel.
// It returns the value (if present), the final property's schema entry, and
// an error for paths the schema does not declare or intermediate violations.
func (e *Extractor) resolve(path string) (any, bool, schema.Property, error) {
	segments := strings.Split(path, ".")

	node := e.schema
	var val any = e.data
	present := true
	var prop schema.Property

	for i, seg := range segments {
		if node == nil || node.Kind() != schema.KindObject {
			return nil, false, schema.Property{}, fmt.Errorf("tool: path %q: %q is not an object", path, strings.Join(segments[:i], "."))
		}
		p, ok := node.Property(seg)
		if !ok {
			return nil, false, schema.Property{}, fmt.Errorf("tool: path %q is not declared in the schema", path)
		}
		prop = p
		node = p.Schema

		if !present {
			continue
		}
		obj, ok := val.(map[string]any)
		if !ok {
			return nil, false, schema.Property{}, &TypeMismatchError{
				Field:    strings.Join(segments[:i], "."),
				Expected: "object",
				Actual:   kindOf(val),
			}
		}
		child, ok := obj[seg]
		if !ok {
			// An absent required intermediate is reported at its own path.
			if p.Required && i < len(segments)-1 {
				return nil, false, schema.Property{}, &MissingFieldError{Field: strings.Join(segments[:i+1], ".")}
			}
			present = false
			continue
		}
		val = child
	}

	if !present {
		return nil, false, prop, nil
	}
	return val, true, prop, nil
}

func (e *Extractor) stringValue(path string, s *schema.Schema, val any) (string, error) {
	str, ok := val.(string)
	if !ok {
		return "", &TypeMismatchError{Field: path, Expected: "string", Actual: kindOf(val)}
	}
	if err := checkEnum(path, s, str); err != nil {
		return "", err
	}
	return str, nil
}

func (e *Extractor) numberValue(path string, s *schema.Schema, val any) (float64, error) {
	num, ok := val.(float64)
	if !ok {
		return 0, &TypeMismatchError{Field: path, Expected: "number", Actual: kindOf(val)}
	}
	if err := checkEnum(path, s, num); err != nil {
		return 0, err
	}
	return num, nil
}

func (e *Extractor) booleanValue(path string, val any) (bool, error) {
	b, ok := val.(bool)
	if !ok {
		return false, &TypeMismatchError{Field: path, Expected: "boolean", Actual: kindOf(val)}
	}
	return b, nil
}

func checkEnum(path string, s *schema.Schema, val any) error {
	allowed := s.Enum()
	if len(allowed) == 0 {
		return nil
	}
	for _, a := range allowed {
		if a == val {
			return nil
		}
	}
	return &InvalidEnumError{Field: path, Value: val, Allowed: allowed}
}

func validateObject(s *schema.Schema, data map[string]any, path string) error {
	for _, p := range s.Properties() {
		fieldPath := p.Name
		if path != "" {
			fieldPath = path + "." + p.Name
		}
		val, present := data[p.Name]
		if !present {
			if p.Required {
				return &MissingFieldError{Field: fieldPath}
			}
			continue
		}
		if err := validateValue(p.Schema, val, fieldPath); err != nil {
			return err
		}
	}
	return nil
}

func validateValue(s *schema.Schema, val any, path string) error {
	switch s.Kind() {
	case schema.KindString:
		str, ok := val.(string)
		if !ok {
			return &TypeMismatchError{Field: path, Expected: "string", Actual: kindOf(val)}
		}
		return checkEnum(path, s, str)

	case schema.KindNumber:
		num, ok := val.(float64)
		if !ok {
			return &TypeMismatchError{Field: path, Expected: "number", Actual: kindOf(val)}
		}
		return checkEnum(path, s, num)

	case schema.KindBoolean:
		if _, ok := val.(bool); !ok {
			return &TypeMismatchError{Field: path, Expected: "boolean", Actual: kindOf(val)}
		}

	case schema.KindObject:
		obj, ok := val.(map[string]any)
		if !ok {
			return &TypeMismatchError{Field: path, Expected: "object", Actual: kindOf(val)}
		}
		return validateObject(s, obj, path)

	case schema.KindArray:
		arr, ok := val.([]any)
		if !ok {
			return &TypeMismatchError{Field: path, Expected: "array", Actual: kindOf(val)}
		}
		items := s.Items()
		for i, item := range arr {
			if err := validateValue(items, item, fmt.Sprintf("%s[%d]", path, i)); err != nil {
				return err
			}
		}
	}
	return nil
}

// kindOf names a decoded JSON value's kind for error messages.
func kindOf(val any) string {
	switch val.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	default:
		return fmt.Sprintf("%T", val)
	}
}
