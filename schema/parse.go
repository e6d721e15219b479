package schema

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Parse decodes a JSON Schema document into a schema tree. It understands
// the subset this package emits: string, number (plus integer), boolean,
// object, and array nodes with descriptions, enums, items, properties, and
// required lists. Unknown keywords are ignored.
//
// JSON objects carry no key ordering, so parsed object properties are
// sorted by name to keep the round-trip deterministic.
func Parse(data json.RawMessage) (*Schema, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("schema: parse: %w", err)
	}
	s, err := parseNode(raw)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func parseNode(raw map[string]any) (*Schema, error) {
	typeVal, _ := raw["type"].(string)

	s := &Schema{}
	switch typeVal {
	case "string":
		s.kind = KindString
	case "number", "integer":
		s.kind = KindNumber
	case "boolean":
		s.kind = KindBoolean
	case "object":
		s.kind = KindObject
	case "array":
		s.kind = KindArray
	default:
		return nil, fmt.Errorf("schema: parse: unsupported type %q", typeVal)
	}

	if desc, ok := raw["description"].(string); ok {
		s.description = desc
	}

	if enumVal, ok := raw["enum"].([]any); ok {
		s.enum = append(s.enum, enumVal...)
	}

	switch s.kind {
	case KindArray:
		items, ok := raw["items"].(map[string]any)
		if !ok {
			return nil, ErrNilItems
		}
		child, err := parseNode(items)
		if err != nil {
			return nil, err
		}
		s.items = child

	case KindObject:
		required := map[string]bool{}
		if reqVal, ok := raw["required"].([]any); ok {
			for _, r := range reqVal {
				if name, ok := r.(string); ok {
					required[name] = true
				}
			}
		}

		props, _ := raw["properties"].(map[string]any)
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			propMap, ok := props[name].(map[string]any)
			if !ok {
				return nil, fmt.Errorf("schema: parse: property %q is not an object", name)
			}
			child, err := parseNode(propMap)
			if err != nil {
				return nil, fmt.Errorf("schema: parse: property %q: %w", name, err)
			}
			s.props = append(s.props, Property{
				Name:     name,
				Schema:   child,
				Required: required[name],
			})
		}
	}

	return s, nil
}
