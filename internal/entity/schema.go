package entity

import (
	"encoding/json"
	"sort"
)

// MissingRequiredProperties returns the names listed in schema.required that
// have no matching key in schema.properties. A schema without a required
// array yields nil.
func MissingRequiredProperties(schema json.RawMessage) ([]string, error) {
	var doc struct {
		Properties map[string]json.RawMessage `json:"properties"`
		Required   []string                   `json:"required"`
	}
	if err := json.Unmarshal(schema, &doc); err != nil {
		return nil, err
	}

	var missing []string
	for _, name := range doc.Required {
		if _, ok := doc.Properties[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing, nil
}

// PropertyNames returns the top-level property names of a JSON Schema in
// lexical order.
func PropertyNames(schema json.RawMessage) []string {
	var doc struct {
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(schema, &doc); err != nil {
		return nil
	}

	names := make([]string, 0, len(doc.Properties))
	for name := range doc.Properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
