package validator

import (
	"go.yaml.in/yaml/v4"
)

// ArrayValidator checks every element of a sequence with one item validator.
type ArrayValidator struct {
	Items Validator
}

// Validate implements Validator. Elements are checked in order and the first
// failure is returned. Empty sequences always pass.
func (v *ArrayValidator) Validate(node *yaml.Node) error {
	n := deref(node)
	if n == nil || n.Kind != yaml.SequenceNode {
		return violation(KindType, "field is not array")
	}
	for _, item := range n.Content {
		if err := v.Items.Validate(item); err != nil {
			return err
		}
	}
	return nil
}

// ObjectValidator checks a mapping against a closed set of properties.
type ObjectValidator struct {
	Properties map[string]Validator
	Required   []string
}

// Validate implements Validator.
//
// Required fields are checked first, in declaration order. Then each key is
// checked in document order: it must be a string, it must be a declared
// property, and its value must pass that property's validator.
func (v *ObjectValidator) Validate(node *yaml.Node) error {
	n := deref(node)
	if n == nil || n.Kind != yaml.MappingNode {
		return violation(KindType, "field is not object")
	}

	present := make(map[string]struct{}, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		if key := deref(n.Content[i]); isScalar(key, tagStr) {
			present[key.Value] = struct{}{}
		}
	}
	for _, name := range v.Required {
		if _, ok := present[name]; !ok {
			return MissingField(name)
		}
	}

	for i := 0; i+1 < len(n.Content); i += 2 {
		key := deref(n.Content[i])
		if !isScalar(key, tagStr) {
			return violation(KindStructure, "Unexpected field type")
		}
		prop, ok := v.Properties[key.Value]
		if !ok {
			return violation(KindStructure, "Unknown field "+key.Value)
		}
		if err := prop.Validate(n.Content[i+1]); err != nil {
			return err
		}
	}
	return nil
}
