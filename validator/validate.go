package validator

import (
	"bytes"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/swaggerguard/oaserrors"
	"github.com/erraggy/swaggerguard/schema"
)

// ParseNode parses YAML or JSON bytes into a document node.
func ParseNode(data []byte) (*yaml.Node, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &oaserrors.ParseError{Message: "empty document"}
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &oaserrors.ParseError{Message: "decoding document", Cause: err}
	}
	return &node, nil
}

// ValidateBytes parses data and validates it against attr, resolving
// references in defs with the default compiler. A non-nil error is either a
// *oaserrors.ParseError or a *Violation.
func ValidateBytes(attr *schema.Attribute, defs schema.Definitions, data []byte) error {
	return defaultCompiler.ValidateBytes(attr, defs, data)
}

// ValidateBytes is the Compiler form of the package-level ValidateBytes.
func (c *Compiler) ValidateBytes(attr *schema.Attribute, defs schema.Definitions, data []byte) error {
	node, err := ParseNode(data)
	if err != nil {
		return err
	}
	return c.Compile(attr, c.Resolver(defs)).Validate(node)
}

// ValidateDefinition validates node against the named object definition.
// A missing or non-object definition is a *oaserrors.ReferenceError rather
// than a violation.
func ValidateDefinition(defs schema.Definitions, name string, node *yaml.Node) error {
	return defaultCompiler.ValidateDefinition(defs, name, node)
}

// ValidateDefinition is the Compiler form of the package-level
// ValidateDefinition.
func (c *Compiler) ValidateDefinition(defs schema.Definitions, name string, node *yaml.Node) error {
	loc := schema.LocalLocation(name)
	obj, ok := c.Resolver(defs).Resolve(loc)
	if !ok {
		return &oaserrors.ReferenceError{Ref: loc.String(), Message: "no object definition named " + name}
	}
	return obj.Validate(node)
}
