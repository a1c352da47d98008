package schema

import (
	"fmt"
	"slices"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/swaggerguard/oaserrors"
)

// Type tags as they appear in the `type` field of a schema.
const (
	TypeBoolean = "boolean"
	TypeInteger = "integer"
	TypeString  = "string"
	TypeArray   = "array"
	TypeObject  = "object"
	TypeFile    = "file"
)

// TypeDefinition is one of Boolean, *Integer, *String, *Array, *Object, File
// or Undefined. The set is closed: only types in this package implement it.
type TypeDefinition interface {
	// TypeName returns the schema type tag, or "" for Undefined.
	TypeName() string

	isTypeDefinition()
}

// Boolean is the `type: boolean` variant.
type Boolean struct{}

// Integer is the `type: integer` variant. Nil bounds mean unbounded.
type Integer struct {
	Format  string
	Minimum *int64
	Maximum *int64
}

// String is the `type: string` variant. Choices holds the distinct values
// of `enum` in declaration order.
type String struct {
	Format  string
	Choices []string
}

// Array is the `type: array` variant.
type Array struct {
	Items *Attribute
}

// Object is the `type: object` variant.
type Object struct {
	Properties map[string]*Attribute
	Required   []string
}

// File is the `type: file` variant used by formData parameters.
type File struct{}

// Undefined is the variant of an attribute that carries no type tag.
type Undefined struct{}

func (Boolean) TypeName() string   { return TypeBoolean }
func (*Integer) TypeName() string  { return TypeInteger }
func (*String) TypeName() string   { return TypeString }
func (*Array) TypeName() string    { return TypeArray }
func (*Object) TypeName() string   { return TypeObject }
func (File) TypeName() string      { return TypeFile }
func (Undefined) TypeName() string { return "" }

func (Boolean) isTypeDefinition()   {}
func (*Integer) isTypeDefinition()  {}
func (*String) isTypeDefinition()   {}
func (*Array) isTypeDefinition()    {}
func (*Object) isTypeDefinition()   {}
func (File) isTypeDefinition()      {}
func (Undefined) isTypeDefinition() {}

// Attribute is a schema node: an inline type definition or a reference to a
// named definition, plus an optional description.
//
// When Reference is set it takes precedence over Definition.
type Attribute struct {
	Definition  TypeDefinition
	Reference   string
	Description string
}

// IsReference reports whether the attribute points at a named definition.
func (a *Attribute) IsReference() bool {
	return a != nil && a.Reference != ""
}

// Definitions maps definition names to their attributes. References of the
// form "#/definitions/<name>" resolve into it.
type Definitions map[string]*Attribute

// Names returns the definition names in sorted order.
func (d Definitions) Names() []string {
	names := make([]string, 0, len(d))
	for name := range d {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// rawAttribute is the union of every field any variant can carry.
type rawAttribute struct {
	Type        string                `yaml:"type"`
	Ref         string                `yaml:"$ref"`
	Description string                `yaml:"description"`
	Format      string                `yaml:"format"`
	Minimum     *int64                `yaml:"minimum"`
	Maximum     *int64                `yaml:"maximum"`
	Enum        []string              `yaml:"enum"`
	Items       *Attribute            `yaml:"items"`
	Properties  map[string]*Attribute `yaml:"properties"`

	// Objects list required property names here, while an inline parameter
	// uses the same key for its own `required: true`. It is only read for
	// objects.
	Required yaml.Node `yaml:"required"`
}

// UnmarshalYAML decodes an attribute, dispatching on its `type` tag.
func (a *Attribute) UnmarshalYAML(node *yaml.Node) error {
	node = unwrapNode(node)
	if node.Kind != yaml.MappingNode {
		return &oaserrors.ParseError{
			Line:    node.Line,
			Column:  node.Column,
			Message: "schema attribute must be a mapping",
		}
	}

	var raw rawAttribute
	if err := node.Decode(&raw); err != nil {
		return &oaserrors.ParseError{
			Line:    node.Line,
			Column:  node.Column,
			Message: "decoding schema attribute",
			Cause:   err,
		}
	}

	def, err := raw.definition()
	if err != nil {
		return &oaserrors.ParseError{
			Line:    node.Line,
			Column:  node.Column,
			Message: err.Error(),
		}
	}

	*a = Attribute{
		Definition:  def,
		Reference:   raw.Ref,
		Description: raw.Description,
	}
	return nil
}

func (r *rawAttribute) definition() (TypeDefinition, error) {
	switch r.Type {
	case "":
		return Undefined{}, nil
	case TypeBoolean:
		return Boolean{}, nil
	case TypeInteger:
		return &Integer{Format: r.Format, Minimum: r.Minimum, Maximum: r.Maximum}, nil
	case TypeString:
		return &String{Format: r.Format, Choices: distinct(r.Enum)}, nil
	case TypeArray:
		if r.Items == nil {
			return nil, fmt.Errorf("array type requires items")
		}
		return &Array{Items: r.Items}, nil
	case TypeObject:
		props := r.Properties
		if props == nil {
			props = make(map[string]*Attribute)
		}
		var required []string
		if r.Required.Kind != 0 {
			if err := r.Required.Decode(&required); err != nil {
				return nil, fmt.Errorf("object required must be a list of property names")
			}
		}
		return &Object{Properties: props, Required: required}, nil
	case TypeFile:
		return File{}, nil
	default:
		return nil, fmt.Errorf("unsupported type %q", r.Type)
	}
}

// unwrapNode strips the document and alias wrappers yaml hands to a
// top-level or anchored UnmarshalYAML.
func unwrapNode(node *yaml.Node) *yaml.Node {
	for node != nil {
		switch {
		case node.Kind == yaml.DocumentNode && len(node.Content) == 1:
			node = node.Content[0]
		case node.Kind == yaml.AliasNode && node.Alias != nil:
			node = node.Alias
		default:
			return node
		}
	}
	return node
}

func distinct(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if !slices.Contains(out, v) {
			out = append(out, v)
		}
	}
	return out
}
