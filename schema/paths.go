package schema

import (
	"fmt"
	"iter"
	"slices"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/swaggerguard/oaserrors"
)

// ParameterLocation is the `in` field of a parameter.
type ParameterLocation string

// Parameter locations defined by Swagger 2.0.
const (
	InPath     ParameterLocation = "path"
	InFormData ParameterLocation = "formData"
	InBody     ParameterLocation = "body"
	InHeader   ParameterLocation = "header"
	InQuery    ParameterLocation = "query"
)

// Valid reports whether l is one of the Swagger 2.0 locations.
func (l ParameterLocation) Valid() bool {
	switch l {
	case InPath, InFormData, InBody, InHeader, InQuery:
		return true
	}
	return false
}

// Parameter describes a single operation parameter.
//
// Body parameters take their attribute from the `schema` field; every other
// location declares its type inline next to name and in.
type Parameter struct {
	Name      string
	In        ParameterLocation
	Required  bool
	Attribute Attribute

	// CollectionFormat is how array values are serialized outside the body:
	// csv (the default), ssv, tsv, pipes or multi.
	CollectionFormat string
}

type rawParameter struct {
	Name             string            `yaml:"name"`
	In               ParameterLocation `yaml:"in"`
	Required         bool              `yaml:"required"`
	Schema           *Attribute        `yaml:"schema"`
	CollectionFormat string            `yaml:"collectionFormat"`
}

// UnmarshalYAML decodes a parameter and its attribute.
func (p *Parameter) UnmarshalYAML(node *yaml.Node) error {
	node = unwrapNode(node)
	var raw rawParameter
	if err := node.Decode(&raw); err != nil {
		return err
	}
	if !raw.In.Valid() {
		return &oaserrors.ParseError{
			Line:    node.Line,
			Column:  node.Column,
			Message: fmt.Sprintf("parameter %q has invalid location %q", raw.Name, raw.In),
		}
	}

	var attr Attribute
	switch {
	case raw.In == InBody && raw.Schema != nil:
		attr = *raw.Schema
	default:
		if err := node.Decode(&attr); err != nil {
			return err
		}
	}

	*p = Parameter{
		Name:      raw.Name,
		In:        raw.In,
		Required:  raw.Required,
		Attribute: attr,

		CollectionFormat: raw.CollectionFormat,
	}
	return nil
}

// Method is an HTTP method an operation can be declared under.
type Method string

// Supported methods, in iteration order.
const (
	MethodPut    Method = "PUT"
	MethodPost   Method = "POST"
	MethodGet    Method = "GET"
	MethodPatch  Method = "PATCH"
	MethodDelete Method = "DELETE"
)

// Methods lists the supported methods in iteration order.
var Methods = []Method{MethodPut, MethodPost, MethodGet, MethodPatch, MethodDelete}

// Operation describes a single API operation on a path.
type Operation struct {
	OperationID string       `yaml:"operationId"`
	Parameters  []*Parameter `yaml:"parameters"`
}

// Operations holds the operations declared under one path template, along
// with the parameters shared by all of them.
type Operations struct {
	Put        *Operation   `yaml:"put"`
	Post       *Operation   `yaml:"post"`
	Get        *Operation   `yaml:"get"`
	Patch      *Operation   `yaml:"patch"`
	Delete     *Operation   `yaml:"delete"`
	Parameters []*Parameter `yaml:"parameters"`
}

// Lookup returns the operation declared for method, or nil.
func (o *Operations) Lookup(method Method) *Operation {
	if o == nil {
		return nil
	}
	switch method {
	case MethodPut:
		return o.Put
	case MethodPost:
		return o.Post
	case MethodGet:
		return o.Get
	case MethodPatch:
		return o.Patch
	case MethodDelete:
		return o.Delete
	}
	return nil
}

// All yields the declared operations in PUT, POST, GET, PATCH, DELETE order.
func (o *Operations) All() iter.Seq2[Method, *Operation] {
	return func(yield func(Method, *Operation) bool) {
		for _, m := range Methods {
			op := o.Lookup(m)
			if op == nil {
				continue
			}
			if !yield(m, op) {
				return
			}
		}
	}
}

// EffectiveParameters merges the path-level parameters with those of op.
// An operation parameter overrides a path-level one with the same name and
// location.
func (o *Operations) EffectiveParameters(op *Operation) []*Parameter {
	var shared []*Parameter
	if o != nil {
		shared = o.Parameters
	}
	if op == nil {
		return slices.Clone(shared)
	}
	out := make([]*Parameter, 0, len(shared)+len(op.Parameters))
	for _, p := range shared {
		overridden := slices.ContainsFunc(op.Parameters, func(q *Parameter) bool {
			return q.Name == p.Name && q.In == p.In
		})
		if !overridden {
			out = append(out, p)
		}
	}
	return append(out, op.Parameters...)
}

// Paths maps path templates to their operations.
type Paths map[string]*Operations

// Templates returns the path templates in sorted order.
func (p Paths) Templates() []string {
	out := make([]string, 0, len(p))
	for t := range p {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}

// FindParameter returns the first parameter named name declared in the given
// location, or nil.
func FindParameter(params []*Parameter, name string, in ParameterLocation) *Parameter {
	for _, p := range params {
		if p != nil && p.Name == name && p.In == in {
			return p
		}
	}
	return nil
}
