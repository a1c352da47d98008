package validator

import (
	"go.yaml.in/yaml/v4"

	"github.com/erraggy/swaggerguard/schema"
)

// Resolver turns a reference location into an object validator.
type Resolver interface {
	// Resolve returns the validator for the definition at loc, or false if
	// loc does not name an object-typed definition.
	Resolve(loc schema.Location) (*ObjectValidator, bool)
}

// ResolverFunc is an adapter that allows ordinary functions to be used as
// resolvers.
type ResolverFunc func(loc schema.Location) (*ObjectValidator, bool)

// Resolve calls f(loc).
func (f ResolverFunc) Resolve(loc schema.Location) (*ObjectValidator, bool) {
	return f(loc)
}

// NoResolver resolves nothing.
var NoResolver Resolver = ResolverFunc(func(schema.Location) (*ObjectValidator, bool) {
	return nil, false
})

// ReferenceValidator validates against a referenced definition, looked up
// each time Validate runs.
type ReferenceValidator struct {
	Location schema.Location
	Resolver Resolver
}

// Validate implements Validator.
func (v *ReferenceValidator) Validate(node *yaml.Node) error {
	if v.Resolver == nil {
		return violation(KindReference, "No such reference")
	}
	obj, ok := v.Resolver.Resolve(v.Location)
	if !ok {
		return violation(KindReference, "No such reference")
	}
	return obj.Validate(node)
}

// definitionsResolver compiles object definitions on demand. Nothing is
// cached: every Resolve builds a new validator.
type definitionsResolver struct {
	compiler    *Compiler
	definitions schema.Definitions
}

func (r *definitionsResolver) Resolve(loc schema.Location) (*ObjectValidator, bool) {
	if !loc.IsLocal() {
		r.compiler.logger.Debug("unresolvable reference", "ref", loc.String())
		return nil, false
	}
	attr, ok := r.definitions[loc.Name()]
	if !ok || attr == nil {
		r.compiler.logger.Debug("reference to missing definition", "ref", loc.String())
		return nil, false
	}
	obj, ok := attr.Definition.(*schema.Object)
	if !ok {
		r.compiler.logger.Debug("reference to non-object definition", "ref", loc.String())
		return nil, false
	}
	return r.compiler.Object(obj, r), true
}
