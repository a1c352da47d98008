package validator

import (
	"github.com/erraggy/swaggerguard/format"
	"github.com/erraggy/swaggerguard/oaserrors"
	"github.com/erraggy/swaggerguard/schema"
)

// Compiler builds validators from schema attributes. A Compiler is immutable
// once built and safe for concurrent use.
type Compiler struct {
	integers *format.Registry[int64]
	strings  *format.Registry[string]
	logger   schema.Logger
}

// Option configures a Compiler.
type Option func(*Compiler) error

// WithIntegerFormats sets the registry integer validators take their format
// checkers from. Defaults to format.Integers.
func WithIntegerFormats(r *format.Registry[int64]) Option {
	return func(c *Compiler) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "WithIntegerFormats", Message: "registry cannot be nil"}
		}
		c.integers = r
		return nil
	}
}

// WithStringFormats sets the registry string validators take their format
// checkers from. Defaults to format.Strings.
func WithStringFormats(r *format.Registry[string]) Option {
	return func(c *Compiler) error {
		if r == nil {
			return &oaserrors.ConfigError{Option: "WithStringFormats", Message: "registry cannot be nil"}
		}
		c.strings = r
		return nil
	}
}

// WithLogger sets a structured logger for compile-time diagnostics such as
// unknown format names and unresolvable references.
func WithLogger(l schema.Logger) Option {
	return func(c *Compiler) error {
		c.logger = schema.OrNop(l)
		return nil
	}
}

// NewCompiler returns a Compiler configured by opts.
func NewCompiler(opts ...Option) (*Compiler, error) {
	c := &Compiler{
		integers: format.Integers,
		strings:  format.Strings,
		logger:   schema.NopLogger{},
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

var defaultCompiler = &Compiler{
	integers: format.Integers,
	strings:  format.Strings,
	logger:   schema.NopLogger{},
}

// Default returns the compiler bound to the process-wide format registries.
func Default() *Compiler {
	return defaultCompiler
}

// Compile builds a validator for attr using the default compiler.
func Compile(attr *schema.Attribute, r Resolver) Validator {
	return defaultCompiler.Compile(attr, r)
}

// Compile builds a validator for attr. References are bound to r and
// resolved when the validator runs; a nil r resolves nothing.
func (c *Compiler) Compile(attr *schema.Attribute, r Resolver) Validator {
	if r == nil {
		r = NoResolver
	}
	if attr == nil {
		return UnknownValidator{}
	}
	if attr.IsReference() {
		return &ReferenceValidator{
			Location: schema.ParseLocation(attr.Reference),
			Resolver: r,
		}
	}
	switch def := attr.Definition.(type) {
	case schema.Boolean, *schema.Boolean:
		return BooleanValidator{}
	case *schema.Integer:
		return c.Integer(def)
	case *schema.String:
		return c.String(def)
	case *schema.Array:
		return c.Array(def, r)
	case *schema.Object:
		return c.Object(def, r)
	default:
		return UnknownValidator{}
	}
}

// Resolver returns a Resolver that compiles object definitions from defs
// with c, on every lookup.
func (c *Compiler) Resolver(defs schema.Definitions) Resolver {
	return &definitionsResolver{compiler: c, definitions: defs}
}

// Integer builds an integer validator. Missing bounds are unbounded.
func (c *Compiler) Integer(def *schema.Integer) *IntegerValidator {
	v := DefaultIntegerValidator()
	if def == nil {
		return v
	}
	if def.Minimum != nil {
		v.Minimum = *def.Minimum
	}
	if def.Maximum != nil {
		v.Maximum = *def.Maximum
	}
	v.Format = c.integers.Resolve(def.Format)
	if format.IsUnknown(v.Format) {
		c.logger.Warn("unknown integer format", "format", def.Format)
	}
	return v
}

// String builds a string validator.
func (c *Compiler) String(def *schema.String) *StringValidator {
	v := DefaultStringValidator()
	if def == nil {
		return v
	}
	v.Format = c.strings.Resolve(def.Format)
	if format.IsUnknown(v.Format) {
		c.logger.Warn("unknown string format", "format", def.Format)
	}
	v.Choices = def.Choices
	return v
}

// Array builds an array validator whose single item validator is compiled
// once.
func (c *Compiler) Array(def *schema.Array, r Resolver) *ArrayValidator {
	var items *schema.Attribute
	if def != nil {
		items = def.Items
	}
	return &ArrayValidator{Items: c.Compile(items, r)}
}

// Object builds an object validator with one compiled validator per
// declared property.
func (c *Compiler) Object(def *schema.Object, r Resolver) *ObjectValidator {
	v := &ObjectValidator{}
	if def == nil {
		v.Properties = map[string]Validator{}
		return v
	}
	v.Properties = make(map[string]Validator, len(def.Properties))
	for name, attr := range def.Properties {
		v.Properties[name] = c.Compile(attr, r)
	}
	v.Required = def.Required
	return v
}
