package validator

import (
	"math"
	"slices"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/swaggerguard/format"
)

// BooleanValidator accepts boolean scalars.
type BooleanValidator struct{}

// Validate implements Validator.
func (BooleanValidator) Validate(node *yaml.Node) error {
	if !isScalar(deref(node), tagBool) {
		return violation(KindType, "field is not boolean")
	}
	return nil
}

// ValidateText checks a value taken from a path, query or header, where
// only "true" and "false" are booleans.
func (BooleanValidator) ValidateText(s string) error {
	if s != "true" && s != "false" {
		return violation(KindType, "field is not boolean")
	}
	return nil
}

// IntegerValidator accepts integer scalars within [Minimum, Maximum] that
// satisfy Format.
type IntegerValidator struct {
	Format  format.Checker[int64]
	Minimum int64
	Maximum int64
}

// DefaultIntegerValidator returns a validator with no bounds and no format.
func DefaultIntegerValidator() *IntegerValidator {
	return &IntegerValidator{
		Format:  format.None[int64](),
		Minimum: math.MinInt64,
		Maximum: math.MaxInt64,
	}
}

// Validate implements Validator.
func (v *IntegerValidator) Validate(node *yaml.Node) error {
	n := deref(node)
	if !isScalar(n, tagInt) {
		return violation(KindType, "field is not integer")
	}
	var i int64
	if err := n.Decode(&i); err != nil {
		return violation(KindType, "field is not integer")
	}
	return v.ValidateInt(i)
}

// ValidateInt checks an already decoded value: minimum, then maximum, then
// format.
func (v *IntegerValidator) ValidateInt(i int64) error {
	if i < v.Minimum {
		return violation(KindBound, "field is too small")
	}
	if i > v.Maximum {
		return violation(KindBound, "field is too large")
	}
	if f := v.format(); !f.Check(i) {
		return violation(KindFormat, "field is not format of "+f.Name())
	}
	return nil
}

// ValidateText parses s as a base-10 integer and checks it like ValidateInt.
func (v *IntegerValidator) ValidateText(s string) error {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return violation(KindType, "field is not integer")
	}
	return v.ValidateInt(i)
}

func (v *IntegerValidator) format() format.Checker[int64] {
	if v.Format == nil {
		return format.None[int64]()
	}
	return v.Format
}

// StringValidator accepts string scalars that satisfy Format and, when
// Choices is not empty, are one of Choices.
type StringValidator struct {
	Format  format.Checker[string]
	Choices []string
}

// DefaultStringValidator returns a validator with no format and no choices.
func DefaultStringValidator() *StringValidator {
	return &StringValidator{Format: format.None[string]()}
}

// Validate implements Validator.
func (v *StringValidator) Validate(node *yaml.Node) error {
	n := deref(node)
	if !isScalar(n, tagStr) {
		return violation(KindType, "field is not string")
	}
	return v.ValidateString(n.Value)
}

// ValidateString checks an already decoded value: format, then choices.
func (v *StringValidator) ValidateString(s string) error {
	f := v.Format
	if f == nil {
		f = format.None[string]()
	}
	if !f.Check(s) {
		return violation(KindFormat, "field is not format of "+f.Name())
	}
	if len(v.Choices) > 0 && !slices.Contains(v.Choices, s) {
		return violation(KindChoice, "field is not one of "+v.formatChoices())
	}
	return nil
}

func (v *StringValidator) formatChoices() string {
	return "[" + strings.Join(v.Choices, ", ") + "]"
}
