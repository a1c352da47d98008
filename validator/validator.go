package validator

import (
	"errors"

	"go.yaml.in/yaml/v4"

	"github.com/erraggy/swaggerguard/oaserrors"
)

// Validator checks a document node. It returns nil when the node conforms
// and a *Violation describing the first problem otherwise.
type Validator interface {
	Validate(node *yaml.Node) error
}

// Kind classifies a violation.
type Kind int

const (
	// KindType means the node's kind disagrees with the declared type.
	KindType Kind = iota
	// KindBound means an integer is outside its minimum or maximum.
	KindBound
	// KindFormat means a value fails its declared format.
	KindFormat
	// KindChoice means a string is not one of the declared enum values.
	KindChoice
	// KindStructure means an object is missing a required field, has an
	// undeclared field, or has a non-string key.
	KindStructure
	// KindReference means a $ref does not resolve to an object definition.
	KindReference
	// KindUnknownType means the schema attribute has no usable type.
	KindUnknownType
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case KindType:
		return "type"
	case KindBound:
		return "bound"
	case KindFormat:
		return "format"
	case KindChoice:
		return "choice"
	case KindStructure:
		return "structure"
	case KindReference:
		return "reference"
	case KindUnknownType:
		return "unknown-type"
	default:
		return "unknown"
	}
}

// Violation is the first way a document failed to conform to its schema.
type Violation struct {
	Kind    Kind
	Message string
}

// Error returns the violation message.
func (v *Violation) Error() string {
	return v.Message
}

// Is matches oaserrors.ErrValidation, and oaserrors.ErrReference for
// reference violations.
func (v *Violation) Is(target error) bool {
	if target == oaserrors.ErrValidation {
		return true
	}
	return target == oaserrors.ErrReference && v.Kind == KindReference
}

func violation(kind Kind, msg string) error {
	return &Violation{Kind: kind, Message: msg}
}

// MissingField returns the violation for an absent required field or
// parameter.
func MissingField(name string) error {
	return violation(KindStructure, "Field "+name+" is required")
}

// AsViolation extracts the *Violation from err, if there is one.
func AsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// UnknownValidator fails every node. It stands in for attributes without a
// usable type.
type UnknownValidator struct{}

// Validate implements Validator.
func (UnknownValidator) Validate(*yaml.Node) error {
	return violation(KindUnknownType, "Unknown type")
}

// deref follows document and alias nodes to the node they stand for.
// It returns nil for an empty document.
func deref(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		case yaml.AliasNode:
			n = n.Alias
		default:
			return n
		}
	}
	return nil
}

func isScalar(n *yaml.Node, tag string) bool {
	return n != nil && n.Kind == yaml.ScalarNode && n.ShortTag() == tag
}

const (
	tagBool = "!!bool"
	tagInt  = "!!int"
	tagStr  = "!!str"
)
