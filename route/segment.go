package route

import (
	"iter"
	"strconv"
	"strings"

	"github.com/erraggy/swaggerguard/schema"
	"github.com/erraggy/swaggerguard/validator"
)

// SegmentKind classifies one segment of a path template.
type SegmentKind int

const (
	// Fixed is literal text, or an undeclared placeholder when Untyped is set.
	Fixed SegmentKind = iota
	// Text is a string-typed path parameter.
	Text
	// Number is an integer-typed path parameter.
	Number
)

// String returns the name of the kind.
func (k SegmentKind) String() string {
	switch k {
	case Fixed:
		return "fixed"
	case Text:
		return "text"
	case Number:
		return "number"
	default:
		return "unknown"
	}
}

// Segment is one "/"-delimited piece of a path template.
//
// For Fixed segments Value is the literal text. For parameters, and for
// untyped placeholders, Value is the parameter name.
type Segment struct {
	Kind    SegmentKind
	Value   string
	Untyped bool

	// Text is set for Text segments.
	Text *validator.StringValidator
	// Number is set for Number segments.
	Number *validator.IntegerValidator
}

// IsParam reports whether the segment captures a value.
func (s Segment) IsParam() bool {
	return s.Kind != Fixed || s.Untyped
}

// String renders the segment the way it appears in a template.
func (s Segment) String() string {
	if s.IsParam() {
		return "{" + s.Value + "}"
	}
	return s.Value
}

// capture validates a raw value for a capturing segment and converts it:
// int64 for Number segments, string otherwise.
func (s Segment) capture(raw string) (any, error) {
	switch {
	case s.Kind == Number && s.Number != nil:
		if err := s.Number.ValidateText(raw); err != nil {
			return nil, err
		}
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		return n, nil
	case s.Kind == Text && s.Text != nil:
		if err := s.Text.ValidateString(raw); err != nil {
			return nil, err
		}
	}
	return raw, nil
}

// SegmentIter yields the segments of one template, one per call to Next.
// It is single use: once drained it yields nothing more.
type SegmentIter struct {
	compiler *validator.Compiler
	params   []*schema.Parameter
	tokens   []string
	pos      int
}

// NewSegmentIter returns an iterator over the segments of template, typed
// by the path parameters in params. A nil compiler uses validator.Default.
func NewSegmentIter(c *validator.Compiler, template string, params []*schema.Parameter) *SegmentIter {
	if c == nil {
		c = validator.Default()
	}
	return &SegmentIter{
		compiler: c,
		params:   params,
		tokens:   splitPath(template),
	}
}

// Next returns the next segment, or false when the template is exhausted.
func (it *SegmentIter) Next() (Segment, bool) {
	if it.pos >= len(it.tokens) {
		return Segment{}, false
	}
	tok := it.tokens[it.pos]
	it.pos++
	return it.segment(tok), true
}

// All drains the iterator. Ranging over it twice yields nothing the second
// time.
func (it *SegmentIter) All() iter.Seq[Segment] {
	return func(yield func(Segment) bool) {
		for {
			seg, ok := it.Next()
			if !ok || !yield(seg) {
				return
			}
		}
	}
}

func (it *SegmentIter) segment(tok string) Segment {
	name, ok := paramName(tok)
	if !ok {
		return Segment{Kind: Fixed, Value: tok}
	}
	p := schema.FindParameter(it.params, name, schema.InPath)
	if p == nil {
		return Segment{Kind: Fixed, Value: name, Untyped: true}
	}
	switch def := p.Attribute.Definition.(type) {
	case *schema.Integer:
		return Segment{Kind: Number, Value: name, Number: it.compiler.Integer(def)}
	case *schema.String:
		return Segment{Kind: Text, Value: name, Text: it.compiler.String(def)}
	default:
		return Segment{Kind: Text, Value: name, Text: validator.DefaultStringValidator()}
	}
}

// splitPath splits a template or request path on "/", dropping the empty
// token before the leading slash.
func splitPath(path string) []string {
	path = strings.TrimPrefix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// paramName returns name for a token of the form "{name}".
func paramName(tok string) (string, bool) {
	if len(tok) < 2 || tok[0] != '{' || tok[len(tok)-1] != '}' {
		return "", false
	}
	return tok[1 : len(tok)-1], true
}
