package route

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/erraggy/swaggerguard/oaserrors"
	"github.com/erraggy/swaggerguard/schema"
	"github.com/erraggy/swaggerguard/validator"
)

// Params holds the values captured by a match: int64 for Number segments,
// string otherwise.
type Params map[string]any

// Int returns the integer value captured for name.
func (p Params) Int(name string) (int64, bool) {
	v, ok := p[name].(int64)
	return v, ok
}

// String returns the string value captured for name.
func (p Params) String(name string) (string, bool) {
	v, ok := p[name].(string)
	return v, ok
}

// ParamError reports a path parameter whose value failed its validator.
type ParamError struct {
	Name string
	Err  error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("path parameter %s: %v", e.Name, e.Err)
}

func (e *ParamError) Unwrap() error {
	return e.Err
}

// Template is a compiled path template.
type Template struct {
	raw      string
	segments []Segment
}

// Compile checks the syntax of template and materializes its segments,
// typed by the path parameters in params. A nil compiler uses
// validator.Default.
func Compile(c *validator.Compiler, template string, params []*schema.Parameter) (*Template, error) {
	if err := checkSyntax(template); err != nil {
		return nil, err
	}
	return &Template{
		raw:      template,
		segments: slices.Collect(NewSegmentIter(c, template, params).All()),
	}, nil
}

func checkSyntax(template string) error {
	fail := func(msg string) error {
		return &oaserrors.ConfigError{Option: "template", Value: template, Message: msg}
	}
	if template == "" {
		return fail("path template cannot be empty")
	}
	if !strings.HasPrefix(template, "/") {
		return fail("path template must start with /")
	}
	seen := make(map[string]struct{})
	for i, tok := range splitPath(template) {
		if !strings.ContainsAny(tok, "{}") {
			continue
		}
		name, ok := paramName(tok)
		switch {
		case !ok && strings.Contains(tok, "{") && !strings.Contains(tok, "}"):
			return fail(fmt.Sprintf("unclosed path parameter in segment %d", i+1))
		case !ok:
			return fail(fmt.Sprintf("path parameter must span the whole segment %q", tok))
		case name == "" || strings.ContainsAny(name, "{}"):
			return fail(fmt.Sprintf("invalid path parameter name in segment %d", i+1))
		}
		if _, dup := seen[name]; dup {
			return fail(fmt.Sprintf("duplicate path parameter %q", name))
		}
		seen[name] = struct{}{}
	}
	return nil
}

// String returns the template text.
func (t *Template) String() string {
	return t.raw
}

// Segments returns a copy of the compiled segments.
func (t *Template) Segments() []Segment {
	return slices.Clone(t.segments)
}

// ParamNames returns the names of the capturing segments in order.
func (t *Template) ParamNames() []string {
	var names []string
	for _, s := range t.segments {
		if s.IsParam() {
			names = append(names, s.Value)
		}
	}
	return names
}

// Match matches a request path against the template. ok is false when the
// path has a different shape: a different number of segments or a
// different literal. When the shape matches but a parameter value fails its
// validator, ok is true and err is a *ParamError wrapping the
// *validator.Violation.
func (t *Template) Match(path string) (Params, bool, error) {
	if !strings.HasPrefix(path, "/") {
		return nil, false, nil
	}
	parts := splitPath(path)
	if len(parts) != len(t.segments) {
		return nil, false, nil
	}

	// Literals first, so a typed parameter never reports a violation for a
	// path that belongs to another template.
	for i, seg := range t.segments {
		if !seg.IsParam() && parts[i] != seg.Value {
			return nil, false, nil
		}
	}

	params := make(Params)
	for i, seg := range t.segments {
		if !seg.IsParam() {
			continue
		}
		raw, err := url.PathUnescape(parts[i])
		if err != nil || raw == "" {
			return nil, false, nil
		}
		v, err := seg.capture(raw)
		if err != nil {
			return nil, true, &ParamError{Name: seg.Value, Err: err}
		}
		params[seg.Value] = v
	}
	return params, true, nil
}

// fixedCount is the number of literal segments, used to rank templates.
func (t *Template) fixedCount() int {
	n := 0
	for _, s := range t.segments {
		if !s.IsParam() {
			n++
		}
	}
	return n
}
