package route

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"strings"

	"github.com/erraggy/swaggerguard/oaserrors"
	"github.com/erraggy/swaggerguard/schema"
	"github.com/erraggy/swaggerguard/validator"
)

var (
	// ErrNoRoute means no template has the shape of the request path.
	ErrNoRoute = errors.New("no matching route")
	// ErrMethodNotAllowed means the path matches a template but not under the
	// requested method.
	ErrMethodNotAllowed = errors.New("method not allowed")
)

// Route is one operation of a document together with its compiled template.
type Route struct {
	Method    schema.Method
	Template  *Template
	Operation *schema.Operation

	// Parameters are the operation's effective parameters, path-level ones
	// included.
	Parameters []*schema.Parameter
}

// Match is the result of a successful Router.Match.
type Match struct {
	*Route
	Params Params
}

// Router matches requests against every path template of a document.
type Router struct {
	routes map[schema.Method][]*Route
	logger schema.Logger
}

// Option configures a Router.
type Option func(*routerConfig) error

type routerConfig struct {
	compiler *validator.Compiler
	logger   schema.Logger
}

// WithCompiler sets the compiler used for path parameter validators.
func WithCompiler(c *validator.Compiler) Option {
	return func(cfg *routerConfig) error {
		if c == nil {
			return &oaserrors.ConfigError{Option: "WithCompiler", Message: "compiler cannot be nil"}
		}
		cfg.compiler = c
		return nil
	}
}

// WithLogger sets a structured logger for routing diagnostics.
func WithLogger(l schema.Logger) Option {
	return func(cfg *routerConfig) error {
		cfg.logger = l
		return nil
	}
}

// NewRouter compiles every operation of doc. Within each method, templates
// are ranked so that more literal segments win, then more segments, then
// lexical order.
func NewRouter(doc *schema.Document, opts ...Option) (*Router, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "document cannot be nil"}
	}
	cfg := &routerConfig{compiler: validator.Default()}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	r := &Router{
		routes: make(map[schema.Method][]*Route),
		logger: schema.OrNop(cfg.logger),
	}
	count := 0
	for _, tmpl := range doc.Paths.Templates() {
		ops := doc.Paths[tmpl]
		for method, op := range ops.All() {
			params := ops.EffectiveParameters(op)
			t, err := Compile(cfg.compiler, tmpl, params)
			if err != nil {
				return nil, fmt.Errorf("compiling %s %s: %w", method, tmpl, err)
			}
			for _, seg := range t.segments {
				if seg.Untyped {
					r.logger.Warn("undeclared path parameter", "method", method, "template", tmpl, "param", seg.Value)
				}
			}
			r.routes[method] = append(r.routes[method], &Route{
				Method:     method,
				Template:   t,
				Operation:  op,
				Parameters: params,
			})
			count++
		}
	}
	for _, routes := range r.routes {
		slices.SortFunc(routes, compareRoutes)
	}
	r.logger.Debug("compiled routes", "routes", count, "templates", len(doc.Paths))
	return r, nil
}

func compareRoutes(a, b *Route) int {
	if d := b.Template.fixedCount() - a.Template.fixedCount(); d != 0 {
		return d
	}
	if d := len(b.Template.segments) - len(a.Template.segments); d != 0 {
		return d
	}
	return strings.Compare(a.Template.raw, b.Template.raw)
}

// Routes yields every route, methods in schema.Methods order and templates
// in rank order.
func (r *Router) Routes() iter.Seq[*Route] {
	return func(yield func(*Route) bool) {
		for _, m := range schema.Methods {
			for _, rt := range r.routes[m] {
				if !yield(rt) {
					return
				}
			}
		}
	}
}

// Match finds the best route for method and path. The method is matched
// case-insensitively.
//
// The first template, in rank order, whose shape fits the path decides the
// outcome: its captured parameters on success, or a *ParamError when a
// value fails its validator. With no fitting template under method the
// error wraps ErrMethodNotAllowed if another method has one, and ErrNoRoute
// otherwise.
func (r *Router) Match(method, path string) (*Match, error) {
	m := schema.Method(strings.ToUpper(method))
	for _, rt := range r.routes[m] {
		params, ok, err := rt.Template.Match(path)
		if !ok {
			continue
		}
		if err != nil {
			return &Match{Route: rt}, err
		}
		return &Match{Route: rt, Params: params}, nil
	}

	for other, routes := range r.routes {
		if other == m {
			continue
		}
		for _, rt := range routes {
			if _, ok, _ := rt.Template.Match(path); ok {
				return nil, fmt.Errorf("%w: %s %s", ErrMethodNotAllowed, m, path)
			}
		}
	}
	return nil, fmt.Errorf("%w: %s %s", ErrNoRoute, m, path)
}

// Allowed returns the methods with a template whose shape fits path.
func (r *Router) Allowed(path string) []schema.Method {
	var out []schema.Method
	for _, m := range schema.Methods {
		for _, rt := range r.routes[m] {
			if _, ok, _ := rt.Template.Match(path); ok {
				out = append(out, m)
				break
			}
		}
	}
	return out
}
