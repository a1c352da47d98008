package httpvalidator

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/erraggy/swaggerguard/oaserrors"
	"github.com/erraggy/swaggerguard/route"
	"github.com/erraggy/swaggerguard/schema"
	"github.com/erraggy/swaggerguard/validator"
)

// Validator validates HTTP requests against a Swagger document.
// It is safe for concurrent use.
//
//	doc, _ := schema.ParseWithOptions(schema.WithFilePath("swagger.yaml"))
//	v, err := httpvalidator.New(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := v.ValidateRequest(req)
type Validator struct {
	doc         *schema.Document
	router      *route.Router
	compiler    *validator.Compiler
	resolver    validator.Resolver
	logger      schema.Logger
	maxBodySize int64
	metrics     *Metrics
}

// New creates a Validator for doc. Path templates are compiled up front;
// a malformed template is an error.
func New(doc *schema.Document, opts ...Option) (*Validator, error) {
	if doc == nil {
		return nil, &oaserrors.ConfigError{Option: "document", Message: "document cannot be nil"}
	}
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	logger := schema.OrNop(cfg.logger)

	router, err := route.NewRouter(doc, route.WithCompiler(cfg.compiler), route.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	return &Validator{
		doc:         doc,
		router:      router,
		compiler:    cfg.compiler,
		resolver:    cfg.compiler.Resolver(doc.Definitions),
		logger:      logger,
		maxBodySize: cfg.maxBodySize,
		metrics:     cfg.metrics,
	}, nil
}

// Router returns the router built from the document.
func (v *Validator) Router() *route.Router {
	return v.router
}

// ValidateRequest validates req and reports the first failure.
//
// The error return is reserved for failures to read the request, not
// validation failures, which are captured in the result. An oversized body
// is a validation failure.
func (v *Validator) ValidateRequest(req *http.Request) (*RequestResult, error) {
	start := time.Now()
	result, err := v.validateRequest(req)
	v.metrics.observe(start, result, err)
	return result, err
}

func (v *Validator) validateRequest(req *http.Request) (*RequestResult, error) {
	result := &RequestResult{
		Valid:  true,
		Method: strings.ToUpper(req.Method),
	}

	m, err := v.router.Match(req.Method, req.URL.Path)
	if m != nil {
		result.MatchedPath = m.Template.String()
		result.OperationID = m.Operation.OperationID
	}
	if err != nil {
		var pe *route.ParamError
		if errors.As(err, &pe) {
			return v.rejected(req, result.fail(LocationPath, pe.Name, err)), nil
		}
		return v.rejected(req, result.fail(LocationRoute, "", err)), nil
	}
	result.PathParams = m.Params

	for _, check := range []func(*http.Request, []*schema.Parameter, *RequestResult) (bool, error){
		v.validateQueryParams,
		v.validateHeaderParams,
		v.validateFormParams,
		v.validateBodyParam,
	} {
		failed, err := check(req, m.Parameters, result)
		if err != nil {
			return nil, err
		}
		if failed {
			return v.rejected(req, result), nil
		}
	}
	return result, nil
}

func (v *Validator) rejected(req *http.Request, result *RequestResult) *RequestResult {
	v.logger.Debug("request rejected",
		"method", req.Method,
		"path", req.URL.Path,
		"location", string(result.Location),
		"parameter", result.Parameter,
		"error", result.Err)
	return result
}

// Middleware returns HTTP middleware that validates every request with v.
// Routing failures answer 404 or 405, violations 400, and unreadable
// requests 500.
func Middleware(v *Validator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := v.ValidateRequest(r)
			if err != nil {
				v.logger.Error("request validation failed", "method", r.Method, "path", r.URL.Path, "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}
			if result.Valid {
				next.ServeHTTP(w, r)
				return
			}
			switch {
			case errors.Is(result.Err, route.ErrNoRoute):
				http.Error(w, result.Message(), http.StatusNotFound)
			case errors.Is(result.Err, route.ErrMethodNotAllowed):
				allowed := v.router.Allowed(r.URL.Path)
				names := make([]string, len(allowed))
				for i, m := range allowed {
					names[i] = string(m)
				}
				w.Header().Set("Allow", strings.Join(names, ", "))
				http.Error(w, result.Message(), http.StatusMethodNotAllowed)
			default:
				http.Error(w, result.Message(), http.StatusBadRequest)
			}
		})
	}
}
