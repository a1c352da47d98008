package httpvalidator

import (
	"errors"

	"github.com/erraggy/swaggerguard/route"
	"github.com/erraggy/swaggerguard/schema"
)

// ValidationLocation indicates which part of the request failed.
type ValidationLocation string

// Validation location constants. The parameter locations reuse the
// Swagger `in` names.
const (
	LocationRoute    ValidationLocation = "route"
	LocationPath     ValidationLocation = ValidationLocation(schema.InPath)
	LocationQuery    ValidationLocation = ValidationLocation(schema.InQuery)
	LocationHeader   ValidationLocation = ValidationLocation(schema.InHeader)
	LocationFormData ValidationLocation = ValidationLocation(schema.InFormData)
	LocationBody     ValidationLocation = ValidationLocation(schema.InBody)
)

// RequestResult is the outcome of validating one request.
type RequestResult struct {
	// Valid is true if the request passes every check.
	Valid bool

	// Location and Parameter identify what failed. Parameter is empty for
	// routing failures.
	Location  ValidationLocation
	Parameter string

	// Err is the first failure: a *validator.Violation for parameter and
	// body values, route.ErrNoRoute or route.ErrMethodNotAllowed for routing,
	// or an oaserrors type for unreadable bodies.
	Err error

	// MatchedPath is the path template that matched the request
	// (e.g., "/pet/{petId}"). Empty if no path matched.
	MatchedPath string

	// Method is the request method, upper-cased.
	Method string

	// OperationID is the matched operation's id, if it declares one.
	OperationID string

	// PathParams holds the captured path parameters.
	PathParams route.Params
}

// Message returns the failure as "location.parameter: message", or "" for a
// valid request.
func (r *RequestResult) Message() string {
	if r.Valid || r.Err == nil {
		return ""
	}
	msg := r.Err.Error()
	var pe *route.ParamError
	if errors.As(r.Err, &pe) {
		msg = pe.Err.Error()
	}
	if r.Parameter == "" {
		return msg
	}
	return string(r.Location) + "." + r.Parameter + ": " + msg
}

// fail records the first failure.
func (r *RequestResult) fail(loc ValidationLocation, param string, err error) *RequestResult {
	r.Valid = false
	r.Location = loc
	r.Parameter = param
	r.Err = err
	return r
}
