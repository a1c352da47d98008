package mcpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/swaggerguard/httpvalidator"
	"github.com/erraggy/swaggerguard/validator"
)

// requestHost is the placeholder host for synthesized requests. Routing
// only looks at the path.
const requestHost = "http://swaggerguard.invalid"

type validateRequestInput struct {
	Schema  schemaInput       `json:"schema"            jsonschema:"The Swagger 2.0 document describing the API"`
	Method  string            `json:"method"            jsonschema:"HTTP method"`
	Path    string            `json:"path"              jsonschema:"Request path including any query string, e.g. /pet/findByStatus?status=sold"`
	Headers map[string]string `json:"headers,omitempty" jsonschema:"Request headers, including Content-Type for form bodies"`
	Body    string            `json:"body,omitempty"    jsonschema:"Raw request body"`
}

type validateRequestOutput struct {
	Valid       bool           `json:"valid"`
	Location    string         `json:"location,omitempty"`
	Parameter   string         `json:"parameter,omitempty"`
	Kind        string         `json:"kind,omitempty"`
	Message     string         `json:"message,omitempty"`
	MatchedPath string         `json:"matched_path,omitempty"`
	OperationID string         `json:"operation_id,omitempty"`
	PathParams  map[string]any `json:"path_params,omitempty"`
}

func handleValidateRequest(ctx context.Context, _ *mcp.CallToolRequest, input validateRequestInput) (*mcp.CallToolResult, validateRequestOutput, error) {
	if input.Method == "" || !strings.HasPrefix(input.Path, "/") {
		return errResult(errors.New("method and a path starting with / are required")), validateRequestOutput{}, nil
	}
	doc, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), validateRequestOutput{}, nil
	}
	v, err := httpvalidator.New(doc,
		httpvalidator.WithCompiler(compiler),
		httpvalidator.WithLogger(logger),
		httpvalidator.WithMaxBodySize(cfg.MaxBodySize),
	)
	if err != nil {
		return errResult(err), validateRequestOutput{}, nil
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(input.Method), requestHost+input.Path, strings.NewReader(input.Body))
	if err != nil {
		return errResult(err), validateRequestOutput{}, nil
	}
	for k, val := range input.Headers {
		req.Header.Set(k, val)
	}

	result, err := v.ValidateRequest(req)
	if err != nil {
		return errResult(err), validateRequestOutput{}, nil
	}

	output := validateRequestOutput{
		Valid:       result.Valid,
		Location:    string(result.Location),
		Parameter:   result.Parameter,
		Message:     result.Message(),
		MatchedPath: result.MatchedPath,
		OperationID: result.OperationID,
	}
	if len(result.PathParams) > 0 {
		output.PathParams = result.PathParams
	}
	if viol, ok := validator.AsViolation(result.Err); ok {
		output.Kind = viol.Kind.String()
	}
	return nil, output, nil
}
