package mcpserver

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/swaggerguard/schema"
	"github.com/erraggy/swaggerguard/validator"
)

type validateDocumentInput struct {
	Schema     schemaInput `json:"schema"               jsonschema:"The Swagger 2.0 document holding the definitions"`
	Document   string      `json:"document"             jsonschema:"The YAML or JSON document to validate"`
	Definition string      `json:"definition,omitempty" jsonschema:"Name of the definition to validate against"`
	Ref        string      `json:"ref,omitempty"        jsonschema:"A $ref to validate against, e.g. #/definitions/Pet"`
}

type validateDocumentOutput struct {
	Valid   bool   `json:"valid"`
	Target  string `json:"target"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
}

func handleValidateDocument(_ context.Context, _ *mcp.CallToolRequest, input validateDocumentInput) (*mcp.CallToolResult, validateDocumentOutput, error) {
	if (input.Definition == "") == (input.Ref == "") {
		return errResult(errors.New("exactly one of definition or ref must be provided")), validateDocumentOutput{}, nil
	}

	doc, err := input.Schema.resolve()
	if err != nil {
		return errResult(err), validateDocumentOutput{}, nil
	}
	node, err := validator.ParseNode([]byte(input.Document))
	if err != nil {
		return errResult(err), validateDocumentOutput{}, nil
	}

	output := validateDocumentOutput{Target: input.Ref}
	if input.Definition != "" {
		output.Target = schema.LocalLocation(input.Definition).String()
		err = compiler.ValidateDefinition(doc.Definitions, input.Definition, node)
	} else {
		v := compiler.Compile(&schema.Attribute{Reference: input.Ref}, compiler.Resolver(doc.Definitions))
		err = v.Validate(node)
	}

	if err == nil {
		output.Valid = true
		return nil, output, nil
	}
	viol, ok := validator.AsViolation(err)
	if !ok {
		// A missing definition is a request error, not a document violation.
		return errResult(err), validateDocumentOutput{}, nil
	}
	output.Kind = viol.Kind.String()
	output.Message = viol.Message
	return nil, output, nil
}
