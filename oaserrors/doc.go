// Package oaserrors provides structured error types for swaggerguard.
//
// These error types enable programmatic error handling via errors.Is() and
// errors.As(), allowing callers to distinguish between the ways loading a
// schema or checking a document can fail.
//
// # Error Categories
//
//   - ParseError: YAML/JSON decoding failures and malformed schema documents
//   - ReferenceError: $ref or definition lookups that cannot be satisfied
//   - ConfigError: invalid options, route templates or other caller input
//   - ResourceLimitError: inputs exceeding a configured size limit
//
// Document violations found by the validator package are reported as
// *validator.Violation values. They match ErrValidation, and reference
// violations additionally match ErrReference:
//
//	err := v.Validate(node)
//	if errors.Is(err, oaserrors.ErrReference) {
//	    // the schema points at a definition that does not exist
//	}
//
// # Usage with errors.As
//
//	doc, err := schema.ParseWithOptions(schema.WithFilePath("swagger.yaml"))
//	if err != nil {
//	    var parseErr *oaserrors.ParseError
//	    if errors.As(err, &parseErr) {
//	        fmt.Printf("line %d: %s\n", parseErr.Line, parseErr.Message)
//	    }
//	}
package oaserrors
