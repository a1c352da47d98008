// Package swaggerguard compiles Swagger 2.0 (OpenAPI v2) schemas into
// validators for YAML and JSON documents, and type-checks URL path templates
// against their declared path parameters.
//
// # Overview
//
// The library consists of these packages:
//
//   - schema: load Swagger documents, schema attributes and definitions
//   - format: named format checkers and the registries that hold them
//   - validator: compile attributes into validators and run them
//   - route: split path templates into typed segments and match paths
//   - httpvalidator: validate *http.Request values against a document
//   - oaserrors: the error types shared by all packages
//
// # Quick Start
//
// Validate a document against a definition:
//
//	doc, err := schema.ParseWithOptions(schema.WithFilePath("swagger.yaml"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	node, err := validator.ParseNode(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := validator.ValidateDefinition(doc.Definitions, "Pet", node); err != nil {
//		fmt.Println(err) // e.g. "Field name is required"
//	}
//
// Validation stops at the first violation and reports exactly one message.
// References ($ref) are resolved when a validator runs, against the
// definitions it was compiled with.
//
// # Formats
//
// The "format" of an integer or string attribute selects a checker from a
// registry. Only "ipv4" is registered by default. A format name that is not
// registered fails every value:
//
//	format.Strings.Register(format.Entry("uuid", format.UUID))
//
// Registries swap whole tables atomically, and a validator keeps the checker
// it was compiled with.
//
// # Command Line
//
// The swaggerguard command validates documents, lists route segments and
// matches request paths. "swaggerguard mcp" serves the same operations as
// MCP tools over stdio. Run "swaggerguard help" for details.
package swaggerguard
