// Package schema holds the OpenAPI v2 (Swagger) type model consumed by the
// validator and route packages, and loads it from YAML or JSON documents.
//
// A schema attribute is either an inline type definition or a $ref to a
// named definition:
//
//	attr, err := schema.ParseAttribute([]byte(`
//	type: object
//	required: [id]
//	properties:
//	  id:
//	    type: integer
//	`))
//
// Whole documents carry the definitions universe that references resolve
// into, and the path templates whose parameters the route package
// type-checks:
//
//	doc, err := schema.ParseWithOptions(
//	    schema.WithFilePath("swagger.yaml"),
//	    schema.WithLogger(schema.NewSlogAdapter(slog.Default())),
//	)
//	for template, item := range doc.Paths {
//	    for method, op := range item.All() {
//	        fmt.Println(method, template, len(op.Parameters))
//	    }
//	}
//
// Type definitions form a closed set: Boolean, Integer, String, Array,
// Object, File and Undefined. Callers switch on the concrete type.
package schema
