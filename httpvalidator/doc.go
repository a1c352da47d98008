// Package httpvalidator validates HTTP requests against a Swagger 2.0
// document.
//
// A request is routed to an operation with the route package, then its
// parameters are checked in a fixed order: path, query, header, formData,
// body. The first violation ends validation, the same way a single schema
// validator reports only its first failure.
//
// # Basic Usage
//
//	doc, _ := schema.ParseWithOptions(schema.WithFilePath("swagger.yaml"))
//	v, err := httpvalidator.New(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := v.ValidateRequest(req)
//	if err != nil {
//	    // reading the request failed
//	}
//	if !result.Valid {
//	    log.Printf("%s", result.Message())
//	}
//
// # Middleware
//
// Middleware wraps a handler and rejects invalid requests before they reach
// it:
//
//	http.Handle("/", httpvalidator.Middleware(v)(apiHandler))
//
// Routing failures answer 404 or 405, parameter violations answer 400 with
// the violation message as the body.
//
// # Body Handling
//
// Body parameters are read up to the configured limit (WithMaxBodySize,
// 10 MiB by default), parsed as YAML or JSON and validated against the
// parameter's schema with the document's definitions in scope. The body is
// restored afterwards so the next handler can read it again.
package httpvalidator
