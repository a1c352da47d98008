// Package validator compiles schema attributes into validators that check
// YAML or JSON document nodes.
//
// A Compiler turns a schema.Attribute into a tree of validators: leaf
// validators for booleans, integers and strings, composite validators for
// arrays and objects, and reference validators that look up named
// definitions when they run.
//
//	attr, _ := schema.ParseAttribute(schemaBytes)
//	v := validator.Compile(attr, validator.NoResolver)
//
//	var doc yaml.Node
//	_ = yaml.Unmarshal(documentBytes, &doc)
//	if err := v.Validate(&doc); err != nil {
//	    fmt.Println(err) // e.g. "Field name is required"
//	}
//
// # First failure
//
// Validation stops at the first violation. The returned error is a
// *Violation whose message is meant for humans; its Kind classifies it.
// Objects check their required fields before anything else, then walk the
// document's keys in order, rejecting keys that are not declared properties.
//
// # References
//
// References of the form "#/definitions/<name>" resolve through a Resolver.
// Compiler.Resolver returns one backed by a schema.Definitions map. The
// lookup happens at validation time and compiles a fresh object validator
// every time, so cyclic definitions only recurse as deep as the document
// being checked.
//
// # Formats
//
// Integer and string validators pick their format checker from the
// compiler's format registries when they are constructed. Unregistered
// format names fail every value.
package validator
