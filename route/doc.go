// Package route type-checks URL path templates against their declared path
// parameters and matches request paths to them.
//
// A template such as "/pet/{petId}" is split into segments. Literal tokens
// become Fixed segments. A {name} token becomes a Number or Text segment
// backed by a validator compiled from the path parameter of the same name;
// when no such parameter is declared the token is kept as an untyped Fixed
// segment that captures any value.
//
//	it := route.NewSegmentIter(nil, "/pet/{petId}", params)
//	for seg := range it.All() {
//		fmt.Println(seg)
//	}
//
// Templates are compiled once with Compile and matched with Template.Match.
// A Router groups all templates of a schema.Document by method and picks
// the most specific match for a request.
package route
