package schema

import "strings"

// DefinitionsPrefix is the only reference prefix that resolves locally.
const DefinitionsPrefix = "#/definitions/"

// Location is the parsed form of a $ref string.
type Location struct {
	name string
}

// UnknownLocation never resolves.
var UnknownLocation = Location{}

// ParseLocation parses a reference of the form "#/definitions/<name>".
// Anything else, including remote pointers and empty fragments, yields
// UnknownLocation.
func ParseLocation(ref string) Location {
	name, ok := strings.CutPrefix(ref, DefinitionsPrefix)
	if !ok || name == "" || strings.Contains(name, "/") {
		return UnknownLocation
	}
	return Location{name: name}
}

// LocalLocation returns the location of the named definition.
func LocalLocation(name string) Location {
	return Location{name: name}
}

// IsLocal reports whether the location names a definition.
func (l Location) IsLocal() bool {
	return l.name != ""
}

// Name returns the definition name, or "" for UnknownLocation.
func (l Location) Name() string {
	return l.name
}

// String returns the reference form of the location.
func (l Location) String() string {
	if !l.IsLocal() {
		return "unknown"
	}
	return DefinitionsPrefix + l.name
}
