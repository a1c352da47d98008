// Package format holds the pluggable `format:` checks applied by integer and
// string validators.
//
// Each primitive kind has its own process-wide Registry. A registry holds an
// immutable Table that is swapped atomically as a whole; validators look up
// their checker once, when they are compiled, and keep it for their whole
// lifetime even if the registry is replaced afterwards.
//
//	format.Strings.Register(format.Entry("uuid", format.UUID))
//
//	format.Integers.Store(format.NewTable(
//	    format.Entry("int32", format.Int32),
//	))
//
// A format name that is not registered resolves to a checker that always
// fails, so declaring an unknown format makes every value invalid.
package format
