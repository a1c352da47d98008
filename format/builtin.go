package format

import (
	"math"
	"net/netip"
	"regexp"
	"time"
)

// IPv4 accepts RFC 791 dotted-quad addresses.
var IPv4 Checker[string] = NewFunc("IPv4", func(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is4()
})

// IPv6 accepts RFC 4291 addresses without a zone.
var IPv6 Checker[string] = NewFunc("IPv6", func(s string) bool {
	addr, err := netip.ParseAddr(s)
	return err == nil && addr.Is6() && addr.Zone() == ""
})

var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// UUID accepts the canonical 8-4-4-4-12 hex form.
var UUID Checker[string] = NewFunc("UUID", uuidRegex.MatchString)

// Date accepts RFC 3339 full-date values.
var Date Checker[string] = NewFunc("date", func(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
})

// DateTime accepts RFC 3339 date-time values.
var DateTime Checker[string] = NewFunc("date-time", func(s string) bool {
	_, err := time.Parse(time.RFC3339, s)
	return err == nil
})

// Int32 accepts values representable as a signed 32-bit integer.
var Int32 Checker[int64] = NewFunc("int32", func(v int64) bool {
	return v >= math.MinInt32 && v <= math.MaxInt32
})

// Int64 accepts every value the integer validator can see.
var Int64 Checker[int64] = NewFunc("int64", func(int64) bool { return true })

// Process-wide registries read by validators compiled without explicit
// registries.
var (
	// Integers starts empty.
	Integers = NewRegistry(NewTable[int64]())

	// Strings starts with the "ipv4" format.
	Strings = NewRegistry(DefaultStringTable())
)

// DefaultStringTable returns the built-in string formats.
func DefaultStringTable() *Table[string] {
	return NewTable(Entry("ipv4", IPv4))
}

// ExtendedStringTable returns the built-in string formats plus ipv6, uuid,
// date and date-time.
func ExtendedStringTable() *Table[string] {
	return DefaultStringTable().With(
		Entry("ipv6", IPv6),
		Entry("uuid", UUID),
		Entry("date", Date),
		Entry("date-time", DateTime),
	)
}

// ExtendedIntegerTable returns the int32 and int64 range formats.
func ExtendedIntegerTable() *Table[int64] {
	return NewTable(
		Entry("int32", Int32),
		Entry("int64", Int64),
	)
}
