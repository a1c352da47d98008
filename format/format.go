package format

// Checker checks that a value satisfies a named format.
type Checker[T any] interface {
	// Name is the display name used in violation messages.
	Name() string

	// Check reports whether v satisfies the format.
	Check(v T) bool
}

// Func adapts a plain function to the Checker interface.
type Func[T any] struct {
	name string
	fn   func(T) bool
}

// NewFunc returns a Checker named name backed by fn.
func NewFunc[T any](name string, fn func(T) bool) *Func[T] {
	return &Func[T]{name: name, fn: fn}
}

// Name implements Checker.
func (f *Func[T]) Name() string { return f.name }

// Check implements Checker.
func (f *Func[T]) Check(v T) bool { return f.fn(v) }

type none[T any] struct{}

func (none[T]) Name() string  { return "text" }
func (none[T]) Check(T) bool { return true }

// None returns the checker used when no format is declared. It accepts
// every value.
func None[T any]() Checker[T] {
	return none[T]{}
}

type unknown[T any] struct{}

func (unknown[T]) Name() string { return "unknown" }
func (unknown[T]) Check(T) bool { return false }

// Unknown returns the checker used for a declared but unregistered format.
// It rejects every value and is named "unknown" whatever the declared name
// was.
func Unknown[T any]() Checker[T] {
	return unknown[T]{}
}

// IsNone reports whether c is the no-format checker.
func IsNone[T any](c Checker[T]) bool {
	_, ok := c.(none[T])
	return ok
}

// IsUnknown reports whether c is the fail-closed checker for an unregistered
// format name.
func IsUnknown[T any](c Checker[T]) bool {
	_, ok := c.(unknown[T])
	return ok
}
