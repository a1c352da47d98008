package format

import (
	"maps"
	"slices"
	"sync/atomic"
)

// Named pairs a format key, as written in schemas, with its checker.
type Named[T any] struct {
	Key     string
	Checker Checker[T]
}

// Entry returns a Named for use with NewTable and Table.With.
func Entry[T any](key string, c Checker[T]) Named[T] {
	return Named[T]{Key: key, Checker: c}
}

// Table is an immutable mapping from format key to checker.
// The zero value is an empty table.
type Table[T any] struct {
	entries map[string]Checker[T]
}

// NewTable returns a table holding the given entries. Later entries replace
// earlier ones with the same key.
func NewTable[T any](entries ...Named[T]) *Table[T] {
	t := &Table[T]{entries: make(map[string]Checker[T], len(entries))}
	for _, e := range entries {
		t.entries[e.Key] = e.Checker
	}
	return t
}

// Lookup returns the checker registered under key.
func (t *Table[T]) Lookup(key string) (Checker[T], bool) {
	if t == nil {
		return nil, false
	}
	c, ok := t.entries[key]
	return c, ok
}

// Resolve returns the checker a validator should use for a declared format:
// None for an empty key, the registered checker if there is one, and the
// always-failing Unknown checker otherwise.
func (t *Table[T]) Resolve(key string) Checker[T] {
	if key == "" {
		return None[T]()
	}
	if c, ok := t.Lookup(key); ok {
		return c
	}
	return Unknown[T]()
}

// With returns a new table holding the entries of t plus the given ones.
// t is left unchanged.
func (t *Table[T]) With(entries ...Named[T]) *Table[T] {
	out := &Table[T]{entries: make(map[string]Checker[T], t.Len()+len(entries))}
	if t != nil {
		maps.Copy(out.entries, t.entries)
	}
	for _, e := range entries {
		out.entries[e.Key] = e.Checker
	}
	return out
}

// Len returns the number of entries.
func (t *Table[T]) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Names returns the registered keys in sorted order.
func (t *Table[T]) Names() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.entries))
}

// Registry publishes a Table that can be replaced at any time.
//
// Readers get a complete snapshot; a concurrent Store never exposes a partly
// built table. Snapshots stay valid for as long as a reader holds them.
type Registry[T any] struct {
	current atomic.Pointer[Table[T]]
}

// NewRegistry returns a registry publishing table.
func NewRegistry[T any](table *Table[T]) *Registry[T] {
	r := &Registry[T]{}
	r.Store(table)
	return r
}

// Load returns the current table.
func (r *Registry[T]) Load() *Table[T] {
	if t := r.current.Load(); t != nil {
		return t
	}
	return &Table[T]{}
}

// Store replaces the whole table. Entries of the previous table are not
// carried over.
func (r *Registry[T]) Store(table *Table[T]) {
	if table == nil {
		table = NewTable[T]()
	}
	r.current.Store(table)
}

// Register adds entries on top of the current table and publishes the result.
func (r *Registry[T]) Register(entries ...Named[T]) {
	for {
		old := r.current.Load()
		if r.current.CompareAndSwap(old, old.With(entries...)) {
			return
		}
	}
}

// Resolve resolves key against the current table.
func (r *Registry[T]) Resolve(key string) Checker[T] {
	return r.Load().Resolve(key)
}
