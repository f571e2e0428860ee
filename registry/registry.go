// Package registry implements the immutable table binding shape names to shape functions.
//
// A Registry is built once from a fixed list of entries and never changes afterwards,
// so it may be shared by any number of goroutines without synchronization.
package registry

import (
	"errors"
	"fmt"

	"github.com/soypat/sdfcat"
)

var (
	// ErrUnknownShape is matched by every [UnknownShapeError].
	ErrUnknownShape = errors.New("unknown shape name")
	// ErrDuplicateName is returned by [New] when two entries share a name.
	ErrDuplicateName = errors.New("duplicate shape name")
	// ErrInvalidEntry is returned by [New] for entries with an empty name or nil function.
	ErrInvalidEntry = errors.New("invalid registry entry")
)

// UnknownShapeError is the only error returned by [Registry.Resolve].
type UnknownShapeError struct {
	Name string
}

func (e *UnknownShapeError) Error() string {
	return "unknown shape name: " + e.Name
}

// Is reports true for [ErrUnknownShape].
func (e *UnknownShapeError) Is(target error) bool { return target == ErrUnknownShape }

// Entry binds a shape name to its distance function.
type Entry struct {
	Name string
	Func sdfcat.Func
	// Lipschitz is the documented Lipschitz bound of the raw deformation used by the shape.
	// 1 means the field is conservative by construction. Larger values mean the shape
	// applies a stretching domain operator and divides its distance by this factor,
	// making it conservative only inside the region the factor was computed for.
	Lipschitz float32
	// Approximate marks distance estimators whose bound is not proven, such as fractal
	// estimators. Their values are usable for sphere tracing with a safety factor.
	Approximate bool
}

// Registry is an immutable name to function table.
type Registry struct {
	// entries in registration order.
	entries []Entry
	index   map[string]int
}

// New builds a registry from entries. Listing order is the order of the arguments.
func New(entries ...Entry) (*Registry, error) {
	reg := &Registry{
		entries: make([]Entry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, e := range entries {
		if e.Name == "" {
			return nil, fmt.Errorf("entry %d: empty name: %w", i, ErrInvalidEntry)
		} else if e.Func == nil {
			return nil, fmt.Errorf("entry %d %q: nil function: %w", i, e.Name, ErrInvalidEntry)
		} else if !(e.Lipschitz >= 1) {
			return nil, fmt.Errorf("entry %d %q: Lipschitz bound %v below 1: %w", i, e.Name, e.Lipschitz, ErrInvalidEntry)
		}
		if _, dup := reg.index[e.Name]; dup {
			return nil, fmt.Errorf("%q: %w", e.Name, ErrDuplicateName)
		}
		reg.index[e.Name] = len(reg.entries)
		reg.entries = append(reg.entries, e)
	}
	return reg, nil
}

// Len returns the number of registered shapes.
func (reg *Registry) Len() int { return len(reg.entries) }

// Names returns the registered names in registration order. The returned slice is a copy.
func (reg *Registry) Names() []string {
	names := make([]string, len(reg.entries))
	for i := range reg.entries {
		names[i] = reg.entries[i].Name
	}
	return names
}

// Entries returns a copy of all entries in registration order.
func (reg *Registry) Entries() []Entry {
	return append([]Entry(nil), reg.entries...)
}

// Has reports whether name is registered.
func (reg *Registry) Has(name string) bool {
	_, ok := reg.index[name]
	return ok
}

// Lookup returns the entry registered under name.
func (reg *Registry) Lookup(name string) (Entry, bool) {
	i, ok := reg.index[name]
	if !ok {
		return Entry{}, false
	}
	return reg.entries[i], true
}

// Resolve returns the function registered under name or an [*UnknownShapeError].
func (reg *Registry) Resolve(name string) (sdfcat.Func, error) {
	i, ok := reg.index[name]
	if !ok {
		return nil, &UnknownShapeError{Name: name}
	}
	return reg.entries[i].Func, nil
}
