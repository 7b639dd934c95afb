// Package arena provides a generic 1-based-index arena, shared by the
// syntax tree and the HIR so neither needs host-language pointers to
// reference its own nodes.
package arena

import (
	"fmt"

	"fortio.org/safecast"
)

// Arena is a generic typed arena for allocating elements of type T.
// Index 0 is reserved to mean "no element" for whichever ID type wraps it.
type Arena[T any] struct {
	data []*T
}

// New creates an Arena with the given initial capacity hint.
func New[T any](capHint uint) *Arena[T] {
	return &Arena[T]{data: make([]*T, 0, capHint)}
}

// Alloc appends value and returns its 1-based index.
func (a *Arena[T]) Alloc(value T) uint32 {
	elem := new(T)
	*elem = value
	a.data = append(a.data, elem)
	return a.Len()
}

// Get returns a pointer to the element at the given 1-based index, or nil
// if index is 0 or out of range.
func (a *Arena[T]) Get(index uint32) *T {
	if index == 0 || int(index) > len(a.data) {
		return nil
	}
	return a.data[index-1]
}

// Set overwrites the element at the given 1-based index in place. Used by
// forward-declaration resolution and type-alias retargeting, where a
// handle must keep referring to the same index after its contents change.
func (a *Arena[T]) Set(index uint32, value T) {
	if index == 0 || int(index) > len(a.data) {
		panic("arena: Set on invalid index")
	}
	*a.data[index-1] = value
}

// Slice returns a copy of the arena's contents in allocation order.
func (a *Arena[T]) Slice() []T {
	out := make([]T, len(a.data))
	for i, ptr := range a.data {
		out[i] = *ptr
	}
	return out
}

// Len returns the number of elements allocated so far.
func (a *Arena[T]) Len() uint32 {
	n, err := safecast.Conv[uint32](len(a.data))
	if err != nil {
		panic(fmt.Errorf("arena: length overflow: %w", err))
	}
	return n
}
