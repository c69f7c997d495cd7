// Package dynarr provides a growable, contiguous array that stores elements by value,
// grows and shrinks its buffer automatically and runs an optional drop callback on
// every element it discards.
package dynarr

import (
	"reflect"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"

	"github.com/lordpaijo/dynarr/internal"
)

// Array is a dynamic array of T backed by a single buffer it owns exclusively.
//
// Capacity doubles when a push finds the buffer full and halves (never below 4)
// once fewer than a quarter of the slots are live after Pop or Remove.
// The zero value is an empty array that owns no buffer; the first Push allocates it.
// An Array is not safe for concurrent use.
type Array[T any] struct {
	data      []T // len(data) is the capacity
	length    int
	drop      func(*T)
	equatable func(a, b T) bool
}

// New creates an empty Array with the capacity floor preallocated.
func New[T any](ops ...Option[T]) *Array[T] {
	opts := buildOptions(ops)
	return &Array[T]{
		data:      make([]T, opts.capacity),
		drop:      opts.drop,
		equatable: opts.equatable,
	}
}

// Equatable sets a custom equality comparison function used by Find.
func (a *Array[T]) Equatable(equatable func(a, b T) bool) *Array[T] {
	a.equatable = equatable
	return a
}

// Len returns the number of live elements.
func (a *Array[T]) Len() int {
	return a.length
}

// Cap returns the number of elements the buffer holds without reallocating.
func (a *Array[T]) Cap() int {
	return len(a.data)
}

// Empty reports whether the array has no live elements.
func (a *Array[T]) Empty() bool {
	return a.length == 0
}

// Push appends v, doubling the capacity first if the buffer is full.
func (a *Array[T]) Push(v T) {
	if a.length == len(a.data) {
		a.realloc(internal.Grow(len(a.data)))
	}
	a.data[a.length] = v
	a.length++
}

// Pop drops the last element. It does nothing on an empty array.
func (a *Array[T]) Pop() {
	if a.length == 0 {
		return
	}
	a.discard(a.length - 1)
	a.length--
	a.shrink()
}

// Get returns a pointer to the element at index, or nil if index is out of range.
// The pointer refers to the array's buffer and is invalidated by any call that
// reallocates it.
func (a *Array[T]) Get(index int) *T {
	if index < 0 || index >= a.length {
		return nil
	}
	return &a.data[index]
}

// Back returns a pointer to the last element, or nil if the array is empty.
func (a *Array[T]) Back() *T {
	return a.Get(a.length - 1)
}

// Insert places v at index, shifting the elements at [index, Len()) one slot right.
// index may equal Len(). An out-of-range index returns ErrOutOfRange and leaves the
// array untouched.
func (a *Array[T]) Insert(index int, v T) error {
	if index < 0 || index > a.length {
		return outOfRange("insert", index, a.length)
	}
	if a.length == len(a.data) {
		a.realloc(internal.Grow(len(a.data)))
	}
	copy(a.data[index+1:a.length+1], a.data[index:a.length])
	a.data[index] = v
	a.length++
	return nil
}

// Remove drops the element at index and shifts the tail one slot left.
// An out-of-range index returns ErrOutOfRange and leaves the array untouched.
func (a *Array[T]) Remove(index int) error {
	if index < 0 || index >= a.length {
		return outOfRange("remove", index, a.length)
	}
	a.discard(index)
	copy(a.data[index:a.length-1], a.data[index+1:a.length])
	a.length--

	// the last slot still holds a copy of the old tail element
	var zero T
	a.data[a.length] = zero
	a.shrink()
	return nil
}

// Resize sets the length to n. Growing past the capacity reallocates to exactly n;
// the new slots hold the zero value of T. Shrinking drops the elements at [n, Len()).
func (a *Array[T]) Resize(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrNegativeLength, "resize: %d", n)
	}
	if n > len(a.data) {
		a.realloc(n)
	}
	for i := n; i < a.length; i++ {
		a.discard(i)
	}
	a.length = n
	return nil
}

// Reserve grows the capacity to exactly n. It never shrinks the buffer.
func (a *Array[T]) Reserve(n int) {
	if n <= len(a.data) {
		return
	}
	a.realloc(n)
}

// ShrinkToFit reallocates the buffer to hold exactly Len() elements,
// or the capacity floor when the array is empty.
func (a *Array[T]) ShrinkToFit() {
	a.realloc(internal.Fit(a.length))
}

// Clear drops every element and returns the capacity to the floor.
func (a *Array[T]) Clear() {
	for i := 0; i < a.length; i++ {
		a.discard(i)
	}
	a.length = 0
	if len(a.data) > internal.MinCapacity {
		a.realloc(internal.MinCapacity)
	}
}

// Clone returns an independent copy whose capacity is exactly Len().
// Elements are copied by value and the drop and equality callbacks are shared.
func (a *Array[T]) Clone() *Array[T] {
	if a == nil {
		return nil
	}
	dup := &Array[T]{
		data:      make([]T, a.length),
		length:    a.length,
		drop:      a.drop,
		equatable: a.equatable,
	}
	copy(dup.data, a.data[:a.length])
	return dup
}

// Move transfers the buffer and all settings to a new Array and resets a to the
// zero state. No element is dropped. A nil receiver returns nil.
func (a *Array[T]) Move() *Array[T] {
	if a == nil {
		return nil
	}
	moved := *a
	*a = Array[T]{}
	return &moved
}

// Swap exchanges the complete state of a and other.
func (a *Array[T]) Swap(other *Array[T]) {
	if other == nil {
		return
	}
	*a, *other = *other, *a
}

// Extend appends a copy of every element of src. When the buffer is too small
// it grows to exactly the combined length. Extending an array with itself is
// ignored. src keeps its elements and must still be freed by its owner.
func (a *Array[T]) Extend(src *Array[T]) {
	if src == nil || src == a {
		return
	}
	need := a.length + src.length
	if need > len(a.data) {
		a.realloc(need)
	}
	copy(a.data[a.length:need], src.data[:src.length])
	a.length = need
}

// Find returns the index of the first element equal to v, or -1 if there is none.
func (a *Array[T]) Find(v T) int {
	equal := a.equatable
	if equal == nil {
		equal = deepEqual[T]
	}
	for i := 0; i < a.length; i++ {
		if equal(a.data[i], v) {
			return i
		}
	}
	return -1
}

// Sort orders the elements in place with cmp, which returns a negative number
// when a < b, zero when equal and a positive number when a > b.
// The sort is not stable. A nil cmp is ignored.
func (a *Array[T]) Sort(cmp func(a, b T) int) {
	if cmp == nil {
		return
	}
	slices.SortFunc(a.data[:a.length], cmp)
}

// Free drops every element and releases the buffer. Calling it again,
// or on a moved-from array, is a no-op.
func (a *Array[T]) Free() {
	if a == nil {
		return
	}
	for i := 0; i < a.length; i++ {
		a.discard(i)
	}
	a.data = nil
	a.length = 0
}

// discard runs the drop callback on slot i and zeroes it.
func (a *Array[T]) discard(i int) {
	if a.drop != nil {
		a.drop(&a.data[i])
	}
	var zero T
	a.data[i] = zero
}

func (a *Array[T]) shrink() {
	if c, ok := internal.Shrink(a.length, len(a.data)); ok {
		a.realloc(c)
	}
}

func (a *Array[T]) realloc(capacity int) {
	data := make([]T, capacity)
	copy(data, a.data[:a.length])
	a.data = data
}

func deepEqual[T any](a, b T) bool {
	return reflect.DeepEqual(a, b)
}
