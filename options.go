package dynarr

import "github.com/lordpaijo/dynarr/internal"

// arrayOptions holds construction settings for an Array.
type arrayOptions[T any] struct {
	capacity  int
	drop      func(*T)
	equatable func(a, b T) bool
}

// Option configures an Array at construction time.
type Option[T any] func(*arrayOptions[T])

// WithDrop installs a cleanup callback that runs on an element's storage
// right before the element is discarded by Pop, Remove, Resize, Clear or Free.
// The callback must release what the element owns, not the slot itself.
func WithDrop[T any](drop func(*T)) Option[T] {
	return func(o *arrayOptions[T]) {
		o.drop = drop
	}
}

// WithCapacity sets the initial capacity. Values below the floor of 4 are raised to it.
func WithCapacity[T any](capacity int) Option[T] {
	return func(o *arrayOptions[T]) {
		o.capacity = capacity
	}
}

// WithEquatable sets the equality function used by Find.
// Default: reflect.DeepEqual.
func WithEquatable[T any](equatable func(a, b T) bool) Option[T] {
	return func(o *arrayOptions[T]) {
		o.equatable = equatable
	}
}

func buildOptions[T any](ops []Option[T]) arrayOptions[T] {
	var opts = arrayOptions[T]{
		capacity:  internal.MinCapacity,
		equatable: deepEqual[T],
	}
	for _, op := range ops {
		op(&opts)
	}
	opts.capacity = max(opts.capacity, internal.MinCapacity)
	if opts.equatable == nil {
		opts.equatable = deepEqual[T]
	}
	return opts
}
