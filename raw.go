package dynarr

import (
	"bytes"
	"sort"
	"unsafe"

	"github.com/pkg/errors"

	"github.com/lordpaijo/dynarr/internal"
)

// Raw is the type-erased form of Array. Elements are opaque blocks of a fixed
// byte width that are copied, compared and moved as raw bytes.
// It exists for interop with untyped buffers; prefer Array elsewhere.
type Raw struct {
	data     []byte // capacity * elemSize bytes
	length   int
	capacity int
	elemSize int
	drop     func(elem []byte)
}

// NewRaw creates an empty Raw array for elements of elemSize bytes.
// drop may be nil. Panics if elemSize is not positive.
func NewRaw(elemSize int, drop func(elem []byte)) *Raw {
	if elemSize <= 0 {
		panic("dynarr: element size must be positive")
	}
	r := &Raw{elemSize: elemSize, drop: drop}
	r.realloc(internal.MinCapacity)
	return r
}

// RawOf creates a Raw array sized for values of type T.
func RawOf[T any](drop func(elem []byte)) *Raw {
	return NewRaw(int(Sizeof[T]()), drop)
}

// Sizeof returns the size in bytes of a value of type T.
func Sizeof[T any]() uintptr {
	var zero T
	return unsafe.Sizeof(zero)
}

// BytesOf returns the in-memory bytes of *v without copying.
// T must not contain pointers, otherwise the bytes outlive what they reference.
func BytesOf[T any](v *T) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(v)), Sizeof[T]())
}

// ElemSize returns the byte width of one element.
func (r *Raw) ElemSize() int {
	return r.elemSize
}

// Len returns the number of live elements.
func (r *Raw) Len() int {
	return r.length
}

// Cap returns the number of elements the buffer holds without reallocating.
func (r *Raw) Cap() int {
	return r.capacity
}

// Empty reports whether the array has no live elements.
func (r *Raw) Empty() bool {
	return r.length == 0
}

// Push appends a copy of elem, which must be exactly ElemSize() bytes.
func (r *Raw) Push(elem []byte) error {
	if err := r.checkWidth(elem); err != nil {
		return err
	}
	if r.length == r.capacity {
		r.realloc(internal.Grow(r.capacity))
	}
	copy(r.slot(r.length), elem)
	r.length++
	return nil
}

// Pop drops the last element. It does nothing on an empty array.
func (r *Raw) Pop() {
	if r.length == 0 {
		return
	}
	r.discard(r.length - 1)
	r.length--
	r.shrink()
}

// Get returns the storage of the element at index, or nil if index is out of range.
// Writes through the returned slice modify the element in place.
func (r *Raw) Get(index int) []byte {
	if index < 0 || index >= r.length {
		return nil
	}
	return r.slot(index)
}

// Back returns the storage of the last element, or nil if the array is empty.
func (r *Raw) Back() []byte {
	return r.Get(r.length - 1)
}

// Insert places a copy of elem at index, shifting the tail one slot right.
// elem may be a slice returned by Get on r.
func (r *Raw) Insert(index int, elem []byte) error {
	if index < 0 || index > r.length {
		return outOfRange("insert", index, r.length)
	}
	if err := r.checkWidth(elem); err != nil {
		return err
	}
	if overlaps(r.data, elem) {
		elem = bytes.Clone(elem)
	}
	if r.length == r.capacity {
		r.realloc(internal.Grow(r.capacity))
	}
	off := index * r.elemSize
	end := r.length * r.elemSize
	copy(r.data[off+r.elemSize:end+r.elemSize], r.data[off:end])
	copy(r.slot(index), elem)
	r.length++
	return nil
}

// Remove drops the element at index and shifts the tail one slot left.
func (r *Raw) Remove(index int) error {
	if index < 0 || index >= r.length {
		return outOfRange("remove", index, r.length)
	}
	r.discard(index)
	off := index * r.elemSize
	end := r.length * r.elemSize
	copy(r.data[off:end-r.elemSize], r.data[off+r.elemSize:end])
	r.length--
	clear(r.slot(r.length))
	r.shrink()
	return nil
}

// Resize sets the length to n, growing the capacity to exactly n if needed.
// New slots are zero bytes; truncated elements are dropped.
func (r *Raw) Resize(n int) error {
	if n < 0 {
		return errors.Wrapf(ErrNegativeLength, "resize: %d", n)
	}
	if n > r.capacity {
		r.realloc(n)
	}
	for i := n; i < r.length; i++ {
		r.discard(i)
	}
	r.length = n
	return nil
}

// Reserve grows the capacity to exactly n. It never shrinks the buffer.
func (r *Raw) Reserve(n int) {
	if n <= r.capacity {
		return
	}
	r.realloc(n)
}

// ShrinkToFit reallocates to exactly Len() elements, or the floor when empty.
func (r *Raw) ShrinkToFit() {
	r.realloc(internal.Fit(r.length))
}

// Clear drops every element and returns the capacity to the floor.
func (r *Raw) Clear() {
	for i := 0; i < r.length; i++ {
		r.discard(i)
	}
	r.length = 0
	if r.capacity > internal.MinCapacity {
		r.realloc(internal.MinCapacity)
	}
}

// Clone returns an independent byte-for-byte copy with capacity exactly Len().
func (r *Raw) Clone() *Raw {
	if r == nil {
		return nil
	}
	dup := &Raw{
		data:     make([]byte, r.length*r.elemSize),
		length:   r.length,
		capacity: r.length,
		elemSize: r.elemSize,
		drop:     r.drop,
	}
	copy(dup.data, r.data[:r.length*r.elemSize])
	return dup
}

// Move transfers the buffer to a new Raw and resets r to the freed state.
// A nil receiver returns nil.
func (r *Raw) Move() *Raw {
	if r == nil {
		return nil
	}
	moved := *r
	*r = Raw{}
	return &moved
}

// Swap exchanges the complete state of r and other.
func (r *Raw) Swap(other *Raw) {
	if other == nil {
		return
	}
	*r, *other = *other, *r
}

// Extend appends a byte copy of every element of src. It returns ErrElementSize
// when the element widths differ; extending r with itself is ignored.
func (r *Raw) Extend(src *Raw) error {
	if src == nil || src == r {
		return nil
	}
	if src.elemSize != r.elemSize {
		return errors.Wrapf(ErrElementSize, "extend: %d bytes into %d", src.elemSize, r.elemSize)
	}
	need := r.length + src.length
	if need > r.capacity {
		r.realloc(need)
	}
	copy(r.data[r.length*r.elemSize:], src.data[:src.length*src.elemSize])
	r.length = need
	return nil
}

// Find returns the index of the first element whose bytes equal elem, or -1.
// Values with padding or several encodings of the same value may not match.
func (r *Raw) Find(elem []byte) int {
	if elem == nil || len(elem) != r.elemSize {
		return -1
	}
	for i := 0; i < r.length; i++ {
		if bytes.Equal(r.slot(i), elem) {
			return i
		}
	}
	return -1
}

// Sort orders the elements in place with cmp. The sort is not stable.
func (r *Raw) Sort(cmp func(a, b []byte) int) {
	if cmp == nil || r.length < 2 {
		return
	}
	sort.Sort(&rawSorter{r: r, cmp: cmp, tmp: make([]byte, r.elemSize)})
}

// Free drops every element and releases the buffer. It is idempotent.
// A freed Raw is in the same state as a moved-from one: ElemSize reports 0
// and the array must be recreated with NewRaw before it is used again.
func (r *Raw) Free() {
	if r == nil {
		return
	}
	for i := 0; i < r.length; i++ {
		r.discard(i)
	}
	r.data = nil
	r.length = 0
	r.capacity = 0
	r.elemSize = 0
}

func (r *Raw) checkWidth(elem []byte) error {
	if len(elem) != r.elemSize {
		return errors.Wrapf(ErrElementSize, "got %d bytes, want %d", len(elem), r.elemSize)
	}
	return nil
}

// overlaps reports whether b points into buf.
func overlaps(buf, b []byte) bool {
	if len(buf) == 0 || len(b) == 0 {
		return false
	}
	lo := uintptr(unsafe.Pointer(unsafe.SliceData(buf)))
	p := uintptr(unsafe.Pointer(unsafe.SliceData(b)))
	return p >= lo && p < lo+uintptr(len(buf))
}

func (r *Raw) slot(i int) []byte {
	off := i * r.elemSize
	return r.data[off : off+r.elemSize : off+r.elemSize]
}

func (r *Raw) discard(i int) {
	if r.drop != nil {
		r.drop(r.slot(i))
	}
	clear(r.slot(i))
}

func (r *Raw) shrink() {
	if c, ok := internal.Shrink(r.length, r.capacity); ok {
		r.realloc(c)
	}
}

func (r *Raw) realloc(capacity int) {
	data := make([]byte, capacity*r.elemSize)
	copy(data, r.data[:r.length*r.elemSize])
	r.data = data
	r.capacity = capacity
}

// rawSorter adapts a Raw array to sort.Interface by swapping whole element blocks.
type rawSorter struct {
	r   *Raw
	cmp func(a, b []byte) int
	tmp []byte
}

func (s *rawSorter) Len() int { return s.r.length }

func (s *rawSorter) Less(i, j int) bool { return s.cmp(s.r.slot(i), s.r.slot(j)) < 0 }

func (s *rawSorter) Swap(i, j int) {
	a, b := s.r.slot(i), s.r.slot(j)
	copy(s.tmp, a)
	copy(a, b)
	copy(b, s.tmp)
}
