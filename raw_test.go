package dynarr

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lordpaijo/dynarr/internal"
)

func u32(v uint32) []byte {
	return binary.LittleEndian.AppendUint32(nil, v)
}

func rawValues(r *Raw) []uint32 {
	var out []uint32
	for i := 0; i < r.Len(); i++ {
		out = append(out, binary.LittleEndian.Uint32(r.Get(i)))
	}
	return out
}

func rawFill(t *testing.T, r *Raw, vs ...uint32) *Raw {
	for _, v := range vs {
		require.NoError(t, r.Push(u32(v)))
	}
	return r
}

func cmpU32(a, b []byte) int {
	x, y := binary.LittleEndian.Uint32(a), binary.LittleEndian.Uint32(b)
	switch {
	case x < y:
		return -1
	case x > y:
		return 1
	}
	return 0
}

func TestNewRaw(t *testing.T) {
	r := NewRaw(4, nil)
	assert.Equal(t, 4, r.ElemSize())
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, internal.MinCapacity, r.Cap())
	assert.True(t, r.Empty())

	assert.Panics(t, func() { NewRaw(0, nil) })
	assert.Equal(t, 8, RawOf[int64](nil).ElemSize())
}

func TestRaw_PushPop(t *testing.T) {
	var dropped []uint32
	r := NewRaw(4, func(elem []byte) {
		dropped = append(dropped, binary.LittleEndian.Uint32(elem))
	})
	rawFill(t, r, 0, 1, 2, 3, 4)
	assert.Equal(t, 5, r.Len())
	assert.Equal(t, 8, r.Cap())
	assert.Equal(t, uint32(4), binary.LittleEndian.Uint32(r.Back()))

	assert.ErrorIs(t, r.Push([]byte{1, 2}), ErrElementSize)
	assert.Equal(t, 5, r.Len())

	r.Pop()
	r.Pop()
	assert.Equal(t, []uint32{0, 1, 2}, rawValues(r))
	assert.Equal(t, []uint32{4, 3}, dropped)

	assert.Nil(t, r.Get(3))
	assert.Nil(t, r.Get(-1))
}

func TestRaw_GetWritesInPlace(t *testing.T) {
	r := rawFill(t, NewRaw(4, nil), 1, 2)
	elem := r.Get(0)
	assert.Equal(t, 4, cap(elem))
	binary.LittleEndian.PutUint32(elem, 42)
	assert.Equal(t, []uint32{42, 2}, rawValues(r))
}

func TestRaw_InsertRemove(t *testing.T) {
	var dropped []uint32
	r := NewRaw(4, func(elem []byte) {
		dropped = append(dropped, binary.LittleEndian.Uint32(elem))
	})
	rawFill(t, r, 0, 1, 2)

	require.NoError(t, r.Insert(1, u32(99)))
	assert.Equal(t, []uint32{0, 99, 1, 2}, rawValues(r))

	require.NoError(t, r.Insert(0, u32(7)))
	assert.Equal(t, []uint32{7, 0, 99, 1, 2}, rawValues(r))
	assert.Equal(t, 8, r.Cap())

	assert.ErrorIs(t, r.Insert(9, u32(1)), ErrOutOfRange)
	assert.ErrorIs(t, r.Insert(0, []byte{1}), ErrElementSize)

	require.NoError(t, r.Remove(2))
	require.NoError(t, r.Remove(0))
	assert.Equal(t, []uint32{0, 1, 2}, rawValues(r))
	assert.Equal(t, []uint32{99, 7}, dropped)

	assert.ErrorIs(t, r.Remove(3), ErrOutOfRange)
	assert.Equal(t, 3, r.Len())
}

func TestRaw_InsertOwnElement(t *testing.T) {
	r := rawFill(t, NewRaw(4, nil), 10, 20, 30)
	require.NoError(t, r.Insert(0, r.Get(1)))
	assert.Equal(t, []uint32{20, 10, 20, 30}, rawValues(r))

	// full buffer: the element is read before the old buffer is replaced
	require.NoError(t, r.Insert(2, r.Back()))
	assert.Equal(t, []uint32{20, 10, 30, 20, 30}, rawValues(r))
	assert.Equal(t, 8, r.Cap())

	require.NoError(t, r.Insert(r.Len(), r.Get(0)))
	assert.Equal(t, []uint32{20, 10, 30, 20, 30, 20}, rawValues(r))
}

func TestRaw_ResizeReserveShrink(t *testing.T) {
	var drops int
	r := NewRaw(4, func([]byte) { drops++ })
	rawFill(t, r, 0, 1, 2)

	require.NoError(t, r.Resize(10))
	assert.Equal(t, 10, r.Len())
	assert.Equal(t, 10, r.Cap())
	assert.Equal(t, uint32(0), binary.LittleEndian.Uint32(r.Get(9)))

	require.NoError(t, r.Resize(2))
	assert.Equal(t, []uint32{0, 1}, rawValues(r))
	assert.Equal(t, 8, drops)
	assert.ErrorIs(t, r.Resize(-3), ErrNegativeLength)

	r.Reserve(32)
	assert.Equal(t, 32, r.Cap())
	r.Reserve(3)
	assert.Equal(t, 32, r.Cap())

	r.ShrinkToFit()
	assert.Equal(t, 2, r.Cap())
	assert.Equal(t, []uint32{0, 1}, rawValues(r))
}

func TestRaw_CloneMoveSwap(t *testing.T) {
	r := rawFill(t, NewRaw(4, nil), 5, 6, 7)

	dup := r.Clone()
	assert.Equal(t, rawValues(r), rawValues(dup))
	assert.Equal(t, 3, dup.Cap())
	require.NoError(t, dup.Push(u32(8)))
	assert.Equal(t, 3, r.Len())

	moved := dup.Move()
	assert.Equal(t, 0, dup.Len())
	assert.Equal(t, 0, dup.Cap())
	assert.Equal(t, []uint32{5, 6, 7, 8}, rawValues(moved))
	dup.Free()

	r.Swap(moved)
	assert.Equal(t, []uint32{5, 6, 7, 8}, rawValues(r))
	assert.Equal(t, []uint32{5, 6, 7}, rawValues(moved))

	var nilRaw *Raw
	assert.Nil(t, nilRaw.Move())
}

func TestRaw_Extend(t *testing.T) {
	dst := rawFill(t, NewRaw(4, nil), 1, 2)
	src := rawFill(t, NewRaw(4, nil), 3, 4, 5)

	require.NoError(t, dst.Extend(src))
	assert.Equal(t, []uint32{1, 2, 3, 4, 5}, rawValues(dst))
	assert.Equal(t, 5, dst.Cap())
	assert.Equal(t, []uint32{3, 4, 5}, rawValues(src))

	require.NoError(t, dst.Extend(dst))
	require.NoError(t, dst.Extend(nil))
	assert.Equal(t, 5, dst.Len())

	wide := NewRaw(8, nil)
	require.NoError(t, wide.Push(make([]byte, 8)))
	assert.ErrorIs(t, dst.Extend(wide), ErrElementSize)
	assert.Equal(t, 5, dst.Len())
}

func TestRaw_Find(t *testing.T) {
	r := rawFill(t, NewRaw(4, nil), 0, 1, 2, 1)
	assert.Equal(t, 1, r.Find(u32(1)))
	assert.Equal(t, -1, r.Find(u32(9)))
	assert.Equal(t, -1, r.Find(nil))
	assert.Equal(t, -1, r.Find([]byte{1}))
}

func TestRaw_Sort(t *testing.T) {
	r := rawFill(t, NewRaw(4, nil), 9, 3, 7, 1, 1, 8, 0)
	r.Sort(cmpU32)
	assert.Equal(t, []uint32{0, 1, 1, 3, 7, 8, 9}, rawValues(r))

	r.Sort(nil)
	assert.Equal(t, 7, r.Len())
}

func TestRaw_ClearFree(t *testing.T) {
	var drops int
	r := NewRaw(4, func([]byte) { drops++ })
	for i := uint32(0); i < 40; i++ {
		require.NoError(t, r.Push(u32(i)))
	}

	r.Clear()
	assert.Equal(t, 40, drops)
	assert.True(t, r.Empty())
	assert.Equal(t, internal.MinCapacity, r.Cap())

	rawFill(t, r, 1, 2)
	r.Free()
	assert.Equal(t, 42, drops)
	assert.Equal(t, 0, r.Cap())
	assert.Equal(t, 0, r.Len())
	assert.Equal(t, 0, r.ElemSize())

	r.Free()
	assert.Equal(t, 42, drops)
}

func TestRaw_BytesOf(t *testing.T) {
	type point struct{ X, Y int32 }

	r := RawOf[point](nil)
	p := point{X: 3, Y: -4}
	require.NoError(t, r.Push(BytesOf(&p)))

	q := point{X: 1, Y: 1}
	require.NoError(t, r.Insert(0, BytesOf(&q)))

	assert.Equal(t, 1, r.Find(BytesOf(&p)))
	assert.Equal(t, BytesOf(&q), r.Get(0))
}
