package main

import (
	"cmp"
	"os"

	"go.uber.org/zap"

	"github.com/lordpaijo/dynarr"
)

type buffer struct {
	id   int
	data []byte
}

func main() {
	lg, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer lg.Sync()

	dropped := 0
	arr := dynarr.New[int](dynarr.WithDrop(func(v *int) {
		dropped++
		lg.Debug("drop", zap.Int("value", *v))
	}))
	defer arr.Free()

	for i := 0; i < 5; i++ {
		arr.Push(i)
	}
	lg.Info("push", zap.Int("len", arr.Len()), zap.Int("cap", arr.Cap()), zap.Int("back", *arr.Back()))

	arr.Pop()
	arr.Pop()
	lg.Info("pop", zap.Int("len", arr.Len()), zap.Int("back", *arr.Back()))

	if err := arr.Insert(1, 99); err != nil {
		lg.Error("insert", zap.Error(err))
		os.Exit(1)
	}
	if err := arr.Remove(1); err != nil {
		lg.Error("remove", zap.Error(err))
		os.Exit(1)
	}
	if err := arr.Insert(10, 1); err != nil {
		lg.Warn("insert rejected", zap.Error(err))
	}

	if err := arr.Resize(2); err != nil {
		lg.Error("resize", zap.Error(err))
		os.Exit(1)
	}
	lg.Info("find", zap.Int("index", arr.Find(1)))

	moved := arr.Clone().Move()
	defer moved.Free()
	arr.Extend(moved)
	arr.Sort(cmp.Compare[int])
	lg.Info("extend+sort", zap.Ints("values", snapshot(arr)))

	arr.Clear()
	lg.Info("clear", zap.Int("len", arr.Len()), zap.Int("cap", arr.Cap()), zap.Int("dropped", dropped))

	// elements that own memory release it through the drop callback
	bufs := dynarr.New[buffer](dynarr.WithDrop(func(b *buffer) {
		lg.Debug("release buffer", zap.Int("id", b.id), zap.Int("bytes", len(b.data)))
		b.data = nil
	}))
	for i := 0; i < 3; i++ {
		bufs.Push(buffer{id: i, data: make([]byte, 1<<10)})
	}
	bufs.Free()
}

func snapshot(arr *dynarr.Array[int]) []int {
	out := make([]int, 0, arr.Len())
	for i := 0; i < arr.Len(); i++ {
		out = append(out, *arr.Get(i))
	}
	return out
}
