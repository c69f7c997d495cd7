package dynarr

import "github.com/pkg/errors"

var (
	// ErrOutOfRange is returned when an index falls outside the live elements.
	ErrOutOfRange = errors.New("dynarr: index out of range")

	// ErrNegativeLength is returned by Resize for a length below zero.
	ErrNegativeLength = errors.New("dynarr: negative length")

	// ErrElementSize is returned when a Raw array receives bytes whose width
	// differs from its element size.
	ErrElementSize = errors.New("dynarr: element size mismatch")
)

func outOfRange(op string, index, length int) error {
	return errors.Wrapf(ErrOutOfRange, "%s: index %d, length %d", op, index, length)
}
