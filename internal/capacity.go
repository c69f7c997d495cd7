package internal

// MinCapacity is the capacity floor. An allocated buffer never shrinks below it.
const MinCapacity = 4

// Grow returns the capacity to use when a full buffer of capacity c needs
// one more slot.
func Grow(c int) int {
	if c*2 < MinCapacity {
		return MinCapacity
	}
	return c * 2
}

// Shrink returns half of c, never below MinCapacity, once fewer than a
// quarter of c slots are live.
func Shrink(length, c int) (int, bool) {
	if length >= c/4 || c <= MinCapacity {
		return c, false
	}
	return max(c/2, MinCapacity), true
}

// Fit returns the capacity that exactly holds length elements.
func Fit(length int) int {
	if length == 0 {
		return MinCapacity
	}
	return length
}
