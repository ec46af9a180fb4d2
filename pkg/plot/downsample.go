package plot

import "slices"

// Downsample decimates src to at most maxPoints values for display into a
// newly allocated slice. If len(src) <= maxPoints, every value is copied. The
// last value of src is always kept so the curve ends where the data ends.
func Downsample[T any](src []T, maxPoints int) []T {
	if len(src) == 0 {
		return nil
	}
	if maxPoints <= 0 || len(src) <= maxPoints {
		return slices.Clone(src)
	}

	dst := make([]T, 0, maxPoints)

	// Step size for decimation
	step := float64(len(src)-1) / float64(maxPoints-1)
	if maxPoints == 1 {
		step = 0
	}

	for i := range maxPoints {
		idx := int(float64(i)*step + 0.5)
		if idx >= len(src) {
			idx = len(src) - 1
		}
		dst = append(dst, src[idx])
	}

	return dst
}
