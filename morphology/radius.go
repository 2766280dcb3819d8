package morphology

import "github.com/pkg/errors"

// FilterLineRadius applies FilterLine with any non-negative radius by repeating the operation
// with radius MaxLineRadius while the remainder is too wide for one pass, then once with the
// remainder. A box of radius a followed by one of radius b is a box of radius a+b, so the result
// matches a single pass of the full radius. At least one pass always runs.
func FilterLineRadius[T comparable](line []T, radius int, params LineParams[T], op Operation) error {
	if radius < 0 {
		return errors.Wrapf(ErrRadiusOutOfRange, "negative radius %d", radius)
	}
	for _, r := range decomposeRadius(radius) {
		if err := FilterLine(line, r, params, op); err != nil {
			return err
		}
	}
	return nil
}

// decomposeRadius splits radius into chunks of at most MaxLineRadius, in application order.
func decomposeRadius(radius int) []int {
	chunks := make([]int, 0, radius/MaxLineRadius+1)
	r := radius
	for r > MaxLineRadius {
		chunks = append(chunks, MaxLineRadius)
		r -= MaxLineRadius
	}
	return append(chunks, r)
}
