package morphology

import "github.com/pkg/errors"

// LineParams are the pixel values a line pass reads and writes.
type LineParams[T comparable] struct {
	Foreground T
	Background T
	// BoundaryToForeground is the value assumed for pixels beyond both ends of the line.
	BoundaryToForeground bool
}

// FilterLine dilates or erodes line in place with a box of half width radius, in one sweep that
// reads each pixel once. Only pixels equal to Foreground count as foreground; erosion writes
// Background over removed pixels and every other value is left untouched.
//
// A pixel is written only after every pixel that reads it has been read: the write to
// position i-radius trails the read of position i, and the window holds the 2*radius pixels
// read before it.
func FilterLine[T comparable](line []T, radius int, params LineParams[T], op Operation) error {
	if radius < 0 || radius > MaxLineRadius {
		return errors.Wrapf(ErrRadiusOutOfRange, "line radius %d not in [0, %d]", radius, MaxLineRadius)
	}
	if op != Dilate && op != Erode {
		return errors.Wrapf(ErrUnsupportedOperation, "line pass cannot apply %s", op)
	}
	length := len(line)
	if length == 0 {
		return nil
	}

	fg, bg := params.Foreground, params.Background
	boundary := params.BoundaryToForeground

	window := newBitWindow(radius)
	window.reset(boundary)

	// warm up with the pixels that have no output position yet
	i := 0
	for ; i < radius && i < length; i++ {
		window.push(line[i] == fg)
	}

	// steady state: read i, write i-radius
	if op == Dilate {
		for ; i < length; i++ {
			cur := line[i] == fg
			if cur || window.any() {
				line[i-radius] = fg
			}
			window.push(cur)
		}
	} else {
		for ; i < length; i++ {
			cur := line[i] == fg
			if line[i-radius] == fg && (!cur || !window.full()) {
				line[i-radius] = bg
			}
			window.push(cur)
		}
	}

	// drain the last radius positions against the boundary value. Lines shorter than the
	// radius have drain positions before the start of the line; those only feed the window.
	for ; i < length+radius; i++ {
		out := i - radius
		if out >= 0 {
			if op == Dilate {
				if boundary || window.any() {
					line[out] = fg
				}
			} else if line[out] == fg && (!boundary || !window.full()) {
				line[out] = bg
			}
		}
		window.push(boundary)
	}
	return nil
}
