package rimage

import (
	"fmt"
	"slices"

	"github.com/pkg/errors"
)

// Region is a rectangular index range: Size[d] pixels along axis d starting at Index[d].
type Region struct {
	Index []int
	Size  []int
}

// NewRegion copies index and size into a new Region.
func NewRegion(index, size []int) Region {
	return Region{Index: slices.Clone(index), Size: slices.Clone(size)}
}

// RegionFromSize returns a region of the given size starting at the origin.
func RegionFromSize(size ...int) Region {
	return Region{Index: make([]int, len(size)), Size: slices.Clone(size)}
}

// Validate checks that index and size agree in dimension and that no size is negative.
func (r Region) Validate() error {
	if len(r.Index) != len(r.Size) {
		return errors.Errorf("region index has %d dimensions but size has %d", len(r.Index), len(r.Size))
	}
	for d, s := range r.Size {
		if s < 0 {
			return errors.Errorf("region size along axis %d is negative (%d)", d, s)
		}
	}
	return nil
}

// Dim is the number of axes.
func (r Region) Dim() int {
	return len(r.Size)
}

// NumPixels is the product of the sizes.
func (r Region) NumPixels() int {
	if len(r.Size) == 0 {
		return 0
	}
	n := 1
	for _, s := range r.Size {
		n *= s
	}
	return n
}

// Contains reports whether idx lies in the region.
func (r Region) Contains(idx []int) bool {
	if len(idx) != len(r.Size) {
		return false
	}
	for d, v := range idx {
		if v < r.Index[d] || v >= r.Index[d]+r.Size[d] {
			return false
		}
	}
	return true
}

// IsInside reports whether r is entirely within other.
func (r Region) IsInside(other Region) bool {
	if r.Dim() != other.Dim() {
		return false
	}
	for d := range r.Size {
		if r.Size[d] == 0 {
			continue
		}
		if r.Index[d] < other.Index[d] || r.Index[d]+r.Size[d] > other.Index[d]+other.Size[d] {
			return false
		}
	}
	return true
}

// Equal reports whether both regions have the same index and size.
func (r Region) Equal(other Region) bool {
	return slices.Equal(r.Index, other.Index) && slices.Equal(r.Size, other.Size)
}

// Clone returns a deep copy.
func (r Region) Clone() Region {
	return NewRegion(r.Index, r.Size)
}

func (r Region) String() string {
	return fmt.Sprintf("Region{Index: %v, Size: %v}", r.Index, r.Size)
}

// ForEachLine calls fn once for every scanline of r along axis. The start index passed to fn has
// start[axis] == r.Index[axis]; it is reused between calls and must not be retained. Lines are
// visited with the lowest remaining axis varying fastest. Iteration stops at the first error.
func (r Region) ForEachLine(axis int, fn func(start []int) error) error {
	if axis < 0 || axis >= r.Dim() {
		return errors.Errorf("line axis %d out of range for %d dimensional region", axis, r.Dim())
	}
	if r.NumPixels() == 0 {
		return nil
	}
	start := slices.Clone(r.Index)
	for {
		if err := fn(start); err != nil {
			return err
		}
		d := 0
		for ; d < r.Dim(); d++ {
			if d == axis {
				continue
			}
			start[d]++
			if start[d] < r.Index[d]+r.Size[d] {
				break
			}
			start[d] = r.Index[d]
		}
		if d == r.Dim() {
			return nil
		}
	}
}
