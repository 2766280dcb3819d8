// Package rimage holds the N-dimensional images the morphology filters run on, along with
// conversions to and from the standard library image types and file codecs.
package rimage

import (
	"fmt"

	"github.com/pkg/errors"
)

// Image is an N-dimensional array of pixels over a Region. Axis 0 is contiguous in memory, so a
// 2-D image is stored row by row with x along axis 0.
type Image[T Pixel] struct {
	region  Region
	strides []int
	pix     []T
}

// NewImage allocates a zeroed image over region. It panics if the region is invalid.
func NewImage[T Pixel](region Region) *Image[T] {
	if err := region.Validate(); err != nil {
		panic(err)
	}
	return &Image[T]{
		region:  region.Clone(),
		strides: computeStrides(region),
		pix:     make([]T, region.NumPixels()),
	}
}

func computeStrides(region Region) []int {
	strides := make([]int, region.Dim())
	stride := 1
	for d, s := range region.Size {
		strides[d] = stride
		stride *= s
	}
	return strides
}

// NewImageFromSize allocates a zeroed image of the given size at the origin.
func NewImageFromSize[T Pixel](size ...int) *Image[T] {
	return NewImage[T](RegionFromSize(size...))
}

// NewImageFromPix wraps pix, laid out axis 0 fastest, as an image over region. pix is not copied.
func NewImageFromPix[T Pixel](region Region, pix []T) (*Image[T], error) {
	if err := region.Validate(); err != nil {
		return nil, err
	}
	if len(pix) != region.NumPixels() {
		return nil, errors.Errorf("region %v holds %d pixels but got %d", region, region.NumPixels(), len(pix))
	}
	return &Image[T]{
		region:  region.Clone(),
		strides: computeStrides(region),
		pix:     pix,
	}, nil
}

// Region returns a copy of the image's index range.
func (img *Image[T]) Region() Region {
	return img.region.Clone()
}

// Dim is the number of axes.
func (img *Image[T]) Dim() int {
	return img.region.Dim()
}

// Size is the extent along axis.
func (img *Image[T]) Size(axis int) int {
	return img.region.Size[axis]
}

// Pix exposes the backing buffer.
func (img *Image[T]) Pix() []T {
	return img.pix
}

func (img *Image[T]) offset(idx []int) int {
	off := 0
	for d, v := range idx {
		off += (v - img.region.Index[d]) * img.strides[d]
	}
	return off
}

// Get returns the pixel at idx. idx must lie inside the region.
func (img *Image[T]) Get(idx []int) T {
	return img.pix[img.offset(idx)]
}

// At is Get with variadic coordinates.
func (img *Image[T]) At(idx ...int) T {
	return img.Get(idx)
}

// Set writes the pixel at idx. idx must lie inside the region.
func (img *Image[T]) Set(idx []int, value T) {
	img.pix[img.offset(idx)] = value
}

// Fill sets every pixel to value.
func (img *Image[T]) Fill(value T) {
	for i := range img.pix {
		img.pix[i] = value
	}
}

// ReadLine copies len(buf) pixels along axis, beginning at start, into buf.
func (img *Image[T]) ReadLine(axis int, start []int, buf []T) {
	off := img.offset(start)
	step := img.strides[axis]
	if step == 1 {
		copy(buf, img.pix[off:off+len(buf)])
		return
	}
	for i := range buf {
		buf[i] = img.pix[off]
		off += step
	}
}

// WriteLine is the inverse of ReadLine.
func (img *Image[T]) WriteLine(axis int, start []int, buf []T) {
	off := img.offset(start)
	step := img.strides[axis]
	if step == 1 {
		copy(img.pix[off:off+len(buf)], buf)
		return
	}
	for _, v := range buf {
		img.pix[off] = v
		off += step
	}
}

// SameBuffer reports whether both images are backed by the same storage.
func (img *Image[T]) SameBuffer(other *Image[T]) bool {
	if img == other {
		return true
	}
	if img == nil || other == nil || len(img.pix) == 0 || len(other.pix) == 0 {
		return false
	}
	return &img.pix[0] == &other.pix[0]
}

// Clone returns a deep copy.
func (img *Image[T]) Clone() *Image[T] {
	out := NewImage[T](img.region)
	copy(out.pix, img.pix)
	return out
}

func (img *Image[T]) String() string {
	return fmt.Sprintf("Image[%T]{%v}", *new(T), img.region)
}

// CopyRegion copies the pixels of region from src into dst. region must be inside both images.
func CopyRegion[T Pixel](dst, src *Image[T], region Region) error {
	if !region.IsInside(src.region) || !region.IsInside(dst.region) {
		return errors.Errorf("copy region %v is not inside source %v and destination %v",
			region, src.region, dst.region)
	}
	if region.NumPixels() == 0 {
		return nil
	}
	buf := make([]T, region.Size[0])
	return region.ForEachLine(0, func(start []int) error {
		src.ReadLine(0, start, buf)
		dst.WriteLine(0, start, buf)
		return nil
	})
}
