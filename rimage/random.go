package rimage

import (
	"math/rand"
)

// NewRandomBinary returns an image over region where each pixel is independently fg with
// probability density and bg otherwise.
func NewRandomBinary[T Pixel](rng *rand.Rand, region Region, density float64, fg, bg T) *Image[T] {
	img := NewImage[T](region)
	for i := range img.pix {
		if rng.Float64() < density {
			img.pix[i] = fg
		} else {
			img.pix[i] = bg
		}
	}
	return img
}
