package rimage

import (
	"image"
	"image/color"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

func TestGrayRoundTrip(t *testing.T) {
	gray := image.NewGray(image.Rect(2, 3, 6, 5))
	gray.SetGray(2, 3, color.Gray{Y: 255})
	gray.SetGray(5, 4, color.Gray{Y: 17})

	img := FromGray(gray)
	test.That(t, img.Region().Equal(NewRegion([]int{2, 3}, []int{4, 2})), test.ShouldBeTrue)
	test.That(t, img.At(2, 3), test.ShouldEqual, uint8(255))
	test.That(t, img.At(5, 4), test.ShouldEqual, uint8(17))
	test.That(t, img.At(3, 3), test.ShouldEqual, uint8(0))

	back := ToGray(img)
	test.That(t, back.Rect, test.ShouldResemble, gray.Rect)
	test.That(t, back.Pix, test.ShouldResemble, gray.Pix)

	// A sub image has a stride wider than its bounds.
	sub := gray.SubImage(image.Rect(4, 4, 6, 5)).(*image.Gray)
	subImg := FromGray(sub)
	test.That(t, subImg.Pix(), test.ShouldResemble, []uint8{0, 17})
}

func TestGray16RoundTrip(t *testing.T) {
	gray := image.NewGray16(image.Rect(0, 0, 3, 2))
	gray.SetGray16(1, 1, color.Gray16{Y: 0xabcd})

	img := FromGray16(gray)
	test.That(t, img.At(1, 1), test.ShouldEqual, uint16(0xabcd))
	test.That(t, ToGray16(img).Pix, test.ShouldResemble, gray.Pix)
}

func TestMakeGray(t *testing.T) {
	rgba := image.NewRGBA(image.Rect(0, 0, 2, 2))
	rgba.Set(1, 0, color.White)
	gray := MakeGray(rgba)
	test.That(t, gray.GrayAt(1, 0).Y, test.ShouldEqual, uint8(255))
	test.That(t, gray.GrayAt(0, 0).Y, test.ShouldEqual, uint8(0))
	test.That(t, MakeGray(gray), test.ShouldEqual, gray)

	gray16 := MakeGray16(rgba)
	test.That(t, gray16.Gray16At(1, 0).Y, test.ShouldEqual, uint16(0xffff))
	test.That(t, MakeGray16(gray16), test.ShouldEqual, gray16)
}

func TestDenseRoundTrip(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{
		0, 1, 0,
		1, 1, 0,
	})
	img := FromDense(m)
	test.That(t, img.Size(0), test.ShouldEqual, 3)
	test.That(t, img.Size(1), test.ShouldEqual, 2)
	test.That(t, img.At(1, 0), test.ShouldEqual, 1.0)
	test.That(t, img.At(0, 1), test.ShouldEqual, 1.0)
	test.That(t, img.At(2, 1), test.ShouldEqual, 0.0)
	test.That(t, mat.Equal(ToDense(img), m), test.ShouldBeTrue)
}
