package rimage

import (
	"image"
	"image/draw"

	"gonum.org/v1/gonum/mat"
)

// MakeGray converts any image to an 8-bit *image.Gray. Gray images are returned as is.
func MakeGray(pic image.Image) *image.Gray {
	if gray, ok := pic.(*image.Gray); ok {
		return gray
	}
	result := image.NewGray(pic.Bounds())
	draw.Draw(result, result.Bounds(), pic, pic.Bounds().Min, draw.Src)
	return result
}

// MakeGray16 converts any image to a 16-bit *image.Gray16. Gray16 images are returned as is.
func MakeGray16(pic image.Image) *image.Gray16 {
	if gray, ok := pic.(*image.Gray16); ok {
		return gray
	}
	result := image.NewGray16(pic.Bounds())
	draw.Draw(result, result.Bounds(), pic, pic.Bounds().Min, draw.Src)
	return result
}

func rectRegion(rect image.Rectangle) Region {
	return NewRegion([]int{rect.Min.X, rect.Min.Y}, []int{rect.Dx(), rect.Dy()})
}

func regionRect(r Region) image.Rectangle {
	return image.Rect(r.Index[0], r.Index[1], r.Index[0]+r.Size[0], r.Index[1]+r.Size[1])
}

// FromGray copies a gray image into a 2-D image indexed (x, y).
func FromGray(gray *image.Gray) *Image[uint8] {
	out := NewImage[uint8](rectRegion(gray.Rect))
	w := gray.Rect.Dx()
	for y := 0; y < gray.Rect.Dy(); y++ {
		copy(out.pix[y*w:(y+1)*w], gray.Pix[y*gray.Stride:y*gray.Stride+w])
	}
	return out
}

// ToGray copies a 2-D 8-bit image into an *image.Gray with the same bounds.
func ToGray(img *Image[uint8]) *image.Gray {
	gray := image.NewGray(regionRect(img.region))
	w := img.region.Size[0]
	for y := 0; y < img.region.Size[1]; y++ {
		copy(gray.Pix[y*gray.Stride:y*gray.Stride+w], img.pix[y*w:(y+1)*w])
	}
	return gray
}

// FromGray16 copies a 16-bit gray image into a 2-D image indexed (x, y).
func FromGray16(gray *image.Gray16) *Image[uint16] {
	out := NewImage[uint16](rectRegion(gray.Rect))
	for y := gray.Rect.Min.Y; y < gray.Rect.Max.Y; y++ {
		for x := gray.Rect.Min.X; x < gray.Rect.Max.X; x++ {
			out.Set([]int{x, y}, gray.Gray16At(x, y).Y)
		}
	}
	return out
}

// ToGray16 copies a 2-D 16-bit image into an *image.Gray16 with the same bounds.
func ToGray16(img *Image[uint16]) *image.Gray16 {
	gray := image.NewGray16(regionRect(img.region))
	idx := make([]int, 2)
	for idx[1] = img.region.Index[1]; idx[1] < img.region.Index[1]+img.region.Size[1]; idx[1]++ {
		for idx[0] = img.region.Index[0]; idx[0] < img.region.Index[0]+img.region.Size[0]; idx[0]++ {
			v := img.Get(idx)
			i := gray.PixOffset(idx[0], idx[1])
			gray.Pix[i] = uint8(v >> 8)
			gray.Pix[i+1] = uint8(v)
		}
	}
	return gray
}

// FromDense copies a matrix into a 2-D image where axis 0 is the column and axis 1 the row.
func FromDense(m *mat.Dense) *Image[float64] {
	rows, cols := m.Dims()
	out := NewImageFromSize[float64](cols, rows)
	for r := 0; r < rows; r++ {
		mat.Row(out.pix[r*cols:(r+1)*cols], r, m)
	}
	return out
}

// ToDense is the inverse of FromDense.
func ToDense(img *Image[float64]) *mat.Dense {
	cols, rows := img.region.Size[0], img.region.Size[1]
	data := make([]float64, len(img.pix))
	copy(data, img.pix)
	return mat.NewDense(rows, cols, data)
}
