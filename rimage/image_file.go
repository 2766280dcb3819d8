package rimage

import (
	"image"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/lmittmann/ppm"
	"github.com/pkg/errors"
	"github.com/xfmoulet/qoi"
	"go.uber.org/multierr"
)

// ReadImageFromFile decodes the image at path. Besides the formats imaging understands
// (png, jpeg, gif, tiff, bmp) ppm and qoi files are supported.
func ReadImageFromFile(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read image %q", path)
	}
	return img, nil
}

// WriteImageToFile encodes img to path choosing the format from the file extension.
func WriteImageToFile(path string, img image.Image) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ppm":
		return writeWith(path, toRGBA(img), ppm.Encode)
	case ".qoi":
		return writeWith(path, img, qoi.Encode)
	default:
		if err := imaging.Save(img, path); err != nil {
			return errors.Wrapf(err, "cannot write image %q", path)
		}
		return nil
	}
}

func writeWith(path string, img image.Image, encode func(w io.Writer, m image.Image) error) (err error) {
	//nolint:gosec
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, f.Close())
		if err != nil {
			err = multierr.Combine(err, os.Remove(path))
		}
	}()
	return errors.Wrapf(encode(f, img), "cannot encode image %q", path)
}

// toRGBA converts img for encoders that only write the RGBA color model.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba
}
