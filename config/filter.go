package config

import (
	"github.com/blowekamp/itkBinaryMorphologyPerformance/logging"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/morphology"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/rimage"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/utils"
)

// NewFilter builds the filter a validated config describes for pixel type T. Foreground and
// background values are clamped to the range of T.
func NewFilter[T rimage.Pixel](cfg *Config, logger logging.Logger) *morphology.Filter[T] {
	f := morphology.NewFilter[T](cfg.Op())
	f.Radius = append([]int(nil), cfg.Radius...)
	if cfg.Foreground != nil {
		f.Foreground = rimage.ConvertFloat[T](*cfg.Foreground)
	}
	if cfg.Background != nil {
		f.Background = rimage.ConvertFloat[T](*cfg.Background)
	}
	if cfg.BoundaryToForeground != nil {
		f.SetBoundaryToForeground(*cfg.BoundaryToForeground)
	}
	f.InPlace = cfg.InPlace
	workers := cfg.Workers
	if workers == 0 {
		workers = utils.GetDefaultWorkers(logger)
	}
	f.Executor = utils.NewPoolExecutor(workers)
	f.Logger = logger
	return f
}
