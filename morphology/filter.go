// Package morphology implements binary dilation and erosion with a box structuring element on
// N-dimensional images. The box is separable, so each operation is a sequence of one dimensional
// passes, one per axis. Each pass filters every scanline in place with a bit window that tracks
// the foreground state of the neighborhood, which keeps the cost per pixel independent of the
// radius.
package morphology

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/blowekamp/itkBinaryMorphologyPerformance/logging"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/rimage"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/utils"
)

// Filter applies a morphological operation to images of pixel type T. The zero value is not
// usable; build one with NewFilter.
type Filter[T rimage.Pixel] struct {
	Operation Operation
	// Radius holds the half width of the box along each axis. A single entry applies to every axis.
	Radius     []int
	Foreground T
	Background T
	Boundary   BoundaryPolicy
	// InPlace makes Apply write its result into the input image.
	InPlace bool
	// Executor runs the pieces of each axis pass. Nil uses a pool sized from the environment.
	Executor Executor
	// Pieces is how many pieces each axis pass is split into. Zero or less uses the executor's
	// worker count.
	Pieces int
	// Progress, when set, is called with the finished fraction of each run as scanlines complete.
	Progress ProgressFunc
	Logger   logging.Logger
}

// NewFilter returns a filter for op with foreground set to the largest value of T, background to
// the lowest, and the boundary following the operation default.
func NewFilter[T rimage.Pixel](op Operation) *Filter[T] {
	return &Filter[T]{
		Operation:  op,
		Foreground: rimage.MaxValue[T](),
		Background: rimage.LowestValue[T](),
		Boundary:   BoundaryDefault,
	}
}

// SetRadius uses the same radius along every axis.
func (f *Filter[T]) SetRadius(radius int) {
	f.Radius = []int{radius}
}

// SetBoundaryToForeground overrides the value assumed beyond the image bounds.
func (f *Filter[T]) SetBoundaryToForeground(toForeground bool) {
	f.Boundary = BoundaryPolicyFromBool(toForeground)
}

// BoundaryToForeground reports whether the first stage of the operation treats the outside of
// the image as foreground.
func (f *Filter[T]) BoundaryToForeground() bool {
	return f.Boundary.ToForeground(f.Operation.stages()[0])
}

// Apply runs the filter on in. Unless InPlace is set, the result is a new image and in is left
// unchanged.
func (f *Filter[T]) Apply(ctx context.Context, in *rimage.Image[T]) (*rimage.Image[T], error) {
	if in == nil {
		return nil, errors.New("morphology filter needs an input image")
	}
	out := in
	if !f.InPlace {
		out = rimage.NewImage[T](in.Region())
	}
	if err := f.ApplyTo(ctx, in, out); err != nil {
		return nil, err
	}
	return out, nil
}

// ApplyTo runs the filter on in and writes the result to out, which must cover the same region.
// in and out may be the same image. If the context is canceled between two axis passes the
// filter stops and out holds a partial result.
func (f *Filter[T]) ApplyTo(ctx context.Context, in, out *rimage.Image[T]) error {
	ctx, span := trace.StartSpan(ctx, "morphology::Filter::ApplyTo")
	defer span.End()

	radius, err := f.validate(in, out)
	if err != nil {
		return err
	}
	logger := f.logger()
	if f.Foreground == f.Background {
		logger.Warnw("foreground and background are equal; erosion will not change the image",
			"value", f.Foreground)
	}
	exec := f.executor(logger)
	pieces := f.pieceCount(exec)

	stages := f.Operation.stages()
	progress := newProgressReporter(f.Progress, len(stages)*in.Dim())
	src := in
	for i, stage := range stages {
		params := LineParams[T]{
			Foreground:           f.Foreground,
			Background:           f.Background,
			BoundaryToForeground: f.Boundary.ToForeground(stage),
		}
		err := runAxisPasses(ctx, src, out, radius, stage, params, exec, pieces, logger, progress, i*in.Dim())
		if err != nil {
			return err
		}
		src = out
	}
	return nil
}

// ApplyAxis runs a single pass of the operation along one axis of img, in place. Composite
// operations run each of their stages along that axis.
func (f *Filter[T]) ApplyAxis(ctx context.Context, img *rimage.Image[T], axis int) error {
	radius, err := f.validate(img, img)
	if err != nil {
		return err
	}
	if axis < 0 || axis >= img.Dim() {
		return errors.Wrapf(ErrInvalidAxis, "axis %d for %d dimensional image", axis, img.Dim())
	}
	logger := f.logger()
	exec := f.executor(logger)
	pieces := f.pieceCount(exec)
	stages := f.Operation.stages()
	progress := newProgressReporter(f.Progress, len(stages))
	for i, stage := range stages {
		pass := axisPass[T]{
			axis:   axis,
			radius: radius[axis],
			op:     stage,
			params: LineParams[T]{
				Foreground:           f.Foreground,
				Background:           f.Background,
				BoundaryToForeground: f.Boundary.ToForeground(stage),
			},
			pieces:   pieces,
			progress: progress,
			slot:     i,
		}
		if err := pass.run(ctx, img, exec, logger); err != nil {
			return err
		}
	}
	return nil
}

// validate checks the images against the filter and returns the radius along each axis.
func (f *Filter[T]) validate(in, out *rimage.Image[T]) ([]int, error) {
	if in == nil || out == nil {
		return nil, errors.New("morphology filter needs both an input and an output image")
	}
	if !in.Region().Equal(out.Region()) {
		return nil, errors.Wrapf(ErrRegionMismatch, "input %v, output %v", in.Region(), out.Region())
	}
	dim := in.Dim()
	if dim == 0 {
		return nil, errors.New("cannot filter a zero dimensional image")
	}
	radius := f.Radius
	switch {
	case len(radius) == 1 && dim > 1:
		radius = make([]int, dim)
		for i := range radius {
			radius[i] = f.Radius[0]
		}
	case len(radius) != dim:
		return nil, errors.Wrapf(ErrRadiusDimension, "got %d radii for %d dimensional image", len(radius), dim)
	}
	for axis, r := range radius {
		if r < 0 {
			return nil, errors.Wrapf(ErrRadiusOutOfRange, "negative radius %d along axis %d", r, axis)
		}
	}
	return radius, nil
}

func (f *Filter[T]) logger() logging.Logger {
	if f.Logger != nil {
		return f.Logger
	}
	return logging.Global().Sublogger("morphology")
}

func (f *Filter[T]) executor(logger logging.Logger) Executor {
	if f.Executor != nil {
		return f.Executor
	}
	return utils.NewPoolExecutor(utils.GetDefaultWorkers(logger))
}

func (f *Filter[T]) pieceCount(exec Executor) int {
	if f.Pieces > 0 {
		return f.Pieces
	}
	if counter, ok := exec.(workerCounter); ok {
		return counter.NumWorkers()
	}
	return utils.ParallelFactor
}

func (f *Filter[T]) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Operation: %s\n", f.Operation)
	fmt.Fprintf(&b, "Radius: %v\n", f.Radius)
	fmt.Fprintf(&b, "Foreground Value: %v\n", f.Foreground)
	fmt.Fprintf(&b, "Background Value: %v\n", f.Background)
	fmt.Fprintf(&b, "Boundary: %s\n", f.Boundary)
	fmt.Fprintf(&b, "InPlace: %v\n", f.InPlace)
	return b.String()
}

// DilateImage returns a dilation of in with a box of the given radius along each axis.
func DilateImage[T rimage.Pixel](ctx context.Context, in *rimage.Image[T], radius []int, fg, bg T) (*rimage.Image[T], error) {
	return applyOp(ctx, Dilate, in, radius, fg, bg)
}

// ErodeImage returns an erosion of in with a box of the given radius along each axis.
func ErodeImage[T rimage.Pixel](ctx context.Context, in *rimage.Image[T], radius []int, fg, bg T) (*rimage.Image[T], error) {
	return applyOp(ctx, Erode, in, radius, fg, bg)
}

// OpenImage returns an opening of in: an erosion followed by a dilation.
func OpenImage[T rimage.Pixel](ctx context.Context, in *rimage.Image[T], radius []int, fg, bg T) (*rimage.Image[T], error) {
	return applyOp(ctx, Open, in, radius, fg, bg)
}

// CloseImage returns a closing of in: a dilation followed by an erosion.
func CloseImage[T rimage.Pixel](ctx context.Context, in *rimage.Image[T], radius []int, fg, bg T) (*rimage.Image[T], error) {
	return applyOp(ctx, Close, in, radius, fg, bg)
}

func applyOp[T rimage.Pixel](
	ctx context.Context, op Operation, in *rimage.Image[T], radius []int, fg, bg T,
) (*rimage.Image[T], error) {
	f := NewFilter[T](op)
	f.Radius = radius
	f.Foreground = fg
	f.Background = bg
	return f.Apply(ctx, in)
}
