package morphology

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.opencensus.io/trace"

	"github.com/blowekamp/itkBinaryMorphologyPerformance/logging"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/rimage"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/utils"
)

// Executor runs independent work items and returns once all of them have finished. It is the
// barrier between two axis passes.
type Executor interface {
	ParallelFor(ctx context.Context, n int, fn utils.ItemFunc) error
}

// workerCounter is implemented by executors that know how many items they run at once.
type workerCounter interface {
	NumWorkers() int
}

// axisPass filters every scanline of an image along one axis. Scanlines are independent, so the
// region is split across the executor and each piece runs with its own line buffer.
type axisPass[T rimage.Pixel] struct {
	axis   int
	radius int
	op     Operation
	params LineParams[T]
	pieces int
	// copyFrom, when set, is copied into the image piece by piece before that piece is filtered.
	copyFrom *rimage.Image[T]
	progress *progressReporter
	slot     int
}

func (p axisPass[T]) run(ctx context.Context, img *rimage.Image[T], exec Executor, logger logging.Logger) error {
	ctx, span := trace.StartSpan(ctx, "morphology::axisPass::run")
	defer span.End()
	span.AddAttributes(
		trace.StringAttribute("op", p.op.String()),
		trace.Int64Attribute("axis", int64(p.axis)),
		trace.Int64Attribute("radius", int64(p.radius)),
	)

	if p.axis < 0 || p.axis >= img.Dim() {
		return errors.Wrapf(ErrInvalidAxis, "axis %d for %d dimensional image", p.axis, img.Dim())
	}
	if p.radius < 0 {
		return errors.Wrapf(ErrRadiusOutOfRange, "negative radius %d along axis %d", p.radius, p.axis)
	}
	region := img.Region()
	pieces := SplitRegion(region, p.axis, p.pieces)
	start := time.Now()
	lines := 0
	if extent := region.Size[p.axis]; extent > 0 {
		lines = region.NumPixels() / extent
	}
	p.progress.startPass(p.slot, lines)

	err := exec.ParallelFor(ctx, len(pieces), func(ctx context.Context, item int) error {
		piece := pieces[item]
		if p.copyFrom != nil {
			if err := rimage.CopyRegion(img, p.copyFrom, piece); err != nil {
				return err
			}
		}
		buf := make([]T, piece.Size[p.axis])
		return piece.ForEachLine(p.axis, func(lineStart []int) error {
			img.ReadLine(p.axis, lineStart, buf)
			if err := FilterLineRadius(buf, p.radius, p.params, p.op); err != nil {
				return err
			}
			img.WriteLine(p.axis, lineStart, buf)
			p.progress.completeLine()
			return nil
		})
	})
	if err != nil {
		return errors.Wrapf(err, "%s pass along axis %d", p.op, p.axis)
	}
	p.progress.finishSlot(p.slot)
	logger.CDebugw(ctx, "axis pass done",
		"op", p.op.String(),
		"axis", p.axis,
		"radius", p.radius,
		"pieces", len(pieces),
		"duration", time.Since(start),
	)
	return nil
}

// runAxisPasses applies op along every axis of out in order, waiting for each axis to finish
// before the next begins. Axis 0 always runs, even with a zero radius, because it is the pass
// that copies in into out when they are different buffers. Other axes with a zero radius are
// skipped. Progress for the axes uses the slots starting at firstSlot.
func runAxisPasses[T rimage.Pixel](
	ctx context.Context,
	in, out *rimage.Image[T],
	radius []int,
	op Operation,
	params LineParams[T],
	exec Executor,
	pieces int,
	logger logging.Logger,
	progress *progressReporter,
	firstSlot int,
) error {
	var copyFrom *rimage.Image[T]
	if !in.SameBuffer(out) {
		copyFrom = in
	}
	logger.CDebugw(ctx, "starting axis passes", "op", op.String(), "radius", radius, "copy_input", copyFrom != nil)
	for axis := range out.Dim() {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "%s canceled before axis %d", op, axis)
		}
		if axis != 0 && radius[axis] == 0 {
			logger.CDebugw(ctx, "skipping axis with zero radius", "op", op.String(), "axis", axis)
			progress.finishSlot(firstSlot + axis)
			continue
		}
		pass := axisPass[T]{
			axis:     axis,
			radius:   radius[axis],
			op:       op,
			params:   params,
			pieces:   pieces,
			progress: progress,
			slot:     firstSlot + axis,
		}
		if axis == 0 {
			pass.copyFrom = copyFrom
		}
		if err := pass.run(ctx, out, exec, logger); err != nil {
			return err
		}
	}
	return nil
}
