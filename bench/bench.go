// Package bench times morphology filters on synthetic binary images.
package bench

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/blowekamp/itkBinaryMorphologyPerformance/logging"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/morphology"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/rimage"
	"github.com/blowekamp/itkBinaryMorphologyPerformance/utils"
)

const (
	defaultRepeats = 5
	defaultWarmup  = 1
)

// Case is one benchmark configuration.
type Case struct {
	Name      string
	Operation morphology.Operation
	Size      []int
	Radius    []int
	// Density is the fraction of foreground pixels in the generated image.
	Density float64
	Workers int
	Seed    int64
}

// NumPixels is the number of pixels the case filters per run.
func (c Case) NumPixels() int {
	return rimage.RegionFromSize(c.Size...).NumPixels()
}

// Result holds the timings of one case.
type Result struct {
	Case      Case
	Durations []time.Duration
	Min       time.Duration
	Mean      time.Duration
	Median    time.Duration
	StdDev    time.Duration
}

// MegapixelsPerSecond is the throughput at the median duration.
func (r Result) MegapixelsPerSecond() float64 {
	if r.Median <= 0 {
		return 0
	}
	return float64(r.Case.NumPixels()) / 1e6 / r.Median.Seconds()
}

// Runner times cases. Warmup runs are not recorded.
type Runner struct {
	Clock   clock.Clock
	Logger  logging.Logger
	Repeats int
	Warmup  int
}

// NewRunner returns a runner on the wall clock.
func NewRunner(logger logging.Logger) *Runner {
	return &Runner{
		Clock:   clock.New(),
		Logger:  logger,
		Repeats: defaultRepeats,
		Warmup:  defaultWarmup,
	}
}

// Run times c. The input image is generated once and the output buffer is reused between runs.
func (r *Runner) Run(ctx context.Context, c Case) (Result, error) {
	if len(c.Size) == 0 {
		return Result{}, errors.Errorf("case %q has no image size", c.Name)
	}
	if c.Density < 0 || c.Density > 1 {
		return Result{}, errors.Errorf("case %q density must be in [0, 1] but got %v", c.Name, c.Density)
	}
	repeats := r.Repeats
	if repeats <= 0 {
		repeats = defaultRepeats
	}

	region := rimage.RegionFromSize(c.Size...)
	if err := region.Validate(); err != nil {
		return Result{}, errors.Wrapf(err, "case %q", c.Name)
	}
	in := rimage.NewRandomBinary(rand.New(rand.NewSource(c.Seed)), region, c.Density, uint8(255), 0)
	out := rimage.NewImage[uint8](region)

	f := morphology.NewFilter[uint8](c.Operation)
	f.Radius = c.Radius
	workers := c.Workers
	if workers <= 0 {
		workers = utils.GetDefaultWorkers(r.Logger)
	}
	f.Executor = utils.NewPoolExecutor(workers)
	f.Logger = r.Logger

	for i := 0; i < r.Warmup; i++ {
		if err := f.ApplyTo(ctx, in, out); err != nil {
			return Result{}, errors.Wrapf(err, "case %q warmup", c.Name)
		}
	}
	durations := make([]time.Duration, 0, repeats)
	for i := 0; i < repeats; i++ {
		start := r.Clock.Now()
		if err := f.ApplyTo(ctx, in, out); err != nil {
			return Result{}, errors.Wrapf(err, "case %q run %d", c.Name, i)
		}
		durations = append(durations, r.Clock.Since(start))
	}

	res, err := summarize(c, durations)
	if err != nil {
		return Result{}, err
	}
	r.Logger.Debugw("bench case done", "case", c.Name, "median", res.Median, "repeats", repeats)
	return res, nil
}

// RunAll times every case in order and stops at the first failure.
func (r *Runner) RunAll(ctx context.Context, cases []Case) ([]Result, error) {
	results := make([]Result, 0, len(cases))
	for _, c := range cases {
		res, err := r.Run(ctx, c)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

func summarize(c Case, durations []time.Duration) (Result, error) {
	data := make(stats.Float64Data, len(durations))
	for i, d := range durations {
		data[i] = float64(d)
	}
	minimum, err := stats.Min(data)
	if err != nil {
		return Result{}, errors.Wrapf(err, "case %q", c.Name)
	}
	mean, err := stats.Mean(data)
	if err != nil {
		return Result{}, errors.Wrapf(err, "case %q", c.Name)
	}
	median, err := stats.Median(data)
	if err != nil {
		return Result{}, errors.Wrapf(err, "case %q", c.Name)
	}
	sd, err := stats.StandardDeviation(data)
	if err != nil {
		return Result{}, errors.Wrapf(err, "case %q", c.Name)
	}
	return Result{
		Case:      c,
		Durations: durations,
		Min:       time.Duration(minimum),
		Mean:      time.Duration(mean),
		Median:    time.Duration(median),
		StdDev:    time.Duration(sd),
	}, nil
}

// SweepRadius returns one case per radius, applied to every axis, on top of base.
func SweepRadius(base Case, radii []int) []Case {
	cases := make([]Case, 0, len(radii))
	for _, r := range radii {
		c := base
		c.Radius = make([]int, len(base.Size))
		for i := range c.Radius {
			c.Radius[i] = r
		}
		c.Name = fmt.Sprintf("%s r=%d", base.Operation, r)
		cases = append(cases, c)
	}
	return cases
}
