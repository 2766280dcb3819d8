package bench

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Report renders results as a table with one row per case.
func Report(results []Result) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"#", "Case", "Size", "Radius", "Workers", "Min", "Median", "Mean", "StdDev", "MPix/s"})
	for i, res := range results {
		t.AppendRow(table.Row{
			i + 1,
			res.Case.Name,
			formatSize(res.Case.Size),
			fmt.Sprint(res.Case.Radius),
			res.Case.Workers,
			roundDuration(res.Min),
			roundDuration(res.Median),
			roundDuration(res.Mean),
			roundDuration(res.StdDev),
			fmt.Sprintf("%.1f", res.MegapixelsPerSecond()),
		})
	}
	return t.Render()
}

func formatSize(size []int) string {
	return strings.Join(lo.Map(size, func(s, _ int) string { return fmt.Sprint(s) }), "x")
}

func roundDuration(d time.Duration) time.Duration {
	return d.Round(time.Microsecond)
}

// PlotTimings draws the median duration against the largest radius of each case, one line per
// operation, and saves it to path. The file extension picks the format.
func PlotTimings(results []Result, path string) error {
	if len(results) == 0 {
		return errors.New("no bench results to plot")
	}
	byOp := map[string]plotter.XYs{}
	var names []string
	for _, res := range results {
		name := res.Case.Operation.String()
		if _, ok := byOp[name]; !ok {
			names = append(names, name)
		}
		byOp[name] = append(byOp[name], plotter.XY{
			X: float64(lo.Max(res.Case.Radius)),
			Y: float64(res.Median) / float64(time.Millisecond),
		})
	}

	p := plot.New()
	p.Title.Text = "morphology timings"
	p.X.Label.Text = "radius"
	p.Y.Label.Text = "median (ms)"

	lines := make([]interface{}, 0, 2*len(names))
	for _, name := range names {
		xys := byOp[name]
		slices.SortFunc(xys, func(a, b plotter.XY) int {
			switch {
			case a.X < b.X:
				return -1
			case a.X > b.X:
				return 1
			}
			return 0
		})
		lines = append(lines, name, xys)
	}
	if err := plotutil.AddLinePoints(p, lines...); err != nil {
		return errors.Wrap(err, "failed to add timings to plot")
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
