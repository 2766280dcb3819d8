package morphology

import (
	"math/rand"
	"slices"
	"testing"

	"go.viam.com/test"
)

const (
	fgVal = uint8(1)
	bgVal = uint8(0)
)

// parseLine turns "..#.." into a line with '#' as foreground, '.' as background and any digit as
// that literal value.
func parseLine(s string) []uint8 {
	out := make([]uint8, len(s))
	for i, c := range s {
		switch {
		case c == '#':
			out[i] = fgVal
		case c == '.':
			out[i] = bgVal
		default:
			out[i] = uint8(c - '0')
		}
	}
	return out
}

func lineParams(boundary bool) LineParams[uint8] {
	return LineParams[uint8]{Foreground: fgVal, Background: bgVal, BoundaryToForeground: boundary}
}

// referenceLine is the direct definition of the operation: every pixel looks at its whole box.
func referenceLine[T comparable](line []T, radius int, params LineParams[T], op Operation) []T {
	out := make([]T, len(line))
	copy(out, line)
	isFg := func(j int) bool {
		if j < 0 || j >= len(line) {
			return params.BoundaryToForeground
		}
		return line[j] == params.Foreground
	}
	for i := range line {
		anyFg, allFg := false, true
		for j := i - radius; j <= i+radius; j++ {
			if isFg(j) {
				anyFg = true
			} else {
				allFg = false
			}
		}
		switch op {
		case Dilate:
			if anyFg {
				out[i] = params.Foreground
			}
		case Erode:
			if line[i] == params.Foreground && !allFg {
				out[i] = params.Background
			}
		}
	}
	return out
}

func TestBitWindow(t *testing.T) {
	t.Run("empty and seeded", func(t *testing.T) {
		w := newBitWindow(2)
		test.That(t, w.any(), test.ShouldBeFalse)
		test.That(t, w.full(), test.ShouldBeFalse)
		w.reset(true)
		test.That(t, w.any(), test.ShouldBeTrue)
		test.That(t, w.full(), test.ShouldBeTrue)
		w.reset(false)
		test.That(t, w.any(), test.ShouldBeFalse)
	})

	t.Run("pixels fall off after 2r pushes", func(t *testing.T) {
		w := newBitWindow(2)
		w.push(true)
		for range 3 {
			w.push(false)
			test.That(t, w.any(), test.ShouldBeTrue)
		}
		w.push(false)
		test.That(t, w.any(), test.ShouldBeFalse)
	})

	t.Run("full needs 2r foreground pushes", func(t *testing.T) {
		w := newBitWindow(3)
		for range 6 {
			test.That(t, w.full(), test.ShouldBeFalse)
			w.push(true)
			test.That(t, w.any(), test.ShouldBeTrue)
		}
		test.That(t, w.full(), test.ShouldBeTrue)
		w.push(false)
		test.That(t, w.full(), test.ShouldBeFalse)
	})

	t.Run("max radius uses the whole word", func(t *testing.T) {
		w := newBitWindow(MaxLineRadius)
		test.That(t, w.mask, test.ShouldEqual, ^uint32(0))
		test.That(t, w.newBit, test.ShouldEqual, uint32(1))
		w.push(true)
		for range 2*MaxLineRadius - 1 {
			w.push(false)
		}
		test.That(t, w.any(), test.ShouldBeTrue)
		w.push(false)
		test.That(t, w.any(), test.ShouldBeFalse)
	})

	t.Run("zero radius records nothing", func(t *testing.T) {
		w := newBitWindow(0)
		w.push(true)
		test.That(t, w.any(), test.ShouldBeFalse)
		test.That(t, w.full(), test.ShouldBeTrue)
	})
}

func TestFilterLineScenarios(t *testing.T) {
	for _, tc := range []struct {
		name     string
		line     string
		radius   int
		op       Operation
		boundary bool
		expected string
	}{
		{"dilate single pixel", "..#..", 1, Dilate, false, ".###."},
		{"erode against background border", "#####", 1, Erode, false, ".###."},
		{"erode against foreground border", "#####", 1, Erode, true, "#####"},
		{"dilate from foreground border", ".....", 2, Dilate, true, "##.##"},
		{"dilate empty line", ".....", 2, Dilate, false, "....."},
		{"erode empty line against foreground border", ".....", 2, Erode, true, "....."},
		{"erode removes thin run", "..##..###...", 1, Erode, false, ".......#...."},
		{"dilate merges runs", "#...#.......", 1, Dilate, false, "##.###......"},
		{"dilate wider than line", "..#", 5, Dilate, false, "###"},
		{"erode wider than line", "###", 5, Erode, true, "###"},
		{"erode wider than line with background border", "###", 5, Erode, false, "..."},
		{"dilate leaves other values alone", ".7.#.7.", 1, Dilate, false, ".7###7."},
		{"erode only touches foreground", "7###7", 1, Erode, false, "7.#.7"},
		{"single pixel", "#", 1, Erode, false, "."},
	} {
		t.Run(tc.name, func(t *testing.T) {
			line := parseLine(tc.line)
			err := FilterLine(line, tc.radius, lineParams(tc.boundary), tc.op)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, line, test.ShouldResemble, parseLine(tc.expected))
		})
	}
}

func TestFilterLineEdges(t *testing.T) {
	t.Run("empty line", func(t *testing.T) {
		test.That(t, FilterLine([]uint8{}, 3, lineParams(true), Dilate), test.ShouldBeNil)
		test.That(t, FilterLine[uint8](nil, 3, lineParams(true), Erode), test.ShouldBeNil)
	})

	t.Run("zero radius is identity", func(t *testing.T) {
		for _, op := range []Operation{Dilate, Erode} {
			for _, boundary := range []bool{false, true} {
				line := parseLine(".#7#..##.")
				test.That(t, FilterLine(line, 0, lineParams(boundary), op), test.ShouldBeNil)
				test.That(t, line, test.ShouldResemble, parseLine(".#7#..##."))
			}
		}
	})

	t.Run("radius out of range", func(t *testing.T) {
		line := parseLine("..#..")
		err := FilterLine(line, MaxLineRadius+1, lineParams(false), Dilate)
		test.That(t, err, test.ShouldBeError)
		test.That(t, err, test.ShouldWrap, ErrRadiusOutOfRange)
		err = FilterLine(line, -1, lineParams(false), Dilate)
		test.That(t, err, test.ShouldWrap, ErrRadiusOutOfRange)
		test.That(t, line, test.ShouldResemble, parseLine("..#.."))
	})

	t.Run("composite operations are not line passes", func(t *testing.T) {
		err := FilterLine(parseLine("..#.."), 1, lineParams(false), Open)
		test.That(t, err, test.ShouldWrap, ErrUnsupportedOperation)
	})
}

func TestFilterLineMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for range 500 {
		length := rng.Intn(70)
		radius := rng.Intn(MaxLineRadius + 1)
		line := make([]uint8, length)
		for i := range line {
			if rng.Float64() < 0.4 {
				line[i] = fgVal
			}
		}
		for _, op := range []Operation{Dilate, Erode} {
			for _, boundary := range []bool{false, true} {
				params := lineParams(boundary)
				expected := referenceLine(line, radius, params, op)
				got := slices.Clone(line)
				test.That(t, FilterLine(got, radius, params, op), test.ShouldBeNil)
				test.That(t, got, test.ShouldResemble, expected)
			}
		}
	}
}

func TestFilterLineDualityAndMonotonicity(t *testing.T) {
	swap := func(line []uint8) []uint8 {
		out := make([]uint8, len(line))
		for i, v := range line {
			if v != fgVal {
				out[i] = fgVal
			}
		}
		return out
	}
	rng := rand.New(rand.NewSource(9))
	for range 300 {
		line := make([]uint8, 1+rng.Intn(50))
		for i := range line {
			if rng.Float64() < 0.6 {
				line[i] = fgVal
			}
		}
		radius := rng.Intn(MaxLineRadius + 1)
		for _, boundary := range []bool{false, true} {
			eroded := slices.Clone(line)
			test.That(t, FilterLine(eroded, radius, lineParams(boundary), Erode), test.ShouldBeNil)
			dilated := swap(line)
			test.That(t, FilterLine(dilated, radius, lineParams(!boundary), Dilate), test.ShouldBeNil)
			test.That(t, eroded, test.ShouldResemble, swap(dilated))

			grown := slices.Clone(line)
			test.That(t, FilterLine(grown, radius, lineParams(boundary), Dilate), test.ShouldBeNil)
			for i := range line {
				if line[i] == fgVal {
					test.That(t, grown[i], test.ShouldEqual, fgVal)
				} else {
					test.That(t, eroded[i], test.ShouldEqual, bgVal)
				}
			}
		}
	}
}

func TestDecomposeRadius(t *testing.T) {
	test.That(t, decomposeRadius(0), test.ShouldResemble, []int{0})
	test.That(t, decomposeRadius(5), test.ShouldResemble, []int{5})
	test.That(t, decomposeRadius(16), test.ShouldResemble, []int{16})
	test.That(t, decomposeRadius(17), test.ShouldResemble, []int{16, 1})
	test.That(t, decomposeRadius(32), test.ShouldResemble, []int{16, 16})
	test.That(t, decomposeRadius(40), test.ShouldResemble, []int{16, 16, 8})
}

func TestFilterLineRadius(t *testing.T) {
	t.Run("large radius matches reference", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		for _, radius := range []int{17, 20, 31, 32, 33, 50} {
			line := make([]uint8, 150)
			for i := range line {
				if rng.Float64() < 0.1 {
					line[i] = fgVal
				}
			}
			for _, op := range []Operation{Dilate, Erode} {
				for _, boundary := range []bool{false, true} {
					params := lineParams(boundary)
					got := slices.Clone(line)
					test.That(t, FilterLineRadius(got, radius, params, op), test.ShouldBeNil)
					test.That(t, got, test.ShouldResemble, referenceLine(line, radius, params, op))
				}
			}
		}
	})

	t.Run("additive", func(t *testing.T) {
		line := parseLine("....#..........#.............")
		once := slices.Clone(line)
		test.That(t, FilterLineRadius(once, 5, lineParams(false), Dilate), test.ShouldBeNil)
		twice := slices.Clone(line)
		test.That(t, FilterLineRadius(twice, 2, lineParams(false), Dilate), test.ShouldBeNil)
		test.That(t, FilterLineRadius(twice, 3, lineParams(false), Dilate), test.ShouldBeNil)
		test.That(t, twice, test.ShouldResemble, once)
	})

	t.Run("negative radius", func(t *testing.T) {
		err := FilterLineRadius(parseLine("#"), -2, lineParams(false), Dilate)
		test.That(t, err, test.ShouldWrap, ErrRadiusOutOfRange)
	})
}
