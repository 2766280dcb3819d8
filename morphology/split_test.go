package morphology

import (
	"testing"

	"go.viam.com/test"

	"github.com/blowekamp/itkBinaryMorphologyPerformance/rimage"
)

func TestSplitRegion(t *testing.T) {
	t.Run("splits highest other axis", func(t *testing.T) {
		region := rimage.RegionFromSize(8, 10)
		pieces := SplitRegion(region, 0, 3)
		test.That(t, pieces, test.ShouldResemble, []rimage.Region{
			rimage.NewRegion([]int{0, 0}, []int{8, 4}),
			rimage.NewRegion([]int{0, 4}, []int{8, 4}),
			rimage.NewRegion([]int{0, 8}, []int{8, 2}),
		})

		pieces = SplitRegion(region, 1, 4)
		test.That(t, pieces, test.ShouldResemble, []rimage.Region{
			rimage.NewRegion([]int{0, 0}, []int{2, 10}),
			rimage.NewRegion([]int{2, 0}, []int{2, 10}),
			rimage.NewRegion([]int{4, 0}, []int{2, 10}),
			rimage.NewRegion([]int{6, 0}, []int{2, 10}),
		})
	})

	t.Run("fewer pieces than asked", func(t *testing.T) {
		// 2 rows per piece covers 10 rows in 5 pieces
		pieces := SplitRegion(rimage.RegionFromSize(4, 10), 0, 6)
		test.That(t, pieces, test.ShouldHaveLength, 5)
		pieces = SplitRegion(rimage.RegionFromSize(4, 3), 0, 8)
		test.That(t, pieces, test.ShouldHaveLength, 3)
	})

	t.Run("skips unit axes", func(t *testing.T) {
		region := rimage.NewRegion([]int{0, 5, 2}, []int{6, 4, 1})
		pieces := SplitRegion(region, 0, 2)
		test.That(t, pieces, test.ShouldResemble, []rimage.Region{
			rimage.NewRegion([]int{0, 5, 2}, []int{6, 2, 1}),
			rimage.NewRegion([]int{0, 7, 2}, []int{6, 2, 1}),
		})
	})

	t.Run("unsplittable", func(t *testing.T) {
		region := rimage.RegionFromSize(9, 1)
		test.That(t, SplitRegion(region, 0, 4), test.ShouldResemble, []rimage.Region{region})
		region = rimage.RegionFromSize(9)
		test.That(t, SplitRegion(region, 0, 4), test.ShouldResemble, []rimage.Region{region})
		region = rimage.RegionFromSize(9, 9)
		test.That(t, SplitRegion(region, 0, 1), test.ShouldResemble, []rimage.Region{region})
	})

	t.Run("pieces cover the region once", func(t *testing.T) {
		region := rimage.NewRegion([]int{-3, 2, 1}, []int{7, 5, 11})
		for direction := range 3 {
			for n := 1; n < 15; n++ {
				seen := rimage.NewImage[uint8](region)
				for _, piece := range SplitRegion(region, direction, n) {
					test.That(t, piece.IsInside(region), test.ShouldBeTrue)
					test.That(t, piece.Size[direction], test.ShouldEqual, region.Size[direction])
					err := piece.ForEachLine(0, func(start []int) error {
						idx := append([]int(nil), start...)
						for x := range piece.Size[0] {
							idx[0] = start[0] + x
							seen.Set(idx, seen.Get(idx)+1)
						}
						return nil
					})
					test.That(t, err, test.ShouldBeNil)
				}
				for _, v := range seen.Pix() {
					test.That(t, v, test.ShouldEqual, uint8(1))
				}
			}
		}
	})
}
