package morphology

import "github.com/blowekamp/itkBinaryMorphologyPerformance/rimage"

// SplitRegion divides region into at most pieces disjoint sub-regions that can be processed
// independently by a pass along direction. The split runs along the highest axis, other than
// direction, whose extent exceeds 1, so every scanline along direction stays whole within one
// piece. Pieces are ceil(extent/pieces) wide except for the last, which takes the remainder.
// When no axis can be split, or fewer than two pieces are asked for, the whole region is the only
// piece.
func SplitRegion(region rimage.Region, direction, pieces int) []rimage.Region {
	splitAxis := region.Dim() - 1
	for splitAxis >= 0 && (splitAxis == direction || region.Size[splitAxis] <= 1) {
		splitAxis--
	}
	if splitAxis < 0 || pieces <= 1 {
		return []rimage.Region{region.Clone()}
	}

	extent := region.Size[splitAxis]
	perPiece := ceilDiv(extent, pieces)
	used := ceilDiv(extent, perPiece)

	out := make([]rimage.Region, 0, used)
	for i := range used {
		piece := region.Clone()
		piece.Index[splitAxis] += i * perPiece
		if i == used-1 {
			piece.Size[splitAxis] = extent - i*perPiece
		} else {
			piece.Size[splitAxis] = perPiece
		}
		out = append(out, piece)
	}
	return out
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
