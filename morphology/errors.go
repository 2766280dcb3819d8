package morphology

import "github.com/pkg/errors"

var (
	// ErrRadiusOutOfRange is returned when the line kernel is given a radius outside
	// [0, MaxLineRadius], or a filter is given a negative radius.
	ErrRadiusOutOfRange = errors.New("radius out of range")
	// ErrInvalidAxis is returned when an axis pass is requested beyond the image dimension.
	ErrInvalidAxis = errors.New("axis out of range")
	// ErrRadiusDimension is returned when the radius vector does not have one entry per axis.
	ErrRadiusDimension = errors.New("radius dimension does not match image dimension")
	// ErrRegionMismatch is returned when the input and output images cover different regions.
	ErrRegionMismatch = errors.New("input and output regions differ")
	// ErrUnsupportedOperation is returned when a composite operation reaches the line kernel.
	ErrUnsupportedOperation = errors.New("unsupported operation")
)
