package morphology

import (
	"strings"

	"github.com/pkg/errors"
)

// Operation selects the morphological operator a filter applies.
type Operation int

const (
	// Dilate sets a pixel to foreground if any pixel in the box around it is foreground.
	Dilate Operation = iota
	// Erode keeps a foreground pixel only if every pixel in the box around it is foreground.
	Erode
	// Open is an erosion followed by a dilation with the same box.
	Open
	// Close is a dilation followed by an erosion with the same box.
	Close
)

func (op Operation) String() string {
	switch op {
	case Dilate:
		return "dilate"
	case Erode:
		return "erode"
	case Open:
		return "open"
	case Close:
		return "close"
	}
	return "unknown"
}

// ParseOperation reads an operation name as printed by String.
func ParseOperation(name string) (Operation, error) {
	switch strings.ToLower(name) {
	case "dilate":
		return Dilate, nil
	case "erode":
		return Erode, nil
	case "open":
		return Open, nil
	case "close":
		return Close, nil
	}
	return Dilate, errors.Errorf("unknown morphology operation %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (op Operation) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (op *Operation) UnmarshalText(text []byte) error {
	parsed, err := ParseOperation(string(text))
	if err != nil {
		return err
	}
	*op = parsed
	return nil
}

// DefaultBoundaryToForeground is the value assumed outside the image when none is given:
// background for dilation and foreground for erosion, so neither operation is biased by the
// image border. Composites report the default of their first stage.
func (op Operation) DefaultBoundaryToForeground() bool {
	switch op {
	case Erode, Open:
		return true
	default:
		return false
	}
}

// stages lists the single pass operations a composite is built from.
func (op Operation) stages() []Operation {
	switch op {
	case Open:
		return []Operation{Erode, Dilate}
	case Close:
		return []Operation{Dilate, Erode}
	default:
		return []Operation{op}
	}
}

// BoundaryPolicy decides which value is assumed for pixels beyond the image bounds.
type BoundaryPolicy int

const (
	// BoundaryDefault uses the default of each single pass operation.
	BoundaryDefault BoundaryPolicy = iota
	// BoundaryBackground treats the outside of the image as background.
	BoundaryBackground
	// BoundaryForeground treats the outside of the image as foreground.
	BoundaryForeground
)

// BoundaryPolicyFromBool maps an explicit boundary choice to its policy.
func BoundaryPolicyFromBool(toForeground bool) BoundaryPolicy {
	if toForeground {
		return BoundaryForeground
	}
	return BoundaryBackground
}

// ToForeground resolves the policy for a single pass operation.
func (b BoundaryPolicy) ToForeground(op Operation) bool {
	switch b {
	case BoundaryForeground:
		return true
	case BoundaryBackground:
		return false
	default:
		return op.DefaultBoundaryToForeground()
	}
}

func (b BoundaryPolicy) String() string {
	switch b {
	case BoundaryBackground:
		return "background"
	case BoundaryForeground:
		return "foreground"
	default:
		return "default"
	}
}
