package geometry

import "fmt"

// CardinalRotation is a quarter-turn multiple applied to a whole map.
type CardinalRotation uint8

const (
	RotationNone CardinalRotation = iota
	Right90
	Full180
	Left90
)

// String returns the lowercase name used in wire payloads.
func (r CardinalRotation) String() string {
	switch r {
	case RotationNone:
		return "none"
	case Right90:
		return "right90"
	case Full180:
		return "full180"
	case Left90:
		return "left90"
	default:
		return fmt.Sprintf("rotation(%d)", uint8(r))
	}
}

// ParseCardinalRotation maps a lowercase name back to its rotation.
func ParseCardinalRotation(name string) (CardinalRotation, error) {
	switch name {
	case "none":
		return RotationNone, nil
	case "right90":
		return Right90, nil
	case "full180":
		return Full180, nil
	case "left90":
		return Left90, nil
	default:
		return RotationNone, fmt.Errorf("unknown cardinal rotation %q", name)
	}
}

// Adjustment returns the translation that moves content rotated about the
// origin back into a box anchored at the top-left. size is the extent of the
// box before rotation; degenerate extents clamp to a zero adjustment.
func (r CardinalRotation) Adjustment(size Size) Position {
	w := size.Width - 1
	if w < 0 {
		w = 0
	}
	h := size.Height - 1
	if h < 0 {
		h = 0
	}
	switch r {
	case Right90:
		return Position{X: 0, Y: w}
	case Full180:
		return Position{X: w, Y: h}
	case Left90:
		return Position{X: h, Y: 0}
	default:
		return Position{}
	}
}

// RotatedSize returns the extent of a box of the given size after rotation.
// Quarter turns swap width and height.
func (r CardinalRotation) RotatedSize(size Size) Size {
	switch r {
	case Right90, Left90:
		return Size{Width: size.Height, Height: size.Width}
	default:
		return size
	}
}
