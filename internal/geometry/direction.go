package geometry

import "fmt"

// CardinalDirection is one of the four axis-aligned facings.
type CardinalDirection uint8

const (
	North CardinalDirection = iota
	East
	South
	West
)

// String returns the lowercase name used in packs and wire payloads.
func (d CardinalDirection) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return fmt.Sprintf("cardinal(%d)", uint8(d))
	}
}

// Offset returns the unit step along d on a y-down grid.
func (d CardinalDirection) Offset() Position {
	switch d {
	case North:
		return Position{Y: -1}
	case East:
		return Position{X: 1}
	case South:
		return Position{Y: 1}
	case West:
		return Position{X: -1}
	default:
		return Position{}
	}
}

// Opposite returns the facing pointing the other way.
func (d CardinalDirection) Opposite() CardinalDirection {
	switch d {
	case North:
		return South
	case East:
		return West
	case South:
		return North
	default:
		return East
	}
}

// ParseCardinalDirection maps a lowercase name back to its direction.
func ParseCardinalDirection(name string) (CardinalDirection, error) {
	switch name {
	case "north":
		return North, nil
	case "east":
		return East, nil
	case "south":
		return South, nil
	case "west":
		return West, nil
	default:
		return North, fmt.Errorf("unknown cardinal direction %q", name)
	}
}

// OrdinalDirection is one of the eight compass facings, including diagonals.
type OrdinalDirection uint8

const (
	OrdinalNorth OrdinalDirection = iota
	OrdinalNorthEast
	OrdinalEast
	OrdinalSouthEast
	OrdinalSouth
	OrdinalSouthWest
	OrdinalWest
	OrdinalNorthWest
)

// OrdinalDirections lists all eight facings in clockwise order from north.
var OrdinalDirections = [8]OrdinalDirection{
	OrdinalNorth,
	OrdinalNorthEast,
	OrdinalEast,
	OrdinalSouthEast,
	OrdinalSouth,
	OrdinalSouthWest,
	OrdinalWest,
	OrdinalNorthWest,
}

// Offset returns the unit step along d on a y-down grid.
func (d OrdinalDirection) Offset() Position {
	switch d {
	case OrdinalNorth:
		return Position{Y: -1}
	case OrdinalNorthEast:
		return Position{X: 1, Y: -1}
	case OrdinalEast:
		return Position{X: 1}
	case OrdinalSouthEast:
		return Position{X: 1, Y: 1}
	case OrdinalSouth:
		return Position{Y: 1}
	case OrdinalSouthWest:
		return Position{X: -1, Y: 1}
	case OrdinalWest:
		return Position{X: -1}
	case OrdinalNorthWest:
		return Position{X: -1, Y: -1}
	default:
		return Position{}
	}
}
