package geometry

// Position is a signed 2D coordinate. Positions address single tiles and are
// also used as translation offsets between map coordinate spaces.
type Position struct {
	X int
	Y int
}

// Add returns the component-wise sum of p and other.
func (p Position) Add(other Position) Position {
	return Position{X: p.X + other.X, Y: p.Y + other.Y}
}

// Sub returns the component-wise difference of p and other.
func (p Position) Sub(other Position) Position {
	return Position{X: p.X - other.X, Y: p.Y - other.Y}
}

// Rotate applies a quarter-turn about the origin: Right90 maps (x,y) to
// (y,-x), Left90 to (-y,x), Full180 to (-x,-y).
func (p Position) Rotate(rotation CardinalRotation) Position {
	switch rotation {
	case Right90:
		return Position{X: p.Y, Y: -p.X}
	case Full180:
		return Position{X: -p.X, Y: -p.Y}
	case Left90:
		return Position{X: -p.Y, Y: p.X}
	default:
		return p
	}
}
