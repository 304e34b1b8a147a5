package geometry

// Area is an axis-aligned rectangle anchored at its top-left tile. Right and
// Bottom are exclusive: the area covers x in [Position.X, Right) and y in
// [Position.Y, Bottom).
type Area struct {
	Position Position
	Size     Size
}

// NewArea builds an area from an anchor and a size.
func NewArea(position Position, size Size) Area {
	return Area{Position: position, Size: size}
}

// Right returns the exclusive x bound of the area.
func (a Area) Right() int {
	return a.Position.X + a.Size.Width
}

// Bottom returns the exclusive y bound of the area.
func (a Area) Bottom() int {
	return a.Position.Y + a.Size.Height
}

// ContainsPosition reports whether pos falls inside the area. An empty area
// contains no positions.
func (a Area) ContainsPosition(pos Position) bool {
	return pos.X >= a.Position.X && pos.X < a.Right() &&
		pos.Y >= a.Position.Y && pos.Y < a.Bottom()
}

// Union returns the bounding box spanning both areas: the min of the two
// anchors and the max of the two exclusive bounds. Anchors always
// participate, so an empty area still pins its anchor inside the result.
func (a Area) Union(other Area) Area {
	left := a.Position.X
	if other.Position.X < left {
		left = other.Position.X
	}
	top := a.Position.Y
	if other.Position.Y < top {
		top = other.Position.Y
	}
	right := a.Right()
	if other.Right() > right {
		right = other.Right()
	}
	bottom := a.Bottom()
	if other.Bottom() > bottom {
		bottom = other.Bottom()
	}
	return Area{
		Position: Position{X: left, Y: top},
		Size:     Size{Width: right - left, Height: bottom - top},
	}
}
