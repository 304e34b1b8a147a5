package geometry

// Size is a non-negative width and height in tiles. A zero width or height
// means the extent holds no tiles at all.
type Size struct {
	Width  int
	Height int
}

// IsEmpty reports whether the size spans zero tiles.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Max returns a size covering both s and other on each axis independently.
func (s Size) Max(other Size) Size {
	out := s
	if other.Width > out.Width {
		out.Width = other.Width
	}
	if other.Height > out.Height {
		out.Height = other.Height
	}
	return out
}
