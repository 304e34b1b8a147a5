package geometry

import "testing"

func TestPositionRotateMapsCornersIntoAnchoredBox(t *testing.T) {
	// 3 wide, 2 tall box anchored at the origin.
	size := Size{Width: 3, Height: 2}
	cases := []struct {
		name     string
		rotation CardinalRotation
		in       Position
		want     Position
	}{
		{"none keeps position", RotationNone, Position{X: 2, Y: 1}, Position{X: 2, Y: 1}},
		{"right90 top-left", Right90, Position{X: 0, Y: 0}, Position{X: 0, Y: 2}},
		{"right90 top-right", Right90, Position{X: 2, Y: 0}, Position{X: 0, Y: 0}},
		{"right90 bottom-right", Right90, Position{X: 2, Y: 1}, Position{X: 1, Y: 0}},
		{"full180 top-left", Full180, Position{X: 0, Y: 0}, Position{X: 2, Y: 1}},
		{"full180 bottom-right", Full180, Position{X: 2, Y: 1}, Position{X: 0, Y: 0}},
		{"left90 top-left", Left90, Position{X: 0, Y: 0}, Position{X: 1, Y: 0}},
		{"left90 bottom-left", Left90, Position{X: 0, Y: 1}, Position{X: 0, Y: 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.in.Rotate(tc.rotation).Add(tc.rotation.Adjustment(size))
			if got != tc.want {
				t.Errorf("rotated position = %v, want %v", got, tc.want)
			}
			rotated := tc.rotation.RotatedSize(size)
			box := Area{Size: rotated}
			if !box.ContainsPosition(got) {
				t.Errorf("rotated position %v falls outside %dx%d box", got, rotated.Width, rotated.Height)
			}
		})
	}
}

func TestPositionRotateFourRightTurnsReturnHome(t *testing.T) {
	start := Position{X: 5, Y: -3}
	p := start
	for i := 0; i < 4; i++ {
		p = p.Rotate(Right90)
	}
	if p != start {
		t.Errorf("after four right turns position = %v, want %v", p, start)
	}
}

func TestPositionAddSubInverse(t *testing.T) {
	p := Position{X: -4, Y: 9}
	offset := Position{X: 11, Y: -2}
	if got := p.Add(offset).Sub(offset); got != p {
		t.Errorf("Add then Sub = %v, want %v", got, p)
	}
}
