package tilemap

import (
	"testing"

	"github.com/Ko-stant/dungeon-map-engine/internal/geometry"
)

func buildSplitRoom(t *testing.T, reg *Registry) MapID {
	t.Helper()
	id := NewSparseMap(reg)
	reg.Write(id, func(m Map) {
		// 5x3 floor with a full-height wall column at x=2.
		for y := 0; y < 3; y++ {
			for x := 0; x < 5; x++ {
				tile := TileFloor
				if x == 2 {
					tile = TileWall
				}
				m.SetTileTypeAt(geometry.Position{X: x, Y: y}, tile)
			}
		}
	})
	return id
}

func TestBuildRegionsSplitsFloorAcrossWall(t *testing.T) {
	reg := NewRegistry()
	id := buildSplitRoom(t, reg)

	reg.Read(id, func(m Map) {
		rm := BuildRegions(m)
		if rm.RegionsCount != 2 {
			t.Fatalf("RegionsCount = %d, want 2", rm.RegionsCount)
		}
		left := rm.RegionAt(geometry.Position{X: 0, Y: 1})
		right := rm.RegionAt(geometry.Position{X: 4, Y: 1})
		if left == right {
			t.Errorf("left and right floors share region %d across the wall", left)
		}
		if got := rm.RegionAt(geometry.Position{X: 2, Y: 1}); got != -1 {
			t.Errorf("wall cell region = %d, want -1", got)
		}
		if got := rm.RegionAt(geometry.Position{X: -1, Y: 0}); got != -1 {
			t.Errorf("outside-area region = %d, want -1", got)
		}
	})
}

func TestRegionsAcrossPortalNamesBothSides(t *testing.T) {
	reg := NewRegistry()
	id := buildSplitRoom(t, reg)

	var portal Portal
	reg.Write(id, func(m Map) {
		portal = Portal{
			Position: geometry.Position{X: 2, Y: 1},
			Facing:   geometry.East,
			Target:   id,
		}
		m.AddPortal(portal)
	})

	reg.Read(id, func(m Map) {
		rm := BuildRegions(m)
		if rm.RegionsCount != 2 {
			t.Fatalf("RegionsCount = %d, want 2 (portal cells are thresholds)", rm.RegionsCount)
		}
		behind, ahead := RegionsAcrossPortal(rm, portal)
		if behind == -1 || ahead == -1 {
			t.Fatalf("portal sides = %d/%d, want real regions", behind, ahead)
		}
		if behind == ahead {
			t.Errorf("portal joins region %d to itself, want two distinct sides", behind)
		}
	})
}

func TestBuildRegionsSeesSubMapFloors(t *testing.T) {
	reg := NewRegistry()
	child := NewSparseMap(reg)
	reg.Write(child, func(m Map) {
		for x := 0; x < 3; x++ {
			m.SetTileTypeAt(geometry.Position{X: x, Y: 0}, TileFloor)
		}
	})

	parent := NewSparseMap(reg)
	reg.Write(parent, func(m Map) {
		if err := m.AddSubMap(geometry.Position{}, child); err != nil {
			t.Fatalf("AddSubMap: %v", err)
		}
	})

	reg.Read(parent, func(m Map) {
		rm := BuildRegions(m)
		if rm.RegionsCount != 1 {
			t.Fatalf("RegionsCount = %d, want 1", rm.RegionsCount)
		}
		if got := rm.RegionAt(geometry.Position{X: 1, Y: 0}); got != 0 {
			t.Errorf("region over sub-map floor = %d, want 0", got)
		}
	})
}
