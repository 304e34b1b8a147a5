package tilemap

import "github.com/Ko-stant/dungeon-map-engine/internal/geometry"

// RegionMap labels every cell in a map's bounding box with the id of the
// connected walkable region it belongs to. Cells that resolve to wall, void,
// or nothing carry -1.
type RegionMap struct {
	Area          geometry.Area
	TileRegionIDs []int
	RegionsCount  int
}

// RegionAt returns the region id at pos, or -1 outside the labeled area.
func (rm RegionMap) RegionAt(pos geometry.Position) int {
	if !rm.Area.ContainsPosition(pos) {
		return -1
	}
	idx := (pos.Y-rm.Area.Position.Y)*rm.Area.Size.Width + (pos.X - rm.Area.Position.X)
	return rm.TileRegionIDs[idx]
}

// BuildRegions flood-fills the map's resolved content into connected
// regions. Only floor cells are walkable, with 4-adjacent movement; a portal
// cell is a threshold between regions, not part of one. Callers run this
// inside a registry read view, like any other resolving query.
func BuildRegions(m Map) RegionMap {
	area := m.Area()
	rm := RegionMap{
		Area:          area,
		TileRegionIDs: make([]int, area.Size.Width*area.Size.Height),
	}
	for i := range rm.TileRegionIDs {
		rm.TileRegionIDs[i] = -1
	}

	walkable := func(pos geometry.Position) bool {
		tile, ok := m.TileTypeAt(pos)
		return ok && tile == TileFloor
	}
	steps := [4]geometry.Position{{Y: -1}, {X: 1}, {Y: 1}, {X: -1}}

	next := 0
	for y := area.Position.Y; y < area.Bottom(); y++ {
		for x := area.Position.X; x < area.Right(); x++ {
			start := geometry.Position{X: x, Y: y}
			if rm.RegionAt(start) != -1 || !walkable(start) {
				continue
			}

			id := next
			next++
			queue := []geometry.Position{start}
			rm.setRegion(start, id)
			for len(queue) > 0 {
				cur := queue[0]
				queue = queue[1:]
				for _, step := range steps {
					n := cur.Add(step)
					if !area.ContainsPosition(n) || rm.RegionAt(n) != -1 {
						continue
					}
					if !walkable(n) {
						continue
					}
					rm.setRegion(n, id)
					queue = append(queue, n)
				}
			}
		}
	}
	rm.RegionsCount = next
	return rm
}

func (rm RegionMap) setRegion(pos geometry.Position, id int) {
	idx := (pos.Y-rm.Area.Position.Y)*rm.Area.Size.Width + (pos.X - rm.Area.Position.X)
	rm.TileRegionIDs[idx] = id
}

// RegionsAcrossPortal returns the region ids of the cells behind and ahead
// of the portal along its facing. A portal whose sides answer different ids
// joins two otherwise separate regions.
func RegionsAcrossPortal(rm RegionMap, portal Portal) (int, int) {
	step := portal.Facing.Offset()
	behind := rm.RegionAt(portal.Position.Sub(step))
	ahead := rm.RegionAt(portal.Position.Add(step))
	return behind, ahead
}
