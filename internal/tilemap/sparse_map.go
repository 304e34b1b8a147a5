package tilemap

import (
	"fmt"

	"github.com/Ko-stant/dungeon-map-engine/internal/geometry"
)

// SparseMap is the standard Map implementation: a sparse store keyed by
// absolute position, a growth-only bounding box, and append-only portal and
// sub-map sequences. Storage is proportional to cells explicitly set, not to
// area. Instances live in a Registry and are only touched inside its views.
type SparseMap struct {
	reg     *Registry
	id      MapID
	area    geometry.Area
	tiles   map[geometry.Position]TileType
	portals []Portal
	subMaps []SubMapLink
}

func newSparseMap(reg *Registry, id MapID) *SparseMap {
	return &SparseMap{
		reg:   reg,
		id:    id,
		tiles: make(map[geometry.Position]TileType),
	}
}

func (m *SparseMap) MapID() MapID {
	return m.id
}

func (m *SparseMap) Area() geometry.Area {
	return m.area
}

func (m *SparseMap) Position() geometry.Position {
	return m.area.Position
}

func (m *SparseMap) Size() geometry.Size {
	return m.area.Size
}

func (m *SparseMap) SetPosition(pos geometry.Position) {
	m.area.Position = pos
}

func (m *SparseMap) SetSize(size geometry.Size) {
	m.area.Size = size
}

func (m *SparseMap) TileTypeAt(pos geometry.Position) (TileType, bool) {
	return m.TileTypeAtWith(pos, StrongerTile)
}

func (m *SparseMap) TileTypeAtWith(pos geometry.Position, prec Precedence) (TileType, bool) {
	best := TileVoid
	found := false
	for i := range m.subMaps {
		link := m.subMaps[i]
		local := pos.Sub(link.Offset).Add(m.area.Position)

		var (
			tile TileType
			ok   bool
		)
		m.reg.Read(link.Target, func(sub Map) {
			tile, ok = sub.TileTypeAtWith(local, prec)
		})
		if ok {
			best, found = mergeTile(best, found, tile, prec)
		}
	}
	if tile, ok := m.tiles[pos]; ok {
		best, found = mergeTile(best, found, tile, prec)
	}
	return best, found
}

func (m *SparseMap) SetTileTypeAt(pos geometry.Position, tile TileType) (TileType, bool) {
	prev, had := m.tiles[pos]
	m.tiles[pos] = tile

	// Growth only, never shrink: the box must keep covering every cell
	// ever set, whatever the anchor.
	m.area.Size = m.area.Size.Max(geometry.Size{Width: pos.X + 1, Height: pos.Y + 1})

	for i := range m.subMaps {
		link := m.subMaps[i]
		local := pos.Sub(link.Offset).Add(m.area.Position)
		m.reg.Write(link.Target, func(sub Map) {
			if sub.Area().ContainsPosition(local) {
				sub.SetTileTypeAt(local, tile)
			}
		})
	}
	return prev, had
}

func (m *SparseMap) AddPortal(portal Portal) {
	m.portals = append(m.portals, portal)
	m.SetTileTypeAt(portal.Position, TilePortal)
}

func (m *SparseMap) PortalCount() int {
	return len(m.portals)
}

func (m *SparseMap) PortalAt(index int) (Portal, bool) {
	if index < 0 || index >= len(m.portals) {
		return Portal{}, false
	}
	return m.portals[index], true
}

func (m *SparseMap) PortalRef(index int) *Portal {
	if index < 0 || index >= len(m.portals) {
		return nil
	}
	return &m.portals[index]
}

func (m *SparseMap) Portals() []Portal {
	out := make([]Portal, len(m.portals))
	copy(out, m.portals)
	return out
}

func (m *SparseMap) AddSubMap(offset geometry.Position, target MapID) error {
	if err := m.reg.checkAcyclic(target, m.id); err != nil {
		return fmt.Errorf("link map %d into map %d: %w", target, m.id, err)
	}

	var targetArea geometry.Area
	m.reg.Read(target, func(sub Map) {
		targetArea = sub.Area()
	})
	translated := geometry.NewArea(targetArea.Position.Add(offset), targetArea.Size)
	m.area = m.area.Union(translated)

	m.subMaps = append(m.subMaps, SubMapLink{Offset: offset, Target: target})
	return nil
}

func (m *SparseMap) SubMapCount() int {
	return len(m.subMaps)
}

func (m *SparseMap) SubMapAt(index int) (SubMapLink, bool) {
	if index < 0 || index >= len(m.subMaps) {
		return SubMapLink{}, false
	}
	return m.subMaps[index], true
}

func (m *SparseMap) SubMapRef(index int) *SubMapLink {
	if index < 0 || index >= len(m.subMaps) {
		return nil
	}
	return &m.subMaps[index]
}

func (m *SparseMap) SubMaps() []SubMapLink {
	out := make([]SubMapLink, len(m.subMaps))
	copy(out, m.subMaps)
	return out
}

func (m *SparseMap) Rotate(rotation geometry.CardinalRotation) {
	if m.area.Size.IsEmpty() {
		return
	}
	oldPos := m.area.Position
	newPos := oldPos.Rotate(rotation)
	adjust := rotation.Adjustment(m.area.Size)

	// Rebuild into a fresh store; rewriting in place could alias old and
	// new keys mid-transform.
	rebuilt := make(map[geometry.Position]TileType, len(m.tiles))
	for pos, tile := range m.tiles {
		rel := pos.Sub(oldPos).Rotate(rotation).Add(adjust)
		rebuilt[newPos.Add(rel)] = tile
	}
	m.tiles = rebuilt

	for i := range m.portals {
		rel := m.portals[i].Position.Sub(oldPos).Rotate(rotation).Add(adjust)
		m.portals[i].Position = newPos.Add(rel)
	}

	m.area.Position = newPos
	m.area.Size = rotation.RotatedSize(m.area.Size)
}

func (m *SparseMap) Intersects(pos geometry.Position) bool {
	if !m.area.ContainsPosition(pos) {
		return false
	}
	tile, ok := m.TileTypeAt(pos)
	return ok && tile != TileVoid
}

func (m *SparseMap) Contains(pos geometry.Position) Containment {
	if !m.Intersects(pos) {
		return Disjoint
	}
	for _, dir := range geometry.OrdinalDirections {
		if !m.Intersects(pos.Add(dir.Offset())) {
			return Intersecting
		}
	}
	return Contained
}

func (m *SparseMap) Clone() MapID {
	tiles := make(map[geometry.Position]TileType, len(m.tiles))
	for pos, tile := range m.tiles {
		tiles[pos] = tile
	}
	portals := make([]Portal, len(m.portals))
	copy(portals, m.portals)
	links := make([]SubMapLink, len(m.subMaps))
	copy(links, m.subMaps)

	area := m.area
	reg := m.reg
	return reg.Add(func(id MapID) Map {
		return &SparseMap{
			reg:     reg,
			id:      id,
			area:    area,
			tiles:   tiles,
			portals: portals,
			subMaps: links,
		}
	})
}
