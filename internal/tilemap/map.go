package tilemap

import "github.com/Ko-stant/dungeon-map-engine/internal/geometry"

// Containment classifies a position against a map's resolved content.
type Containment uint8

const (
	Disjoint Containment = iota
	Intersecting
	Contained
)

// String returns the lowercase name used in wire payloads.
func (c Containment) String() string {
	switch c {
	case Intersecting:
		return "intersecting"
	case Contained:
		return "contained"
	default:
		return "disjoint"
	}
}

// Map is the capability every registered map implements. Generation code
// holds maps only through this interface, inside a registry view; methods
// assume the view's lock is held and never lock the map themselves. Methods
// that cross into sub-maps re-enter the registry and lock parent before
// child, so the link graph must stay acyclic (AddSubMap enforces this).
type Map interface {
	// MapID returns the registry handle this map was born with.
	MapID() MapID

	// Area returns the growth-only bounding box, anchored at Position.
	Area() geometry.Area
	Position() geometry.Position
	Size() geometry.Size
	SetPosition(pos geometry.Position)
	SetSize(size geometry.Size)

	// TileTypeAt resolves the cell at pos through this map and every
	// sub-map, merging disagreements with StrongerTile. The bool is false
	// when no layer has an explicit tile there.
	TileTypeAt(pos geometry.Position) (TileType, bool)

	// TileTypeAtWith is TileTypeAt with a caller-supplied precedence.
	TileTypeAtWith(pos geometry.Position, prec Precedence) (TileType, bool)

	// SetTileTypeAt writes the cell in this map's own store, grows the
	// area to cover it, and propagates the write into every sub-map whose
	// bounds accept the translated position. It returns the previous tile
	// in this map's own store, if any.
	SetTileTypeAt(pos geometry.Position, tile TileType) (TileType, bool)

	// AddPortal appends the portal and writes TilePortal at its position,
	// overwriting whatever was there.
	AddPortal(portal Portal)
	PortalCount() int
	PortalAt(index int) (Portal, bool)
	PortalRef(index int) *Portal
	Portals() []Portal

	// AddSubMap links target into this map at offset, growing the area to
	// the union of the current area and the target's area translated by
	// offset. The union is computed once, at link time. Links that would
	// make the graph cyclic are rejected with ErrCycle.
	AddSubMap(offset geometry.Position, target MapID) error
	SubMapCount() int
	SubMapAt(index int) (SubMapLink, bool)
	SubMapRef(index int) *SubMapLink
	SubMaps() []SubMapLink

	// Rotate turns the map as a rigid unit about its bounding box. Tiles
	// and portal positions move together; portal facings and sub-map
	// offsets are untouched. No-op when the area is empty.
	Rotate(rotation geometry.CardinalRotation)

	// Intersects reports whether pos is inside the area and resolves to
	// an explicit, non-void tile.
	Intersects(pos geometry.Position) bool

	// Contains classifies pos: Disjoint when it does not intersect,
	// Contained when it and all eight Moore neighbours intersect,
	// Intersecting otherwise.
	Contains(pos geometry.Position) Containment

	// Clone deep-copies this map into a fresh registry entry and returns
	// the new handle. Tiles and portals are copied; sub-map links keep
	// pointing at the same targets.
	Clone() MapID
}
