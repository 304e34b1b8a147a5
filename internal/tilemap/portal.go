package tilemap

import "github.com/Ko-stant/dungeon-map-engine/internal/geometry"

// Portal is a directed traversal link from a cell in this map to a cell in
// another registered map. Adding one always writes TilePortal at Position.
type Portal struct {
	Position       geometry.Position
	Facing         geometry.CardinalDirection
	RemotePosition geometry.Position
	Target         MapID
}

// SubMapLink embeds another map's coordinate space inside this one,
// translated by Offset. The target is held by handle, never owned.
type SubMapLink struct {
	Offset geometry.Position
	Target MapID
}
