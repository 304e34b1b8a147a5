package main

import (
	"github.com/Ko-stant/dungeon-map-engine/internal/geometry"
	"github.com/Ko-stant/dungeon-map-engine/internal/tilemap"
)

// buildDemoWorld assembles the built-in world: a keep whose border ring and
// central cross of corridors separate four rooms, with the north-west room
// supplied by a linked vault sub-map, a sealed south-east treasury reachable
// only through a portal, and a free-standing shrine joined to the vault by a
// reciprocal portal pair. Returns the keep's handle for use as the root.
func buildDemoWorld(reg *tilemap.Registry, world *World) tilemap.MapID {
	vault := tilemap.NewSparseMap(reg)
	world.SetName(vault, "vault")
	reg.Write(vault, func(m tilemap.Map) {
		for y := 0; y < 3; y++ {
			for x := 0; x < 6; x++ {
				m.SetTileTypeAt(geometry.Position{X: x, Y: y}, tilemap.TileFloor)
			}
		}
	})

	shrine := tilemap.NewSparseMap(reg)
	world.SetName(shrine, "shrine")
	reg.Write(shrine, func(m tilemap.Map) {
		for y := 0; y < 5; y++ {
			for x := 0; x < 7; x++ {
				tile := tilemap.TileFloor
				if x == 0 || y == 0 || x == 6 || y == 4 {
					tile = tilemap.TileWall
				}
				m.SetTileTypeAt(geometry.Position{X: x, Y: y}, tile)
			}
		}
	})

	const width, height = 21, 13
	isCorridor := func(x, y int) bool {
		if x == 0 || y == 0 || x == width-1 || y == height-1 {
			return true
		}
		if x == width/2-1 || x == width/2 {
			return true
		}
		return y == height/2
	}
	// The north-west room interior stays unset; the vault link supplies it.
	vaultRoom := geometry.NewArea(geometry.Position{X: 2, Y: 2}, geometry.Size{Width: 6, Height: 3})

	keep := tilemap.NewSparseMap(reg)
	world.SetName(keep, "keep")
	reg.Write(keep, func(m tilemap.Map) {
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				pos := geometry.Position{X: x, Y: y}
				if isCorridor(x, y) {
					m.SetTileTypeAt(pos, tilemap.TileFloor)
					continue
				}
				if vaultRoom.ContainsPosition(pos) {
					continue
				}
				tile := tilemap.TileFloor
				for _, d := range []geometry.CardinalDirection{geometry.North, geometry.East, geometry.South, geometry.West} {
					n := pos.Add(d.Offset())
					if isCorridor(n.X, n.Y) {
						tile = tilemap.TileWall
						break
					}
				}
				m.SetTileTypeAt(pos, tile)
			}
		}
		// Door gaps into three rooms; the south-east room stays sealed.
		for _, door := range []geometry.Position{{X: 4, Y: 5}, {X: 14, Y: 5}, {X: 4, Y: 7}} {
			m.SetTileTypeAt(door, tilemap.TileFloor)
		}
	})

	reg.Write(keep, func(m tilemap.Map) {
		if err := m.AddSubMap(vaultRoom.Position, vault); err != nil {
			panic(err)
		}
	})

	reg.Write(vault, func(m tilemap.Map) {
		m.AddPortal(tilemap.Portal{
			Position:       geometry.Position{X: 5, Y: 1},
			Facing:         geometry.East,
			RemotePosition: geometry.Position{X: 1, Y: 2},
			Target:         shrine,
		})
	})
	reg.Write(shrine, func(m tilemap.Map) {
		m.AddPortal(tilemap.Portal{
			Position:       geometry.Position{X: 1, Y: 2},
			Facing:         geometry.East.Opposite(),
			RemotePosition: geometry.Position{X: 5, Y: 1},
			Target:         vault,
		})
	})
	reg.Write(keep, func(m tilemap.Map) {
		m.AddPortal(tilemap.Portal{
			Position:       geometry.Position{X: 15, Y: 9},
			Facing:         geometry.North,
			RemotePosition: geometry.Position{X: 3, Y: 2},
			Target:         shrine,
		})
	})

	return keep
}
