package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Ko-stant/dungeon-map-engine/internal/geometry"
	"github.com/Ko-stant/dungeon-map-engine/internal/tilemap"
)

// PackRect represents a filled rectangle of one tile kind
type PackRect struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Tile   string `json:"tile"`
}

// PackTile represents a single tile placement
type PackTile struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Tile string `json:"tile"`
}

// PackMap represents one named map in a pack
type PackMap struct {
	Name  string     `json:"name"`
	X     int        `json:"x"`
	Y     int        `json:"y"`
	Rects []PackRect `json:"rects"`
	Tiles []PackTile `json:"tiles"`
}

// PackLink embeds one map into another at an offset
type PackLink struct {
	Parent  string `json:"parent"`
	Child   string `json:"child"`
	OffsetX int    `json:"offsetX"`
	OffsetY int    `json:"offsetY"`
}

// PackPortal places a portal on one map leading to another
type PackPortal struct {
	Map     string `json:"map"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Facing  string `json:"facing"`
	Target  string `json:"target"`
	RemoteX int    `json:"remoteX"`
	RemoteY int    `json:"remoteY"`
}

// MapPack represents a complete world definition
type MapPack struct {
	ID      string       `json:"id"`
	Root    string       `json:"root"`
	Maps    []PackMap    `json:"maps"`
	Links   []PackLink   `json:"links"`
	Portals []PackPortal `json:"portals"`
}

// LoadPackFromFile loads a map pack from a JSON file
func LoadPackFromFile(filepath string) (*MapPack, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack file: %w", err)
	}

	var pack MapPack
	if err := json.Unmarshal(data, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse pack JSON: %w", err)
	}

	if len(pack.Maps) == 0 {
		return nil, fmt.Errorf("pack %q defines no maps", pack.ID)
	}
	return &pack, nil
}

// BuildWorldFromPack registers every map in the pack, then wires its links
// and portals. Returns the handle of the pack's root map.
func BuildWorldFromPack(reg *tilemap.Registry, world *World, pack *MapPack) (tilemap.MapID, error) {
	ids := make(map[string]tilemap.MapID, len(pack.Maps))
	for _, pm := range pack.Maps {
		if _, exists := ids[pm.Name]; exists {
			return 0, fmt.Errorf("duplicate map name %q", pm.Name)
		}

		tiles, err := packTiles(pm)
		if err != nil {
			return 0, fmt.Errorf("map %q: %w", pm.Name, err)
		}

		id := tilemap.NewSparseMap(reg)
		ids[pm.Name] = id
		world.SetName(id, pm.Name)
		reg.Write(id, func(m tilemap.Map) {
			m.SetPosition(geometry.Position{X: pm.X, Y: pm.Y})
			for _, t := range tiles {
				m.SetTileTypeAt(t.pos, t.tile)
			}
		})
	}

	for _, link := range pack.Links {
		parent, ok := ids[link.Parent]
		if !ok {
			return 0, fmt.Errorf("link names unknown map %q", link.Parent)
		}
		child, ok := ids[link.Child]
		if !ok {
			return 0, fmt.Errorf("link names unknown map %q", link.Child)
		}
		var linkErr error
		reg.Write(parent, func(m tilemap.Map) {
			linkErr = m.AddSubMap(geometry.Position{X: link.OffsetX, Y: link.OffsetY}, child)
		})
		if linkErr != nil {
			return 0, fmt.Errorf("link %q into %q: %w", link.Child, link.Parent, linkErr)
		}
	}

	for _, pp := range pack.Portals {
		id, ok := ids[pp.Map]
		if !ok {
			return 0, fmt.Errorf("portal names unknown map %q", pp.Map)
		}
		target, ok := ids[pp.Target]
		if !ok {
			return 0, fmt.Errorf("portal names unknown map %q", pp.Target)
		}
		facing, err := geometry.ParseCardinalDirection(pp.Facing)
		if err != nil {
			return 0, fmt.Errorf("portal on %q: %w", pp.Map, err)
		}
		reg.Write(id, func(m tilemap.Map) {
			m.AddPortal(tilemap.Portal{
				Position:       geometry.Position{X: pp.X, Y: pp.Y},
				Facing:         facing,
				RemotePosition: geometry.Position{X: pp.RemoteX, Y: pp.RemoteY},
				Target:         target,
			})
		})
	}

	rootName := pack.Root
	if rootName == "" {
		rootName = pack.Maps[0].Name
	}
	root, ok := ids[rootName]
	if !ok {
		return 0, fmt.Errorf("root names unknown map %q", rootName)
	}
	return root, nil
}

type placedTile struct {
	pos  geometry.Position
	tile tilemap.TileType
}

// packTiles expands a pack map's rects and single tiles into placements,
// validating tile names before anything is written.
func packTiles(pm PackMap) ([]placedTile, error) {
	var out []placedTile
	for _, rect := range pm.Rects {
		tile, err := tilemap.ParseTileType(rect.Tile)
		if err != nil {
			return nil, err
		}
		for y := rect.Y; y < rect.Y+rect.Height; y++ {
			for x := rect.X; x < rect.X+rect.Width; x++ {
				out = append(out, placedTile{pos: geometry.Position{X: x, Y: y}, tile: tile})
			}
		}
	}
	for _, t := range pm.Tiles {
		tile, err := tilemap.ParseTileType(t.Tile)
		if err != nil {
			return nil, err
		}
		out = append(out, placedTile{pos: geometry.Position{X: t.X, Y: t.Y}, tile: tile})
	}
	return out, nil
}
