package main

import (
	"testing"

	"github.com/Ko-stant/dungeon-map-engine/internal/geometry"
	"github.com/Ko-stant/dungeon-map-engine/internal/protocol"
	"github.com/Ko-stant/dungeon-map-engine/internal/tilemap"
)

func TestBuildDemoWorld_Composite(t *testing.T) {
	// Arrange
	reg := tilemap.NewRegistry()
	world := NewWorld(reg, "demo-keep@v1")

	// Act
	world.SetRoot(buildDemoWorld(reg, world))
	snap := world.Snapshot()

	// Assert
	if reg.Len() != 3 {
		t.Fatalf("Expected 3 maps (vault, shrine, keep), got: %d", reg.Len())
	}

	byName := make(map[string]protocol.MapLite, len(snap.Maps))
	for _, lite := range snap.Maps {
		byName[lite.Name] = lite
	}

	keep, ok := byName["keep"]
	if !ok {
		t.Fatal("Expected a map named 'keep'")
	}
	if snap.RootID != keep.ID {
		t.Errorf("Expected the keep as root, got root %d", snap.RootID)
	}
	if keep.Width != 21 || keep.Height != 13 {
		t.Errorf("Expected keep extent 21x13, got %dx%d", keep.Width, keep.Height)
	}
	if len(keep.SubMaps) != 1 {
		t.Errorf("Expected 1 sub-map link on the keep, got: %d", len(keep.SubMaps))
	}
	if len(keep.Portals) != 1 {
		t.Errorf("Expected 1 portal on the keep, got: %d", len(keep.Portals))
	}

	// The corridors and three doored rooms connect; the sealed treasury is
	// its own region
	if keep.RegionsCount != 2 {
		t.Errorf("Expected 2 walkable regions in the keep, got: %d", keep.RegionsCount)
	}

	vault, ok := byName["vault"]
	if !ok {
		t.Fatal("Expected a map named 'vault'")
	}
	if len(vault.Portals) != 1 || vault.Portals[0].Facing != "east" {
		t.Errorf("Expected the vault's portal to face east, got: %+v", vault.Portals)
	}

	shrine, ok := byName["shrine"]
	if !ok {
		t.Fatal("Expected a map named 'shrine'")
	}
	if len(shrine.Portals) != 1 || shrine.Portals[0].Facing != "west" {
		t.Errorf("Expected the shrine's portal to face west, got: %+v", shrine.Portals)
	}
	if shrine.Portals[0].Target != vault.ID || vault.Portals[0].Target != shrine.ID {
		t.Error("Expected the vault and shrine portals to point at each other")
	}
}

func TestBuildDemoWorld_VaultShowsThroughKeep(t *testing.T) {
	// Arrange
	reg := tilemap.NewRegistry()
	world := NewWorld(reg, "demo-keep@v1")
	keep := buildDemoWorld(reg, world)

	// Assert: the keep's own store leaves the north-west room empty, so a
	// resolved floor there can only come from the linked vault
	reg.Read(keep, func(m tilemap.Map) {
		tile, ok := m.TileTypeAt(geometry.Position{X: 4, Y: 4})
		if !ok || tile != tilemap.TileFloor {
			t.Errorf("Expected the vault's floor at keep (4,4), got %v (present=%v)", tile, ok)
		}

		// The vault's portal shows through as well
		tile, ok = m.TileTypeAt(geometry.Position{X: 7, Y: 3})
		if !ok || tile != tilemap.TilePortal {
			t.Errorf("Expected the vault's portal at keep (7,3), got %v (present=%v)", tile, ok)
		}

		// Door gaps carved into the room walls stay floor
		tile, ok = m.TileTypeAt(geometry.Position{X: 4, Y: 5})
		if !ok || tile != tilemap.TileFloor {
			t.Errorf("Expected a door gap at keep (4,5), got %v (present=%v)", tile, ok)
		}

		// The sealed treasury keeps its wall
		tile, ok = m.TileTypeAt(geometry.Position{X: 14, Y: 7})
		if !ok || tile != tilemap.TileWall {
			t.Errorf("Expected the treasury wall at keep (14,7), got %v (present=%v)", tile, ok)
		}
	})
}

func TestBuildDemoWorld_PaintCascadesIntoVault(t *testing.T) {
	// Arrange
	reg := tilemap.NewRegistry()
	world := NewWorld(reg, "demo-keep@v1")
	world.SetRoot(buildDemoWorld(reg, world))
	snap := world.Snapshot()

	var keepID, vaultID int
	for _, lite := range snap.Maps {
		switch lite.Name {
		case "keep":
			keepID = lite.ID
		case "vault":
			vaultID = lite.ID
		}
	}

	// Act: paint inside the vault room through the keep
	patches, err := world.PaintTile(protocol.RequestPaintTile{
		MapID: keepID,
		X:     3,
		Y:     3,
		Tile:  "wall",
	})

	// Assert
	if err != nil {
		t.Fatalf("Expected paint to succeed, got: %v", err)
	}
	if len(patches) != 2 {
		t.Fatalf("Expected the write to land on keep and vault, got %d patches", len(patches))
	}
	if patches[1].MapID != vaultID || patches[1].X != 1 || patches[1].Y != 1 {
		t.Errorf("Expected vault patch at (1,1), got map %d at (%d,%d)", patches[1].MapID, patches[1].X, patches[1].Y)
	}

	var tile tilemap.TileType
	var ok bool
	reg.Read(tilemap.MapID(vaultID), func(m tilemap.Map) {
		tile, ok = m.TileTypeAt(geometry.Position{X: 1, Y: 1})
	})
	if !ok || tile != tilemap.TileWall {
		t.Errorf("Expected the vault's own store to hold the wall, got %v (present=%v)", tile, ok)
	}
}
