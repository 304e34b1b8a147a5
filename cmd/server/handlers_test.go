package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/Ko-stant/dungeon-map-engine/internal/geometry"
	"github.com/Ko-stant/dungeon-map-engine/internal/protocol"
	"github.com/Ko-stant/dungeon-map-engine/internal/tilemap"
)

// Mock implementations for testing handlers
type MockBroadcaster struct {
	patches []PublishedPatch
}

type PublishedPatch struct {
	EventID   int64
	PatchType string
	Payload   any
}

func (m *MockBroadcaster) Publish(eventID int64, patchType string, payload any) uint64 {
	m.patches = append(m.patches, PublishedPatch{
		EventID:   eventID,
		PatchType: patchType,
		Payload:   payload,
	})
	return uint64(len(m.patches))
}

func (m *MockBroadcaster) GetPatches() []PublishedPatch {
	return m.patches
}

func (m *MockBroadcaster) Reset() {
	m.patches = nil
}

type MockLogger struct {
	messages []string
}

func (m *MockLogger) Printf(format string, v ...interface{}) {
	// Store messages for verification in tests
	m.messages = append(m.messages, format)
}

func marshalIntent(t *testing.T, intentType string, payload any) protocol.IntentEnvelope {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("Failed to marshal payload: %v", err)
	}
	return protocol.IntentEnvelope{Type: intentType, Payload: data}
}

func TestProcessIntent_PaintTile_PublishesTileChanged(t *testing.T) {
	// Arrange
	world, _, hall, nook := createTestWorld(t)
	broadcaster := &MockBroadcaster{}
	logger := &MockLogger{}

	env := marshalIntent(t, "RequestPaintTile", protocol.RequestPaintTile{
		MapID: int(hall),
		X:     2,
		Y:     2,
		Tile:  "wall",
	})

	// Act
	processIntent(world, broadcaster, logger, env)

	// Assert
	patches := broadcaster.GetPatches()
	if len(patches) != 2 {
		t.Fatalf("Expected 2 published patches, got: %d", len(patches))
	}
	for _, p := range patches {
		if p.PatchType != "TileChanged" {
			t.Errorf("Expected TileChanged patch, got: %s", p.PatchType)
		}
	}
	if patches[0].EventID >= patches[1].EventID {
		t.Errorf("Expected event ids to rise, got %d then %d", patches[0].EventID, patches[1].EventID)
	}
	second, ok := patches[1].Payload.(protocol.TileChanged)
	if !ok {
		t.Fatalf("Expected TileChanged payload, got: %T", patches[1].Payload)
	}
	if second.MapID != int(nook) || second.Tile != "wall" {
		t.Errorf("Expected cascade patch on nook with wall, got map %d tile %q", second.MapID, second.Tile)
	}
}

func TestProcessIntent_Rejection_PublishesIntentRejected(t *testing.T) {
	// Arrange
	world, _, hall, _ := createTestWorld(t)
	broadcaster := &MockBroadcaster{}
	logger := &MockLogger{}

	env := marshalIntent(t, "RequestPaintTile", protocol.RequestPaintTile{
		MapID: int(hall),
		X:     0,
		Y:     0,
		Tile:  "lava",
	})

	// Act
	processIntent(world, broadcaster, logger, env)

	// Assert
	patches := broadcaster.GetPatches()
	if len(patches) != 1 {
		t.Fatalf("Expected 1 published patch, got: %d", len(patches))
	}
	if patches[0].PatchType != "IntentRejected" {
		t.Fatalf("Expected IntentRejected patch, got: %s", patches[0].PatchType)
	}
	rejected, ok := patches[0].Payload.(protocol.IntentRejected)
	if !ok {
		t.Fatalf("Expected IntentRejected payload, got: %T", patches[0].Payload)
	}
	if rejected.Intent != "RequestPaintTile" {
		t.Errorf("Expected rejected intent name, got: %q", rejected.Intent)
	}
	if !strings.Contains(rejected.Reason, "BAD_TILE") {
		t.Errorf("Expected reason to carry the error code, got: %q", rejected.Reason)
	}
	if len(logger.messages) == 0 {
		t.Error("Expected logger to be called on rejection")
	}
}

func TestProcessIntent_InvalidPayload_Ignored(t *testing.T) {
	// Arrange
	world, _, _, _ := createTestWorld(t)
	broadcaster := &MockBroadcaster{}
	logger := &MockLogger{}

	env := protocol.IntentEnvelope{
		Type:    "RequestPaintTile",
		Payload: json.RawMessage("{invalid json"),
	}

	// Act
	processIntent(world, broadcaster, logger, env)

	// Assert
	if patches := broadcaster.GetPatches(); len(patches) != 0 {
		t.Errorf("Expected no patches for malformed payload, got: %d", len(patches))
	}
}

func TestProcessIntent_UnknownType_Ignored(t *testing.T) {
	// Arrange
	world, _, _, _ := createTestWorld(t)
	broadcaster := &MockBroadcaster{}
	logger := &MockLogger{}

	env := protocol.IntentEnvelope{
		Type:    "RequestTeleport",
		Payload: json.RawMessage("{}"),
	}

	// Act
	processIntent(world, broadcaster, logger, env)

	// Assert
	if patches := broadcaster.GetPatches(); len(patches) != 0 {
		t.Errorf("Expected no patches for unknown intent type, got: %d", len(patches))
	}
}

func TestProcessIntent_RotateMap_PublishesLayout(t *testing.T) {
	// Arrange
	world, _, hall, _ := createTestWorld(t)
	broadcaster := &MockBroadcaster{}
	logger := &MockLogger{}

	env := marshalIntent(t, "RequestRotateMap", protocol.RequestRotateMap{
		MapID:    int(hall),
		Rotation: "right90",
	})

	// Act
	processIntent(world, broadcaster, logger, env)

	// Assert
	patches := broadcaster.GetPatches()
	if len(patches) != 1 {
		t.Fatalf("Expected 1 published patch, got: %d", len(patches))
	}
	if patches[0].PatchType != "MapLayoutChanged" {
		t.Fatalf("Expected MapLayoutChanged patch, got: %s", patches[0].PatchType)
	}
	layout, ok := patches[0].Payload.(protocol.MapLayoutChanged)
	if !ok {
		t.Fatalf("Expected MapLayoutChanged payload, got: %T", patches[0].Payload)
	}
	if layout.Map.Width != 4 || layout.Map.Height != 5 {
		t.Errorf("Expected rotated extent 4x5, got %dx%d", layout.Map.Width, layout.Map.Height)
	}
}

func TestProcessIntent_CloneThenRetire(t *testing.T) {
	// Arrange
	world, reg, hall, _ := createTestWorld(t)
	broadcaster := &MockBroadcaster{}
	logger := &MockLogger{}

	// Act: clone the hall
	processIntent(world, broadcaster, logger, marshalIntent(t, "RequestCloneMap", protocol.RequestCloneMap{
		MapID: int(hall),
	}))

	// Assert
	patches := broadcaster.GetPatches()
	if len(patches) != 1 || patches[0].PatchType != "MapRegistered" {
		t.Fatalf("Expected a single MapRegistered patch, got: %+v", patches)
	}
	registered := patches[0].Payload.(protocol.MapRegistered)
	cloneID := registered.Map.ID
	if cloneID != reg.Len()-1 {
		t.Errorf("Expected clone to take the newest handle, got: %d", cloneID)
	}

	// Act: retire the clone, then try again
	broadcaster.Reset()
	retireEnv := marshalIntent(t, "RequestRetireMap", protocol.RequestRetireMap{MapID: cloneID})
	processIntent(world, broadcaster, logger, retireEnv)
	processIntent(world, broadcaster, logger, retireEnv)

	// Assert
	patches = broadcaster.GetPatches()
	if len(patches) != 2 {
		t.Fatalf("Expected 2 published patches, got: %d", len(patches))
	}
	if patches[0].PatchType != "MapRetired" {
		t.Errorf("Expected MapRetired patch, got: %s", patches[0].PatchType)
	}
	if patches[1].PatchType != "IntentRejected" {
		t.Errorf("Expected second retire to be rejected, got: %s", patches[1].PatchType)
	}
}

// Benchmark tests for intent dispatch performance
func BenchmarkProcessIntent_PaintTile(b *testing.B) {
	reg := tilemap.NewRegistry()
	hall := tilemap.NewSparseMap(reg)
	reg.Write(hall, func(m tilemap.Map) {
		for y := 0; y < 8; y++ {
			for x := 0; x < 8; x++ {
				m.SetTileTypeAt(geometry.Position{X: x, Y: y}, tilemap.TileFloor)
			}
		}
	})
	world := NewWorld(reg, "bench-pack")
	world.SetName(hall, "hall")
	world.SetRoot(hall)
	broadcaster := &MockBroadcaster{}
	logger := &MockLogger{}

	data, _ := json.Marshal(protocol.RequestPaintTile{MapID: int(hall), X: 4, Y: 4, Tile: "wall"})
	env := protocol.IntentEnvelope{Type: "RequestPaintTile", Payload: data}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		broadcaster.Reset()
		processIntent(world, broadcaster, logger, env)
	}
}
