package main

import (
	"github.com/Ko-stant/dungeon-map-engine/internal/protocol"
)

// Broadcaster interface for WebSocket communication
type Broadcaster interface {
	Publish(eventID int64, patchType string, payload any) uint64
}

// Logger interface for logging abstraction
type Logger interface {
	Printf(format string, v ...interface{})
}

// MapService interface for applying viewer intents to the map graph
type MapService interface {
	PaintTile(req protocol.RequestPaintTile) ([]protocol.TileChanged, error)
	RotateMap(req protocol.RequestRotateMap) (*protocol.MapLayoutChanged, error)
	AddPortal(req protocol.RequestAddPortal) (*protocol.MapLayoutChanged, error)
	LinkSubMap(req protocol.RequestLinkSubMap) (*protocol.MapLayoutChanged, error)
	CloneMap(req protocol.RequestCloneMap) (*protocol.MapRegistered, error)
	RetireMap(req protocol.RequestRetireMap) (*protocol.MapRetired, error)
	Snapshot() protocol.Snapshot
	NextEventID() int64
}
