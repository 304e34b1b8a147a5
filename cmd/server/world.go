package main

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Ko-stant/dungeon-map-engine/internal/geometry"
	"github.com/Ko-stant/dungeon-map-engine/internal/protocol"
	"github.com/Ko-stant/dungeon-map-engine/internal/tilemap"
)

const protocolVersion = "v0"

// World owns the map registry plus the naming and event state the viewer
// needs. Intents are serialized under mu; snapshots share it as readers.
type World struct {
	reg    *tilemap.Registry
	packID string

	mu     sync.RWMutex
	names  map[tilemap.MapID]string
	rootID tilemap.MapID

	events int64
}

func NewWorld(reg *tilemap.Registry, packID string) *World {
	return &World{
		reg:    reg,
		packID: packID,
		names:  make(map[tilemap.MapID]string),
	}
}

func (w *World) SetRoot(id tilemap.MapID) {
	w.mu.Lock()
	w.rootID = id
	w.mu.Unlock()
}

func (w *World) SetName(id tilemap.MapID, name string) {
	w.mu.Lock()
	w.names[id] = name
	w.mu.Unlock()
}

func (w *World) NextEventID() int64 {
	return atomic.AddInt64(&w.events, 1)
}

// lookup turns a wire map id into a registry handle, rejecting ids the
// registry never issued or has retired. Callers hold w.mu.
func (w *World) lookup(rawID int) (tilemap.MapID, error) {
	if rawID < 0 || rawID >= w.reg.Len() {
		return 0, &IntentError{Code: "UNKNOWN_MAP", Message: fmt.Sprintf("map %d was never registered", rawID)}
	}
	id := tilemap.MapID(rawID)
	if !w.reg.Live(id) {
		return 0, &IntentError{Code: "RETIRED_MAP", Message: fmt.Sprintf("map %d is retired", rawID)}
	}
	return id, nil
}

func (w *World) PaintTile(req protocol.RequestPaintTile) ([]protocol.TileChanged, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id, err := w.lookup(req.MapID)
	if err != nil {
		return nil, err
	}
	tile, err := tilemap.ParseTileType(req.Tile)
	if err != nil {
		return nil, &IntentError{Code: "BAD_TILE", Message: err.Error()}
	}

	pos := geometry.Position{X: req.X, Y: req.Y}
	var patches []protocol.TileChanged
	w.cascadeTargets(id, pos, tile.String(), &patches)
	w.reg.Write(id, func(m tilemap.Map) {
		m.SetTileTypeAt(pos, tile)
	})
	return patches, nil
}

// cascadeTargets records where a write to pos on map id will land, following
// the same offset translation the store uses when it forwards writes into
// sub-maps. Depth-first, parent before child, so the lock order matches the
// write itself.
func (w *World) cascadeTargets(id tilemap.MapID, pos geometry.Position, tile string, out *[]protocol.TileChanged) {
	*out = append(*out, protocol.TileChanged{MapID: int(id), X: pos.X, Y: pos.Y, Tile: tile})
	w.reg.Read(id, func(m tilemap.Map) {
		selfPos := m.Position()
		for _, link := range m.SubMaps() {
			local := pos.Sub(link.Offset).Add(selfPos)
			inBounds := false
			w.reg.Read(link.Target, func(sub tilemap.Map) {
				inBounds = sub.Area().ContainsPosition(local)
			})
			if inBounds {
				w.cascadeTargets(link.Target, local, tile, out)
			}
		}
	})
}

func (w *World) RotateMap(req protocol.RequestRotateMap) (*protocol.MapLayoutChanged, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id, err := w.lookup(req.MapID)
	if err != nil {
		return nil, err
	}
	rotation, err := geometry.ParseCardinalRotation(req.Rotation)
	if err != nil {
		return nil, &IntentError{Code: "BAD_ROTATION", Message: err.Error()}
	}

	var layout protocol.MapLite
	w.reg.Write(id, func(m tilemap.Map) {
		m.Rotate(rotation)
		layout = w.mapLite(m)
	})
	return &protocol.MapLayoutChanged{Map: layout}, nil
}

func (w *World) AddPortal(req protocol.RequestAddPortal) (*protocol.MapLayoutChanged, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id, err := w.lookup(req.MapID)
	if err != nil {
		return nil, err
	}
	target, err := w.lookup(req.Target)
	if err != nil {
		return nil, err
	}
	facing, err := geometry.ParseCardinalDirection(req.Facing)
	if err != nil {
		return nil, &IntentError{Code: "BAD_FACING", Message: err.Error()}
	}

	var layout protocol.MapLite
	w.reg.Write(id, func(m tilemap.Map) {
		m.AddPortal(tilemap.Portal{
			Position:       geometry.Position{X: req.X, Y: req.Y},
			Facing:         facing,
			RemotePosition: geometry.Position{X: req.RemoteX, Y: req.RemoteY},
			Target:         target,
		})
		layout = w.mapLite(m)
	})
	return &protocol.MapLayoutChanged{Map: layout}, nil
}

func (w *World) LinkSubMap(req protocol.RequestLinkSubMap) (*protocol.MapLayoutChanged, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	parent, err := w.lookup(req.ParentID)
	if err != nil {
		return nil, err
	}
	target, err := w.lookup(req.Target)
	if err != nil {
		return nil, err
	}

	var linkErr error
	var layout protocol.MapLite
	w.reg.Write(parent, func(m tilemap.Map) {
		linkErr = m.AddSubMap(geometry.Position{X: req.OffsetX, Y: req.OffsetY}, target)
		if linkErr == nil {
			layout = w.mapLite(m)
		}
	})
	if linkErr != nil {
		if errors.Is(linkErr, tilemap.ErrCycle) {
			return nil, &IntentError{Code: "CYCLE", Message: linkErr.Error()}
		}
		return nil, &IntentError{Code: "LINK_FAILED", Message: linkErr.Error()}
	}
	return &protocol.MapLayoutChanged{Map: layout}, nil
}

func (w *World) CloneMap(req protocol.RequestCloneMap) (*protocol.MapRegistered, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id, err := w.lookup(req.MapID)
	if err != nil {
		return nil, err
	}

	cloneID := w.reg.Clone(id)
	w.names[cloneID] = w.names[id] + " (copy)"

	var layout protocol.MapLite
	w.reg.Read(cloneID, func(m tilemap.Map) {
		layout = w.mapLite(m)
	})
	return &protocol.MapRegistered{Map: layout}, nil
}

func (w *World) RetireMap(req protocol.RequestRetireMap) (*protocol.MapRetired, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	id, err := w.lookup(req.MapID)
	if err != nil {
		return nil, err
	}
	if id == w.rootID {
		return nil, &IntentError{Code: "ROOT_MAP", Message: "the root map cannot be retired"}
	}
	for raw := 0; raw < w.reg.Len(); raw++ {
		other := tilemap.MapID(raw)
		if other == id || !w.reg.Live(other) {
			continue
		}
		linked := false
		w.reg.Read(other, func(m tilemap.Map) {
			for _, link := range m.SubMaps() {
				if link.Target == id {
					linked = true
				}
			}
		})
		if linked {
			return nil, &IntentError{Code: "LINKED_MAP", Message: fmt.Sprintf("map %d is still linked from map %d", req.MapID, raw)}
		}
	}

	w.reg.Retire(id)
	delete(w.names, id)
	return &protocol.MapRetired{MapID: req.MapID}, nil
}

func (w *World) Snapshot() protocol.Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()

	snap := protocol.Snapshot{
		PackID:          w.packID,
		RootID:          int(w.rootID),
		LastEventID:     atomic.LoadInt64(&w.events),
		ProtocolVersion: protocolVersion,
	}
	for raw := 0; raw < w.reg.Len(); raw++ {
		id := tilemap.MapID(raw)
		if !w.reg.Live(id) {
			continue
		}
		w.reg.Read(id, func(m tilemap.Map) {
			snap.Maps = append(snap.Maps, w.mapLite(m))
		})
	}
	return snap
}

// mapLite flattens one map into its wire shape. Callers hold w.mu and the
// map's registry lock.
func (w *World) mapLite(m tilemap.Map) protocol.MapLite {
	area := m.Area()
	lite := protocol.MapLite{
		ID:     int(m.MapID()),
		Name:   w.names[m.MapID()],
		X:      area.Position.X,
		Y:      area.Position.Y,
		Width:  area.Size.Width,
		Height: area.Size.Height,
	}
	for y := area.Position.Y; y < area.Bottom(); y++ {
		for x := area.Position.X; x < area.Right(); x++ {
			pos := geometry.Position{X: x, Y: y}
			tile, ok := m.TileTypeAt(pos)
			if !ok {
				continue
			}
			lite.Tiles = append(lite.Tiles, protocol.TileLite{
				X:           x,
				Y:           y,
				Tile:        tile.String(),
				Containment: m.Contains(pos).String(),
			})
		}
	}
	for i, p := range m.Portals() {
		lite.Portals = append(lite.Portals, protocol.PortalLite{
			Index:   i,
			X:       p.Position.X,
			Y:       p.Position.Y,
			Facing:  p.Facing.String(),
			RemoteX: p.RemotePosition.X,
			RemoteY: p.RemotePosition.Y,
			Target:  int(p.Target),
		})
	}
	for i, link := range m.SubMaps() {
		lite.SubMaps = append(lite.SubMaps, protocol.SubMapLite{
			Index:   i,
			OffsetX: link.Offset.X,
			OffsetY: link.Offset.Y,
			Target:  int(link.Target),
		})
	}
	lite.RegionsCount = tilemap.BuildRegions(m).RegionsCount
	return lite
}
