package protocol

import "encoding/json"

type IntentEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type RequestPaintTile struct {
	MapID int    `json:"mapId"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Tile  string `json:"tile"`
}

type RequestRotateMap struct {
	MapID    int    `json:"mapId"`
	Rotation string `json:"rotation"`
}

type RequestAddPortal struct {
	MapID   int    `json:"mapId"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Facing  string `json:"facing"`
	RemoteX int    `json:"remoteX"`
	RemoteY int    `json:"remoteY"`
	Target  int    `json:"target"`
}

type RequestLinkSubMap struct {
	ParentID int `json:"parentId"`
	OffsetX  int `json:"offsetX"`
	OffsetY  int `json:"offsetY"`
	Target   int `json:"target"`
}

type RequestCloneMap struct {
	MapID int `json:"mapId"`
}

type RequestRetireMap struct {
	MapID int `json:"mapId"`
}
