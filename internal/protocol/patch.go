package protocol

type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	EventID  int64  `json:"eventId"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

type TileChanged struct {
	MapID int    `json:"mapId"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Tile  string `json:"tile"`
}

type MapLayoutChanged struct {
	Map MapLite `json:"map"`
}

type MapRegistered struct {
	Map MapLite `json:"map"`
}

type MapRetired struct {
	MapID int `json:"mapId"`
}

type IntentRejected struct {
	Intent string `json:"intent"`
	Reason string `json:"reason"`
}
