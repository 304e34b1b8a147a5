package protocol

type TileLite struct {
	X           int    `json:"x"`
	Y           int    `json:"y"`
	Tile        string `json:"tile"`
	Containment string `json:"containment"`
}

type PortalLite struct {
	Index   int    `json:"index"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Facing  string `json:"facing"`
	RemoteX int    `json:"remoteX"`
	RemoteY int    `json:"remoteY"`
	Target  int    `json:"target"`
}

type SubMapLite struct {
	Index   int `json:"index"`
	OffsetX int `json:"offsetX"`
	OffsetY int `json:"offsetY"`
	Target  int `json:"target"`
}

type MapLite struct {
	ID           int          `json:"id"`
	Name         string       `json:"name"`
	X            int          `json:"x"`
	Y            int          `json:"y"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	RegionsCount int          `json:"regionsCount"`
	Tiles        []TileLite   `json:"tiles"`
	Portals      []PortalLite `json:"portals"`
	SubMaps      []SubMapLite `json:"subMaps"`
}

type Snapshot struct {
	PackID          string    `json:"packId"`
	RootID          int       `json:"rootId"`
	Maps            []MapLite `json:"maps"`
	LastEventID     int64     `json:"lastEventId"`
	ProtocolVersion string    `json:"protocolVersion"`
}
