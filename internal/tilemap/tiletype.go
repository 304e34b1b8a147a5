package tilemap

import "fmt"

// TileType enumerates what a single grid cell holds. The zero value TileVoid
// is the weakest kind and also stands in for cells that were never set.
type TileType uint8

const (
	TileVoid TileType = iota
	TileFloor
	TileWall
	TilePortal
)

// String returns the lowercase name used in packs and wire payloads.
func (t TileType) String() string {
	switch t {
	case TileVoid:
		return "void"
	case TileFloor:
		return "floor"
	case TileWall:
		return "wall"
	case TilePortal:
		return "portal"
	default:
		return fmt.Sprintf("tile(%d)", uint8(t))
	}
}

// ParseTileType maps a lowercase name back to its tile kind.
func ParseTileType(name string) (TileType, error) {
	switch name {
	case "void":
		return TileVoid, nil
	case "floor":
		return TileFloor, nil
	case "wall":
		return TileWall, nil
	case "portal":
		return TilePortal, nil
	default:
		return TileVoid, fmt.Errorf("unknown tile type %q", name)
	}
}

// Precedence picks the winner when composed layers disagree about a cell.
// Implementations must be commutative and associative so the merged answer
// does not depend on the order sub-maps were linked or visited.
type Precedence func(a, b TileType) TileType

// StrongerTile is the default precedence: the higher-ranked kind wins, with
// TileVoid weakest and TilePortal strongest.
func StrongerTile(a, b TileType) TileType {
	if b > a {
		return b
	}
	return a
}

// mergeTile folds one resolved answer into a running best.
func mergeTile(best TileType, found bool, tile TileType, prec Precedence) (TileType, bool) {
	if !found {
		return tile, true
	}
	return prec(best, tile), true
}
