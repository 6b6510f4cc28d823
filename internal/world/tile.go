// Package world provides the tile grid and dungeon generation.
package world

// Tile is a single map cell. Blocked and BlocksSight are fixed once the level
// is generated; Explored and Lit are derived flags written by the visibility
// engine.
type Tile struct {
	Blocked     bool `json:"blocked"`
	BlocksSight bool `json:"blocks_sight"`
	Explored    bool `json:"explored"`
	Lit         bool `json:"-"`
}

// FloorTile returns an open, walkable tile.
func FloorTile() Tile {
	return Tile{}
}

// WallTile returns an impassable, sight-blocking tile.
func WallTile() Tile {
	return Tile{Blocked: true, BlocksSight: true}
}
