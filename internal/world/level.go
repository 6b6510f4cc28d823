package world

// Level is the tile grid of one dungeon floor, owned by the active game
// session.
type Level struct {
	Width  int
	Height int
	Tiles  [][]Tile // indexed [y][x]
	Rooms  []Room
}

// NewLevel creates a level filled with walls.
func NewLevel(width, height int) *Level {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = WallTile()
		}
	}
	return &Level{
		Width:  width,
		Height: height,
		Tiles:  tiles,
	}
}

// InBounds reports whether the coordinate lies on the grid.
func (l *Level) InBounds(x, y int) bool {
	return x >= 0 && x < l.Width && y >= 0 && y < l.Height
}

// IsBlocked reports whether the tile is impassable. Out-of-bounds counts as
// blocked.
func (l *Level) IsBlocked(x, y int) bool {
	if !l.InBounds(x, y) {
		return true
	}
	return l.Tiles[y][x].Blocked
}

// BlocksSight reports whether the tile is opaque. Out-of-bounds counts as
// opaque.
func (l *Level) BlocksSight(x, y int) bool {
	if !l.InBounds(x, y) {
		return true
	}
	return l.Tiles[y][x].BlocksSight
}

// Tile returns the tile at the coordinate. Out-of-bounds returns a wall.
func (l *Level) Tile(x, y int) Tile {
	if !l.InBounds(x, y) {
		return WallTile()
	}
	return l.Tiles[y][x]
}

// MarkExplored permanently flags the tile as seen.
func (l *Level) MarkExplored(x, y int) {
	if l.InBounds(x, y) {
		l.Tiles[y][x].Explored = true
	}
}

// SetLit flags the tile as lit for the current turn.
func (l *Level) SetLit(x, y int) {
	if l.InBounds(x, y) {
		l.Tiles[y][x].Lit = true
	}
}

// ClearLit resets the lit flag on every tile. Lit state is transient and is
// rebuilt from the emitters on every visibility recompute.
func (l *Level) ClearLit() {
	for y := range l.Tiles {
		for x := range l.Tiles[y] {
			l.Tiles[y][x].Lit = false
		}
	}
}
