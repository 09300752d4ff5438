// Package world turns a finished maze into a walkable tile map.
package world

// Tile is one square of the rasterized maze.
type Tile uint8

const (
	// TilePost is a lattice corner between four cells. Posts never open.
	TilePost Tile = iota
	// TileWall is a closed wall segment between two cells or on the border.
	TileWall
	// TileFloor is the centre of a maze cell.
	TileFloor
	// TilePassage is a carved wall segment joining two cells.
	TilePassage
)

var tileRunes = [...]rune{
	TilePost:    '+',
	TileWall:    '#',
	TileFloor:   ' ',
	TilePassage: ' ',
}

// IsPassable reports whether a walker may stand on the tile.
func (t Tile) IsPassable() bool {
	return t == TileFloor || t == TilePassage
}

// Rune is the glyph used when drawing t on a terminal.
func (t Tile) Rune() rune {
	if int(t) < len(tileRunes) {
		return tileRunes[t]
	}
	return '?'
}
