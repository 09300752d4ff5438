package world

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazegen/internal/maze"
	"github.com/samdwyer/mazegen/internal/telemetry"
)

// Map is a tile grid where every maze cell and every wall occupies one tile.
// Cell (x, y) sits at tile (2x+1, 2y+1); the tiles between cells are walls or
// passages depending on the shared wall, and lattice corners are posts.
type Map struct {
	Width  int
	Height int
	Tiles  [][]Tile
}

// Rasterize builds the tile map for m.
func Rasterize(ctx context.Context, m *maze.Maze) *Map {
	_, span := telemetry.Tracer("world").Start(ctx, "world.rasterize")
	defer span.End()

	size := m.Size()
	w := &Map{
		Width:  2*size + 1,
		Height: 2*size + 1,
	}
	w.Tiles = make([][]Tile, w.Height)
	for y := range w.Tiles {
		w.Tiles[y] = make([]Tile, w.Width)
		for x := range w.Tiles[y] {
			if x%2 == 0 && y%2 == 0 {
				w.Tiles[y][x] = TilePost
			} else {
				w.Tiles[y][x] = TileWall
			}
		}
	}

	floors, passages := 0, 0
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			c := maze.Coord{X: x, Y: y}
			tx, ty := TileOf(c)
			w.Tiles[ty][tx] = TileFloor
			floors++

			if m.CanMove(c, maze.Right) {
				w.Tiles[ty][tx+1] = TilePassage
				passages++
			}
			if m.CanMove(c, maze.Bottom) {
				w.Tiles[ty+1][tx] = TilePassage
				passages++
			}
		}
	}

	span.SetAttributes(
		attribute.Int("world.width", w.Width),
		attribute.Int("world.height", w.Height),
		attribute.Int("world.floor_tiles", floors),
		attribute.Int("world.passage_tiles", passages),
	)
	return w
}

// TileOf returns the tile position of a maze cell.
func TileOf(c maze.Coord) (int, int) {
	return 2*c.X + 1, 2*c.Y + 1
}

// CellAt returns the maze cell drawn at tile (x, y), if the tile is a cell center.
func (w *Map) CellAt(x, y int) (maze.Coord, bool) {
	if x <= 0 || y <= 0 || x >= w.Width || y >= w.Height || x%2 == 0 || y%2 == 0 {
		return maze.Coord{}, false
	}
	return maze.Coord{X: (x - 1) / 2, Y: (y - 1) / 2}, true
}

// IsPassable returns true if the given position can be walked on.
func (w *Map) IsPassable(x, y int) bool {
	if x < 0 || x >= w.Width || y < 0 || y >= w.Height {
		return false
	}
	return w.Tiles[y][x].IsPassable()
}

// GetTile returns the tile at the given position. Anything outside the map
// reads as wall.
func (w *Map) GetTile(x, y int) Tile {
	if x < 0 || x >= w.Width || y < 0 || y >= w.Height {
		return TileWall
	}
	return w.Tiles[y][x]
}
