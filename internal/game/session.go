package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazegen/internal/entity"
	"github.com/samdwyer/mazegen/internal/maze"
	"github.com/samdwyer/mazegen/internal/telemetry"
	"github.com/samdwyer/mazegen/internal/world"
)

// Session holds one maze being walked, independent of the terminal.
type Session struct {
	Maze     *maze.Maze
	Map      *world.Map
	Walker   *entity.Walker
	Goal     maze.Coord
	State    State
	Seed     int64
	Moves    int
	ShowHint bool

	size     int
	lastCell maze.Coord
}

// NewSession generates the first maze for cfg.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	s := &Session{size: cfg.Size}
	if err := s.start(ctx, cfg.Seed); err != nil {
		return nil, err
	}
	return s, nil
}

// start generates a maze from seed and puts the walker on the top-left cell.
func (s *Session) start(ctx context.Context, seed int64) error {
	ctx, span := telemetry.Tracer("game").Start(ctx, "game.start")
	defer span.End()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	m, err := maze.New(s.size, rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	if err := m.Generate(ctx); err != nil {
		return err
	}

	s.Maze = m
	s.Map = world.Rasterize(ctx, m)
	s.Seed = seed
	s.Goal = maze.Coord{X: s.size - 1, Y: s.size - 1}
	s.Moves = 0
	s.lastCell = maze.Coord{}
	s.Walker = entity.NewWalker(world.TileOf(s.lastCell))
	s.State = StateExplore
	if s.lastCell == s.Goal {
		s.State = StateEscaped
	}

	span.SetAttributes(
		attribute.Int("maze.size", s.size),
		attribute.Int64("maze.seed", seed),
	)
	return nil
}

// Regenerate replaces the maze with the one for the next seed.
func (s *Session) Regenerate(ctx context.Context) error {
	return s.start(ctx, s.Seed+1)
}

// TryMove moves the walker one tile if the target is passable.
func (s *Session) TryMove(dx, dy int) bool {
	if s.State == StateEscaped {
		return false
	}

	newX := s.Walker.X + dx
	newY := s.Walker.Y + dy
	if !s.Map.IsPassable(newX, newY) {
		return false
	}

	s.Walker.Move(dx, dy)
	s.Moves++

	if c, ok := s.Map.CellAt(newX, newY); ok {
		s.lastCell = c
		if c == s.Goal {
			s.State = StateEscaped
		}
	}
	return true
}

// ToggleHint switches the route overlay on or off.
func (s *Session) ToggleHint() {
	s.ShowHint = !s.ShowHint
}

// HintTiles returns the tiles on the shortest route from the walker's last
// cell to the goal, including the passage tiles between cells.
func (s *Session) HintTiles() [][2]int {
	path := s.Maze.ShortestPath(s.lastCell, s.Goal)
	var tiles [][2]int
	for i, c := range path {
		x, y := world.TileOf(c)
		if i > 0 {
			px, py := world.TileOf(path[i-1])
			tiles = append(tiles, [2]int{(x + px) / 2, (y + py) / 2})
		}
		tiles = append(tiles, [2]int{x, y})
	}
	return tiles
}

// Status is the line shown under the maze.
func (s *Session) Status() string {
	if s.State == StateEscaped {
		return fmt.Sprintf("Escaped in %d moves! r: new maze  q: quit", s.Moves)
	}
	return fmt.Sprintf("seed %d  moves %d  arrows: move  h: hint  r: new maze  q: quit", s.Seed, s.Moves)
}
