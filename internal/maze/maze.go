package maze

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/samdwyer/mazegen/internal/telemetry"
)

// DefaultSize is the edge length used when no size is configured.
const DefaultSize = 10

// Source supplies the random choices made during generation.
// *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Maze owns a size×size grid of cells indexed [x][y].
type Maze struct {
	size      int
	grid      [][]Cell
	rng       Source
	generated bool
}

// step is a candidate move from a cell to an unvisited neighbor.
type step struct {
	side Side
	to   Coord
}

// New allocates a size×size grid with every cell in its default wall state.
// A nil rng is replaced by a time-seeded generator.
func New(size int, rng Source) (*Maze, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size must be at least 1, got %d", ErrInvalidConfiguration, size)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	grid := make([][]Cell, size)
	for x := range grid {
		grid[x] = make([]Cell, size)
		for y := range grid[x] {
			grid[x][y] = NewCell(Coord{X: x, Y: y})
		}
	}

	return &Maze{
		size: size,
		grid: grid,
		rng:  rng,
	}, nil
}

// Generate carves a spanning tree over the grid using a randomized
// depth-first traversal with an explicit backtracking stack.
// It runs to completion before returning; a second call returns ErrAlreadyGenerated.
func (m *Maze) Generate(ctx context.Context) error {
	if m.generated {
		return ErrAlreadyGenerated
	}

	tracer := telemetry.Tracer("maze")
	ctx, span := tracer.Start(ctx, "maze.generate")
	defer span.End()

	startTime := time.Now()

	current := Coord{0, 0}
	m.at(current).Visited = true

	var stack []Coord
	carved, maxDepth := 0, 0
	for {
		candidates := m.neighbors(current)
		if len(candidates) > 0 {
			next := candidates[m.rng.Intn(len(candidates))]
			stack = append(stack, current)
			m.carve(current, next.side)
			current = next.to
			m.at(current).Visited = true

			carved++
			if len(stack) > maxDepth {
				maxDepth = len(stack)
			}
			continue
		}

		if len(stack) == 0 {
			break
		}

		// Backtrack
		current = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
	}

	m.generated = true

	span.SetAttributes(
		attribute.Int("maze.size", m.size),
		attribute.Int("maze.carved", carved),
		attribute.Int("maze.max_stack_depth", maxDepth),
		attribute.Int64("maze.generation_ms", time.Since(startTime).Milliseconds()),
	)
	if counter, err := telemetry.Meter("maze").Int64Counter("maze.generated"); err == nil {
		counter.Add(ctx, 1, metric.WithAttributes(attribute.Int("maze.size", m.size)))
	}

	return nil
}

// neighbors returns the unvisited in-bounds neighbors of c in the order
// top, right, bottom, left.
func (m *Maze) neighbors(c Coord) []step {
	var result []step
	for _, side := range Sides {
		to := c.Step(side)
		if m.InBounds(to) && !m.at(to).Visited {
			result = append(result, step{side: side, to: to})
		}
	}
	return result
}

// carve clears the wall shared by from and its neighbor on side.
// Both mirrored flags are written here and nowhere else.
func (m *Maze) carve(from Coord, side Side) {
	to := from.Step(side)
	m.at(from).Walls[side] = false
	m.at(to).Walls[side.Opposite()] = false
}

func (m *Maze) at(c Coord) *Cell {
	return &m.grid[c.X][c.Y]
}

// Size returns the edge length of the grid.
func (m *Maze) Size() int {
	return m.size
}

// Generated reports whether Generate has completed.
func (m *Maze) Generated() bool {
	return m.generated
}

// InBounds reports whether c lies inside the grid.
func (m *Maze) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < m.size && c.Y >= 0 && c.Y < m.size
}

// Cell returns a copy of the cell at (x, y).
func (m *Maze) Cell(x, y int) Cell {
	return m.grid[x][y]
}

// HasWall reports whether the wall on side s of c is closed.
// Interior walls are resolved through their owning flag (the Right flag of
// the left cell, the Bottom flag of the upper cell) so both cells sharing a
// wall always agree.
func (m *Maze) HasWall(c Coord, s Side) bool {
	switch s {
	case Top:
		if c.Y > 0 {
			return m.grid[c.X][c.Y-1].Walls[Bottom]
		}
	case Left:
		if c.X > 0 {
			return m.grid[c.X-1][c.Y].Walls[Right]
		}
	}
	return m.grid[c.X][c.Y].Walls[s]
}

// CanMove reports whether there is an open passage from c through side s.
func (m *Maze) CanMove(c Coord, s Side) bool {
	return m.InBounds(c) && m.InBounds(c.Step(s)) && !m.HasWall(c, s)
}

// Passages returns the number of open interior walls.
func (m *Maze) Passages() int {
	count := 0
	for x := 0; x < m.size; x++ {
		for y := 0; y < m.size; y++ {
			c := Coord{x, y}
			if m.CanMove(c, Right) {
				count++
			}
			if m.CanMove(c, Bottom) {
				count++
			}
		}
	}
	return count
}

// Restore rebuilds a finished maze from raw wall flags listed row by row.
func Restore(size int, walls [][4]bool) (*Maze, error) {
	m, err := New(size, rand.New(rand.NewSource(0)))
	if err != nil {
		return nil, err
	}
	if len(walls) != size*size {
		return nil, fmt.Errorf("%w: expected %d cells, got %d", ErrInvalidConfiguration, size*size, len(walls))
	}

	for i, w := range walls {
		cell := m.at(Coord{X: i % size, Y: i / size})
		cell.Walls = w
		cell.Visited = true
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	m.generated = true
	return m, nil
}

// validate checks that the flags describe a finished perfect maze: a sealed
// outer boundary, interior walls recorded only on their owning flag, and
// exactly size²-1 passages connecting every cell.
func (m *Maze) validate() error {
	last := m.size - 1
	for i := 0; i < m.size; i++ {
		switch {
		case !m.grid[i][0].Walls[Top]:
			return fmt.Errorf("cell (%d,0) is open on the top border", i)
		case !m.grid[0][i].Walls[Left]:
			return fmt.Errorf("cell (0,%d) is open on the left border", i)
		case !m.grid[i][last].Walls[Bottom]:
			return fmt.Errorf("cell (%d,%d) is open on the bottom border", i, last)
		case !m.grid[last][i].Walls[Right]:
			return fmt.Errorf("cell (%d,%d) is open on the right border", last, i)
		}
	}

	// Top and Left of interior cells mirror their neighbor's Bottom and Right.
	// Only carving writes them, and carving always clears them.
	for x := 0; x < m.size; x++ {
		for y := 0; y < m.size; y++ {
			if y > 0 && m.grid[x][y].Walls[Top] {
				return fmt.Errorf("cell (%d,%d) flags a top wall owned by (%d,%d)", x, y, x, y-1)
			}
			if x > 0 && m.grid[x][y].Walls[Left] {
				return fmt.Errorf("cell (%d,%d) flags a left wall owned by (%d,%d)", x, y, x-1, y)
			}
		}
	}

	if got, want := m.Passages(), m.size*m.size-1; got != want {
		return fmt.Errorf("%d passages, a perfect maze has %d", got, want)
	}
	if got := m.reachable(Coord{}); got != m.size*m.size {
		return fmt.Errorf("only %d of %d cells reachable", got, m.size*m.size)
	}
	return nil
}

// Walls returns the raw wall flags of every cell row by row, the inverse of Restore.
func (m *Maze) Walls() [][4]bool {
	out := make([][4]bool, 0, m.size*m.size)
	for y := 0; y < m.size; y++ {
		for x := 0; x < m.size; x++ {
			out = append(out, m.grid[x][y].Walls)
		}
	}
	return out
}
