// Package scene maps a finished maze onto floor and wall placements for a 3D scene.
package scene

import "github.com/samdwyer/mazegen/internal/maze"

// Kind distinguishes floor units from wall units.
type Kind string

const (
	KindFloor Kind = "floor"
	KindWall  Kind = "wall"
)

// Vec3 is a position in scene space. Y points up; rows extend along -Z.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum of v and o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Placement is one unit to instantiate in the scene.
type Placement struct {
	Kind      Kind       `json:"kind"`
	Cell      maze.Coord `json:"cell"`
	Side      string     `json:"side,omitempty"`
	Position  Vec3       `json:"position"`
	RotationY float64    `json:"rotation_y"` // degrees
}

// Wall offsets from the cell position. Top and bottom walls are turned 90° about Y.
var (
	xOffset = Vec3{0.5, 0.5, 0}
	zOffset = Vec3{0, 0.5, 0.5}
)

// Position returns the scene position of a cell's floor.
func Position(c maze.Coord) Vec3 {
	return Vec3{X: float64(c.X), Y: 0, Z: -float64(c.Y)}
}

// WallTransform returns the position and Y rotation of the wall on side s of c.
func WallTransform(c maze.Coord, s maze.Side) (Vec3, float64) {
	pos := Position(c)
	switch s {
	case maze.Top:
		return pos.Add(zOffset), 90
	case maze.Right:
		return pos.Add(xOffset), 0
	case maze.Bottom:
		return pos.Add(Vec3{zOffset.X, zOffset.Y, -zOffset.Z}), 90
	case maze.Left:
		return pos.Add(Vec3{-xOffset.X, xOffset.Y, xOffset.Z}), 0
	}
	return pos, 0
}

// Build lists one floor per cell and one wall per raw wall flag that is set.
// Raw flags are used so an interior wall is placed once, by its owning cell.
func Build(m *maze.Maze) []Placement {
	size := m.Size()
	out := make([]Placement, 0, size*size*2)

	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			cell := m.Cell(x, y)
			out = append(out, Placement{
				Kind:     KindFloor,
				Cell:     cell.Coord,
				Position: Position(cell.Coord),
			})

			for _, side := range maze.Sides {
				if !cell.Wall(side) {
					continue
				}
				pos, rot := WallTransform(cell.Coord, side)
				out = append(out, Placement{
					Kind:      KindWall,
					Cell:      cell.Coord,
					Side:      side.String(),
					Position:  pos,
					RotationY: rot,
				})
			}
		}
	}
	return out
}
