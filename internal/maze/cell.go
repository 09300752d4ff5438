// Package maze generates perfect mazes with a randomized depth-first backtracker.
package maze

// Side identifies one of the four walls of a cell.
// The order matches the index into Cell.Walls.
type Side int

const (
	Top Side = iota
	Right
	Bottom
	Left
)

// Sides lists every side in enumeration order.
var Sides = [4]Side{Top, Right, Bottom, Left}

// Opposite returns the side facing s from the neighboring cell.
func (s Side) Opposite() Side {
	return (s + 2) % 4
}

// String returns a human-readable side name.
func (s Side) String() string {
	switch s {
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Coord is a logical grid position. X is the column, Y the row; row 0 is the top edge.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the coordinate adjacent to c on side s.
func (c Coord) Step(s Side) Coord {
	switch s {
	case Top:
		return Coord{c.X, c.Y - 1}
	case Right:
		return Coord{c.X + 1, c.Y}
	case Bottom:
		return Coord{c.X, c.Y + 1}
	case Left:
		return Coord{c.X - 1, c.Y}
	}
	return c
}

// Cell is a single grid position with its four wall flags.
type Cell struct {
	Coord   Coord
	Walls   [4]bool // top, right, bottom, left; true = wall present
	Visited bool
}

// NewCell creates a cell with the default wall pattern.
//
// Only the right and bottom walls start closed so that each interior wall is
// owned by exactly one cell: the left cell's Right flag and the upper cell's
// Bottom flag. Cells on the top row or left column additionally seal their
// Top or Left wall to close the outer boundary.
func NewCell(c Coord) Cell {
	cell := Cell{
		Coord: c,
		Walls: [4]bool{false, true, true, false},
	}
	if c.Y == 0 {
		cell.Walls[Top] = true
	}
	if c.X == 0 {
		cell.Walls[Left] = true
	}
	return cell
}

// Wall reports the raw flag stored for side s.
func (c Cell) Wall(s Side) bool {
	return c.Walls[s]
}
