package maze

import "strings"

// String draws the maze as ASCII art, one text row per cell row plus wall rows.
func (m *Maze) String() string {
	var b strings.Builder

	// Top boundary
	b.WriteString("+")
	for x := 0; x < m.size; x++ {
		if m.HasWall(Coord{x, 0}, Top) {
			b.WriteString("---+")
		} else {
			b.WriteString("   +")
		}
	}
	b.WriteString("\n")

	for y := 0; y < m.size; y++ {
		if m.HasWall(Coord{0, y}, Left) {
			b.WriteString("|")
		} else {
			b.WriteString(" ")
		}
		for x := 0; x < m.size; x++ {
			if m.HasWall(Coord{x, y}, Right) {
				b.WriteString("   |")
			} else {
				b.WriteString("    ")
			}
		}
		b.WriteString("\n")

		b.WriteString("+")
		for x := 0; x < m.size; x++ {
			if m.HasWall(Coord{x, y}, Bottom) {
				b.WriteString("---+")
			} else {
				b.WriteString("   +")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}
