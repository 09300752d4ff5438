// Package entity provides the things that move around a maze.
package entity

// Walker is the player's marker on the tile map.
type Walker struct {
	X, Y   int  // Current tile position
	Symbol rune // Display symbol
}

// NewWalker creates a walker at the given tile position.
func NewWalker(x, y int) *Walker {
	return &Walker{
		X:      x,
		Y:      y,
		Symbol: '@',
	}
}

// Move updates the walker position by the given delta.
func (w *Walker) Move(dx, dy int) {
	w.X += dx
	w.Y += dy
}
