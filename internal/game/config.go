package game

import "github.com/samdwyer/mazegen/internal/preset"

// Config holds game configuration options.
type Config struct {
	// Size is the maze edge length in cells.
	Size int
	// Seed for random number generation. Used for reproducible maze generation.
	// A seed of 0 means a random seed will be generated.
	Seed int64
	// Theme colors the walls, walker and goal.
	Theme preset.Theme
}
