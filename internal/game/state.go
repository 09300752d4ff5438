// Package game provides the interactive terminal session for walking a maze.
package game

// State represents the current session state.
type State int

const (
	// StateExplore is the default mode where the walker moves through the maze.
	StateExplore State = iota
	// StateEscaped is entered once the walker reaches the goal cell.
	StateEscaped
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateExplore:
		return "explore"
	case StateEscaped:
		return "escaped"
	default:
		return "unknown"
	}
}
