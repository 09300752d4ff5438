package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samdwyer/mazegen/internal/maze"
)

// EncodeWalls packs the raw wall flags of every cell into one hex digit each,
// row by row. Bit 0 is the top wall, bit 1 right, bit 2 bottom, bit 3 left.
func EncodeWalls(m *maze.Maze) string {
	var b strings.Builder
	for _, walls := range m.Walls() {
		var nibble uint64
		for _, side := range maze.Sides {
			if walls[side] {
				nibble |= 1 << uint(side)
			}
		}
		b.WriteString(strconv.FormatUint(nibble, 16))
	}
	return b.String()
}

// DecodeWalls reverses EncodeWalls for a maze of the given size.
func DecodeWalls(size int, encoded string) ([][4]bool, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: size must be at least 1, got %d", maze.ErrInvalidConfiguration, size)
	}
	if len(encoded) != size*size {
		return nil, fmt.Errorf("%w: wall data has %d cells, want %d", maze.ErrInvalidConfiguration, len(encoded), size*size)
	}

	out := make([][4]bool, len(encoded))
	for i, ch := range encoded {
		nibble, err := strconv.ParseUint(string(ch), 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: wall data cell %d: %v", maze.ErrInvalidConfiguration, i, err)
		}
		for _, side := range maze.Sides {
			out[i][side] = nibble&(1<<uint(side)) != 0
		}
	}
	return out, nil
}
