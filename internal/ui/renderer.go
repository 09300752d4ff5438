package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/mazegen/internal/entity"
	"github.com/samdwyer/mazegen/internal/preset"
	"github.com/samdwyer/mazegen/internal/world"
)

// Frame is everything drawn in one refresh.
type Frame struct {
	Map    *world.Map
	Walker *entity.Walker
	GoalX  int
	GoalY  int
	Hint   [][2]int // tile positions of the suggested route
	Status string
}

// Renderer paints frames onto a Terminal using a preset theme.
type Renderer struct {
	term  *Terminal
	theme preset.Theme
}

// NewRenderer binds a theme to a terminal.
func NewRenderer(term *Terminal, theme preset.Theme) *Renderer {
	return &Renderer{term: term, theme: theme}
}

// Render draws a frame: tiles, the hint route, the goal, the walker and the
// status line one row below the map.
func (r *Renderer) Render(f Frame) {
	r.term.Paint(func() {
		for y := 0; y < f.Map.Height; y++ {
			for x := 0; x < f.Map.Width; x++ {
				tile := f.Map.GetTile(x, y)
				r.term.Put(x, y, tile.Rune(), r.tileStyle(tile))
			}
		}

		hintStyle := tcell.StyleDefault.Foreground(tcell.ColorTeal)
		for _, p := range f.Hint {
			r.term.Put(p[0], p[1], '·', hintStyle)
		}

		r.term.Put(f.GoalX, f.GoalY, '>', tcell.StyleDefault.Foreground(r.theme.Goal).Bold(true))
		r.term.Put(f.Walker.X, f.Walker.Y, f.Walker.Symbol, tcell.StyleDefault.Foreground(r.theme.Walker).Bold(true))
		r.term.Text(0, f.Map.Height+1, f.Status, baseStyle)
	})
}

func (r *Renderer) tileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(r.theme.Wall).Background(r.theme.Wall)
	case world.TilePost:
		return tcell.StyleDefault.Foreground(r.theme.Wall)
	default:
		return tcell.StyleDefault
	}
}
