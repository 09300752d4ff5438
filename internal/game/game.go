package game

import (
	"context"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/mazegen/internal/telemetry"
	"github.com/samdwyer/mazegen/internal/ui"
	"github.com/samdwyer/mazegen/internal/world"
)

// Game drives a Session from terminal input.
type Game struct {
	term     *ui.Terminal
	renderer *ui.Renderer
	session  *Session
	cfg      Config
	running  bool
}

// New creates a new game instance.
func New(cfg Config) (*Game, error) {
	term, err := ui.Open()
	if err != nil {
		return nil, err
	}

	return &Game{
		term:     term,
		renderer: ui.NewRenderer(term, cfg.Theme),
		cfg:      cfg,
		running:  true,
	}, nil
}

// Run executes the main input loop.
func (g *Game) Run(ctx context.Context) error {
	defer g.term.Release()

	tracer := telemetry.Tracer("game")
	ctx, initSpan := tracer.Start(ctx, "game.init")

	session, err := NewSession(ctx, g.cfg)
	if err != nil {
		initSpan.End()
		return err
	}
	g.session = session

	initSpan.SetAttributes(
		attribute.Int("maze.size", g.cfg.Size),
		attribute.Int64("maze.seed", session.Seed),
	)
	initSpan.End()

	for g.running {
		g.renderer.Render(g.frame())
		g.handleInput(ctx)
	}
	return nil
}

// frame snapshots the session for the renderer.
func (g *Game) frame() ui.Frame {
	s := g.session
	goalX, goalY := world.TileOf(s.Goal)
	f := ui.Frame{
		Map:    s.Map,
		Walker: s.Walker,
		GoalX:  goalX,
		GoalY:  goalY,
		Status: s.Status(),
	}
	if s.ShowHint && s.State == StateExplore {
		f.Hint = s.HintTiles()
	}
	return f
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.term.NextEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.term.Redraw()
	}
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.session.TryMove(0, -1)
	case tcell.KeyDown:
		g.session.TryMove(0, 1)
	case tcell.KeyLeft:
		g.session.TryMove(-1, 0)
	case tcell.KeyRight:
		g.session.TryMove(1, 0)

	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			g.running = false
		case 'h', 'H':
			g.session.ToggleHint()
		case 'r', 'R':
			if err := g.session.Regenerate(ctx); err != nil {
				log.Error().Err(err).Msg("regenerate failed")
			}
		}
	}
}
