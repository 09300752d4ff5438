// Package ui draws the maze game on a terminal through tcell.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

var baseStyle = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)

// Terminal owns the tcell screen for the lifetime of a game. Drawing goes to a
// back buffer that Paint flushes in one step.
type Terminal struct {
	s tcell.Screen
}

// Open takes over the controlling terminal.
func Open() (*Terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return Attach(s)
}

// Attach initializes s and takes ownership of it. Tests attach a simulation screen.
func Attach(s tcell.Screen) (*Terminal, error) {
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("init terminal: %w", err)
	}
	s.SetStyle(baseStyle)
	s.HideCursor()
	s.Clear()
	return &Terminal{s: s}, nil
}

// Release hands the terminal back to the shell.
func (t *Terminal) Release() {
	t.s.Fini()
}

// NextEvent blocks until a key press, resize or interrupt arrives.
func (t *Terminal) NextEvent() tcell.Event {
	return t.s.PollEvent()
}

// Paint clears the back buffer, lets draw fill it, then shows it.
func (t *Terminal) Paint(draw func()) {
	t.s.Clear()
	draw()
	t.s.Show()
}

// Put writes one glyph. Positions off screen are dropped.
func (t *Terminal) Put(x, y int, r rune, style tcell.Style) {
	w, h := t.s.Size()
	if x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	t.s.SetContent(x, y, r, nil, style)
}

// Text writes msg left to right starting at (x, y).
func (t *Terminal) Text(x, y int, msg string, style tcell.Style) {
	for _, r := range msg {
		t.Put(x, y, r, style)
		x++
	}
}

// Bounds is the terminal size in cells.
func (t *Terminal) Bounds() (width, height int) {
	return t.s.Size()
}

// Redraw repaints everything after a resize.
func (t *Terminal) Redraw() {
	t.s.Sync()
}
