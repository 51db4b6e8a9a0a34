package state

import (
	"image"
	"image/color"

	"github.com/rook-computer/pixelpad/internal/canvas"
	"github.com/rook-computer/pixelpad/internal/palette"
)

// Mode is the pointer state of the drawing session.
type Mode int

const (
	Idle Mode = iota
	Painting
)

func (m Mode) String() string {
	switch m {
	case Idle:
		return "idle"
	case Painting:
		return "painting"
	default:
		return "unknown"
	}
}

// DefaultColor is the current color of a fresh session.
var DefaultColor = color.RGBA{A: 0xFF}

// Session owns everything a drawing session mutates. It is confined to the
// goroutine running the app loop and carries no locks.
type Session struct {
	Grid    *canvas.Grid
	Palette palette.Palette
	Layout  palette.Layout
	Color   color.RGBA

	// ClearButton is the on-screen clear control. Like the palette container it is reserved UI.
	ClearButton image.Rectangle

	Mode Mode

	// LastExport is the path written by the most recent successful export.
	LastExport string
	Exports    int
}

// NewSession builds a checkerboard grid for a width x height canvas and generates the palette once.
func NewSession(width, height, cellSize int) *Session {
	return &Session{
		Grid:    canvas.New(width, height, cellSize),
		Palette: palette.Generate(),
		Layout:  palette.DefaultLayout(height),
		Color:   DefaultColor,
		Mode:    Idle,

		ClearButton: image.Rect(10, height-50, 90, height-20),
	}
}

// Reserved reports whether p lies on a UI control rather than the drawing area.
func (s *Session) Reserved(p image.Point) bool {
	return p.In(s.Layout.Container()) || p.In(s.ClearButton)
}

// SelectColor makes palette entry i the current color.
func (s *Session) SelectColor(i int) bool {
	c, ok := s.Palette.Color(i)
	if !ok {
		return false
	}
	s.Color = c
	return true
}
