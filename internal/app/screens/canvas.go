package screens

import (
	"context"
	"image"

	"github.com/rook-computer/pixelpad/internal/render"
	"github.com/rook-computer/pixelpad/internal/state"
)

// CanvasScreen is the drawing surface: the grid, the palette and the clear button.
type CanvasScreen struct{}

func (CanvasScreen) Start(ctx context.Context) error { return nil }
func (CanvasScreen) Stop() error                     { return nil }

func (CanvasScreen) Draw(d render.Drawer, s *state.Session) {
	d.FillBackground()
	drawGrid(d, s)
	drawPalette(d, s)
	drawClearButton(d, s)
}

func drawGrid(d render.Drawer, s *state.Session) {
	g := s.Grid
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			c, _ := g.At(col, row)
			d.FillRect(g.CellRect(col, row), c)
		}
	}
}

func drawPalette(d render.Drawer, s *state.Session) {
	d.FillRect(s.Layout.Container(), render.PaletteContainer)
	for i, c := range s.Palette {
		d.FillRect(s.Layout.SwatchRect(i), c)
	}
}

func drawClearButton(d render.Drawer, s *state.Session) {
	button := s.ClearButton
	d.FillRect(button, render.ClearButton)
	d.DrawText("Clear", button.Min.X+20, button.Min.Y+5, render.TextStyle{Color: render.ClearButtonText, Size: 18})

	// current color, framed so black and white both stay visible
	swatch := image.Rect(button.Max.X+10, button.Min.Y, button.Max.X+10+button.Dy(), button.Max.Y)
	d.FillRect(swatch, render.PaletteContainer)
	d.FillRect(swatch.Inset(3), s.Color)
}
