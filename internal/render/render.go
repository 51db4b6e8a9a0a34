package render

import (
	"context"
	"image"
	"image/color"

	"github.com/rook-computer/pixelpad/internal/state"
)

type Renderer interface {
	Start(ctx context.Context) error
	Stop() error
	SetScreen(screen Screen)
	Redraw(session *state.Session)
}

type Screen interface {
	Start(ctx context.Context) error
	Stop() error
	Draw(d Drawer, session *state.Session)
}

type NoopRenderer struct{}

func (n *NoopRenderer) Start(ctx context.Context) error { return nil }
func (n *NoopRenderer) Stop() error                     { return nil }
func (n *NoopRenderer) SetScreen(screen Screen)         {}
func (n *NoopRenderer) Redraw(session *state.Session)   {}

// Drawer is what screens draw with. Implementations paint into an offscreen canvas.
type Drawer interface {
	// Size returns the logical canvas size (in pixels) that screens draw into.
	Size() (width int, height int)

	FillBackground()
	FillRect(rect image.Rectangle, c color.Color)

	MeasureText(text string, style TextStyle) TextMetrics
	DrawText(text string, x, y int, style TextStyle) TextMetrics

	DrawImageInRect(img image.Image, rect image.Rectangle, mode ScaleMode)
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextStyle describes how to render text.
// Coordinates for DrawText use a top-left anchor for Y.
// For X, Align controls how x is interpreted.
type TextStyle struct {
	Color color.Color
	Size  int // font size in points; 0 means renderer default
	Align TextAlign
}

type TextMetrics struct {
	Width      int
	Height     int
	Ascent     int
	Descent    int
	LineHeight int
}

type ScaleMode int

const (
	ScaleModeFit ScaleMode = iota
	ScaleModeStretch
)
