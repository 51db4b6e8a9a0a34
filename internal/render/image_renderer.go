package render

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"

	"github.com/rook-computer/pixelpad/internal/state"
)

// ImageRenderer draws into memory only. The simulator uses it to produce screenshots.
type ImageRenderer struct {
	Width  int
	Height int
	Logger logger

	surface *surface
	current Screen
	frames  int
}

func NewImageRenderer(width, height int) *ImageRenderer {
	return &ImageRenderer{Width: width, Height: height}
}

func (r *ImageRenderer) Start(ctx context.Context) error {
	r.surface = newSurface(r.Width, r.Height, r.Logger)
	return nil
}

func (r *ImageRenderer) Stop() error { return nil }

func (r *ImageRenderer) SetScreen(screen Screen) { r.current = screen }

func (r *ImageRenderer) Redraw(session *state.Session) {
	if r.surface == nil || r.current == nil {
		return
	}
	r.surface.FillBackground()
	r.current.Draw(r.surface, session)
	r.frames++
}

// Frames is the number of completed redraws.
func (r *ImageRenderer) Frames() int { return r.frames }

// Snapshot returns a copy of the last rendered frame.
func (r *ImageRenderer) Snapshot() *image.RGBA {
	if r.surface == nil {
		return image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	}
	out := image.NewRGBA(r.surface.canvas.Bounds())
	draw.Draw(out, out.Bounds(), r.surface.canvas, image.Point{}, draw.Src)
	return out
}

// SavePNG writes the last rendered frame to path.
func (r *ImageRenderer) SavePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create screenshot: %w", err)
	}
	if err := png.Encode(f, r.Snapshot()); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode screenshot: %w", err)
	}
	return f.Close()
}
