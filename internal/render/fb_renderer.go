package render

import (
	"context"
	"image"
	"image/color"
	"sync/atomic"

	fb "github.com/gonutz/framebuffer"
	"github.com/rook-computer/pixelpad/internal/state"
)

// FBRenderer renders to the Linux framebuffer using an offscreen logical canvas.
type FBRenderer struct {
	Device string
	Width  int
	Height int
	Logger logger
	Debug  bool

	fbDev   *fb.Device
	surface *surface
	running atomic.Bool
	current Screen
	frames  uint64
}

func NewFBRenderer(device string, width, height int) *FBRenderer {
	return &FBRenderer{Device: device, Width: width, Height: height}
}

func (r *FBRenderer) Start(ctx context.Context) error {
	dev, err := fb.Open(r.Device)
	if err != nil {
		return err
	}
	r.fbDev = dev
	if r.Logger != nil {
		bounds := dev.Bounds()
		r.Logger.Infof("fb", "framebuffer %s open, bounds=%dx%d canvas=%dx%d", r.Device, bounds.Dx(), bounds.Dy(), r.Width, r.Height)
	}
	r.surface = newSurface(r.Width, r.Height, r.Logger)
	r.running.Store(true)
	return nil
}

func (r *FBRenderer) Stop() error {
	r.running.Store(false)
	if r.fbDev != nil {
		r.fbDev.Close()
	}
	return nil
}

// SetScreen sets the screen drawn by the next Redraw.
func (r *FBRenderer) SetScreen(screen Screen) { r.current = screen }

func (r *FBRenderer) Redraw(session *state.Session) {
	if !r.running.Load() || r.current == nil || r.fbDev == nil {
		return
	}
	r.surface.FillBackground()
	r.current.Draw(r.surface, session)
	blitToFB(r.fbDev, r.surface.canvas)
	r.frames++
	if r.Debug && r.Logger != nil && r.frames%30 == 0 {
		r.Logger.Infof("fb", "frame %d, mode=%s", r.frames, session.Mode)
	}
}

// blitToFB copies the canvas to the framebuffer with nearest-neighbour scaling.
func blitToFB(dev *fb.Device, canvas *image.RGBA) {
	bounds := dev.Bounds()
	fbWidth := bounds.Dx()
	fbHeight := bounds.Dy()
	canvasWidth := canvas.Bounds().Dx()
	canvasHeight := canvas.Bounds().Dy()
	for y := 0; y < fbHeight; y++ {
		sy := (y * canvasHeight) / fbHeight
		for x := 0; x < fbWidth; x++ {
			sx := (x * canvasWidth) / fbWidth
			pixel := canvas.RGBAAt(sx, sy)
			dev.Set(bounds.Min.X+x, bounds.Min.Y+y, color.RGBA{R: pixel.R, G: pixel.G, B: pixel.B, A: 0xFF})
		}
	}
}
