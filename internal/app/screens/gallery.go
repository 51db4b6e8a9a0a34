package screens

import (
	"context"
	"fmt"
	"image"

	"github.com/rook-computer/pixelpad/internal/render"
	"github.com/rook-computer/pixelpad/internal/render/layout"
	"github.com/rook-computer/pixelpad/internal/state"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// GalleryScreen overlays the canvas with a QR code linking to the export gallery.
// The URL is resolved each time the screen starts, because the server address is
// only known once it listens.
type GalleryScreen struct {
	URLFunc func() string
	Logger  Logger

	url string
	qr  image.Image
}

func NewGalleryScreen(urlFunc func() string, logger Logger) *GalleryScreen {
	return &GalleryScreen{URLFunc: urlFunc, Logger: logger}
}

func (screen *GalleryScreen) Start(ctx context.Context) error {
	url := ""
	if screen.URLFunc != nil {
		url = screen.URLFunc()
	}
	if url == screen.url && (screen.qr != nil || url == "") {
		return nil
	}
	screen.url = url
	screen.qr = nil
	if url == "" {
		return nil
	}
	img, err := render.GenerateQRCodeImage(url, 0)
	if err != nil {
		return fmt.Errorf("gallery qr code: %w", err)
	}
	screen.qr = img
	if screen.Logger != nil {
		screen.Logger.Infof("gallery", "qr code ready for %s", url)
	}
	return nil
}

// URL is the address encoded in the current QR code.
func (screen *GalleryScreen) URL() string { return screen.url }

func (screen *GalleryScreen) Stop() error { return nil }

func (screen *GalleryScreen) Draw(d render.Drawer, s *state.Session) {
	CanvasScreen{}.Draw(d, s)

	width, height := d.Size()
	full := image.Rect(0, 0, width, height)
	d.FillRect(full, render.Overlay)

	panel := layout.Centered(full, 360, 420)
	d.FillRect(panel, render.Panel)
	content := layout.Inset(panel, 20)
	top, bottom := layout.SplitHorizontal(content, content.Dy()-70)

	center := bottom.Min.X + bottom.Dx()/2
	style := render.TextStyle{Color: render.Text, Size: 16, Align: render.TextAlignCenter}
	if screen.qr == nil {
		d.DrawText("gallery server disabled", center, top.Min.Y+top.Dy()/2, style)
	} else {
		d.DrawImageInRect(screen.qr, layout.FitSquare(top), render.ScaleModeFit)
		d.DrawText(screen.url, center, bottom.Min.Y+8, style)
	}
	d.DrawText(fmt.Sprintf("%d exported, press g to close", s.Exports), center, bottom.Min.Y+36, style)
}
