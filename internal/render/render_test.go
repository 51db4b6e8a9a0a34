package render

import (
	"context"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/pixelpad/internal/state"
)

type fillScreen struct {
	rect image.Rectangle
	c    color.RGBA
}

func (fillScreen) Start(ctx context.Context) error { return nil }
func (fillScreen) Stop() error                     { return nil }
func (s fillScreen) Draw(d Drawer, session *state.Session) {
	d.FillRect(s.rect, s.c)
}

func TestImageRenderer_Redraw(t *testing.T) {
	r := NewImageRenderer(64, 48)
	red := color.RGBA{R: 255, A: 255}

	r.Redraw(nil)
	assert.Zero(t, r.Frames(), "no surface before Start")

	require.NoError(t, r.Start(context.Background()))
	r.SetScreen(fillScreen{rect: image.Rect(10, 10, 20, 20), c: red})
	r.Redraw(state.NewSession(64, 48, 16))
	assert.Equal(t, 1, r.Frames())

	snap := r.Snapshot()
	assert.Equal(t, red, snap.RGBAAt(15, 15))
	assert.Equal(t, Background, snap.RGBAAt(0, 0))

	path := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, r.SavePNG(path))
	assert.FileExists(t, path)
}

func TestSurface_Text(t *testing.T) {
	s := newSurface(200, 50, nil)
	s.FillBackground()

	m := s.MeasureText("Clear", TextStyle{Size: 18})
	assert.Positive(t, m.Width)
	assert.Positive(t, m.Height)

	drawn := s.DrawText("Clear", 10, 10, TextStyle{Color: color.RGBA{A: 255}, Size: 18})
	assert.Equal(t, m, drawn)
}

func TestSurface_DrawImageInRectFit(t *testing.T) {
	s := newSurface(100, 100, nil)
	s.FillBackground()
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	green := color.RGBA{G: 255, A: 255}
	src.SetRGBA(0, 0, green)
	src.SetRGBA(1, 0, green)

	s.DrawImageInRect(src, image.Rect(0, 0, 100, 100), ScaleModeFit)
	assert.Equal(t, green, s.canvas.RGBAAt(50, 50))
	assert.Equal(t, Background, s.canvas.RGBAAt(50, 10), "letterboxed above")
}

func TestGenerateQRCodeImage(t *testing.T) {
	img, err := GenerateQRCodeImage("", 0)
	require.NoError(t, err)
	assert.Nil(t, img)

	img, err = GenerateQRCodeImage("http://192.168.1.20:8080/api/v1/exports", 128)
	require.NoError(t, err)
	assert.Equal(t, 128, img.Bounds().Dx())
}
