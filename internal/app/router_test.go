package app

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/pixelpad/internal/canvas"
	"github.com/rook-computer/pixelpad/internal/input"
	"github.com/rook-computer/pixelpad/internal/state"
)

type fakeExporter struct {
	calls int
	path  string
	err   error
}

func (f *fakeExporter) Export(g *canvas.Grid) (string, error) {
	f.calls++
	return f.path, f.err
}

func newTestRouter() (*Router, *fakeExporter) {
	exp := &fakeExporter{path: "images/image_0.png"}
	return NewRouter(state.NewSession(800, 600, 16), exp, nil), exp
}

func down(x, y int) input.Event { return input.Event{Kind: input.PointerDown, Pos: image.Pt(x, y)} }
func move(x, y int) input.Event { return input.Event{Kind: input.PointerMove, Pos: image.Pt(x, y)} }

var up = input.Event{Kind: input.PointerUp}

func TestRouter_PaletteHitSelectsColorAndStaysIdle(t *testing.T) {
	r, _ := newTestRouter()
	s := r.Session
	swatch := s.Layout.SwatchRect(15)

	require.NoError(t, r.Handle(down(swatch.Min.X, swatch.Min.Y)))
	assert.Equal(t, s.Palette[15], s.Color)
	assert.Equal(t, state.Idle, s.Mode)
	r.Frame()
	assert.True(t, s.Grid.Empty(), "selecting a color paints nothing")
}

func TestRouter_PalettePaddingIsReserved(t *testing.T) {
	r, _ := newTestRouter()
	s := r.Session
	container := s.Layout.Container()

	require.NoError(t, r.Handle(down(container.Min.X, container.Min.Y)))
	assert.Equal(t, state.DefaultColor, s.Color)
	assert.Equal(t, state.Idle, s.Mode)
	assert.True(t, s.Grid.Empty())
}

func TestRouter_PaintDragRelease(t *testing.T) {
	r, _ := newTestRouter()
	s := r.Session

	require.NoError(t, r.Handle(down(400, 100)))
	assert.Equal(t, state.Painting, s.Mode)
	assert.True(t, s.Grid.Painted(25, 6), "press paints immediately")

	require.NoError(t, r.Handle(move(400+16*4, 100)))
	r.Frame()
	for col := 25; col <= 29; col++ {
		assert.True(t, s.Grid.Painted(col, 6), "col %d", col)
	}
	c, _ := s.Grid.At(27, 6)
	assert.Equal(t, state.DefaultColor, c)

	require.NoError(t, r.Handle(up))
	assert.Equal(t, state.Idle, s.Mode)

	require.NoError(t, r.Handle(move(700, 500)))
	r.Frame()
	assert.False(t, s.Grid.Painted(43, 31), "moving while idle does not paint")
}

func TestRouter_FramePaintsStationaryPointer(t *testing.T) {
	r, _ := newTestRouter()
	s := r.Session

	require.NoError(t, r.Handle(down(400, 100)))
	s.Grid.Clear()
	r.Frame()
	assert.True(t, s.Grid.Painted(25, 6))
}

func TestRouter_PaintUsesSelectedColor(t *testing.T) {
	r, _ := newTestRouter()
	s := r.Session
	swatch := s.Layout.SwatchRect(15)

	require.NoError(t, r.Handle(down(swatch.Min.X, swatch.Min.Y)))
	require.NoError(t, r.Handle(up))
	require.NoError(t, r.Handle(down(2*16, 3*16)))

	c, ok := s.Grid.At(2, 3)
	require.True(t, ok)
	assert.Equal(t, color.RGBA{R: 255, G: 90, B: 0, A: 255}, c)
}

func TestRouter_ClearButtonAndKey(t *testing.T) {
	r, _ := newTestRouter()
	s := r.Session

	s.Grid.Paint(40, 2, state.DefaultColor)
	require.NoError(t, r.Handle(down(s.ClearButton.Min.X+1, s.ClearButton.Min.Y+1)))
	assert.True(t, s.Grid.Empty())
	assert.Equal(t, state.Idle, s.Mode)

	require.NoError(t, r.Handle(down(400, 100)))
	require.NoError(t, r.Handle(input.Event{Kind: input.Clear}))
	assert.True(t, s.Grid.Empty())
	assert.Equal(t, state.Painting, s.Mode, "clear does not change the pointer state")
}

func TestRouter_Save(t *testing.T) {
	r, exp := newTestRouter()
	s := r.Session

	require.NoError(t, r.Handle(down(400, 100)))
	require.NoError(t, r.Handle(input.Event{Kind: input.Save}))
	assert.Equal(t, 1, exp.calls)
	assert.Equal(t, "images/image_0.png", s.LastExport)
	assert.Equal(t, 1, s.Exports)
	assert.Equal(t, state.Painting, s.Mode)

	exp.path = ""
	require.NoError(t, r.Handle(input.Event{Kind: input.Save}))
	assert.Equal(t, 1, s.Exports, "no-op export is not counted")
}

func TestRouter_SaveFailureIsReturned(t *testing.T) {
	r, exp := newTestRouter()
	exp.err = errors.New("disk full")

	err := r.Handle(input.Event{Kind: input.Save})
	require.Error(t, err)
	assert.ErrorIs(t, err, exp.err)
}

func TestRouter_SecondPressWhilePaintingIsIgnored(t *testing.T) {
	r, _ := newTestRouter()
	s := r.Session

	require.NoError(t, r.Handle(down(400, 100)))
	swatch := s.Layout.SwatchRect(15)
	require.NoError(t, r.Handle(down(swatch.Min.X, swatch.Min.Y)))
	assert.Equal(t, state.DefaultColor, s.Color)
	assert.Equal(t, state.Painting, s.Mode)
}

func TestRouter_OutOfBoundsPaintIsIgnored(t *testing.T) {
	r, _ := newTestRouter()
	s := r.Session

	require.NoError(t, r.Handle(down(-5, 100)))
	assert.Equal(t, state.Painting, s.Mode)
	assert.True(t, s.Grid.Empty())

	require.NoError(t, r.Handle(move(-5, 300)))
	r.Frame()
	assert.True(t, s.Grid.Empty(), "a stroke left of the grid paints nothing")
}

func TestRouter_QuitAndGallery(t *testing.T) {
	r, _ := newTestRouter()
	toggled := 0
	r.OnGallery = func() { toggled++ }

	require.NoError(t, r.Handle(input.Event{Kind: input.Gallery}))
	assert.Equal(t, 1, toggled)
	assert.ErrorIs(t, r.Handle(input.Event{Kind: input.Quit}), ErrQuit)
}
