package export_test

import (
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rook-computer/pixelpad/internal/canvas"
	"github.com/rook-computer/pixelpad/internal/export"
)

var (
	red  = color.RGBA{R: 255, A: 255}
	blue = color.RGBA{B: 255, A: 255}
)

func decodePNG(t *testing.T, path string) image.Image {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	return img
}

func nrgbaAt(img image.Image, x, y int) color.NRGBA {
	return color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
}

func TestCrop_SingleCell(t *testing.T) {
	g := canvas.New(800, 600, 16)
	g.Paint(2, 3, red)

	img, box, ok := export.Crop(g)
	require.True(t, ok)
	assert.Equal(t, g.CellRect(2, 3), box)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			require.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(x, y))
		}
	}
}

func TestCrop_TransparentBetweenCells(t *testing.T) {
	g := canvas.New(800, 600, 16)
	g.Paint(1, 1, red)
	g.Paint(3, 2, blue)

	img, box, ok := export.Crop(g)
	require.True(t, ok)
	assert.Equal(t, image.Rect(16, 16, 64, 48), box)
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(0, 0))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, img.NRGBAAt(47, 31))
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(20, 0), "unpainted cell inside the box stays transparent")
	assert.Equal(t, color.NRGBA{}, img.NRGBAAt(0, 20))
}

func TestCrop_Empty(t *testing.T) {
	g := canvas.New(800, 600, 16)
	_, _, ok := export.Crop(g)
	assert.False(t, ok)

	g.Paint(5, 5, red)
	g.Clear()
	_, _, ok = export.Crop(g)
	assert.False(t, ok)
}

func TestExport_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	g := canvas.New(800, 600, 16)
	g.Paint(2, 3, red)

	path, err := export.NewExporter(dir).Export(g)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "image_0.png"), path)

	img := decodePNG(t, path)
	assert.Equal(t, 16, img.Bounds().Dx())
	assert.Equal(t, 16, img.Bounds().Dy())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, nrgbaAt(img, 0, 0))
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, nrgbaAt(img, 15, 15))
}

func TestExport_EmptyGridWritesNothing(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images")
	g := canvas.New(800, 600, 16)

	path, err := export.NewExporter(dir).Export(g)
	require.NoError(t, err)
	assert.Empty(t, path)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "export dir must not be created for an empty canvas")

	g.Paint(1, 1, red)
	g.Clear()
	path, err = export.NewExporter(dir).Export(g)
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestExport_SequentialNames(t *testing.T) {
	dir := t.TempDir()
	g := canvas.New(800, 600, 16)
	g.Paint(0, 0, red)
	exp := export.NewExporter(dir)

	first, err := exp.Export(g)
	require.NoError(t, err)
	second, err := exp.Export(g)
	require.NoError(t, err)
	assert.Equal(t, "image_0.png", filepath.Base(first))
	assert.Equal(t, "image_1.png", filepath.Base(second))

	// a gap in the numbering must not overwrite an existing file
	require.NoError(t, os.Remove(first))
	third, err := exp.Export(g)
	require.NoError(t, err)
	assert.Equal(t, "image_2.png", filepath.Base(third))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestExport_BackgroundColoredPaintIsExported(t *testing.T) {
	dir := t.TempDir()
	g := canvas.New(800, 600, 16)
	g.Paint(4, 4, canvas.Dark)

	path, err := export.NewExporter(dir).Export(g)
	require.NoError(t, err)
	require.NotEmpty(t, path)

	img := decodePNG(t, path)
	assert.Equal(t, image.Rect(0, 0, 16, 16), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 200, G: 200, B: 200, A: 255}, nrgbaAt(img, 8, 8))
}

func TestExport_Scale(t *testing.T) {
	dir := t.TempDir()
	g := canvas.New(800, 600, 16)
	g.Paint(0, 0, red)
	g.Paint(1, 0, blue)

	exp := export.NewExporter(dir)
	exp.Scale = 2
	path, err := exp.Export(g)
	require.NoError(t, err)

	img := decodePNG(t, path)
	assert.Equal(t, image.Rect(0, 0, 64, 32), img.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 255}, nrgbaAt(img, 31, 31))
	assert.Equal(t, color.NRGBA{B: 255, A: 255}, nrgbaAt(img, 32, 0))
}

func TestExport_DirectoryFailureIsReturned(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "not-a-dir")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	g := canvas.New(800, 600, 16)
	g.Paint(0, 0, red)

	_, err := export.NewExporter(filepath.Join(blocker, "images")).Export(g)
	assert.Error(t, err)
}

func TestExport_SkipsNameTakenByDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, export.FileName(1)), 0o755))

	g := canvas.New(800, 600, 16)
	g.Paint(0, 0, red)

	path, err := export.NewExporter(dir).Export(g)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, export.FileName(2)), path)
}

func TestExport_UnwritableDirectoryIsReturned(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root ignores directory permissions")
	}
	dir := filepath.Join(t.TempDir(), "images")
	require.NoError(t, os.Mkdir(dir, 0o555))
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	g := canvas.New(800, 600, 16)
	g.Paint(0, 0, red)

	path, err := export.NewExporter(dir).Export(g)
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.Empty(t, path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
