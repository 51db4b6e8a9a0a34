package export

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rook-computer/pixelpad/internal/canvas"
	xdraw "golang.org/x/image/draw"
)

const (
	filePrefix = "image_"
	fileExt    = ".png"

	// maxNameAttempts bounds the search for a free file name.
	maxNameAttempts = 10000
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Crop renders the painted cells of g into a transparent image sized to their bounding box.
// The returned rectangle is the bounding box in canvas pixels. ok is false when nothing is painted.
func Crop(g *canvas.Grid) (img *image.NRGBA, box image.Rectangle, ok bool) {
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			if !g.Painted(col, row) {
				continue
			}
			cellRect := g.CellRect(col, row)
			if !ok {
				box = cellRect
				ok = true
				continue
			}
			box = box.Union(cellRect)
		}
	}
	if !ok {
		return nil, image.Rectangle{}, false
	}

	img = image.NewNRGBA(image.Rect(0, 0, box.Dx(), box.Dy()))
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			if !g.Painted(col, row) {
				continue
			}
			c, _ := g.At(col, row)
			c.A = 0xFF
			dst := g.CellRect(col, row).Sub(box.Min)
			draw.Draw(img, dst, &image.Uniform{C: c}, image.Point{}, draw.Src)
		}
	}
	return img, box, true
}

// Exporter writes cropped canvas images into Dir as sequentially numbered PNG files.
type Exporter struct {
	Dir string

	// Scale multiplies the output size using nearest-neighbour sampling. Values below 2 keep 1:1.
	Scale int

	Logger Logger
}

func NewExporter(dir string) *Exporter {
	return &Exporter{Dir: dir, Scale: 1}
}

// Export saves the painted part of g and returns the written path.
// An unpainted grid is a no-op: nothing is created and the path is empty.
func (e *Exporter) Export(g *canvas.Grid) (string, error) {
	img, box, ok := Crop(g)
	if !ok {
		e.infof("nothing painted, skipping export")
		return "", nil
	}

	var out image.Image = img
	if e.Scale > 1 {
		scaled := image.NewNRGBA(image.Rect(0, 0, img.Bounds().Dx()*e.Scale, img.Bounds().Dy()*e.Scale))
		xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
		out = scaled
	}

	if err := os.MkdirAll(e.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create export dir %s: %w", e.Dir, err)
	}

	f, path, err := e.createNext()
	if err != nil {
		return "", err
	}
	if err := png.Encode(f, out); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", path, err)
	}

	e.infof("exported %s, box=%v size=%dx%d", path, box, out.Bounds().Dx(), out.Bounds().Dy())
	return path, nil
}

// createNext opens a new file named after the current number of directory entries,
// moving past names that are already taken.
func (e *Exporter) createNext() (*os.File, string, error) {
	entries, err := os.ReadDir(e.Dir)
	if err != nil {
		return nil, "", fmt.Errorf("read export dir %s: %w", e.Dir, err)
	}

	for n := len(entries); n < len(entries)+maxNameAttempts; n++ {
		path := filepath.Join(e.Dir, FileName(n))
		f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			return f, path, nil
		}
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		return nil, "", fmt.Errorf("create %s: %w", path, err)
	}
	return nil, "", fmt.Errorf("no free file name in %s", e.Dir)
}

// FileName is the name used for the n-th export.
func FileName(n int) string {
	return fmt.Sprintf("%s%d%s", filePrefix, n, fileExt)
}

func (e *Exporter) infof(format string, args ...interface{}) {
	if e.Logger != nil {
		e.Logger.Infof("export", format, args...)
	}
}
