package palette

import "image"

// Layout describes where the swatches are placed on screen.
// Swatches are SwatchSize pixels wide with a one pixel gap, Columns per row.
type Layout struct {
	Origin     image.Point
	SwatchSize int
	Columns    int
	Padding    int
}

// DefaultLayout anchors the palette in the lower left corner of a canvas of the given height.
func DefaultLayout(canvasHeight int) Layout {
	return Layout{
		Origin:     image.Pt(10, canvasHeight-280),
		SwatchSize: 15,
		Columns:    16,
		Padding:    5,
	}
}

func (l Layout) pitch() int { return l.SwatchSize + 1 }

func (l Layout) rows() int {
	if l.Columns <= 0 {
		return 0
	}
	return (Size + l.Columns - 1) / l.Columns
}

// Area is the region covered by the swatch grid, gaps included.
func (l Layout) Area() image.Rectangle {
	return image.Rect(
		l.Origin.X,
		l.Origin.Y,
		l.Origin.X+l.Columns*l.pitch(),
		l.Origin.Y+l.rows()*l.pitch(),
	)
}

// Container is the Area grown by Padding on every side. The whole container is reserved UI.
func (l Layout) Container() image.Rectangle {
	area := l.Area()
	return image.Rect(area.Min.X-l.Padding, area.Min.Y-l.Padding, area.Max.X+l.Padding, area.Max.Y+l.Padding)
}

// SwatchRect returns the on-screen rectangle of swatch i.
func (l Layout) SwatchRect(i int) image.Rectangle {
	if l.Columns <= 0 {
		return image.Rectangle{}
	}
	col := i % l.Columns
	row := i / l.Columns
	minPoint := l.Origin.Add(image.Pt(col*l.pitch(), row*l.pitch()))
	return image.Rectangle{Min: minPoint, Max: minPoint.Add(image.Pt(l.SwatchSize, l.SwatchSize))}
}

// HitTest maps a pointer position to a palette index.
// Positions inside a gap resolve to the swatch on its upper left.
func (l Layout) HitTest(p image.Point) (int, bool) {
	if l.Columns <= 0 || !p.In(l.Area()) {
		return 0, false
	}
	col := (p.X - l.Origin.X) / l.pitch()
	row := (p.Y - l.Origin.Y) / l.pitch()
	if col >= l.Columns {
		return 0, false
	}
	index := row*l.Columns + col
	if index < 0 || index >= Size {
		return 0, false
	}
	return index, true
}
