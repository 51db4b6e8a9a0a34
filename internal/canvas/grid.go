// Package canvas holds the drawing grid: a dense array of colored cells laid out
// over a checkerboard background.
package canvas

import (
	"image"
	"image/color"
)

// Checkerboard background colors. A cell showing one of them has not been painted.
var (
	Light = color.RGBA{R: 245, G: 245, B: 245, A: 0xFF}
	Dark  = color.RGBA{R: 200, G: 200, B: 200, A: 0xFF}
)

type cell struct {
	color   color.RGBA
	painted bool
}

// Grid is a fixed-size array of cells indexed by (column, row).
// Painted state is tracked per cell, so painting with a background color still counts.
type Grid struct {
	cols     int
	rows     int
	cellSize int
	cells    []cell
}

// New allocates a grid covering a width x height pixel canvas.
// Edge cells that are only partially visible are included.
func New(width, height, cellSize int) *Grid {
	if cellSize <= 0 {
		cellSize = 1
	}
	g := &Grid{
		cols:     ceilDiv(width, cellSize),
		rows:     ceilDiv(height, cellSize),
		cellSize: cellSize,
	}
	g.cells = make([]cell, g.cols*g.rows)
	g.Clear()
	return g
}

func ceilDiv(a, b int) int {
	if a <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

func (g *Grid) Cols() int     { return g.cols }
func (g *Grid) Rows() int     { return g.rows }
func (g *Grid) CellSize() int { return g.cellSize }

// Bounds is the pixel extent of the grid.
func (g *Grid) Bounds() image.Rectangle {
	return image.Rect(0, 0, g.cols*g.cellSize, g.rows*g.cellSize)
}

// InBounds reports whether (col, row) addresses a cell.
func (g *Grid) InBounds(col, row int) bool {
	return col >= 0 && col < g.cols && row >= 0 && row < g.rows
}

// Background returns the checkerboard color for (col, row).
func Background(col, row int) color.RGBA {
	if (col%2 == 0) != (row%2 == 0) {
		return Light
	}
	return Dark
}

// At returns the color of a cell. Out-of-bounds coordinates report false.
func (g *Grid) At(col, row int) (color.RGBA, bool) {
	if !g.InBounds(col, row) {
		return color.RGBA{}, false
	}
	return g.cells[row*g.cols+col].color, true
}

// Painted reports whether a cell was painted since the last Clear.
func (g *Grid) Painted(col, row int) bool {
	if !g.InBounds(col, row) {
		return false
	}
	return g.cells[row*g.cols+col].painted
}

// CellRect is the pixel rectangle covered by a cell.
func (g *Grid) CellRect(col, row int) image.Rectangle {
	x := col * g.cellSize
	y := row * g.cellSize
	return image.Rect(x, y, x+g.cellSize, y+g.cellSize)
}

// CellAt converts a pixel position to cell coordinates.
func (g *Grid) CellAt(p image.Point) (col, row int, ok bool) {
	if p.X < 0 || p.Y < 0 {
		return 0, 0, false
	}
	col = p.X / g.cellSize
	row = p.Y / g.cellSize
	return col, row, g.InBounds(col, row)
}

// Paint sets the color of a cell. Out-of-bounds targets are ignored and report false.
func (g *Grid) Paint(col, row int, c color.RGBA) bool {
	if !g.InBounds(col, row) {
		return false
	}
	g.cells[row*g.cols+col] = cell{color: c, painted: true}
	return true
}

// PaintAt paints the cell under a pixel position.
func (g *Grid) PaintAt(p image.Point, c color.RGBA) bool {
	col, row, ok := g.CellAt(p)
	if !ok {
		return false
	}
	return g.Paint(col, row, c)
}

// PaintLine paints every cell crossed by the segment between two pixel positions
// and returns how many in-bounds cells were painted.
func (g *Grid) PaintLine(from, to image.Point, c color.RGBA) int {
	x0, y0 := floorDiv(from.X, g.cellSize), floorDiv(from.Y, g.cellSize)
	x1, y1 := floorDiv(to.X, g.cellSize), floorDiv(to.Y, g.cellSize)

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	errTerm := dx + dy

	painted := 0
	for {
		if g.Paint(x0, y0, c) {
			painted++
		}
		if x0 == x1 && y0 == y1 {
			return painted
		}
		e2 := 2 * errTerm
		if e2 >= dy {
			errTerm += dy
			x0 += sx
		}
		if e2 <= dx {
			errTerm += dx
			y0 += sy
		}
	}
}

// Clear restores the checkerboard and forgets all painted cells.
func (g *Grid) Clear() {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			g.cells[row*g.cols+col] = cell{color: Background(col, row)}
		}
	}
}

// Empty reports whether no cell is painted.
func (g *Grid) Empty() bool {
	for _, c := range g.cells {
		if c.painted {
			return false
		}
	}
	return true
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
