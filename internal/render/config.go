package render

import "image/color"

var (
	// Background fills whatever the grid does not cover.
	Background = color.RGBA{R: 245, G: 245, B: 245, A: 0xFF}

	PaletteContainer = color.RGBA{R: 100, G: 100, B: 100, A: 0xFF}
	ClearButton      = color.RGBA{R: 50, G: 50, B: 200, A: 0xFF}
	ClearButtonText  = color.RGBA{R: 255, G: 255, B: 255, A: 0xFF}

	// Overlay dims the canvas behind the gallery panel.
	Overlay = color.RGBA{A: 0xB0}
	Panel   = color.RGBA{R: 255, G: 255, B: 255, A: 0xFF}
	Text    = color.RGBA{R: 30, G: 30, B: 30, A: 0xFF}

	// DefaultTextSize is used when TextStyle.Size is 0.
	DefaultTextSize = 18
)
